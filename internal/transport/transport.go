// Package transport abstracts where the plotter process runs and
// where its data files live.  The local transport spawns gnuplot as a
// child process; the SSH transport drives one on a remote host over
// golang.org/x/crypto/ssh.  Sessions only ever see the two interfaces
// below.
package transport

import (
	"context"
	"io"

	"gplot/config"
	"gplot/internal/tmpfile"
	"gplot/util"
)

// Transport owns a plotter process and exposes its command pipe.
type Transport interface {
	// Start launches the plotter and returns the write-only pipe that
	// carries its command stream.
	Start(ctx context.Context) (io.WriteCloser, error)

	// Files returns the store that materialises data files reachable
	// by this transport's plotter.
	Files() FileStore

	// Close terminates the plotter and releases the transport.
	Close() error
}

// FileStore materialises and removes the scratch files that plot
// commands reference by name.
type FileStore interface {
	// Create allocates a fresh uniquely named file and returns the
	// name the plotter should use to read it.
	Create() (name string, w io.WriteCloser, err error)

	// Remove unlinks a file previously returned by Create.
	Remove(name string) error

	// Available reports whether the plotter can read the named file.
	Available(name string) error
}

// Build selects a transport for the configuration: SSH when a remote
// host is configured, the local child process otherwise.
func Build(cfg *config.Config, logger *util.Logger) Transport {
	if cfg.SSHEnabled {
		return NewSSH(cfg, logger)
	}
	return NewLocal(cfg, logger)
}

// poolFor returns the temp-file pool a local transport should draw
// from: the shared process-wide pool when the configuration keeps the
// platform defaults, a private one otherwise.
func poolFor(cfg *config.Config) *tmpfile.Pool {
	if cfg.TempDir == config.DefaultTempDir() && cfg.MaxTempFiles == config.DefaultMaxTempFiles() {
		return tmpfile.Default()
	}
	return tmpfile.NewPool(cfg.TempDir, cfg.MaxTempFiles)
}
