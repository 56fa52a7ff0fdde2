package transport

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"gplot/config"
	gperr "gplot/internal/errors"
	"gplot/internal/platform"
	"gplot/internal/tmpfile"
	"gplot/util"
)

// Local runs the plotter as a child process and feeds it over a pipe
// attached to its stdin.  Stdout and stderr are inherited, so the
// plotter's warnings land on the caller's terminal.
type Local struct {
	cfg    *config.Config
	logger *util.Logger
	store  *localStore

	cmd   *exec.Cmd
	stdin io.WriteCloser
}

// NewLocal builds a local transport.  Nothing is spawned until Start.
func NewLocal(cfg *config.Config, logger *util.Logger) *Local {
	return &Local{
		cfg:    cfg,
		logger: logger,
		store:  &localStore{pool: poolFor(cfg)},
	}
}

// Start locates the plotter executable, spawns it, and returns the
// command pipe.  On Linux the session is refused outright when no X
// display is reachable, matching the plotter's own startup check.
func (l *Local) Start(ctx context.Context) (io.WriteCloser, error) {
	if runtime.GOOS == "linux" {
		if err := platform.CheckDisplay(); err != nil {
			return nil, err
		}
	}

	dir, err := platform.Locate(l.cfg.PlotterDir, l.cfg.PlotterName)
	if err != nil {
		return nil, err
	}
	l.cfg.PlotterDir = dir

	path := filepath.Join(dir, l.cfg.PlotterName)
	cmd := exec.CommandContext(ctx, path)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &gperr.SpawnError{Path: path, Err: err}
	}
	if err := cmd.Start(); err != nil {
		return nil, &gperr.SpawnError{Path: path, Err: err}
	}

	l.logger.Verbose("spawned %s (pid %d)", path, cmd.Process.Pid)
	l.cmd = cmd
	l.stdin = stdin
	return stdin, nil
}

// Files returns the local temp-file store.
func (l *Local) Files() FileStore { return l.store }

// Close shuts the command pipe and reaps the child.  Closing stdin is
// what makes gnuplot exit, so the pipe is closed before Wait.
func (l *Local) Close() error {
	if l.cmd == nil {
		return nil
	}
	if l.stdin != nil {
		l.stdin.Close()
	}
	err := l.cmd.Wait()
	l.cmd = nil
	l.stdin = nil
	return err
}

// ── local file store ─────────────────────────────────────────────────

// localStore materialises data files through the quota-capped pool.
type localStore struct {
	pool *tmpfile.Pool
}

func (s *localStore) Create() (string, io.WriteCloser, error) {
	f, err := s.pool.Create()
	if err != nil {
		return "", nil, err
	}
	return f.Name(), f, nil
}

func (s *localStore) Remove(name string) error {
	if err := os.Remove(name); err != nil {
		return gperr.WrapFile("remove", name, err)
	}
	s.pool.Release(1)
	return nil
}

func (s *localStore) Available(name string) error {
	return platform.FileAvailable(name)
}
