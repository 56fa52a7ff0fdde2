package transport

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"golang.org/x/crypto/ssh"

	"gplot/config"
	gperr "gplot/internal/errors"
	"gplot/internal/tmpfile"
	"gplot/tunnel"
	"gplot/util"
)

// SSH drives a plotter on a remote host.  The command pipe is the
// stdin of a remote plotter process; data files are streamed to the
// remote scratch directory over dedicated sessions.
type SSH struct {
	cfg    *config.Config
	logger *util.Logger
	client *tunnel.Client
	store  *sshStore

	sess  *ssh.Session
	stdin io.WriteCloser
}

// NewSSH builds an SSH transport.  The connection is not dialed until
// Start.
func NewSSH(cfg *config.Config, logger *util.Logger) *SSH {
	client := tunnel.NewClient(&tunnel.Config{
		User:          cfg.SSHUser,
		Host:          cfg.SSHHost,
		Port:          cfg.SSHPort,
		KeyPath:       cfg.SSHKeyPath,
		PromptPass:    cfg.SSHPassword,
		UseAgent:      cfg.UseSSHAgent,
		StrictHostKey: cfg.StrictHostKey,
		KnownHosts:    cfg.KnownHostsPath,
		ConnTimeout:   cfg.ConnTimeout,
	}, logger)

	t := &SSH{cfg: cfg, logger: logger, client: client}
	t.store = &sshStore{
		transport: t,
		dir:       cfg.RemoteTempDir,
		pool:      tmpfile.NewPool(cfg.RemoteTempDir, cfg.MaxTempFiles),
	}
	return t
}

// Start connects, opens a session, and launches the remote plotter
// with its stdin attached to the returned pipe.
func (t *SSH) Start(ctx context.Context) (io.WriteCloser, error) {
	if err := t.client.Connect(ctx); err != nil {
		return nil, err
	}

	sess, err := t.client.NewSession()
	if err != nil {
		return nil, err
	}

	stdin, err := sess.StdinPipe()
	if err != nil {
		sess.Close()
		return nil, gperr.WrapSSH("stdin", t.cfg.SSHHost, t.cfg.SSHPort, err)
	}
	sess.Stdout = os.Stdout
	sess.Stderr = os.Stderr

	command := t.cfg.RemoteCommand
	if command == "" {
		command = t.cfg.PlotterName
	}
	if err := sess.Start(command); err != nil {
		sess.Close()
		return nil, gperr.WrapSSH("start", t.cfg.SSHHost, t.cfg.SSHPort, err)
	}

	t.logger.Verbose("remote plotter started on %s: %s", t.cfg.SSHHost, command)
	t.sess = sess
	t.stdin = stdin
	return stdin, nil
}

// Files returns the remote file store.
func (t *SSH) Files() FileStore { return t.store }

// Close ends the remote plotter and tears down the connection.
func (t *SSH) Close() error {
	var first error
	if t.sess != nil {
		if t.stdin != nil {
			t.stdin.Close()
		}
		if err := t.sess.Wait(); err != nil {
			first = err
		}
		t.sess.Close()
		t.sess = nil
		t.stdin = nil
	}
	if err := t.client.Close(); err != nil && first == nil {
		first = err
	}
	return first
}

// run executes a short command on a fresh session and returns its
// combined failure, if any.
func (t *SSH) run(command string) error {
	sess, err := t.client.NewSession()
	if err != nil {
		return err
	}
	defer sess.Close()
	if err := sess.Run(command); err != nil {
		return gperr.WrapSSH("exec", t.cfg.SSHHost, t.cfg.SSHPort, err)
	}
	return nil
}

// ── remote file store ────────────────────────────────────────────────

// sshStore materialises data files in the remote scratch directory by
// streaming bytes into `cat > file`.  Uniqueness comes from a random
// hex suffix; the pool only enforces the outstanding-file cap.
type sshStore struct {
	transport *SSH
	dir       string
	pool      *tmpfile.Pool
}

func (s *sshStore) Create() (string, io.WriteCloser, error) {
	if err := s.pool.Reserve(); err != nil {
		return "", nil, err
	}

	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		s.pool.Release(1)
		return "", nil, gperr.WrapFile("create", s.dir, err)
	}
	name := path.Join(s.dir, tmpfile.Prefix+hex.EncodeToString(suffix))

	sess, err := s.transport.client.NewSession()
	if err != nil {
		s.pool.Release(1)
		return "", nil, err
	}
	w, err := sess.StdinPipe()
	if err != nil {
		sess.Close()
		s.pool.Release(1)
		return "", nil, gperr.WrapSSH("stdin", s.transport.cfg.SSHHost, s.transport.cfg.SSHPort, err)
	}
	if err := sess.Start(fmt.Sprintf("cat > %s", shellQuote(name))); err != nil {
		sess.Close()
		s.pool.Release(1)
		return "", nil, gperr.WrapSSH("start", s.transport.cfg.SSHHost, s.transport.cfg.SSHPort, err)
	}

	return name, &remoteFile{sess: sess, w: w}, nil
}

func (s *sshStore) Remove(name string) error {
	if err := s.transport.run(fmt.Sprintf("rm -f %s", shellQuote(name))); err != nil {
		return err
	}
	s.pool.Release(1)
	return nil
}

func (s *sshStore) Available(name string) error {
	if err := s.transport.run(fmt.Sprintf("test -r %s", shellQuote(name))); err != nil {
		return gperr.WrapFile("read", name, err)
	}
	return nil
}

// remoteFile is the writer half of a `cat > file` session.  Close
// shuts the stream and waits for cat to exit, so the file is complete
// once Close returns.
type remoteFile struct {
	sess *ssh.Session
	w    io.WriteCloser
}

func (f *remoteFile) Write(p []byte) (int, error) { return f.w.Write(p) }

func (f *remoteFile) Close() error {
	if err := f.w.Close(); err != nil {
		f.sess.Close()
		return err
	}
	err := f.sess.Wait()
	f.sess.Close()
	return err
}

// shellQuote single-quotes s for POSIX sh, escaping embedded quotes.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
