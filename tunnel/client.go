// Package tunnel establishes the SSH connection used to drive a
// plotter on a remote host, backed by golang.org/x/crypto/ssh.
package tunnel

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"

	gperr "gplot/internal/errors"
	"gplot/util"
)

// Config holds everything needed to reach an SSH host.
type Config struct {
	User          string
	Host          string
	Port          int
	KeyPath       string
	PromptPass    bool
	UseAgent      bool
	StrictHostKey bool
	KnownHosts    string
	ConnTimeout   time.Duration
}

// Client wraps an ssh.Client whose sessions carry plotter commands
// and data files.  Connect is idempotent; the first caller pays for
// the handshake.
type Client struct {
	config *Config
	logger *util.Logger

	mu     sync.Mutex
	client *ssh.Client
}

// NewClient creates a client that is ready to Connect.
func NewClient(cfg *Config, logger *util.Logger) *Client {
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	if cfg.ConnTimeout == 0 {
		cfg.ConnTimeout = 30 * time.Second
	}
	return &Client{config: cfg, logger: logger}
}

// Connect dials the SSH host and completes the handshake.  Calling
// Connect on an already-connected client is a no-op.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return nil
	}

	authMethods, err := buildAuthMethods(c.config)
	if err != nil {
		return gperr.WrapSSH("auth", c.config.Host, c.config.Port, err)
	}

	hkCallback, err := hostKeyCallback(c.config)
	if err != nil {
		return gperr.WrapSSH("hostkey", c.config.Host, c.config.Port, err)
	}

	sshCfg := &ssh.ClientConfig{
		User:            c.config.User,
		Auth:            authMethods,
		HostKeyCallback: hkCallback,
		Timeout:         c.config.ConnTimeout,
	}

	addr := fmt.Sprintf("%s:%d", c.config.Host, c.config.Port)
	c.logger.Debug("ssh: dialing %s as %s", addr, c.config.User)

	// Context-aware TCP dial so callers can cancel.
	var dialer net.Dialer
	tcpConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return gperr.WrapSSH("dial", c.config.Host, c.config.Port, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(tcpConn, addr, sshCfg)
	if err != nil {
		tcpConn.Close()
		return gperr.WrapSSH("handshake", c.config.Host, c.config.Port, err)
	}

	c.client = ssh.NewClient(sshConn, chans, reqs)
	c.logger.Verbose("ssh: connected to %s", addr)
	return nil
}

// NewSession opens a fresh SSH session on the connected client.
func (c *Client) NewSession() (*ssh.Session, error) {
	c.mu.Lock()
	client := c.client
	c.mu.Unlock()

	if client == nil {
		return nil, gperr.WrapSSH("session", c.config.Host, c.config.Port,
			gperr.New("not connected"))
	}
	sess, err := client.NewSession()
	if err != nil {
		return nil, gperr.WrapSSH("session", c.config.Host, c.config.Port, err)
	}
	return sess, nil
}

// Close tears down the SSH connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}
