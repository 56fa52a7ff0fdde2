// Package config defines the runtime configuration for gplot and
// provides helpers for parsing SSH specifications and axis ranges.
package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Config holds every tuneable for a single gnuplot session.
type Config struct {
	// ── Plotter ──────────────────────────────────────────────────────
	PlotterDir  string // directory expected to contain the executable
	PlotterName string // executable base name (gnuplot / pgnuplot.exe)
	Terminal    string // screen terminal issued by ShowOnScreen
	Style       string // initial plot style

	// ── Temp files ───────────────────────────────────────────────────
	TempDir      string
	MaxTempFiles int // hard cap on simultaneously outstanding files

	// RetainTempFiles leaves data files on disk when the session is
	// closed, so the plotter can keep reading them after teardown.
	// The default (false) removes every owned file on Close.
	RetainTempFiles bool

	// ── Remote plotter (SSH) ─────────────────────────────────────────
	SSHSpec        string // raw [user@]host[:port] from -S
	SSHEnabled     bool
	SSHUser        string
	SSHHost        string
	SSHPort        int
	SSHKeyPath     string
	SSHPassword    bool // true → prompt interactively
	UseSSHAgent    bool
	StrictHostKey  bool
	KnownHostsPath string
	ConnTimeout    time.Duration
	RemoteCommand  string // plotter command on the remote host
	RemoteTempDir  string // scratch directory on the remote host

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
}

// ── SSH-spec parser ──────────────────────────────────────────────────

// sshRe matches [user@]host[:port].
var sshRe = regexp.MustCompile(`^(?:([^@]+)@)?([^:]+)(?::(\d+))?$`)

// ParseSSHSpec extracts user, host, and port from a string such as
// "plot@render.example.com:2222".  Port defaults to 22.
func ParseSSHSpec(spec string) (user, host string, port int, err error) {
	m := sshRe.FindStringSubmatch(spec)
	if m == nil {
		return "", "", 0, fmt.Errorf("invalid ssh spec %q – expected [user@]host[:port]", spec)
	}
	user = m[1]
	host = m[2]
	port = DefaultSSHPort
	if m[3] != "" {
		port, err = strconv.Atoi(m[3])
		if err != nil || port < 1 || port > 65535 {
			return "", "", 0, fmt.Errorf("invalid ssh port %q", m[3])
		}
	}
	if host == "" {
		return "", "", 0, fmt.Errorf("ssh host is required")
	}
	return user, host, port, nil
}

// ── Range parser ─────────────────────────────────────────────────────

// ParseRange accepts "from:to" with decimal endpoints, e.g. "-1:1.5".
func ParseRange(spec string) (from, to float64, err error) {
	i := strings.LastIndex(spec, ":")
	if i <= 0 || i == len(spec)-1 {
		return 0, 0, fmt.Errorf("invalid range %q – expected from:to", spec)
	}
	from, err = strconv.ParseFloat(spec[:i], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range start %q", spec[:i])
	}
	to, err = strconv.ParseFloat(spec[i+1:], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range end %q", spec[i+1:])
	}
	return from, to, nil
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.PlotterName == "" {
		return fmt.Errorf("plotter executable name is required")
	}
	if c.MaxTempFiles < 2 {
		return fmt.Errorf("temp-file cap %d is too small (need at least 2)", c.MaxTempFiles)
	}

	if c.SSHEnabled {
		if c.SSHHost == "" {
			return fmt.Errorf("ssh host is required")
		}
		if c.SSHPort < 1 || c.SSHPort > 65535 {
			return fmt.Errorf("ssh port %d out of range 1-65535", c.SSHPort)
		}
	} else if c.SSHKeyPath != "" || c.SSHPassword || c.UseSSHAgent {
		return fmt.Errorf("ssh auth flags require -S [user@]host[:port]")
	}

	return nil
}
