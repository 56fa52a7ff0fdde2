package config

import (
	"runtime"
	"time"
)

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags, config file parsing, and environment variable
// loading.  The per-OS values mirror what gnuplot installations look
// like on each platform.

const (
	// DefaultStyle is the plot style used until SetStyle changes it.
	DefaultStyle = "points"

	// DefaultSSHPort is the standard SSH port.
	DefaultSSHPort = 22

	// DefaultConnTimeout is the SSH connection timeout.
	DefaultConnTimeout = 30 * time.Second

	// DefaultRemoteTempDir is where data files are materialised on a
	// remote plotter host.
	DefaultRemoteTempDir = "/tmp"

	// maxTempFilesUnix is the temp-file cap on POSIX systems.
	maxTempFilesUnix = 64

	// maxTempFilesWindows is the temp-file cap on Windows, where the
	// unique-name primitive only yields 26 distinct suffixes.
	maxTempFilesWindows = 27
)

// DefaultPlotterName returns the plotter executable name for this OS.
func DefaultPlotterName() string {
	if runtime.GOOS == "windows" {
		return "pgnuplot.exe"
	}
	return "gnuplot"
}

// DefaultPlotterDir returns the directory probed before PATH.
func DefaultPlotterDir() string {
	if runtime.GOOS == "windows" {
		return "C:/program files/gnuplot/bin"
	}
	return "/usr/local/bin"
}

// DefaultTerminal returns the screen terminal for this OS
// (windows / x11 / aqua).
func DefaultTerminal() string {
	switch runtime.GOOS {
	case "windows":
		return "windows"
	case "darwin":
		return "aqua"
	default:
		return "x11"
	}
}

// DefaultTempDir returns the scratch directory for data files:
// /tmp on POSIX, the working directory on Windows.
func DefaultTempDir() string {
	if runtime.GOOS == "windows" {
		return "."
	}
	return "/tmp"
}

// DefaultMaxTempFiles returns the per-OS temp-file cap.
func DefaultMaxTempFiles() int {
	if runtime.GOOS == "windows" {
		return maxTempFilesWindows
	}
	return maxTempFilesUnix
}

// Default returns a Config populated with the platform defaults.
func Default() *Config {
	return &Config{
		PlotterDir:    DefaultPlotterDir(),
		PlotterName:   DefaultPlotterName(),
		Terminal:      DefaultTerminal(),
		Style:         DefaultStyle,
		TempDir:       DefaultTempDir(),
		MaxTempFiles:  DefaultMaxTempFiles(),
		SSHPort:       DefaultSSHPort,
		ConnTimeout:   DefaultConnTimeout,
		RemoteTempDir: DefaultRemoteTempDir,
	}
}
