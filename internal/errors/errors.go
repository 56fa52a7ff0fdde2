// Package errors provides domain-specific error types for gplot.
//
// These types carry structured context (operation, path, host) that
// helps callers tell an environment problem from a resource problem,
// while every failure still surfaces as an ordinary error value
// raised synchronously from the operation that detected it.
package errors

import (
	"errors"
	"fmt"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	// ErrClosed is returned by any operation on a session that never
	// became valid or has been closed.
	ErrClosed = errors.New("gnuplot session is not valid")

	// ErrDisplayNotSet reports a missing DISPLAY variable where a
	// screen terminal needs one.
	ErrDisplayNotSet = errors.New("can't find DISPLAY variable")

	// ErrPathNotSet reports an empty PATH during the plotter probe.
	ErrPathNotSet = errors.New("Path is not set")

	// ErrQuotaExceeded reports that the temp-file cap was reached.
	ErrQuotaExceeded = errors.New("maximum number of temporary files reached")

	// ErrEmptyData rejects a plot of a zero-length series.
	ErrEmptyData = errors.New("data series is empty")

	// ErrLengthMismatch rejects multi-series plots of unequal lengths.
	ErrLengthMismatch = errors.New("data series lengths differ")
)

// ── Structured error types ───────────────────────────────────────────

// SpawnError represents a failure to launch the plotter process.
type SpawnError struct {
	Path string // executable (or remote command) that failed to start
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// FileError represents a failed operation on a data file.
type FileError struct {
	Op   string // "create", "write", "remove", "read"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// SSHError represents a remote-plotter failure with host context.
type SSHError struct {
	Op   string // "auth", "hostkey", "dial", "handshake", "session"
	Host string
	Port int
	Err  error
}

func (e *SSHError) Error() string {
	return fmt.Sprintf("ssh %s %s:%d: %v", e.Op, e.Host, e.Port, e.Err)
}

func (e *SSHError) Unwrap() error { return e.Err }

// ── Constructors ─────────────────────────────────────────────────────

// WrapFile creates a FileError.
func WrapFile(op, path string, err error) *FileError {
	return &FileError{Op: op, Path: path, Err: err}
}

// WrapSSH creates an SSHError.
func WrapSSH(op, host string, port int, err error) *SSHError {
	return &SSHError{Op: op, Host: host, Port: port, Err: err}
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use gplot/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

// Join is [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }
