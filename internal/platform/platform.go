// Package platform isolates the OS-dependent pieces of driving a
// plotter: the access(2)-style permission check, the executable
// probe, and the DISPLAY requirement.  Everything above this package
// is platform-agnostic.
package platform

import (
	"fmt"
	"os"
	"path/filepath"

	gperr "gplot/internal/errors"
)

// Access-check modes, combinable as a bitmask (matching access(2)).
const (
	ModeExists  = 0
	ModeExecute = 1
	ModeWrite   = 2
	ModeRead    = 4
)

// FileExists reports whether path satisfies the given access mode.
// mode must be in 0..7; anything else is a caller bug and yields an
// error rather than a check result.
func FileExists(path string, mode int) (bool, error) {
	if mode < ModeExists || mode > ModeExecute|ModeWrite|ModeRead {
		return false, fmt.Errorf("access mode %d out of range 0..7", mode)
	}
	return access(path, mode), nil
}

// FileAvailable verifies that a file referenced by a plot command can
// actually be read by the plotter, with distinct failures for a
// missing file and a permission problem.
func FileAvailable(path string) error {
	if ok, err := FileExists(path, ModeExists); err != nil {
		return err
	} else if !ok {
		return gperr.WrapFile("read", path, os.ErrNotExist)
	}
	if ok, err := FileExists(path, ModeRead); err != nil {
		return err
	} else if !ok {
		return gperr.WrapFile("read", path, os.ErrPermission)
	}
	return nil
}

// Locate finds the plotter executable.  The configured directory is
// probed first; on a miss every entry of PATH is tried in order.  The
// returned directory is the one that contained the match, so callers
// can record it for subsequent spawns.
func Locate(dir, name string) (string, error) {
	if ok, _ := FileExists(filepath.Join(dir, name), probeMode); ok {
		return dir, nil
	}

	path := os.Getenv("PATH")
	if path == "" {
		return "", gperr.ErrPathNotSet
	}

	for _, d := range filepath.SplitList(path) {
		if d == "" {
			continue
		}
		if ok, _ := FileExists(filepath.Join(d, name), probeMode); ok {
			return d, nil
		}
	}

	return "", fmt.Errorf("can't find %s neither in PATH %q nor in %q", name, path, dir)
}

// CheckDisplay verifies that DISPLAY is set.  Callers decide when the
// check applies (X11 terminals, local sessions on Linux).
func CheckDisplay() error {
	if os.Getenv("DISPLAY") == "" {
		return gperr.ErrDisplayNotSet
	}
	return nil
}
