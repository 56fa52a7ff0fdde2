//go:build windows

package platform

import "os"

// probeMode is the access mode used when probing for the plotter
// executable.  Windows has no execute bit, so existence suffices.
const probeMode = ModeExists

// access approximates access(2) with os.Stat.  Execute and read
// follow existence; write fails on a read-only file.
func access(path string, mode int) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	if mode&ModeWrite != 0 && fi.Mode().Perm()&0200 == 0 {
		return false
	}
	return true
}
