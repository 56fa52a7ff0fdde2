//go:build !windows

package platform

import "golang.org/x/sys/unix"

// probeMode is the access mode used when probing for the plotter
// executable: existence plus execute permission.
const probeMode = ModeExecute

// access checks path against mode with access(2).  The ModeExists /
// ModeExecute / ModeWrite / ModeRead bits coincide with F_OK, X_OK,
// W_OK and R_OK, so the bitmask passes straight through.
func access(path string, mode int) bool {
	return unix.Access(path, uint32(mode)) == nil
}
