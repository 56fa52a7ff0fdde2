// Package tmpfile allocates the uniquely named scratch files that
// back in-memory data series, enforcing a hard cap on how many may be
// outstanding at once.  The counter is atomic, so two sessions
// sharing one pool cannot race past the cap.
package tmpfile

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"gplot/config"
	gperr "gplot/internal/errors"
)

// Prefix is the basename prefix of every scratch file.
const Prefix = "gnuploti"

// pattern is the os.CreateTemp pattern: Prefix plus a random suffix.
const pattern = Prefix + "*"

// Pool hands out scratch files in a fixed directory, at most max-1 of
// them outstanding at any moment.
type Pool struct {
	dir         string
	max         int32
	outstanding atomic.Int32
}

// NewPool returns a pool writing into dir with the given cap.
func NewPool(dir string, max int) *Pool {
	return &Pool{dir: dir, max: int32(max)}
}

var (
	defaultOnce sync.Once
	defaultPool *Pool
)

// Default returns the process-wide pool built from the platform
// defaults.  Sessions that don't override the temp-file settings all
// share it, so the cap holds across sessions.
func Default() *Pool {
	defaultOnce.Do(func() {
		defaultPool = NewPool(config.DefaultTempDir(), config.DefaultMaxTempFiles())
	})
	return defaultPool
}

// Reserve claims one slot toward the cap.  It fails once max-1 files
// are outstanding, leaving the final slot unreachable (a quirk kept
// from the cap's origin as an equality check against max-1).
func (p *Pool) Reserve() error {
	for {
		n := p.outstanding.Load()
		if n >= p.max-1 {
			return fmt.Errorf("%w (%d): cannot open more files", gperr.ErrQuotaExceeded, p.max)
		}
		if p.outstanding.CompareAndSwap(n, n+1) {
			return nil
		}
	}
}

// Release returns n slots to the pool after files have been removed.
func (p *Pool) Release(n int) {
	p.outstanding.Add(int32(-n))
}

// Create reserves a slot and opens a fresh uniquely named file in the
// pool's directory.  On open failure the reservation is released.
func (p *Pool) Create() (*os.File, error) {
	if err := p.Reserve(); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(p.dir, pattern)
	if err != nil {
		p.Release(1)
		return nil, gperr.WrapFile("create", p.dir, err)
	}
	return f, nil
}

// Outstanding reports how many reserved files have not been released.
func (p *Pool) Outstanding() int {
	return int(p.outstanding.Load())
}

// Dir returns the pool's scratch directory.
func (p *Pool) Dir() string { return p.dir }
