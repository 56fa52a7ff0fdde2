package tmpfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	gperr "gplot/internal/errors"
)

func TestCreate_NamesAndCounter(t *testing.T) {
	dir := t.TempDir()
	p := NewPool(dir, 8)

	f, err := p.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()

	if got := filepath.Dir(f.Name()); got != dir {
		t.Errorf("file created in %q, want %q", got, dir)
	}
	if base := filepath.Base(f.Name()); !strings.HasPrefix(base, Prefix) {
		t.Errorf("basename %q missing prefix %q", base, Prefix)
	}
	if p.Outstanding() != 1 {
		t.Errorf("Outstanding = %d, want 1", p.Outstanding())
	}

	if err := os.Remove(f.Name()); err != nil {
		t.Fatal(err)
	}
	p.Release(1)
	if p.Outstanding() != 0 {
		t.Errorf("Outstanding after release = %d, want 0", p.Outstanding())
	}
}

func TestCreate_QuotaBoundary(t *testing.T) {
	// With a cap of 4, exactly 3 files may be outstanding; the 4th
	// allocation attempt must fail and leave the counter untouched.
	p := NewPool(t.TempDir(), 4)

	var files []*os.File
	for i := 0; i < 3; i++ {
		f, err := p.Create()
		if err != nil {
			t.Fatalf("allocation %d: %v", i+1, err)
		}
		files = append(files, f)
	}

	if _, err := p.Create(); !gperr.Is(err, gperr.ErrQuotaExceeded) {
		t.Errorf("4th allocation: want ErrQuotaExceeded, got %v", err)
	}
	if p.Outstanding() != 3 {
		t.Errorf("Outstanding = %d, want 3", p.Outstanding())
	}

	for _, f := range files {
		f.Close()
		os.Remove(f.Name())
	}
	p.Release(len(files))
	if p.Outstanding() != 0 {
		t.Errorf("Outstanding after cleanup = %d, want 0", p.Outstanding())
	}

	// Slots freed by Release are allocatable again.
	f, err := p.Create()
	if err != nil {
		t.Fatalf("post-release allocation: %v", err)
	}
	f.Close()
	os.Remove(f.Name())
	p.Release(1)
}

func TestCreate_BadDirReleasesReservation(t *testing.T) {
	p := NewPool(filepath.Join(t.TempDir(), "does-not-exist"), 8)

	_, err := p.Create()
	if err == nil {
		t.Fatal("expected create failure")
	}
	var fe *gperr.FileError
	if !gperr.As(err, &fe) {
		t.Errorf("want *FileError, got %v", err)
	}
	if p.Outstanding() != 0 {
		t.Errorf("failed create leaked a reservation: Outstanding = %d", p.Outstanding())
	}
}

func TestDefaultPoolIsShared(t *testing.T) {
	if Default() != Default() {
		t.Error("Default should return the same pool on every call")
	}
}
