package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	gperr "gplot/internal/errors"
)

// writeExecutable drops a fake plotter binary into dir.
func writeExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

// ── FileExists ───────────────────────────────────────────────────────

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	readable := filepath.Join(dir, "data")
	if err := os.WriteFile(readable, []byte("1 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		mode    int
		want    bool
		wantErr bool
	}{
		{"exists", readable, ModeExists, true, false},
		{"readable", readable, ModeRead, true, false},
		{"read+write", readable, ModeRead | ModeWrite, true, false},
		{"missing", filepath.Join(dir, "nope"), ModeExists, false, false},
		{"mode too large", readable, 8, false, true},
		{"mode negative", readable, -1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FileExists(tt.path, tt.mode)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr = %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("FileExists(%q, %d) = %v, want %v", tt.path, tt.mode, got, tt.want)
			}
		})
	}
}

func TestFileExists_ExecuteBit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no execute bit on windows")
	}

	dir := t.TempDir()
	exe := writeExecutable(t, dir, "plotter")
	plain := filepath.Join(dir, "plain")
	if err := os.WriteFile(plain, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if ok, _ := FileExists(exe, ModeExecute); !ok {
		t.Error("0755 file should pass the execute check")
	}
	if ok, _ := FileExists(plain, ModeExecute); ok {
		t.Error("0644 file should fail the execute check")
	}
}

// ── FileAvailable ────────────────────────────────────────────────────

func TestFileAvailable(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "data")
	if err := os.WriteFile(good, []byte("1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := FileAvailable(good); err != nil {
		t.Errorf("readable file: %v", err)
	}

	err := FileAvailable(filepath.Join(dir, "missing"))
	if err == nil {
		t.Fatal("missing file should fail")
	}
	if !gperr.Is(err, os.ErrNotExist) {
		t.Errorf("missing file should wrap os.ErrNotExist, got %v", err)
	}

	if runtime.GOOS != "windows" && os.Getuid() != 0 {
		sealed := filepath.Join(dir, "sealed")
		if err := os.WriteFile(sealed, []byte("1\n"), 0o200); err != nil {
			t.Fatal(err)
		}
		err := FileAvailable(sealed)
		if !gperr.Is(err, os.ErrPermission) {
			t.Errorf("unreadable file should wrap os.ErrPermission, got %v", err)
		}
	}
}

// ── Locate ───────────────────────────────────────────────────────────

func TestLocate_ConfiguredDir(t *testing.T) {
	dir := t.TempDir()
	writeExecutable(t, dir, "gnuplot")

	got, err := Locate(dir, "gnuplot")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != dir {
		t.Errorf("Locate = %q, want configured dir %q", got, dir)
	}
}

func TestLocate_FallsBackToPath(t *testing.T) {
	pathDir := t.TempDir()
	writeExecutable(t, pathDir, "gnuplot")
	t.Setenv("PATH", t.TempDir()+string(os.PathListSeparator)+pathDir)

	got, err := Locate("/nonexistent-dir", "gnuplot")
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != pathDir {
		t.Errorf("Locate = %q, want PATH dir %q", got, pathDir)
	}
}

func TestLocate_EmptyPath(t *testing.T) {
	t.Setenv("PATH", "")

	_, err := Locate("/nonexistent-dir", "gnuplot")
	if !gperr.Is(err, gperr.ErrPathNotSet) {
		t.Errorf("want ErrPathNotSet, got %v", err)
	}
}

func TestLocate_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := Locate("/nonexistent-dir", "gnuplot")
	if err == nil {
		t.Fatal("expected an error")
	}
}

// ── CheckDisplay ─────────────────────────────────────────────────────

func TestCheckDisplay(t *testing.T) {
	t.Setenv("DISPLAY", ":0")
	if err := CheckDisplay(); err != nil {
		t.Errorf("DISPLAY set: %v", err)
	}

	t.Setenv("DISPLAY", "")
	if err := CheckDisplay(); !gperr.Is(err, gperr.ErrDisplayNotSet) {
		t.Errorf("want ErrDisplayNotSet, got %v", err)
	}
}
