package transport

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gplot/config"
	gperr "gplot/internal/errors"
	"gplot/util"
)

func testLogger() *util.Logger {
	return util.NewLogger(0)
}

func TestBuild_Dispatch(t *testing.T) {
	cfg := config.Default()
	if _, ok := Build(cfg, testLogger()).(*Local); !ok {
		t.Error("default config should build a local transport")
	}

	cfg.SSHEnabled = true
	cfg.SSHHost = "render.example.com"
	if _, ok := Build(cfg, testLogger()).(*SSH); !ok {
		t.Error("ssh config should build an ssh transport")
	}
}

func TestLocalStore_CreateRemove(t *testing.T) {
	cfg := config.Default()
	cfg.TempDir = t.TempDir()
	cfg.MaxTempFiles = 8

	store := NewLocal(cfg, testLogger()).Files()

	name, w, err := store.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := w.Write([]byte("1 2\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := store.Available(name); err != nil {
		t.Errorf("Available(%q): %v", name, err)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "1 2\n" {
		t.Errorf("file content = %q, want %q", data, "1 2\n")
	}

	if err := store.Remove(name); err != nil {
		t.Errorf("Remove: %v", err)
	}
	if _, err := os.Stat(name); !os.IsNotExist(err) {
		t.Errorf("file still present after Remove: %v", err)
	}
}

func TestLocalStore_AvailableMissing(t *testing.T) {
	cfg := config.Default()
	cfg.TempDir = t.TempDir()
	store := NewLocal(cfg, testLogger()).Files()

	err := store.Available(filepath.Join(cfg.TempDir, "nope"))
	var fe *gperr.FileError
	if !gperr.As(err, &fe) {
		t.Errorf("want *FileError for a missing file, got %v", err)
	}
}

func TestLocal_StartAndClose(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	// Stand-in plotter: drains stdin and exits when the pipe closes,
	// which is exactly the lifecycle gnuplot follows.
	dir := t.TempDir()
	script := filepath.Join(dir, "fakeplot")
	if err := os.WriteFile(script, []byte("#!/bin/sh\ncat > /dev/null\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	t.Setenv("DISPLAY", ":0")

	cfg := config.Default()
	cfg.PlotterDir = dir
	cfg.PlotterName = "fakeplot"
	cfg.TempDir = t.TempDir()

	tr := NewLocal(cfg, testLogger())
	pipe, err := tr.Start(context.Background())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := pipe.Write([]byte("set grid\n")); err != nil {
		t.Errorf("pipe write: %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}

	// Close is idempotent once the child is reaped.
	if err := tr.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestLocal_StartMissingDisplay(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("DISPLAY check only applies on linux")
	}
	t.Setenv("DISPLAY", "")

	cfg := config.Default()
	tr := NewLocal(cfg, testLogger())
	if _, err := tr.Start(context.Background()); !gperr.Is(err, gperr.ErrDisplayNotSet) {
		t.Errorf("want ErrDisplayNotSet, got %v", err)
	}
}

func TestLocal_StartMissingExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX environment")
	}
	t.Setenv("DISPLAY", ":0")
	t.Setenv("PATH", t.TempDir())

	cfg := config.Default()
	cfg.PlotterDir = t.TempDir()
	cfg.PlotterName = "no-such-plotter"

	if _, err := NewLocal(cfg, testLogger()).Start(context.Background()); err == nil {
		t.Error("expected an error for a missing executable")
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/tmp/gnuploti1", "'/tmp/gnuploti1'"},
		{"/tmp/it's", `'/tmp/it'\''s'`},
	}
	for _, tt := range tests {
		if got := shellQuote(tt.in); got != tt.want {
			t.Errorf("shellQuote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
