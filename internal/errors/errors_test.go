package errors

import (
	"fmt"
	"testing"
)

func TestFileError(t *testing.T) {
	base := New("disk full")
	err := WrapFile("write", "/tmp/gnuplotiABC123", base)

	if !Is(err, base) {
		t.Error("FileError should unwrap to its cause")
	}

	var fe *FileError
	if !As(err, &fe) {
		t.Fatal("As should match *FileError")
	}
	if fe.Op != "write" || fe.Path != "/tmp/gnuplotiABC123" {
		t.Errorf("unexpected fields: %+v", fe)
	}
}

func TestSSHError(t *testing.T) {
	base := New("connection refused")
	err := WrapSSH("dial", "render.example.com", 22, base)

	want := "ssh dial render.example.com:22: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !Is(err, base) {
		t.Error("SSHError should unwrap to its cause")
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("plot_xy: %w", ErrLengthMismatch)
	if !Is(wrapped, ErrLengthMismatch) {
		t.Error("wrapped sentinel should still match")
	}

	quota := fmt.Errorf("%w (64)", ErrQuotaExceeded)
	if !Is(quota, ErrQuotaExceeded) {
		t.Error("quota sentinel should still match")
	}
}
