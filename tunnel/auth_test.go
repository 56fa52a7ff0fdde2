package tunnel

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/ssh"
)

// writeTestKey generates an unencrypted ed25519 private key on disk
// and returns its path.
func writeTestKey(t *testing.T) string {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	block, err := ssh.MarshalPrivateKey(priv, "")
	if err != nil {
		t.Fatalf("marshalling key: %v", err)
	}

	path := filepath.Join(t.TempDir(), "id_ed25519")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := pem.Encode(f, block); err != nil {
		t.Fatalf("writing key: %v", err)
	}
	return path
}

func TestPublicKeyAuth(t *testing.T) {
	keyPath := writeTestKey(t)

	m, err := publicKeyAuth(keyPath)
	if err != nil {
		t.Fatalf("publicKeyAuth: %v", err)
	}
	if m == nil {
		t.Error("expected a non-nil auth method")
	}
}

func TestPublicKeyAuth_MissingFile(t *testing.T) {
	if _, err := publicKeyAuth(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing key file")
	}
}

func TestPublicKeyAuth_GarbageKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad")
	if err := os.WriteFile(path, []byte("not a key"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := publicKeyAuth(path); err == nil {
		t.Error("expected parse error for garbage key")
	}
}

func TestBuildAuthMethods_ExplicitKey(t *testing.T) {
	cfg := &Config{KeyPath: writeTestKey(t)}

	methods, err := buildAuthMethods(cfg)
	if err != nil {
		t.Fatalf("buildAuthMethods: %v", err)
	}
	if len(methods) != 1 {
		t.Errorf("got %d methods, want 1", len(methods))
	}
}

func TestBuildAuthMethods_AgentWithoutSocket(t *testing.T) {
	t.Setenv("SSH_AUTH_SOCK", "")

	if _, err := buildAuthMethods(&Config{UseAgent: true}); err == nil {
		t.Error("expected error when agent socket is unavailable")
	}
}

func TestHostKeyCallback_Insecure(t *testing.T) {
	cb, err := hostKeyCallback(&Config{StrictHostKey: false})
	if err != nil {
		t.Fatalf("hostKeyCallback: %v", err)
	}
	if cb == nil {
		t.Error("expected a callback")
	}
}

func TestHostKeyCallback_StrictMissingFile(t *testing.T) {
	cfg := &Config{
		StrictHostKey: true,
		KnownHosts:    filepath.Join(t.TempDir(), "known_hosts"),
	}
	if _, err := hostKeyCallback(cfg); err == nil {
		t.Error("expected error for missing known_hosts file")
	}
}
