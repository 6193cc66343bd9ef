package guest

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/ssh"
)

// writeTestKey writes an ed25519 private key in OpenSSH format and returns its path.
func writeTestKey(t *testing.T) string {
	t.Helper()

	_, privKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate ed25519 key: %v", err)
	}
	pemBlock, err := ssh.MarshalPrivateKey(privKey, "test key")
	if err != nil {
		t.Fatalf("marshal private key: %v", err)
	}

	path := filepath.Join(t.TempDir(), "insecure_private_key")
	if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0600); err != nil {
		t.Fatalf("write key: %v", err)
	}
	return path
}

func TestEndpointAddress(t *testing.T) {
	e := Endpoint{Host: "127.0.0.1", Port: 2800}
	if got := e.Address(); got != "127.0.0.1:2800" {
		t.Errorf("Address() = %q", got)
	}
}

func TestEndpointCommand(t *testing.T) {
	e := Endpoint{Host: "127.0.0.1", Port: 2800, User: "vagrant", KeyFile: "/home/u/.bakerx/insecure_private_key"}
	got := e.Command()

	for _, want := range []string{
		`-i "/home/u/.bakerx/insecure_private_key"`,
		"-p 2800",
		"-o StrictHostKeyChecking=no",
		"-o UserKnownHostsFile=/dev/null",
		"vagrant@127.0.0.1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Command() = %q, missing %q", got, want)
		}
	}
}

func TestClientConfig(t *testing.T) {
	e := Endpoint{Host: "127.0.0.1", Port: 2800, User: "vagrant", KeyFile: writeTestKey(t)}

	cfg, err := e.clientConfig()
	if err != nil {
		t.Fatalf("clientConfig() error = %v", err)
	}
	if cfg.User != "vagrant" {
		t.Errorf("User = %q, want vagrant", cfg.User)
	}
	if len(cfg.Auth) != 1 {
		t.Errorf("Auth methods = %d, want 1", len(cfg.Auth))
	}
	if cfg.HostKeyCallback == nil {
		t.Error("HostKeyCallback must be set")
	}
}

func TestLoadSignerMissing(t *testing.T) {
	_, err := loadSigner(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("loadSigner() should fail for a missing key")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %q, should mention 'not found'", err)
	}
}

func TestLoadSignerInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage")
	if err := os.WriteFile(path, []byte("not a key"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := loadSigner(path); err == nil {
		t.Fatal("loadSigner() should fail for an invalid key")
	}
}

func TestRunWithoutKeyFails(t *testing.T) {
	r := NewSSHRunner(Endpoint{Host: "127.0.0.1", Port: 1, User: "vagrant", KeyFile: filepath.Join(t.TempDir(), "missing")}, nil)
	if _, err := r.Run(testContext(t), "true"); err == nil {
		t.Fatal("Run() should fail without a key")
	}
}
