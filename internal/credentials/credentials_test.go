package credentials

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/ssh"
	"gopkg.in/yaml.v3"
)

func TestSecretNeverRendersItself(t *testing.T) {
	secret := Secret("hunter2")

	if got := fmt.Sprintf("%s", secret); got != "********" {
		t.Errorf("expected masked string rendering, got %q", got)
	}
	if got := fmt.Sprintf("%v", secret); got != "********" {
		t.Errorf("expected masked value rendering, got %q", got)
	}
	if got := fmt.Sprintf("%#v", secret); strings.Contains(got, "hunter2") {
		t.Errorf("go-syntax rendering leaked the secret: %q", got)
	}

	out, err := yaml.Marshal(secret)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if strings.Contains(string(out), "hunter2") {
		t.Errorf("yaml rendering leaked the secret: %q", out)
	}

	if secret.Plain() != "hunter2" {
		t.Error("Plain must return the real value")
	}
}

// testKeyPEM generates a valid OpenSSH private key for store tests.
func testKeyPEM(t *testing.T) string {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	block, err := ssh.MarshalPrivateKey(priv, "")
	if err != nil {
		t.Fatal(err)
	}
	return string(pem.EncodeToMemory(block))
}

func marshalEntries(t *testing.T, entries []map[string]any) []byte {
	t.Helper()
	data, err := yaml.Marshal(entries)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestParseFileStore(t *testing.T) {
	key := testKeyPEM(t)
	keyFile := filepath.Join(t.TempDir(), "id_ed25519")
	if err := os.WriteFile(keyFile, []byte(key), 0o600); err != nil {
		t.Fatal(err)
	}

	data := marshalEntries(t, []map[string]any{
		{"id": "web-login", "username": "alice", "password": "s3cr3t"},
		{"id": "deploy-key", "username": "deploy", "private_key": key},
		{"id": "ops-key", "username": "ops", "private_key_file": keyFile},
		{"id": "token-only", "username": "bot"},
	})

	store, err := parseFileStore(data, "credentials.yml", 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cred, err := store.Find("web-login")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	password, ok := cred.(Password)
	if !ok {
		t.Fatalf("expected a password credential, got %T", cred)
	}
	if password.Username() != "alice" || password.Password.Plain() != "s3cr3t" {
		t.Errorf("unexpected password credential: %+v", password.Username())
	}

	for _, id := range []string{"deploy-key", "ops-key"} {
		cred, err := store.Find(id)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		privateKey, ok := cred.(PrivateKey)
		if !ok {
			t.Fatalf("expected a private key credential for %q, got %T", id, cred)
		}
		if privateKey.Key.Plain() != key {
			t.Errorf("key material mismatch for %q", id)
		}
	}

	// An entry with no usable secret material is skipped, not an error.
	if cred, err := store.Find("token-only"); cred != nil || err != nil {
		t.Errorf("expected a silent miss for an unsupported shape, got %v, %v", cred, err)
	}
}

func TestParseFileStoreRejections(t *testing.T) {
	key := testKeyPEM(t)

	tests := []struct {
		name    string
		entries []map[string]any
	}{
		{"duplicate identifier", []map[string]any{
			{"id": "dup", "username": "a", "password": "x"},
			{"id": "dup", "username": "b", "password": "y"},
		}},
		{"missing username", []map[string]any{
			{"id": "nouser", "password": "x"},
		}},
		{"mutually exclusive secrets", []map[string]any{
			{"id": "both", "username": "a", "password": "x", "private_key": key},
		}},
		{"corrupt key material", []map[string]any{
			{"id": "badkey", "username": "a", "private_key": "not a key"},
		}},
		{"unknown field", []map[string]any{
			{"id": "typo", "username": "a", "passwrod": "x"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseFileStore(marshalEntries(t, tt.entries), "credentials.yml", 0); err == nil {
				t.Error("expected a parse error")
			}
		})
	}
}

func TestFileStoreFindMisses(t *testing.T) {
	store, err := parseFileStore(nil, "credentials.yml", 0)
	if err != nil {
		t.Fatalf("expected no error on an empty file, got %v", err)
	}
	for _, id := range []string{"", "  ", "unknown"} {
		if cred, err := store.Find(id); cred != nil || err != nil {
			t.Errorf("Find(%q): expected (nil, nil), got %v, %v", id, cred, err)
		}
	}
}

func TestLoadFileStoreMissingFile(t *testing.T) {
	if _, err := LoadFileStore(filepath.Join(t.TempDir(), "absent.yml"), 0); err == nil {
		t.Error("expected an error for a missing credentials file")
	}
}
