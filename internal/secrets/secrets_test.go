package secrets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/frontsea320/Reinf-t2i/internal/secrets"
)

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	content := "T2I_TEST_FROM_DOTENV=loaded\nT2I_TEST_PRESET=from-file\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
	t.Setenv("T2I_TEST_PRESET", "from-env")
	t.Setenv("T2I_TEST_FROM_DOTENV", "")
	os.Unsetenv("T2I_TEST_FROM_DOTENV")

	secrets.LoadDotenv(dir)

	if got := os.Getenv("T2I_TEST_FROM_DOTENV"); got != "loaded" {
		t.Errorf("T2I_TEST_FROM_DOTENV: got %q, want %q", got, "loaded")
	}
	// Real environment wins over file values.
	if got := os.Getenv("T2I_TEST_PRESET"); got != "from-env" {
		t.Errorf("T2I_TEST_PRESET: got %q, want %q", got, "from-env")
	}
}

func TestLoadDotenvMissingFile(t *testing.T) {
	// Must not panic or alter anything.
	secrets.LoadDotenv(t.TempDir())
}

func TestHasCredential(t *testing.T) {
	t.Setenv(secrets.CredentialVar, "")
	os.Unsetenv(secrets.CredentialVar)
	if secrets.HasCredential() {
		t.Error("HasCredential true with variable unset")
	}
	t.Setenv(secrets.CredentialVar, "sk-test")
	if !secrets.HasCredential() {
		t.Error("HasCredential false with variable set")
	}
}
