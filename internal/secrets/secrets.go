// Package secrets loads optional .env files and answers whether the judge
// credential is available.
package secrets

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// CredentialVar names the environment variable that gates the MLLM judge.
const CredentialVar = "OPENAI_API_KEY"

// LoadDotenv merges KEY=VALUE pairs from a .env file in dir into the
// process environment. Variables already set keep their values. A missing
// file is fine; a present but unreadable one only warns.
func LoadDotenv(dir string) {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("warning: loading %s: %v", path, err)
	}
}

// HasCredential reports whether the judge credential is set and non-empty.
func HasCredential() bool {
	return os.Getenv(CredentialVar) != ""
}
