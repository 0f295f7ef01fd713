// Package testutil provides shared test helpers for setting up vaults and fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/eihwaz/internal/models"
)

// TestVault creates a temporary vault directory populated with the given
// notes (file name to content) and returns its vault definition.
func TestVault(t *testing.T, name string, notes map[string]string) models.Vault {
	t.Helper()
	dir := t.TempDir()
	for file, content := range notes {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", file, err)
		}
	}
	return models.Vault{Name: name, FsPath: dir}
}

// TestFile writes content to a file in a fresh temporary directory and
// returns its path.
func TestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
