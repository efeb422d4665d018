package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes body to name inside dir and returns the full path.
// The test fails immediately if the file cannot be written.
func WriteFile(t testing.TB, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
