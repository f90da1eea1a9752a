package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFeedsFile writes a feeds definition file for tests and returns
// its path.
func WriteFeedsFile(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
