package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteVideo creates a file of the given size filled with zero bytes and
// returns its path. Sizes of 128 KiB or more satisfy the NAPISY24 hash.
func WriteVideo(t testing.TB, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create video dir: %v", err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write video %s: %v", name, err)
	}
	return path
}
