package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	buf := make([]byte, 4096)
	for i := range buf {
		buf[i] = byte(i % 251)
	}
	var written int64
	for written < size {
		chunk := size - written
		if chunk > int64(len(buf)) {
			chunk = int64(len(buf))
		}
		n, err := f.Write(buf[:chunk])
		if err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		written += int64(n)
	}
}
