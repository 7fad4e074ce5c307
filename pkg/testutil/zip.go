// pkg/testutil/zip.go
// DEPENDENCIES: klauspost/compress/zip
// PURPOSE: Write archive fixtures for asset rewrite tests

package testutil

import (
	"io"
	"os"
	"testing"

	"github.com/klauspost/compress/zip"
)

// ZipEntry is one archive member
type ZipEntry struct {
	Name    string
	Content string
	Store   bool
}

// WriteZip writes entries, in order, to a new archive at path
func WriteZip(t *testing.T, path string, entries ...ZipEntry) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create archive %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	w := zip.NewWriter(f)
	for _, e := range entries {
		method := zip.Deflate
		if e.Store {
			method = zip.Store
		}
		fw, err := w.CreateHeader(&zip.FileHeader{Name: e.Name, Method: method})
		if err != nil {
			t.Fatalf("Failed to add %s: %v", e.Name, err)
		}
		if _, err := io.WriteString(fw, e.Content); err != nil {
			t.Fatalf("Failed to write %s: %v", e.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finish archive %s: %v", path, err)
	}
}

// ReadZip returns every entry of the archive at path keyed by name
func ReadZip(t *testing.T, path string) map[string]string {
	t.Helper()

	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Failed to open archive %s: %v", path, err)
	}
	defer func() { _ = r.Close() }()

	out := make(map[string]string, len(r.File))
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("Failed to read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}
