package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkerPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "alpha")
	writeFile(t, filepath.Join(dir, "b.md"), "bravo")
	writeFile(t, filepath.Join(dir, "sub", "c.txt"), "charlie")
	writeFile(t, filepath.Join(dir, "node_modules", "d.txt"), "delta")

	w := NewWalker([]string{"**/*.txt"}, []string{"**/node_modules/**"}, 0)
	files, err := w.Walk(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	for _, f := range files {
		if strings.HasSuffix(f.Path, ".md") {
			t.Errorf("non-matching file included: %s", f.Path)
		}
		if strings.Contains(f.Path, "node_modules") {
			t.Errorf("excluded file included: %s", f.Path)
		}
		if f.Size <= 0 || f.ModTime == 0 {
			t.Errorf("file info not populated: %+v", f)
		}
	}
}

func TestWalkerSizeLimit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "small.txt"), "ok")
	writeFile(t, filepath.Join(dir, "big.txt"), strings.Repeat("x", 3000))

	w := NewWalker([]string{"**/*.txt"}, nil, 2)
	files, err := w.Walk(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || !strings.HasSuffix(files[0].Path, "small.txt") {
		t.Errorf("size limit not applied: %+v", files)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	writeFile(t, path, "payload")

	got, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "payload" {
		t.Errorf("expected %q, got %q", "payload", got)
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
