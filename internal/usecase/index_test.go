package usecase

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docchunk/internal/adapter/cache"
	"docchunk/internal/adapter/fs"
	"docchunk/internal/adapter/store"
)

func newTestIndexUseCase(t *testing.T, dir string) (*IndexUseCase, *store.BoltStore) {
	t.Helper()

	st, err := store.NewBoltStore(filepath.Join(dir, "chunks.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	registry, err := NewRuleRegistry(nil)
	if err != nil {
		t.Fatal(err)
	}
	engine := NewChunker(registry, cache.NewChunkCache())
	walker := fs.NewWalker([]string{"**/*.txt"}, nil, 0)
	return NewIndexUseCase(st, walker, engine), st
}

func writeDoc(t *testing.T, path string) {
	t.Helper()
	content := "# Report\n" + strings.Repeat("A long paragraph of meaningful report content follows right here. ", 12)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestIndexChunksAndSkips(t *testing.T) {
	docs := t.TempDir()
	state := t.TempDir()
	writeDoc(t, filepath.Join(docs, "one.txt"))
	writeDoc(t, filepath.Join(docs, "two.txt"))

	uc, st := newTestIndexUseCase(t, state)

	result, err := uc.Index(docs, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.FilesChunked != 2 || result.FilesSkipped != 0 {
		t.Fatalf("first run: %+v", result)
	}
	if result.ChunksCreated == 0 {
		t.Error("no chunks stored")
	}

	stats, err := st.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalDocuments != 2 {
		t.Errorf("stats report %d documents", stats.TotalDocuments)
	}

	// Unchanged files are skipped on the next run.
	second, err := uc.Index(docs, nil)
	if err != nil {
		t.Fatal(err)
	}
	if second.FilesChunked != 0 || second.FilesSkipped != 2 {
		t.Errorf("second run: %+v", second)
	}
	if second.ChunksCreated != result.ChunksCreated {
		t.Errorf("chunk count drifted: %d vs %d", second.ChunksCreated, result.ChunksCreated)
	}
}

func TestIndexRemovesDeletedFiles(t *testing.T) {
	docs := t.TempDir()
	state := t.TempDir()
	path := filepath.Join(docs, "gone.txt")
	writeDoc(t, path)

	uc, st := newTestIndexUseCase(t, state)
	if _, err := uc.Index(docs, nil); err != nil {
		t.Fatal(err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	result, err := uc.Index(docs, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.FilesDeleted != 1 {
		t.Errorf("expected 1 deletion, got %d", result.FilesDeleted)
	}

	docsLeft, err := st.ListDocs()
	if err != nil {
		t.Fatal(err)
	}
	if len(docsLeft) != 0 {
		t.Errorf("document survived file removal: %+v", docsLeft)
	}
}

func TestIndexReportsProgress(t *testing.T) {
	docs := t.TempDir()
	state := t.TempDir()
	writeDoc(t, filepath.Join(docs, "one.txt"))

	uc, _ := newTestIndexUseCase(t, state)

	var calls int
	_, err := uc.Index(docs, func(processed, total int, currentFile string) {
		calls++
		if processed < 1 || processed > total {
			t.Errorf("bad progress values: %d/%d", processed, total)
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("expected 1 progress call, got %d", calls)
	}
}

func TestDocumentTypeForPath(t *testing.T) {
	cases := map[string]string{
		"/a/report.docx": "docx",
		"/a/sheet.CSV":   "csv",
		"/a/deck.pptx":   "pptx",
		"/a/notes.md":    "text",
		"/a/plain.txt":   "text",
		"/a/data.bin":    "bin",
	}
	for path, want := range cases {
		if got := DocumentTypeForPath(path); got != want {
			t.Errorf("%s: expected %q, got %q", path, want, got)
		}
	}
}

func TestDocumentIDStable(t *testing.T) {
	if DocumentID("a/b.txt") != DocumentID("a/b.txt") {
		t.Error("same path produced different ids")
	}
	if DocumentID("a/b.txt") == DocumentID("a/c.txt") {
		t.Error("different paths share an id")
	}
}
