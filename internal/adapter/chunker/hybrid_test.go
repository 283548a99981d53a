package chunker

import (
	"strings"
	"testing"

	"docchunk/internal/domain"
)

func hybridRule() domain.ChunkingRule {
	return domain.ChunkingRule{
		Name:            "hybrid",
		Strategy:        domain.StrategyHybrid,
		MinChunkSize:    50,
		MaxChunkSize:    500,
		TargetChunkSize: 300,
		OverlapSize:     30,
	}
}

func TestHybridKeepsBoundedSections(t *testing.T) {
	content := "# Small\n" + strings.Repeat("short section body. ", 8) +
		"\n\n# Large\n" + strings.Repeat("a very long section that needs splitting. ", 40)

	chunks, err := NewHybrid().Segment("doc1", content, hybridRule())
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) < 3 {
		t.Fatalf("expected the large section re-split, got %d chunks", len(chunks))
	}

	if chunks[0].Title != "Small" || chunks[0].Type != domain.ChunkSection {
		t.Errorf("bounded section not kept whole: %+v", chunks[0])
	}

	for i, c := range chunks[1:] {
		if c.Title != "Large" {
			t.Errorf("sub-chunk %d lost its section title: %q", i, c.Title)
		}
		if c.ContentLength > 300 {
			t.Errorf("sub-chunk %d length %d exceeds target", i, c.ContentLength)
		}
		if len(c.SectionPath) != 2 || c.SectionPath[0] != "Large" {
			t.Errorf("sub-chunk %d has section path %v", i, c.SectionPath)
		}
		if !strings.HasPrefix(c.SectionPath[1], "sub_") {
			t.Errorf("sub-chunk %d missing sub marker: %v", i, c.SectionPath)
		}
	}
}

func TestHybridRebasesOffsets(t *testing.T) {
	content := "# Large\n" + strings.Repeat("words to fill the oversized section completely. ", 30)

	chunks, err := NewHybrid().Segment("doc1", content, hybridRule())
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple sub-chunks, got %d", len(chunks))
	}

	for i, c := range chunks {
		if c.StartOffset == domain.UnknownOffset {
			continue
		}
		if c.EndOffset > len(content) {
			t.Fatalf("sub-chunk %d end offset %d beyond content", i, c.EndOffset)
		}
		if !strings.Contains(content[c.StartOffset:c.EndOffset], c.Content) {
			t.Errorf("sub-chunk %d offsets do not cover its content", i)
		}
	}
}

func TestHybridEmptyContent(t *testing.T) {
	chunks, err := NewHybrid().Segment("doc1", "", hybridRule())
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected no chunks for empty content, got %d", len(chunks))
	}
}
