package chunker

import (
	"strings"
	"testing"

	"docchunk/internal/domain"
)

func pageRule(min int) domain.ChunkingRule {
	return domain.ChunkingRule{
		Name:            "pages",
		Strategy:        domain.StrategyPageLimits,
		MinChunkSize:    min,
		MaxChunkSize:    1500,
		TargetChunkSize: 600,
	}
}

func TestPageLimitMarkers(t *testing.T) {
	content := "Page one body with enough text here.\n---\nPage two body with enough text here."

	chunks, err := NewPageLimit().Segment("doc1", content, pageRule(10))
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}

	for i, c := range chunks {
		if c.Type != domain.ChunkPage {
			t.Errorf("chunk %d: expected page type, got %q", i, c.Type)
		}
		if c.PageNumber != i+1 {
			t.Errorf("chunk %d: page number %d", i, c.PageNumber)
		}
	}
	if chunks[0].Title != "Page 1" || chunks[1].Title != "Page 2" {
		t.Errorf("wrong page titles: %q, %q", chunks[0].Title, chunks[1].Title)
	}
}

func TestPageLimitSinglePageFallback(t *testing.T) {
	content := strings.Repeat("no page markers anywhere in this text. ", 4)
	chunks, err := NewPageLimit().Segment("doc1", content, pageRule(10))
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected single page chunk, got %d", len(chunks))
	}
	if chunks[0].PageNumber != 1 {
		t.Errorf("expected page 1, got %d", chunks[0].PageNumber)
	}
}

func TestPageLimitDropsSmallPages(t *testing.T) {
	content := "A page that carries a reasonable amount of content.\f.\fAnother page that carries a reasonable amount of content."
	chunks, err := NewPageLimit().Segment("doc1", content, pageRule(20))
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected the near-empty page dropped, got %d chunks", len(chunks))
	}
}
