package chunker

import (
	"strings"
	"testing"

	"docchunk/internal/domain"
)

func fixedRule(min, max, target, overlap int) domain.ChunkingRule {
	return domain.ChunkingRule{
		Name:            "fixed",
		Strategy:        domain.StrategyFixedSize,
		MinChunkSize:    min,
		MaxChunkSize:    max,
		TargetChunkSize: target,
		OverlapSize:     overlap,
	}
}

func TestFixedSizeCoversContent(t *testing.T) {
	content := strings.Repeat("alpha beta gamma delta epsilon ", 40)
	chunker := NewFixedSize()

	chunks, err := chunker.Segment("doc1", content, fixedRule(10, 400, 200, 40))
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, c := range chunks {
		if c.ParentDocID != "doc1" {
			t.Errorf("chunk %d: wrong parent doc %q", i, c.ParentDocID)
		}
		if c.Type != domain.ChunkMixed {
			t.Errorf("chunk %d: expected mixed type, got %q", i, c.Type)
		}
		if c.ContentLength > 200 {
			t.Errorf("chunk %d: length %d exceeds target", i, c.ContentLength)
		}
		if c.StartOffset < 0 || c.EndOffset > len(content) {
			t.Errorf("chunk %d: offsets [%d,%d) out of range", i, c.StartOffset, c.EndOffset)
		}
		if !strings.Contains(content[c.StartOffset:c.EndOffset], c.Content) {
			t.Errorf("chunk %d: content not inside its window", i)
		}
	}

	if chunks[len(chunks)-1].EndOffset != len(content) {
		t.Errorf("last chunk ends at %d, content length %d", chunks[len(chunks)-1].EndOffset, len(content))
	}
}

func TestFixedSizeOverlapAdvance(t *testing.T) {
	content := strings.Repeat("lorem ipsum dolor sit amet ", 30)
	chunks, err := NewFixedSize().Segment("doc1", content, fixedRule(1, 300, 100, 20))
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i < len(chunks); i++ {
		delta := chunks[i].StartOffset - chunks[i-1].StartOffset
		if delta <= 0 {
			t.Fatalf("chunk %d does not advance: delta %d", i, delta)
		}
		if delta > 100-20 {
			t.Errorf("chunk %d advances by %d, expected at most target-overlap=80", i, delta)
		}
	}
}

func TestFixedSizeSnapsToWordBoundary(t *testing.T) {
	// Spaces every 8 chars, so the cut near offset 50 should land on one.
	content := strings.Repeat("abcdefg ", 20)
	chunks, err := NewFixedSize().Segment("doc1", content, fixedRule(1, 100, 50, 0))
	if err != nil {
		t.Fatal(err)
	}

	for i, c := range chunks[:len(chunks)-1] {
		if content[c.EndOffset] != ' ' && content[c.EndOffset-1] != ' ' {
			t.Errorf("chunk %d cut mid-word at %d", i, c.EndOffset)
		}
	}
}

func TestFixedSizeDropsUndersized(t *testing.T) {
	chunks, err := NewFixedSize().Segment("doc1", "tiny", fixedRule(100, 2000, 1000, 100))
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected no chunks from undersized content, got %d", len(chunks))
	}
}

func TestFixedSizeEmptyContent(t *testing.T) {
	chunks, err := NewFixedSize().Segment("doc1", "   \n  ", fixedRule(1, 2000, 1000, 100))
	if err != nil {
		t.Fatal(err)
	}
	if chunks != nil {
		t.Errorf("expected nil chunks for blank content, got %d", len(chunks))
	}
}
