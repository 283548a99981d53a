package chunker

import (
	"fmt"
	"strings"

	"docchunk/internal/domain"
)

// PageLimit emits one chunk per extracted page. A document without page
// markers is a single page.
type PageLimit struct{}

func NewPageLimit() *PageLimit {
	return &PageLimit{}
}

func (s *PageLimit) Segment(docID, content string, rule domain.ChunkingRule) ([]domain.DocumentChunk, error) {
	pages := ExtractPages(content)
	cursor := newOffsetCursor(content)

	var chunks []domain.DocumentChunk
	for _, page := range pages {
		text := strings.TrimSpace(page.Content)
		if len(text) < rule.MinChunkSize {
			continue
		}
		startOff, endOff := cursor.Find(text)
		chunks = append(chunks, domain.DocumentChunk{
			ParentDocID:   docID,
			Type:          domain.ChunkPage,
			Content:       text,
			ContentLength: len(text),
			WordCount:     len(strings.Fields(text)),
			Title:         fmt.Sprintf("Page %d", page.Number),
			PageNumber:    page.Number,
			ChunkSize:     rule.TargetChunkSize,
			OverlapSize:   rule.OverlapSize,
			StartOffset:   startOff,
			EndOffset:     endOff,
		})
	}

	return chunks, nil
}
