package chunker

import (
	"fmt"
	"strings"

	"docchunk/internal/domain"
)

// SemanticBreak emits one chunk per blank-line-delimited paragraph, titled
// by the paragraph's first sentence.
type SemanticBreak struct{}

func NewSemanticBreak() *SemanticBreak {
	return &SemanticBreak{}
}

func (s *SemanticBreak) Segment(docID, content string, rule domain.ChunkingRule) ([]domain.DocumentChunk, error) {
	paragraphs := ExtractParagraphs(content)
	cursor := newOffsetCursor(content)

	var chunks []domain.DocumentChunk
	for i, para := range paragraphs {
		text := strings.TrimSpace(para)
		if len(text) < rule.MinChunkSize {
			continue
		}
		startOff, endOff := cursor.Find(text)
		chunks = append(chunks, domain.DocumentChunk{
			ParentDocID:   docID,
			Type:          domain.ChunkMixed,
			Content:       text,
			ContentLength: len(text),
			WordCount:     len(strings.Fields(text)),
			Title:         unitTitle(text, i+1),
			ChunkSize:     rule.TargetChunkSize,
			OverlapSize:   rule.OverlapSize,
			StartOffset:   startOff,
			EndOffset:     endOff,
		})
	}

	return chunks, nil
}

// unitTitle is the paragraph text up to the first period, falling back to a
// positional title when the first sentence is empty.
func unitTitle(text string, n int) string {
	title := text
	if idx := strings.Index(text, "."); idx >= 0 {
		title = text[:idx]
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Sprintf("Unit %d", n)
	}
	return title
}
