package chunker

import (
	"strings"

	"docchunk/internal/domain"
)

// SectionBoundary emits one chunk per detected document section. Sections
// below the rule's size floor are dropped, not merged forward.
type SectionBoundary struct{}

func NewSectionBoundary() *SectionBoundary {
	return &SectionBoundary{}
}

func (s *SectionBoundary) Segment(docID, content string, rule domain.ChunkingRule) ([]domain.DocumentChunk, error) {
	sections := ExtractSections(content)
	cursor := newOffsetCursor(content)

	var chunks []domain.DocumentChunk
	for _, sec := range sections {
		text := strings.TrimSpace(sec.Content)
		if len(text) < rule.MinChunkSize {
			continue
		}
		startOff, endOff := cursor.Find(text)
		chunks = append(chunks, domain.DocumentChunk{
			ParentDocID:   docID,
			Type:          domain.ChunkSection,
			Content:       text,
			ContentLength: len(text),
			WordCount:     len(strings.Fields(text)),
			Title:         sec.Title,
			SectionPath:   []string{sec.Title},
			ChunkSize:     rule.TargetChunkSize,
			OverlapSize:   rule.OverlapSize,
			StartOffset:   startOff,
			EndOffset:     endOff,
		})
	}

	return chunks, nil
}
