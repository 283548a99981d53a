package chunker

import (
	"fmt"

	"docchunk/internal/domain"
)

// Hybrid segments along section boundaries first, then re-splits any section
// that exceeds the rule's maximum with the fixed-size pass, so oversized
// natural sections are bounded without losing their boundary metadata.
type Hybrid struct {
	sections *SectionBoundary
	fixed    *FixedSize
}

func NewHybrid() *Hybrid {
	return &Hybrid{
		sections: NewSectionBoundary(),
		fixed:    NewFixedSize(),
	}
}

func (s *Hybrid) Segment(docID, content string, rule domain.ChunkingRule) ([]domain.DocumentChunk, error) {
	sections, err := s.sections.Segment(docID, content, rule)
	if err != nil {
		return nil, err
	}

	var chunks []domain.DocumentChunk
	for _, sec := range sections {
		if sec.ContentLength <= rule.MaxChunkSize {
			chunks = append(chunks, sec)
			continue
		}

		subs, err := s.fixed.Segment(sec.ParentDocID, sec.Content, rule)
		if err != nil {
			return nil, err
		}
		for k := range subs {
			sub := subs[k]
			sub.Title = sec.Title
			sub.SectionPath = append(append([]string{}, sec.SectionPath...), fmt.Sprintf("sub_%d", k+1))
			if sec.StartOffset != domain.UnknownOffset {
				sub.StartOffset += sec.StartOffset
				sub.EndOffset += sec.StartOffset
			} else {
				sub.StartOffset = domain.UnknownOffset
				sub.EndOffset = domain.UnknownOffset
			}
			chunks = append(chunks, sub)
		}
	}

	return chunks, nil
}
