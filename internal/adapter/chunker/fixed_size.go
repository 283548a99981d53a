package chunker

import (
	"strings"

	"docchunk/internal/domain"
)

// boundaryWindowDivisor bounds how far back from the naive cut the word
// boundary search may reach: target_chunk_size / 5, i.e. 20%.
const boundaryWindowDivisor = 5

// FixedSize cuts content into target-sized windows with a word-boundary
// preference and configurable overlap.
type FixedSize struct{}

func NewFixedSize() *FixedSize {
	return &FixedSize{}
}

func (s *FixedSize) Segment(docID, content string, rule domain.ChunkingRule) ([]domain.DocumentChunk, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	var chunks []domain.DocumentChunk
	start := 0
	for start < len(content) {
		end := start + rule.TargetChunkSize
		last := false
		if end >= len(content) {
			end = len(content)
			last = true
		} else if ws := snapToWhitespace(content, start, end, rule.TargetChunkSize/boundaryWindowDivisor); ws > start {
			end = ws
		}

		text := strings.TrimSpace(content[start:end])
		if len(text) >= rule.MinChunkSize {
			chunks = append(chunks, domain.DocumentChunk{
				ParentDocID:   docID,
				Type:          domain.ChunkMixed,
				Content:       text,
				ContentLength: len(text),
				WordCount:     len(strings.Fields(text)),
				ChunkSize:     rule.TargetChunkSize,
				OverlapSize:   rule.OverlapSize,
				StartOffset:   start,
				EndOffset:     end,
			})
		}
		if last {
			break
		}

		// Always makes forward progress, even when the overlap covers the
		// whole window.
		next := end - rule.OverlapSize
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return chunks, nil
}

// snapToWhitespace searches backward from the naive window end for a
// whitespace boundary. It returns the boundary offset, or -1 when none lies
// within the allowed window and the hard cut stands.
func snapToWhitespace(content string, start, end, window int) int {
	limit := end - window
	if limit < start {
		limit = start
	}
	for i := end - 1; i >= limit; i-- {
		switch content[i] {
		case ' ', '\n', '\t', '\r':
			return i
		}
	}
	return -1
}
