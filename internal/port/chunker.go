package port

import "docchunk/internal/domain"

// Strategy segments document content into raw chunks according to a rule.
// Implementations set content, type, title, section path and offsets; the
// post-processing pipeline owns cleaning, enrichment and final sequencing.
type Strategy interface {
	Segment(docID, content string, rule domain.ChunkingRule) ([]domain.DocumentChunk, error)
}
