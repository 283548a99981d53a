package domain

import (
	"fmt"
	"time"
)

// ChunkingStrategy selects the segmentation algorithm applied to a document.
type ChunkingStrategy string

const (
	StrategyHybrid            ChunkingStrategy = "hybrid"
	StrategySectionBoundaries ChunkingStrategy = "section_boundaries"
	StrategyPageLimits        ChunkingStrategy = "page_limits"
	StrategySemanticBreaks    ChunkingStrategy = "semantic_breaks"
	StrategyFixedSize         ChunkingStrategy = "fixed_size"
)

// ChunkType describes what kind of document unit a chunk was cut from.
// It is descriptive metadata only and never switches behavior.
type ChunkType string

const (
	ChunkSection ChunkType = "section"
	ChunkPage    ChunkType = "page"
	ChunkMixed   ChunkType = "mixed"
)

// ChunkingRule is the per-document-type chunking profile.
type ChunkingRule struct {
	Name            string           `yaml:"name" json:"name"`
	Strategy        ChunkingStrategy `yaml:"strategy" json:"strategy"`
	MinChunkSize    int              `yaml:"min_chunk_size" json:"min_chunk_size"`
	MaxChunkSize    int              `yaml:"max_chunk_size" json:"max_chunk_size"`
	TargetChunkSize int              `yaml:"target_chunk_size" json:"target_chunk_size"`
	OverlapSize     int              `yaml:"overlap_size" json:"overlap_size"`

	PreserveSections   bool `yaml:"preserve_sections" json:"preserve_sections"`
	PreserveParagraphs bool `yaml:"preserve_paragraphs" json:"preserve_paragraphs"`
	PreserveSentences  bool `yaml:"preserve_sentences" json:"preserve_sentences"`
	HandleTables       bool `yaml:"handle_tables" json:"handle_tables"`
	HandleLists        bool `yaml:"handle_lists" json:"handle_lists"`
	HandleImages       bool `yaml:"handle_images" json:"handle_images"`

	MinContentQuality float64 `yaml:"min_content_quality" json:"min_content_quality"`

	// Reserved configuration: carried and validated, not enforced by the
	// engine. A watchdog layer may consume these later.
	MaxEmptyChunks    int           `yaml:"max_empty_chunks" json:"max_empty_chunks"`
	MaxProcessingTime time.Duration `yaml:"max_processing_time" json:"max_processing_time"`
	BatchSize         int           `yaml:"batch_size" json:"batch_size"`
}

// Validate checks the rule's size and overlap invariants.
func (r ChunkingRule) Validate() error {
	if r.MinChunkSize < 0 {
		return fmt.Errorf("rule %s: min_chunk_size %d is negative", r.Name, r.MinChunkSize)
	}
	if r.MinChunkSize > r.TargetChunkSize {
		return fmt.Errorf("rule %s: min_chunk_size %d exceeds target_chunk_size %d", r.Name, r.MinChunkSize, r.TargetChunkSize)
	}
	if r.TargetChunkSize > r.MaxChunkSize {
		return fmt.Errorf("rule %s: target_chunk_size %d exceeds max_chunk_size %d", r.Name, r.TargetChunkSize, r.MaxChunkSize)
	}
	if r.OverlapSize < 0 {
		return fmt.Errorf("rule %s: overlap_size %d is negative", r.Name, r.OverlapSize)
	}
	if r.OverlapSize >= r.TargetChunkSize {
		return fmt.Errorf("rule %s: overlap_size %d must be smaller than target_chunk_size %d", r.Name, r.OverlapSize, r.TargetChunkSize)
	}
	if r.MinContentQuality < 0 || r.MinContentQuality > 1 {
		return fmt.Errorf("rule %s: min_content_quality %.2f outside [0,1]", r.Name, r.MinContentQuality)
	}
	if r.MaxEmptyChunks < 0 {
		return fmt.Errorf("rule %s: max_empty_chunks %d is negative", r.Name, r.MaxEmptyChunks)
	}
	return nil
}

// UnknownOffset marks a chunk whose position in the source content could not
// be resolved.
const UnknownOffset = -1

// EmptyChunkFloor is the content length under which a surviving chunk is
// counted as empty in result statistics.
const EmptyChunkFloor = 50

// DocumentChunk is one bounded, searchable fragment of a document.
type DocumentChunk struct {
	ID          string `json:"id"`
	ParentDocID string `json:"parent_doc_id"`

	// Sequence is 1-based and contiguous within a ChunkingResult.
	Sequence int       `json:"chunk_sequence"`
	Type     ChunkType `json:"chunk_type"`

	Content       string `json:"content"`
	ContentLength int    `json:"content_length"`
	WordCount     int    `json:"word_count"`

	Title       string   `json:"title,omitempty"`
	SectionPath []string `json:"section_path,omitempty"`
	PageNumber  int      `json:"page_number,omitempty"`

	Strategy    ChunkingStrategy `json:"chunking_strategy"`
	ChunkSize   int              `json:"chunk_size"`
	OverlapSize int              `json:"overlap_size"`

	// Best-effort offsets into the source content; UnknownOffset when the
	// lookup failed.
	StartOffset int `json:"start_offset"`
	EndOffset   int `json:"end_offset"`

	PrevChunkID string `json:"previous_chunk_id,omitempty"`
	NextChunkID string `json:"next_chunk_id,omitempty"`

	SearchText string   `json:"search_text,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`

	// Embedding is always nil here; a downstream embedding service fills it.
	Embedding []float32 `json:"embedding,omitempty"`
}

// ChunkingResult is the aggregate outcome of chunking one document.
type ChunkingResult struct {
	DocumentID string          `json:"document_id"`
	Chunks     []DocumentChunk `json:"chunks"`

	TotalChunks        int     `json:"total_chunks"`
	TotalContentLength int     `json:"total_content_length"`
	AverageChunkSize   float64 `json:"average_chunk_size"`
	ChunkSizeVariance  float64 `json:"chunk_size_variance"`
	ContentCoverage    float64 `json:"content_coverage"`
	QualityScore       float64 `json:"chunk_quality_score"`
	EmptyChunks        int     `json:"empty_chunks"`

	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
	MemoryUsageMB         float64 `json:"memory_usage_mb"`

	Strategy  ChunkingStrategy `json:"chunking_strategy"`
	Rule      ChunkingRule     `json:"chunking_rules"`
	CreatedAt time.Time        `json:"created_at"`
}

// ValidateChunkSequence reports whether chunk sequences form 1..N with no
// gaps and the previous/next pointers match the sequence order exactly.
func (r *ChunkingResult) ValidateChunkSequence() bool {
	for i := range r.Chunks {
		c := &r.Chunks[i]
		if c.Sequence != i+1 {
			return false
		}
		if i == 0 {
			if c.PrevChunkID != "" {
				return false
			}
		} else if c.PrevChunkID != r.Chunks[i-1].ID {
			return false
		}
		if i == len(r.Chunks)-1 {
			if c.NextChunkID != "" {
				return false
			}
		} else if c.NextChunkID != r.Chunks[i+1].ID {
			return false
		}
	}
	return true
}
