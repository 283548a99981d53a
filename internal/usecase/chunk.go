package usecase

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"docchunk/internal/adapter/analyzer"
	"docchunk/internal/adapter/cache"
	"docchunk/internal/adapter/chunker"
	"docchunk/internal/domain"
	"docchunk/internal/port"
)

var (
	// ErrEmptyDocumentID rejects chunking requests without a document id.
	ErrEmptyDocumentID = errors.New("chunking: document id is required")
	// ErrUnknownStrategy marks a strategy enum value the dispatcher does not
	// recognize. This is a programming error, never a fallback path.
	ErrUnknownStrategy = errors.New("chunking: unknown strategy")
)

// Chunker orchestrates document chunking: rule resolution, strategy
// dispatch, post-processing, aggregate statistics and cache upkeep. It is
// synchronous and CPU-bound; callers on cooperative runtimes should push
// large documents onto worker goroutines themselves.
type Chunker struct {
	registry *RuleRegistry
	cache    *cache.ChunkCache
	keywords port.KeywordExtractor
	scorer   *analyzer.QualityScorer

	fixed    port.Strategy
	sections port.Strategy
	pages    port.Strategy
	semantic port.Strategy
	hybrid   port.Strategy
}

// NewChunker creates a chunking engine over the given registry and cache.
func NewChunker(registry *RuleRegistry, chunkCache *cache.ChunkCache) *Chunker {
	return &Chunker{
		registry: registry,
		cache:    chunkCache,
		keywords: analyzer.NewKeywordExtractor(),
		scorer:   analyzer.NewQualityScorer(),
		fixed:    chunker.NewFixedSize(),
		sections: chunker.NewSectionBoundary(),
		pages:    chunker.NewPageLimit(),
		semantic: chunker.NewSemanticBreak(),
		hybrid:   chunker.NewHybrid(),
	}
}

// ChunkDocument splits content into ordered, bounded, searchable chunks
// according to the rule for documentType, caches the chunk set under the
// document id and returns the aggregate result. Metadata may override the
// document id via a "document_id" entry.
func (c *Chunker) ChunkDocument(documentID, content, documentType string, metadata map[string]any) (*domain.ChunkingResult, error) {
	started := time.Now()
	var memBefore runtime.MemStats
	runtime.ReadMemStats(&memBefore)

	if override, ok := metadata["document_id"].(string); ok && override != "" {
		documentID = override
	}
	if strings.TrimSpace(documentID) == "" {
		return nil, ErrEmptyDocumentID
	}

	rule := c.registry.RuleFor(documentType)

	raw, err := c.segment(documentID, content, rule)
	if err != nil {
		return nil, err
	}

	chunks := c.postProcess(documentID, raw, rule)
	result := c.buildResult(documentID, content, chunks, rule, started, &memBefore)

	c.cache.Put(documentID, result.Chunks)
	return result, nil
}

// segment dispatches to the strategy named by the rule. The switch is
// exhaustive over the strategy enum.
func (c *Chunker) segment(docID, content string, rule domain.ChunkingRule) ([]domain.DocumentChunk, error) {
	switch rule.Strategy {
	case domain.StrategyHybrid:
		return c.hybrid.Segment(docID, content, rule)
	case domain.StrategySectionBoundaries:
		return c.sections.Segment(docID, content, rule)
	case domain.StrategyPageLimits:
		return c.pages.Segment(docID, content, rule)
	case domain.StrategySemanticBreaks:
		return c.semantic.Segment(docID, content, rule)
	case domain.StrategyFixedSize:
		return c.fixed.Segment(docID, content, rule)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, rule.Strategy)
	}
}

// GetCachedChunks returns the last chunk set produced for the document.
func (c *Chunker) GetCachedChunks(documentID string) ([]domain.DocumentChunk, bool) {
	return c.cache.Get(documentID)
}

// ClearCache evicts all cached chunk sets.
func (c *Chunker) ClearCache() {
	c.cache.Clear()
}

// CacheStats reports the cache contents.
func (c *Chunker) CacheStats() cache.Stats {
	return c.cache.Stats()
}

// buildResult assembles the aggregate statistics over the surviving chunks.
func (c *Chunker) buildResult(docID, content string, chunks []domain.DocumentChunk, rule domain.ChunkingRule, started time.Time, memBefore *runtime.MemStats) *domain.ChunkingResult {
	result := &domain.ChunkingResult{
		DocumentID:  docID,
		Chunks:      chunks,
		TotalChunks: len(chunks),
		Strategy:    rule.Strategy,
		Rule:        rule,
		CreatedAt:   time.Now(),
	}

	for i := range chunks {
		result.TotalContentLength += chunks[i].ContentLength
		if chunks[i].ContentLength < domain.EmptyChunkFloor {
			result.EmptyChunks++
		}
	}

	if len(chunks) > 0 {
		result.AverageChunkSize = float64(result.TotalContentLength) / float64(len(chunks))
		var variance float64
		for i := range chunks {
			d := float64(chunks[i].ContentLength) - result.AverageChunkSize
			variance += d * d
		}
		result.ChunkSizeVariance = variance / float64(len(chunks))
	}

	if len(content) > 0 {
		coverage := float64(result.TotalContentLength) / float64(len(content))
		if coverage > 1 {
			coverage = 1
		}
		result.ContentCoverage = coverage
	}

	result.QualityScore = c.scorer.DocumentScore(chunks)
	result.ProcessingTimeSeconds = time.Since(started).Seconds()

	// Best-effort memory accounting; GC between the snapshots can make the
	// delta negative, which reports as zero.
	var memAfter runtime.MemStats
	runtime.ReadMemStats(&memAfter)
	if memAfter.HeapAlloc > memBefore.HeapAlloc {
		result.MemoryUsageMB = float64(memAfter.HeapAlloc-memBefore.HeapAlloc) / (1024 * 1024)
	}

	return result
}
