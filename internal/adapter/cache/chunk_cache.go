package cache

import (
	"sync"
	"time"

	"docchunk/internal/domain"
)

// ChunkCache memoizes the last chunk set per document id. Entries are
// overwritten wholesale on each store; there is no partial update. It is an
// in-process, best-effort layer, not a store of record.
type ChunkCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	chunks    []domain.DocumentChunk
	sizeBytes int64
	storedAt  time.Time
}

// Stats describes the cache contents.
type Stats struct {
	CachedDocuments int     `json:"cached_documents"`
	TotalChunks     int     `json:"total_chunks"`
	CacheSizeMB     float64 `json:"cache_size_mb"`
}

func NewChunkCache() *ChunkCache {
	return &ChunkCache{entries: make(map[string]*cacheEntry)}
}

// Put replaces the cached chunk set for the document.
func (c *ChunkCache) Put(docID string, chunks []domain.DocumentChunk) {
	var size int64
	for i := range chunks {
		size += int64(len(chunks[i].Content) + len(chunks[i].SearchText))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[docID] = &cacheEntry{
		chunks:    chunks,
		sizeBytes: size,
		storedAt:  time.Now(),
	}
}

// Get returns the cached chunks for the document, if any.
func (c *ChunkCache) Get(docID string) ([]domain.DocumentChunk, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[docID]
	if !ok {
		return nil, false
	}
	return entry.chunks, true
}

// Clear evicts all entries.
func (c *ChunkCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Stats reports document and chunk counts plus the approximate content size.
func (c *ChunkCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{CachedDocuments: len(c.entries)}
	var bytes int64
	for _, entry := range c.entries {
		stats.TotalChunks += len(entry.chunks)
		bytes += entry.sizeBytes
	}
	stats.CacheSizeMB = float64(bytes) / (1024 * 1024)
	return stats
}
