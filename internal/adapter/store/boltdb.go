package store

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"docchunk/internal/domain"
)

var (
	bucketDocs      = []byte("docs")
	bucketChunks    = []byte("chunks")
	bucketBlobs     = []byte("blobs")
	bucketDocChunks = []byte("doc_chunks")
	bucketStats     = []byte("stats")
	keyStats        = []byte("corpus_stats")
)

// DocumentInfo is the persisted record for a chunked document.
type DocumentInfo struct {
	ID           string
	Path         string
	DocumentType string
	ModTime      time.Time
	Strategy     domain.ChunkingStrategy
	TotalChunks  int
	QualityScore float64
	CreatedAt    time.Time
}

// CorpusStats aggregates the whole store.
type CorpusStats struct {
	TotalDocuments     int       `json:"total_documents"`
	TotalChunks        int       `json:"total_chunks"`
	TotalContentLength int       `json:"total_content_length"`
	AverageQuality     float64   `json:"average_quality"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		buckets := [][]byte{bucketDocs, bucketChunks, bucketBlobs, bucketDocChunks, bucketStats}
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) DB() *bbolt.DB {
	return s.db
}

type docMeta struct {
	Path         string  `json:"path"`
	DocumentType string  `json:"document_type"`
	ModTime      int64   `json:"mod_time"`
	Strategy     string  `json:"strategy"`
	TotalChunks  int     `json:"total_chunks"`
	QualityScore float64 `json:"quality_score"`
	CreatedAt    int64   `json:"created_at"`
}

type chunkMeta struct {
	DocID         string   `json:"doc_id"`
	Sequence      int      `json:"sequence"`
	Type          string   `json:"type"`
	ContentLength int      `json:"content_length"`
	WordCount     int      `json:"word_count"`
	Title         string   `json:"title,omitempty"`
	SectionPath   []string `json:"section_path,omitempty"`
	PageNumber    int      `json:"page_number,omitempty"`
	Strategy      string   `json:"strategy"`
	ChunkSize     int      `json:"chunk_size"`
	OverlapSize   int      `json:"overlap_size"`
	StartOffset   int      `json:"start_offset"`
	EndOffset     int      `json:"end_offset"`
	PrevChunkID   string   `json:"prev_chunk_id,omitempty"`
	NextChunkID   string   `json:"next_chunk_id,omitempty"`
	SearchText    string   `json:"search_text,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
}

func metaFromChunk(c domain.DocumentChunk) chunkMeta {
	return chunkMeta{
		DocID:         c.ParentDocID,
		Sequence:      c.Sequence,
		Type:          string(c.Type),
		ContentLength: c.ContentLength,
		WordCount:     c.WordCount,
		Title:         c.Title,
		SectionPath:   c.SectionPath,
		PageNumber:    c.PageNumber,
		Strategy:      string(c.Strategy),
		ChunkSize:     c.ChunkSize,
		OverlapSize:   c.OverlapSize,
		StartOffset:   c.StartOffset,
		EndOffset:     c.EndOffset,
		PrevChunkID:   c.PrevChunkID,
		NextChunkID:   c.NextChunkID,
		SearchText:    c.SearchText,
		Keywords:      c.Keywords,
	}
}

func (m chunkMeta) toChunk(id, content string) domain.DocumentChunk {
	return domain.DocumentChunk{
		ID:            id,
		ParentDocID:   m.DocID,
		Sequence:      m.Sequence,
		Type:          domain.ChunkType(m.Type),
		Content:       content,
		ContentLength: m.ContentLength,
		WordCount:     m.WordCount,
		Title:         m.Title,
		SectionPath:   m.SectionPath,
		PageNumber:    m.PageNumber,
		Strategy:      domain.ChunkingStrategy(m.Strategy),
		ChunkSize:     m.ChunkSize,
		OverlapSize:   m.OverlapSize,
		StartOffset:   m.StartOffset,
		EndOffset:     m.EndOffset,
		PrevChunkID:   m.PrevChunkID,
		NextChunkID:   m.NextChunkID,
		SearchText:    m.SearchText,
		Keywords:      m.Keywords,
	}
}

// PutResult persists a chunking result in a single transaction, replacing
// any chunks previously stored for the document.
func (s *BoltStore) PutResult(doc DocumentInfo, result *domain.ChunkingResult) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		docsBucket := tx.Bucket(bucketDocs)
		chunksBucket := tx.Bucket(bucketChunks)
		blobsBucket := tx.Bucket(bucketBlobs)
		docChunksBucket := tx.Bucket(bucketDocChunks)

		if existing := docChunksBucket.Get([]byte(doc.ID)); existing != nil {
			var oldIDs []string
			if err := json.Unmarshal(existing, &oldIDs); err == nil {
				for _, id := range oldIDs {
					chunksBucket.Delete([]byte(id))
					blobsBucket.Delete([]byte(id))
				}
			}
		}

		meta := docMeta{
			Path:         doc.Path,
			DocumentType: doc.DocumentType,
			ModTime:      doc.ModTime.Unix(),
			Strategy:     string(result.Strategy),
			TotalChunks:  result.TotalChunks,
			QualityScore: result.QualityScore,
			CreatedAt:    result.CreatedAt.Unix(),
		}
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		if err := docsBucket.Put([]byte(doc.ID), data); err != nil {
			return err
		}

		chunkIDs := make([]string, 0, len(result.Chunks))
		for _, chunk := range result.Chunks {
			data, err := json.Marshal(metaFromChunk(chunk))
			if err != nil {
				return err
			}
			if err := chunksBucket.Put([]byte(chunk.ID), data); err != nil {
				return err
			}
			if err := blobsBucket.Put([]byte(chunk.ID), []byte(chunk.Content)); err != nil {
				return err
			}
			chunkIDs = append(chunkIDs, chunk.ID)
		}

		chunkIDsData, _ := json.Marshal(chunkIDs)
		return docChunksBucket.Put([]byte(doc.ID), chunkIDsData)
	})
}

func (s *BoltStore) GetDoc(id string) (DocumentInfo, error) {
	var doc DocumentInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocs).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("document not found: %s", id)
		}
		var meta docMeta
		if err := json.Unmarshal(data, &meta); err != nil {
			return err
		}
		doc = docFromMeta(id, meta)
		return nil
	})
	return doc, err
}

func docFromMeta(id string, meta docMeta) DocumentInfo {
	return DocumentInfo{
		ID:           id,
		Path:         meta.Path,
		DocumentType: meta.DocumentType,
		ModTime:      time.Unix(meta.ModTime, 0),
		Strategy:     domain.ChunkingStrategy(meta.Strategy),
		TotalChunks:  meta.TotalChunks,
		QualityScore: meta.QualityScore,
		CreatedAt:    time.Unix(meta.CreatedAt, 0),
	}
}

func (s *BoltStore) ListDocs() ([]DocumentInfo, error) {
	var docs []DocumentInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketDocs)
		return b.ForEach(func(k, v []byte) error {
			var meta docMeta
			if err := json.Unmarshal(v, &meta); err != nil {
				return err
			}
			docs = append(docs, docFromMeta(string(k), meta))
			return nil
		})
	})
	return docs, err
}

func (s *BoltStore) GetChunksByDoc(docID string) ([]domain.DocumentChunk, error) {
	var chunks []domain.DocumentChunk
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocChunks).Get([]byte(docID))
		if data == nil {
			return nil
		}
		var chunkIDs []string
		if err := json.Unmarshal(data, &chunkIDs); err != nil {
			return err
		}
		chunkBucket := tx.Bucket(bucketChunks)
		blobBucket := tx.Bucket(bucketBlobs)
		for _, id := range chunkIDs {
			data := chunkBucket.Get([]byte(id))
			if data == nil {
				continue
			}
			var meta chunkMeta
			if err := json.Unmarshal(data, &meta); err != nil {
				continue
			}
			content := blobBucket.Get([]byte(id))
			chunks = append(chunks, meta.toChunk(id, string(content)))
		}
		return nil
	})
	return chunks, err
}

func (s *BoltStore) DeleteDoc(docID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		docChunksBucket := tx.Bucket(bucketDocChunks)
		if data := docChunksBucket.Get([]byte(docID)); data != nil {
			var chunkIDs []string
			if err := json.Unmarshal(data, &chunkIDs); err == nil {
				chunkBucket := tx.Bucket(bucketChunks)
				blobBucket := tx.Bucket(bucketBlobs)
				for _, id := range chunkIDs {
					chunkBucket.Delete([]byte(id))
					blobBucket.Delete([]byte(id))
				}
			}
			if err := docChunksBucket.Delete([]byte(docID)); err != nil {
				return err
			}
		}
		return tx.Bucket(bucketDocs).Delete([]byte(docID))
	})
}

func (s *BoltStore) GetStats() (CorpusStats, error) {
	var stats CorpusStats
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketStats).Get(keyStats)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &stats)
	})
	return stats, err
}

func (s *BoltStore) UpdateStats(stats CorpusStats) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketStats).Put(keyStats, data)
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
