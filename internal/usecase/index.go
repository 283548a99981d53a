package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"docchunk/internal/adapter/fs"
	"docchunk/internal/adapter/store"
)

// ProgressFunc reports batch progress after each processed file.
type ProgressFunc func(processed, total int, currentFile string)

// IndexUseCase chunks every matching file under a directory and persists the
// results, skipping files whose modification time has not advanced.
type IndexUseCase struct {
	store   *store.BoltStore
	walker  *fs.Walker
	chunker *Chunker
}

// NewIndexUseCase creates a new index use case.
func NewIndexUseCase(st *store.BoltStore, walker *fs.Walker, chunker *Chunker) *IndexUseCase {
	return &IndexUseCase{
		store:   st,
		walker:  walker,
		chunker: chunker,
	}
}

// IndexResult contains the results of a batch chunking run.
type IndexResult struct {
	FilesChunked  int
	FilesSkipped  int
	FilesDeleted  int
	ChunksCreated int
	Errors        []string
}

// Index chunks files in the given directory.
func (u *IndexUseCase) Index(root string, progress ProgressFunc) (*IndexResult, error) {
	result := &IndexResult{}

	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	existingDocs, err := u.store.ListDocs()
	if err != nil {
		return nil, fmt.Errorf("failed to list existing docs: %w", err)
	}

	existingMap := make(map[string]store.DocumentInfo)
	for _, doc := range existingDocs {
		existingMap[doc.Path] = doc
	}

	seenPaths := make(map[string]bool)
	totalChunks := 0
	totalContentLength := 0
	qualitySum := 0.0
	docsWithChunks := 0

	for i, file := range files {
		seenPaths[file.Path] = true

		if existing, ok := existingMap[file.Path]; ok {
			if existing.ModTime.Unix() >= file.ModTime {
				result.FilesSkipped++
				chunks, _ := u.store.GetChunksByDoc(existing.ID)
				for _, c := range chunks {
					totalChunks++
					totalContentLength += c.ContentLength
				}
				if existing.TotalChunks > 0 {
					qualitySum += existing.QualityScore
					docsWithChunks++
				}
				if progress != nil {
					progress(i+1, len(files), file.Path)
				}
				continue
			}
			if err := u.store.DeleteDoc(existing.ID); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("failed to delete old data for %s: %v", file.Path, err))
			}
		}

		chunked, err := u.chunkFile(root, file)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to chunk %s: %v", file.Path, err))
		} else {
			result.FilesChunked++
			totalChunks += chunked.totalChunks
			totalContentLength += chunked.totalContentLength
			if chunked.totalChunks > 0 {
				qualitySum += chunked.qualityScore
				docsWithChunks++
			}
		}

		if progress != nil {
			progress(i+1, len(files), file.Path)
		}
	}

	for path, doc := range existingMap {
		if !seenPaths[path] {
			if err := u.store.DeleteDoc(doc.ID); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("failed to delete %s: %v", path, err))
			} else {
				result.FilesDeleted++
			}
		}
	}

	avgQuality := 0.0
	if docsWithChunks > 0 {
		avgQuality = qualitySum / float64(docsWithChunks)
	}

	stats := store.CorpusStats{
		TotalDocuments:     result.FilesChunked + result.FilesSkipped,
		TotalChunks:        totalChunks,
		TotalContentLength: totalContentLength,
		AverageQuality:     avgQuality,
		UpdatedAt:          time.Now(),
	}
	if err := u.store.UpdateStats(stats); err != nil {
		return nil, fmt.Errorf("failed to update stats: %w", err)
	}

	result.ChunksCreated = totalChunks
	return result, nil
}

type chunkedFile struct {
	totalChunks        int
	totalContentLength int
	qualityScore       float64
}

// chunkFile chunks a single file and persists its result.
func (u *IndexUseCase) chunkFile(root string, file fs.FileInfo) (chunkedFile, error) {
	content, err := fs.ReadFile(file.Path)
	if err != nil {
		return chunkedFile{}, err
	}

	relPath, err := filepath.Rel(root, file.Path)
	if err != nil {
		relPath = file.Path
	}

	docID := DocumentID(relPath)
	docType := DocumentTypeForPath(file.Path)

	res, err := u.chunker.ChunkDocument(docID, content, docType, nil)
	if err != nil {
		return chunkedFile{}, err
	}

	doc := store.DocumentInfo{
		ID:           docID,
		Path:         file.Path,
		DocumentType: docType,
		ModTime:      time.Unix(file.ModTime, 0),
		Strategy:     res.Strategy,
		TotalChunks:  res.TotalChunks,
		QualityScore: res.QualityScore,
		CreatedAt:    res.CreatedAt,
	}
	if err := u.store.PutResult(doc, res); err != nil {
		return chunkedFile{}, err
	}

	return chunkedFile{
		totalChunks:        res.TotalChunks,
		totalContentLength: res.TotalContentLength,
		qualityScore:       res.QualityScore,
	}, nil
}

// DocumentID derives a stable document id from a repository-relative path.
func DocumentID(relPath string) string {
	sum := sha256.Sum256([]byte(relPath))
	return hex.EncodeToString(sum[:8])
}

// DocumentTypeForPath maps a file extension onto a document-type tag the
// rule registry understands.
func DocumentTypeForPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "doc", "docx", "odt", "rtf":
		return ext
	case "xls", "xlsx", "ods", "csv":
		return ext
	case "ppt", "pptx", "odp":
		return ext
	case "md", "markdown", "txt", "text":
		return "text"
	default:
		return ext
	}
}
