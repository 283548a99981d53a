package analyzer

import "docchunk/internal/domain"

// QualityScorer estimates how useful a chunk is for search. Per-chunk scores
// are built on a 0-100 raw scale and normalized to 0.0-1.0.
type QualityScorer struct{}

func NewQualityScorer() *QualityScorer {
	return &QualityScorer{}
}

// ScoreChunk scores a single chunk from its length, word count, title and
// keyword richness. The chunk's Keywords field must already be populated for
// the richness component to contribute.
func (s *QualityScorer) ScoreChunk(c domain.DocumentChunk) float64 {
	score := 0

	switch {
	case c.ContentLength >= 500:
		score += 30
	case c.ContentLength >= 200:
		score += 20
	case c.ContentLength >= 100:
		score += 10
	}

	switch {
	case c.WordCount >= 50:
		score += 20
	case c.WordCount >= 25:
		score += 15
	case c.WordCount >= 10:
		score += 10
	}

	if c.Title != "" {
		score += 20
	}

	richness := 3 * len(c.Keywords)
	if richness > 30 {
		richness = 30
	}
	score += richness

	return float64(score) / 100
}

// DocumentScore is the arithmetic mean of the per-chunk scores; an empty
// chunk list scores 0.0.
func (s *QualityScorer) DocumentScore(chunks []domain.DocumentChunk) float64 {
	if len(chunks) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range chunks {
		total += s.ScoreChunk(c)
	}
	return total / float64(len(chunks))
}
