package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"docchunk/internal/adapter/analyzer"
	"docchunk/internal/domain"
)

var (
	newlinePattern = regexp.MustCompile(`\r\n|\r`)
	spaceRuns      = regexp.MustCompile(`[ \t]+`)
)

// postProcess runs the uniform pipeline over raw strategy output: size and
// quality filtering, content cleaning, recomputation, search enrichment, and
// final re-sequencing with adjacency links.
func (c *Chunker) postProcess(docID string, raw []domain.DocumentChunk, rule domain.ChunkingRule) []domain.DocumentChunk {
	kept := make([]domain.DocumentChunk, 0, len(raw))

	for _, ch := range raw {
		if ch.ContentLength < rule.MinChunkSize {
			continue
		}

		// Quality gate uses throwaway keywords; the kept chunk is enriched
		// from its cleaned content below.
		probe := ch
		probe.Keywords = c.keywords.Keywords(ch.Content, analyzer.MaxKeywords)
		if c.scorer.ScoreChunk(probe) < rule.MinContentQuality {
			continue
		}

		ch.Content = cleanContent(ch.Content)
		ch.ContentLength = len(ch.Content)
		ch.WordCount = len(strings.Fields(ch.Content))
		if ch.ContentLength < rule.MinChunkSize {
			continue
		}

		ch.SearchText = c.keywords.SearchText(ch.Content)
		ch.Keywords = c.keywords.Keywords(ch.Content, analyzer.MaxKeywords)
		ch.Strategy = rule.Strategy

		kept = append(kept, ch)
	}

	for i := range kept {
		kept[i].Sequence = i + 1
		kept[i].ID = chunkID(docID, i+1, kept[i].Content)
	}
	for i := range kept {
		if i > 0 {
			kept[i].PrevChunkID = kept[i-1].ID
		}
		if i < len(kept)-1 {
			kept[i].NextChunkID = kept[i+1].ID
		}
	}

	return kept
}

// cleanContent normalizes line endings, collapses whitespace runs, strips
// list markers from line edges and drops blank lines.
func cleanContent(s string) string {
	s = newlinePattern.ReplaceAllString(s, "\n")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = stripListMarkers(line)
		line = spaceRuns.ReplaceAllString(line, " ")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func stripListMarkers(line string) string {
	for {
		switch {
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			line = strings.TrimSpace(line[2:])
		case line == "-" || line == "*":
			return ""
		default:
			for strings.HasSuffix(line, " -") || strings.HasSuffix(line, " *") {
				line = strings.TrimSpace(line[:len(line)-2])
			}
			return line
		}
	}
}

// chunkID derives a stable id from the parent document, the final sequence
// position and the cleaned content.
func chunkID(docID string, seq int, content string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s::%d::%s", docID, seq, content)))
	return hex.EncodeToString(sum[:8])
}
