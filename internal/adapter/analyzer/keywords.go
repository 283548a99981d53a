package analyzer

import (
	"sort"
	"strings"
	"unicode"
)

// MaxKeywords bounds how many keywords a chunk carries.
const MaxKeywords = 10

// minKeywordLength excludes short filler words from keyword ranking.
const minKeywordLength = 4

// KeywordExtractor derives keywords and a searchable text projection from
// chunk content using frequency ranking over a stopword filter.
type KeywordExtractor struct {
	stopwords map[string]struct{}
}

// NewKeywordExtractor creates a KeywordExtractor with the default stopwords.
func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{stopwords: defaultStopwords()}
}

// Keywords returns up to limit keywords, most frequent first. Ties keep
// first-seen order. Words shorter than four characters and stopwords are
// excluded.
func (e *KeywordExtractor) Keywords(content string, limit int) []string {
	if limit <= 0 {
		limit = MaxKeywords
	}

	counts := make(map[string]int)
	var order []string

	for _, word := range splitWords(content) {
		word = strings.ToLower(word)
		if len(word) < minKeywordLength {
			continue
		}
		if _, isStop := e.stopwords[word]; isStop {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

// SearchText lower-cases content, strips everything but word characters and
// collapses whitespace to single spaces.
func (e *KeywordExtractor) SearchText(content string) string {
	words := splitWords(content)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, " ")
}

// splitWords splits text into words on unicode word boundaries.
func splitWords(text string) []string {
	var words []string
	var current strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			current.WriteRune(r)
		} else {
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	return words
}

// defaultStopwords returns a set of common English stopwords.
func defaultStopwords() map[string]struct{} {
	stops := []string{
		"that", "this", "with", "from", "have", "been", "being", "would",
		"could", "should", "might", "must", "shall", "which", "whom",
		"what", "when", "where", "there", "their", "they", "them",
		"these", "those", "will", "were", "your", "yours", "about",
		"into", "over", "under", "then", "than", "also", "just", "very",
		"each", "every", "both", "some", "such", "more", "most", "other",
		"only", "does", "because", "while", "after", "before",
	}
	m := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		m[s] = struct{}{}
	}
	return m
}
