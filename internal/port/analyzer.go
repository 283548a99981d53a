package port

// KeywordExtractor derives search metadata from chunk content. It is a port
// so the naive frequency ranker can be swapped for a real tokenizer without
// touching the chunking algorithms.
type KeywordExtractor interface {
	Keywords(content string, limit int) []string
	SearchText(content string) string
}
