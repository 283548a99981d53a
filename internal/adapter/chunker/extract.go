package chunker

import (
	"regexp"
	"strings"
)

// Section is a candidate unit produced by the section extractor: the text
// between two detected headers, titled by the header that opened it.
type Section struct {
	Title   string
	Content string
}

// Page is a candidate unit produced by the page extractor. Number is the
// 1-based position of the page in the document.
type Page struct {
	Number  int
	Content string
}

// IntroductionTitle names the implicit section holding content that appears
// before the first detected header.
const IntroductionTitle = "Introduction"

var (
	numberedHeaderPattern = regexp.MustCompile(`^\d+(\.\d+)*\.?\s+\S`)
	pageMarkerPattern     = regexp.MustCompile(`(?i)^\s*(?:-{2,}\s*)?page\s+\d+(?:\s*-{2,})?\s*$`)
	pageRulePattern       = regexp.MustCompile(`^\s*-{3,}\s*$`)
	underlinePattern      = regexp.MustCompile(`^(={3,}|-{3,})\s*$`)
)

// ExtractSections splits content into header-delimited sections. Content
// preceding the first header is collected under the Introduction title; if
// no header is found, the whole document is a single Introduction section.
func ExtractSections(content string) []Section {
	lines := strings.Split(content, "\n")

	var sections []Section
	title := IntroductionTitle
	var body []string

	flush := func() {
		text := strings.Join(body, "\n")
		if strings.TrimSpace(text) != "" {
			sections = append(sections, Section{Title: title, Content: text})
		}
		body = body[:0]
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if isHeaderLine(line) {
			flush()
			title = cleanHeaderTitle(line)
			continue
		}
		// Setext-style header: a text line underlined by === or ---.
		if i+1 < len(lines) && underlinePattern.MatchString(lines[i+1]) && strings.TrimSpace(line) != "" && len(strings.TrimSpace(line)) < 100 {
			flush()
			title = cleanHeaderTitle(line)
			i++
			continue
		}
		body = append(body, line)
	}
	flush()

	return sections
}

// isHeaderLine applies the header heuristics: markdown headers, numbered
// sections, short all-caps lines, and short lines with terminal punctuation.
func isHeaderLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) >= 100 {
		return false
	}
	if strings.HasPrefix(trimmed, "#") {
		return true
	}
	if numberedHeaderPattern.MatchString(trimmed) {
		return true
	}
	if isAllCaps(trimmed) {
		return true
	}
	if strings.HasSuffix(trimmed, ":") && !strings.Contains(trimmed, "\t") && len(strings.Fields(trimmed)) <= 8 {
		return true
	}
	return false
}

func isAllCaps(s string) bool {
	letters := 0
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			letters++
		}
	}
	return letters >= 3
}

func cleanHeaderTitle(line string) string {
	title := strings.TrimSpace(line)
	title = strings.TrimLeft(title, "# ")
	title = strings.TrimRight(title, "#: ")
	if title == "" {
		return IntroductionTitle
	}
	return title
}

// ExtractPages splits content on explicit page-break markers: form feeds,
// page-separator rules and "Page N" / "--- Page N ---" marker lines. When no
// marker exists the whole content is one page.
func ExtractPages(content string) []Page {
	var pages []Page
	var body []string

	flush := func() {
		text := strings.Join(body, "\n")
		if strings.TrimSpace(text) != "" {
			pages = append(pages, Page{Number: len(pages) + 1, Content: text})
		}
		body = body[:0]
	}

	for _, block := range strings.Split(content, "\f") {
		for _, line := range strings.Split(block, "\n") {
			if pageMarkerPattern.MatchString(line) || pageRulePattern.MatchString(line) {
				flush()
				continue
			}
			body = append(body, line)
		}
		flush()
	}

	return pages
}

// ExtractParagraphs splits content into blank-line-delimited paragraphs.
func ExtractParagraphs(content string) []string {
	var paragraphs []string
	var body []string

	flush := func() {
		text := strings.Join(body, "\n")
		if strings.TrimSpace(text) != "" {
			paragraphs = append(paragraphs, text)
		}
		body = body[:0]
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		body = append(body, line)
	}
	flush()

	return paragraphs
}

// offsetCursor resolves fragment offsets against the source content with a
// tracking start position, so repeated identical fragments map to
// monotonically increasing offsets instead of all hitting the first match.
type offsetCursor struct {
	src string
	pos int
}

func newOffsetCursor(src string) *offsetCursor {
	return &offsetCursor{src: src}
}

// Find returns the [start, end) offsets of fragment in the source, searching
// from the cursor first and falling back to a full scan. Both offsets are
// UnknownOffset when the fragment cannot be located.
func (c *offsetCursor) Find(fragment string) (int, int) {
	if fragment == "" {
		return -1, -1
	}
	if c.pos < len(c.src) {
		if idx := strings.Index(c.src[c.pos:], fragment); idx >= 0 {
			start := c.pos + idx
			c.pos = start + len(fragment)
			return start, c.pos
		}
	}
	if idx := strings.Index(c.src, fragment); idx >= 0 {
		return idx, idx + len(fragment)
	}
	return -1, -1
}
