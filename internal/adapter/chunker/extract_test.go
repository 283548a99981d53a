package chunker

import (
	"strings"
	"testing"
)

func TestExtractSectionsHeaderStyles(t *testing.T) {
	content := `Intro text before the first header.

# Overview
Overview body.

1. Scope
Scope body.

DETAILS
Details body.

Setext Header
===
Setext body.`

	sections := ExtractSections(content)
	if len(sections) != 5 {
		t.Fatalf("expected 5 sections, got %d", len(sections))
	}

	titles := make([]string, len(sections))
	for i, s := range sections {
		titles[i] = s.Title
	}
	want := []string{IntroductionTitle, "Overview", "1. Scope", "DETAILS", "Setext Header"}
	for i := range want {
		if titles[i] != want[i] {
			t.Errorf("section %d: expected title %q, got %q", i, want[i], titles[i])
		}
	}

	if !strings.Contains(sections[0].Content, "Intro text") {
		t.Error("introduction section missing leading content")
	}
	if !strings.Contains(sections[4].Content, "Setext body.") {
		t.Error("setext section missing its body")
	}
}

func TestExtractSectionsNoHeaders(t *testing.T) {
	sections := ExtractSections("Just one plain paragraph with no headers at all.")
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Title != IntroductionTitle {
		t.Errorf("expected %q title, got %q", IntroductionTitle, sections[0].Title)
	}
}

func TestExtractSectionsColonHeader(t *testing.T) {
	sections := ExtractSections("Prerequisites:\nInstall the toolchain first.")
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Title != "Prerequisites" {
		t.Errorf("expected colon suffix stripped, got %q", sections[0].Title)
	}
}

func TestIsHeaderLine(t *testing.T) {
	headers := []string{"# Title", "## Sub", "1. Scope", "2.3 Nested", "SUMMARY", "Steps to reproduce:"}
	for _, h := range headers {
		if !isHeaderLine(h) {
			t.Errorf("%q not detected as header", h)
		}
	}

	nonHeaders := []string{
		"",
		"A normal sentence that simply ends here.",
		"OK", // fewer than three capital letters
		strings.Repeat("X", 120),
		"this line mentions many things and then some more words before the colon appears at the end of it:",
	}
	for _, h := range nonHeaders {
		if isHeaderLine(h) {
			t.Errorf("%q wrongly detected as header", h)
		}
	}
}

func TestExtractPagesMarkers(t *testing.T) {
	content := "First page text\n--- Page 2 ---\nSecond page text\n---\nThird page text\fFourth page text"

	pages := ExtractPages(content)
	if len(pages) != 4 {
		t.Fatalf("expected 4 pages, got %d", len(pages))
	}
	for i, p := range pages {
		if p.Number != i+1 {
			t.Errorf("page %d numbered %d", i, p.Number)
		}
	}
	if !strings.Contains(pages[2].Content, "Third page text") {
		t.Errorf("page 3 has wrong content: %q", pages[2].Content)
	}
}

func TestExtractPagesNoMarkers(t *testing.T) {
	pages := ExtractPages("A document without any page breaks.")
	if len(pages) != 1 {
		t.Fatalf("expected single page, got %d", len(pages))
	}
	if pages[0].Number != 1 {
		t.Errorf("expected page 1, got %d", pages[0].Number)
	}
}

func TestExtractParagraphs(t *testing.T) {
	content := "First paragraph.\nStill first.\n\nSecond paragraph.\n\n\n\nThird paragraph."
	paragraphs := ExtractParagraphs(content)
	if len(paragraphs) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(paragraphs))
	}
	if !strings.Contains(paragraphs[0], "Still first.") {
		t.Error("multi-line paragraph split incorrectly")
	}
}

func TestOffsetCursorRepeatedFragments(t *testing.T) {
	src := "abc def abc def"
	cursor := newOffsetCursor(src)

	s1, e1 := cursor.Find("abc")
	if s1 != 0 || e1 != 3 {
		t.Fatalf("first match at [%d,%d)", s1, e1)
	}
	s2, e2 := cursor.Find("abc")
	if s2 != 8 || e2 != 11 {
		t.Fatalf("second match at [%d,%d), expected [8,11)", s2, e2)
	}

	s3, e3 := cursor.Find("missing")
	if s3 != -1 || e3 != -1 {
		t.Errorf("expected unknown offsets for missing fragment, got [%d,%d)", s3, e3)
	}
}

func TestOffsetCursorFallsBackBehindCursor(t *testing.T) {
	cursor := newOffsetCursor("xyz abc")
	cursor.Find("abc")

	// Cursor is past "xyz" now; the full scan should still locate it.
	s, e := cursor.Find("xyz")
	if s != 0 || e != 3 {
		t.Errorf("expected fallback match at [0,3), got [%d,%d)", s, e)
	}
}
