package export

import (
	"regexp"
	"strings"
)

const elisionMarker = "\n\n[...]\n\n"

var (
	collapseSpaces   = regexp.MustCompile(`[ \t]+`)
	collapseNewlines = regexp.MustCompile(`\n{3,}`)
)

// NormalizeWhitespace flattens transcript text for display: CRLF to
// LF, runs of spaces and tabs to a single space, and runs of three or
// more newlines to a paragraph break.
func NormalizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = collapseSpaces.ReplaceAllString(text, " ")
	text = collapseNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Excerpt bounds a transcript to roughly maxChars characters. Text
// within the budget is returned whole. Longer text is sampled as
// head, middle and tail segments joined by elision markers, so the
// excerpt keeps the opening, a slice of the body, and the close.
// Slicing is rune-based to avoid splitting multi-byte characters.
func Excerpt(text string, maxChars int) string {
	text = NormalizeWhitespace(text)
	if maxChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	marker := []rune(elisionMarker)
	part := (maxChars - 2*len(marker)) / 3
	if part <= 0 {
		return strings.TrimSpace(string(runes[:maxChars]))
	}

	head := runes[:part]
	mid := len(runes) / 2
	middle := runes[mid-part/2 : mid-part/2+part]
	tail := runes[len(runes)-part:]

	var b strings.Builder
	b.WriteString(strings.TrimSpace(string(head)))
	b.WriteString(elisionMarker)
	b.WriteString(strings.TrimSpace(string(middle)))
	b.WriteString(elisionMarker)
	b.WriteString(strings.TrimSpace(string(tail)))
	return b.String()
}
