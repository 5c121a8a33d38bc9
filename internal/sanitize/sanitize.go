// Package sanitize normalizes strings extracted from PDF content so they are
// safe for serialization into JSON, CSV and Markdown outputs.
package sanitize

import (
	"html"
	"strings"
)

// Characters that PDF text extraction tends to leak into highlight text.
const (
	zeroWidthSpace = "\u200b"
	byteOrderMark  = "\ufeff"
	softHyphen     = "\u00ad"
	noBreakSpace   = "\u00a0"
)

// maxUnescapePasses bounds the entity-decoding fixpoint loop. Entities are
// always longer than their replacement, so the loop terminates well before
// this in practice.
const maxUnescapePasses = 8

// String flattens s into a single line with normalized whitespace.
//
// It decodes HTML character entities, normalizes all line-break forms to \n,
// strips zero-width and soft-hyphen artifacts, replaces non-breaking spaces
// with regular spaces, then trims every line, collapses whitespace runs and
// rejoins non-empty lines with a single space.
//
// String is idempotent: applying it to already-sanitized text returns the
// same text.
func String(s string) string {
	s = unescapeEntities(s)

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	s = strings.ReplaceAll(s, zeroWidthSpace, "")
	s = strings.ReplaceAll(s, byteOrderMark, "")
	s = strings.ReplaceAll(s, softHyphen, "")
	s = strings.ReplaceAll(s, noBreakSpace, " ")

	lines := strings.Split(s, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		cleaned = append(cleaned, line)
	}
	return strings.Join(cleaned, " ")
}

// unescapeEntities decodes HTML entities until the string is stable, so that
// doubly-escaped input (e.g. "&amp;amp;") cannot break idempotence.
func unescapeEntities(s string) string {
	for i := 0; i < maxUnescapePasses; i++ {
		decoded := html.UnescapeString(s)
		if decoded == s {
			return s
		}
		s = decoded
	}
	return s
}
