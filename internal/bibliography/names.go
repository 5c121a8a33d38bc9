package bibliography

import (
	"regexp"
	"strings"
	"unicode"
)

// nameSeparatorRe splits BibTeX name lists on the "and" keyword, which may be
// surrounded by any whitespace including line breaks.
var nameSeparatorRe = regexp.MustCompile(`\s+and\s+`)

// ParseNames splits a raw BibTeX author or editor field into individual
// "First Last" names, preserving declaration order.
//
// Each person segment is split on its first comma only, so "Last, First
// Middle" becomes "First Middle Last" and a segment without a comma is kept
// as-is. Internal whitespace is collapsed and trailing periods are stripped
// from single-letter initials ("H." becomes "H").
func ParseNames(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}

	segments := nameSeparatorRe.Split(field, -1)
	names := make([]string, 0, len(segments))
	for _, segment := range segments {
		name := parseName(segment)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

func parseName(segment string) string {
	segment = strings.TrimSpace(segment)

	if comma := strings.Index(segment, ","); comma >= 0 {
		last := strings.TrimSpace(segment[:comma])
		first := strings.TrimSpace(segment[comma+1:])
		segment = strings.TrimSpace(first + " " + last)
	}

	tokens := strings.Fields(segment)
	for i, token := range tokens {
		tokens[i] = stripInitialPeriod(token)
	}
	return strings.Join(tokens, " ")
}

// stripInitialPeriod turns a single-uppercase-letter initial like "H." into
// "H"; anything else passes through unchanged.
func stripInitialPeriod(token string) string {
	runes := []rune(token)
	if len(runes) == 2 && runes[1] == '.' && unicode.IsUpper(runes[0]) {
		return string(runes[0])
	}
	return token
}
