package bibliography

import (
	"regexp"
	"strings"
)

// Metadata is the canonical, cleaned-up description of a document's
// identity. Every field is always present (possibly empty) so downstream
// serializers never have to probe for missing keys.
type Metadata struct {
	CitationKey string   `json:"citation_key"`
	Title       string   `json:"title"`
	ShortTitle  string   `json:"short_title"`
	Year        string   `json:"year"`
	EntryType   string   `json:"entry_type"`
	Authors     []string `json:"authors"`
	Editors     []string `json:"editors"`
	DOI         string   `json:"doi"`
	URL         string   `json:"url"`
}

var (
	colonRe      = regexp.MustCompile(`\s*:\s*`)
	dashRe       = regexp.MustCompile(`\s+[-‐–—]\s+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	yearRe       = regexp.MustCompile(`\d{4}`)
)

// trailing punctuation stripped off normalized titles
const trailingPunct = " \t.,;:-‐–—"

// NormalizeRecord derives canonical metadata from a matched bibliography
// record.
func NormalizeRecord(rec Record) Metadata {
	return Metadata{
		CitationKey: rec.ID,
		Title:       NormalizeTitle(rec.Title),
		ShortTitle:  shortTitle(rec.Title),
		Year:        normalizeYear(rec.Year),
		EntryType:   strings.ToLower(rec.EntryType),
		Authors:     emptyIfNil(rec.Authors()),
		Editors:     emptyIfNil(rec.Editors()),
		DOI:         rec.DOI,
		URL:         rec.URL,
	}
}

// FallbackMetadata builds metadata from document-embedded title and authors
// when no bibliography record matched. Bibliography-only fields stay empty;
// the caller is responsible for flagging the result as degraded.
func FallbackMetadata(title string, authors []string) Metadata {
	return Metadata{
		Title:   NormalizeTitle(title),
		Authors: emptyIfNil(authors),
		Editors: []string{},
	}
}

// NormalizeTitle rewrites colon and dash separators to a spaced en-dash,
// collapses whitespace runs and strips trailing punctuation.
func NormalizeTitle(title string) string {
	title = colonRe.ReplaceAllString(title, " – ")
	title = dashRe.ReplaceAllString(title, " – ")
	title = whitespaceRe.ReplaceAllString(title, " ")
	title = strings.TrimSpace(title)
	return strings.TrimRight(title, trailingPunct)
}

// shortTitle takes the text before the first colon or dash of the original,
// unnormalized title. When nothing usable remains it falls back to the
// normalized full title.
func shortTitle(original string) string {
	if cut := strings.IndexAny(original, ":‐–—-"); cut >= 0 {
		if head := strings.TrimSpace(original[:cut]); head != "" {
			return head
		}
	}
	return NormalizeTitle(original)
}

// normalizeYear extracts the first 4-digit run from the raw year field,
// passing the raw value through unchanged when none is found.
func normalizeYear(year string) string {
	if match := yearRe.FindString(year); match != "" {
		return match
	}
	return strings.TrimSpace(year)
}

func emptyIfNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
