package bibliography

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "colon becomes spaced en dash",
			input:    "Deep Learning: A Survey",
			expected: "Deep Learning – A Survey",
		},
		{
			name:     "hyphen separator becomes en dash",
			input:    "Deep Learning - A Survey",
			expected: "Deep Learning – A Survey",
		},
		{
			name:     "em dash separator becomes en dash",
			input:    "Deep Learning — A Survey",
			expected: "Deep Learning – A Survey",
		},
		{
			name:     "intra word hyphen preserved",
			input:    "Self-Supervised Learning",
			expected: "Self-Supervised Learning",
		},
		{
			name:     "whitespace runs collapsed",
			input:    "Too   Much\tSpace",
			expected: "Too Much Space",
		},
		{
			name:     "trailing punctuation stripped",
			input:    "A Title.",
			expected: "A Title",
		},
		{
			name:     "colon without surrounding spaces",
			input:    "Prefix:Suffix",
			expected: "Prefix – Suffix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeTitle(tt.input))
		})
	}
}

func TestShortTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "splits on colon",
			input:    "Deep Learning: A Survey",
			expected: "Deep Learning",
		},
		{
			name:     "splits on en dash",
			input:    "Deep Learning – A Survey",
			expected: "Deep Learning",
		},
		{
			name:     "no separator falls back to normalized title",
			input:    "Plain Title",
			expected: "Plain Title",
		},
		{
			name:     "leading separator falls back to normalized title",
			input:    ": Odd Title",
			expected: "– Odd Title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shortTitle(tt.input))
		})
	}
}

func TestNormalizeYear(t *testing.T) {
	assert.Equal(t, "2020", normalizeYear("2020"))
	assert.Equal(t, "1999", normalizeYear("c1999"))
	assert.Equal(t, "2021", normalizeYear("published 2021, reprinted"))
	assert.Equal(t, "n.d.", normalizeYear("n.d."))
	assert.Equal(t, "", normalizeYear(""))
}

func TestNormalizeRecord(t *testing.T) {
	rec := Record{
		ID:          "smith2020",
		EntryType:   "Article",
		Title:       "Deep Learning – A Survey",
		Year:        "2020",
		AuthorField: "Smith, John and Doe, Jane",
		DOI:         "10.1000/demo",
		URL:         "https://example.org",
	}

	meta := NormalizeRecord(rec)

	assert.Equal(t, "smith2020", meta.CitationKey)
	assert.Equal(t, "Deep Learning – A Survey", meta.Title)
	assert.Equal(t, "Deep Learning", meta.ShortTitle)
	assert.Equal(t, "2020", meta.Year)
	assert.Equal(t, "article", meta.EntryType)
	assert.Equal(t, []string{"John Smith", "Jane Doe"}, meta.Authors)
	assert.Equal(t, []string{}, meta.Editors)
	assert.Equal(t, "10.1000/demo", meta.DOI)
	assert.Equal(t, "https://example.org", meta.URL)
}

func TestFallbackMetadata(t *testing.T) {
	meta := FallbackMetadata("Some Embedded Title", []string{"Jane Doe"})

	assert.Equal(t, "Some Embedded Title", meta.Title)
	assert.Equal(t, []string{"Jane Doe"}, meta.Authors)
	assert.Equal(t, []string{}, meta.Editors)
	assert.Empty(t, meta.CitationKey)
	assert.Empty(t, meta.ShortTitle)
	assert.Empty(t, meta.EntryType)
	assert.Empty(t, meta.DOI)
	assert.Empty(t, meta.URL)
	assert.Empty(t, meta.Year)
}
