package bibliography

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNames(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		expected []string
	}{
		{
			name:     "empty field",
			field:    "",
			expected: nil,
		},
		{
			name:     "last comma first",
			field:    "Smith, John",
			expected: []string{"John Smith"},
		},
		{
			name:     "no comma kept as is",
			field:    "Jane Smith",
			expected: []string{"Jane Smith"},
		},
		{
			name:     "initial loses trailing period",
			field:    "Smith, J.",
			expected: []string{"J Smith"},
		},
		{
			name:     "multi part surname",
			field:    "von Neumann, John",
			expected: []string{"John von Neumann"},
		},
		{
			name:     "multiple authors",
			field:    "Smith, John and Doe, Jane",
			expected: []string{"John Smith", "Jane Doe"},
		},
		{
			name:     "separator across line break",
			field:    "Smith, John and\n  Doe, Jane",
			expected: []string{"John Smith", "Jane Doe"},
		},
		{
			name:     "only first comma splits",
			field:    "Doe, Jane Q. Public",
			expected: []string{"Jane Q Public Doe"},
		},
		{
			name:     "internal whitespace collapsed",
			field:    "Smith,   John   Henry",
			expected: []string{"John Henry Smith"},
		},
		{
			name:     "multi letter abbreviation keeps period",
			field:    "Smith, Jr.",
			expected: []string{"Jr. Smith"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseNames(tt.field))
		})
	}
}
