package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClipTextLineAssembly(t *testing.T) {
	rect := Rect{Left: 0, Top: 0, Right: 200, Bottom: 40}
	runs := []TextRun{
		// Second line, declared first.
		{Text: "second", Left: 0, Top: 20, Width: 30, Height: 10},
		// First line split into two runs with a word gap between them.
		{Text: "first", Left: 0, Top: 5, Width: 25, Height: 10},
		{Text: "line", Left: 30, Top: 5, Width: 20, Height: 10},
		// Outside the clip region.
		{Text: "elsewhere", Left: 0, Top: 100, Width: 45, Height: 10},
	}

	assert.Equal(t, "first line\nsecond", clipText(runs, rect))
}

func TestClipTextAdjacentRunsNotSeparated(t *testing.T) {
	rect := Rect{Left: 0, Top: 0, Right: 200, Bottom: 20}
	runs := []TextRun{
		{Text: "hyphen", Left: 0, Top: 5, Width: 30, Height: 10},
		{Text: "ated", Left: 30.2, Top: 5, Width: 20, Height: 10},
	}

	assert.Equal(t, "hyphenated", clipText(runs, rect))
}

func TestClipTextEmptyRegion(t *testing.T) {
	rect := Rect{Left: 0, Top: 0, Right: 10, Bottom: 10}
	assert.Equal(t, "", clipText(nil, rect))
}

func TestCollapseSoftLineBreaks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single newline becomes space",
			input:    "wrapped\nline",
			expected: "wrapped line",
		},
		{
			name:     "double newline preserved",
			input:    "paragraph one\n\nparagraph two",
			expected: "paragraph one\n\nparagraph two",
		},
		{
			name:     "triple newline collapses to one break",
			input:    "a\n\n\nb",
			expected: "a\n\nb",
		},
		{
			name:     "mixed",
			input:    "a\nb\n\nc\nd",
			expected: "a b\n\nc d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, collapseSoftLineBreaks(tt.input))
		})
	}
}

func TestGeometryRectangles(t *testing.T) {
	t.Run("quad floats normalize corner order", func(t *testing.T) {
		g := Geometry{Kind: GeometryQuadFloats, Floats: []float64{
			10, 22, 0, 22, 10, 10, 0, 10,
		}}
		rects, err := g.Rectangles()
		assert.NoError(t, err)
		assert.Equal(t, []Rect{{Left: 0, Top: 10, Right: 10, Bottom: 22}}, rects)
	})

	t.Run("quad floats reject partial quads", func(t *testing.T) {
		g := Geometry{Kind: GeometryQuadFloats, Floats: []float64{1, 2, 3}}
		_, err := g.Rectangles()
		assert.Error(t, err)
	})

	t.Run("quad points reject partial quads", func(t *testing.T) {
		g := Geometry{Kind: GeometryQuadPoints, Points: []Point{{X: 1, Y: 2}}}
		_, err := g.Rectangles()
		assert.Error(t, err)
	})

	t.Run("rect list normalizes swapped corners", func(t *testing.T) {
		g := Geometry{Kind: GeometryRectList, Rects: []Rect{{Left: 10, Top: 22, Right: 0, Bottom: 10}}}
		rects, err := g.Rectangles()
		assert.NoError(t, err)
		assert.Equal(t, []Rect{{Left: 0, Top: 10, Right: 10, Bottom: 22}}, rects)
	})

	t.Run("empty rect list is an error", func(t *testing.T) {
		g := Geometry{Kind: GeometryRectList}
		_, err := g.Rectangles()
		assert.Error(t, err)
	})

	t.Run("no geometry is an error", func(t *testing.T) {
		_, err := Geometry{}.Rectangles()
		assert.Error(t, err)
	})
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		name       string
		components []float64
		expected   string
	}{
		{"rgb", []float64{0.7254902, 0.9098039, 0.7254902}, "#b9e8b9"},
		{"gray", []float64{0.5}, "#808080"},
		{"cmyk black", []float64{0, 0, 0, 1}, "#000000"},
		{"cmyk cyan", []float64{1, 0, 0, 0}, "#00ffff"},
		{"empty", nil, ""},
		{"unsupported length", []float64{1, 2}, ""},
		{"clamped", []float64{1.5, -0.5, 0}, "#ff0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ColorHex(tt.components))
		})
	}
}
