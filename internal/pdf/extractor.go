package pdf

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// highlightSubtype is the annotation subtype this extractor cares about.
const highlightSubtype = "Highlight"

// Extractor turns a document's highlight annotations into ordered Highlight
// records with reading-order reconstructed text.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates a highlight extractor.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// ExtractHighlights walks every page of the document and reconstructs the
// text of each highlight annotation.
//
// Highlights preserve page order, then within-page annotation order. An
// annotation with unparseable geometry is skipped with a warning; a
// highlight whose covered region yields no text is still recorded with
// empty text, since image-only regions are legitimately highlightable.
func (e *Extractor) ExtractHighlights(doc Document) ([]Highlight, error) {
	var highlights []Highlight

	for pageNum := 1; pageNum <= doc.NumPages(); pageNum++ {
		annotations, err := doc.PageAnnotations(pageNum)
		if err != nil {
			return nil, fmt.Errorf("failed to read annotations: %w", err)
		}

		pageHighlights := filterHighlights(annotations)
		if len(pageHighlights) == 0 {
			continue
		}

		runs, err := doc.PageText(pageNum)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text of page %d: %w", pageNum, err)
		}

		for _, annot := range pageHighlights {
			rects, err := annot.Geometry.Rectangles()
			if err != nil {
				e.logger.Warn("skipping highlight with unparseable geometry",
					"page", pageNum, "kind", annot.Geometry.Kind.String(), "error", err)
				continue
			}

			highlights = append(highlights, Highlight{
				Text:       extractRegionText(runs, rects),
				PageNumber: pageNum,
				Color:      annotationColor(annot),
				Note:       strings.TrimSpace(annot.Note),
			})
		}
	}

	return highlights, nil
}

func filterHighlights(annotations []Annotation) []Annotation {
	filtered := annotations[:0:0]
	for _, a := range annotations {
		if a.Subtype == highlightSubtype {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// extractRegionText reconstructs the text covered by the given rectangles
// in reading order: rectangles sorted by ascending top then left coordinate
// (rounded to absorb float jitter), each rectangle's clipped text joined
// with a single space, soft line wraps collapsed.
func extractRegionText(runs []TextRun, rects []Rect) string {
	sorted := make([]Rect, len(rects))
	copy(sorted, rects)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := roundCoord(sorted[i].Top), roundCoord(sorted[j].Top)
		if ti != tj {
			return ti < tj
		}
		return roundCoord(sorted[i].Left) < roundCoord(sorted[j].Left)
	})

	parts := make([]string, 0, len(sorted))
	for _, rect := range sorted {
		if part := clipText(runs, rect); part != "" {
			parts = append(parts, part)
		}
	}

	text := strings.Join(parts, " ")
	return strings.TrimSpace(collapseSoftLineBreaks(text))
}

// annotationColor prefers the stroke color and falls back to the fill
// color, returning "" when the annotation has neither.
func annotationColor(annot Annotation) string {
	if hex := ColorHex(annot.StrokeColor); hex != "" {
		return hex
	}
	return ColorHex(annot.FillColor)
}
