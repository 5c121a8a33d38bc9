package pdf

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Tolerances in points for assigning runs to rectangles and lines. They
// absorb the jitter between annotation quads and glyph boxes.
const (
	clipTolerance = 1.0
	lineTolerance = 2.0
	gapTolerance  = 1.0
)

// clipText extracts the text covered by rect from the page's runs,
// assembling it line by line. Lines are separated by a newline so the
// caller can distinguish soft line wraps from paragraph breaks.
func clipText(runs []TextRun, rect Rect) string {
	clipped := make([]TextRun, 0, len(runs))
	for _, run := range runs {
		cx := run.Left + run.Width/2
		cy := run.Top + run.Height/2
		if rect.Contains(cx, cy, clipTolerance) {
			clipped = append(clipped, run)
		}
	}
	if len(clipped) == 0 {
		return ""
	}

	sort.SliceStable(clipped, func(i, j int) bool {
		ti, tj := roundCoord(clipped[i].Top), roundCoord(clipped[j].Top)
		if ti != tj {
			return ti < tj
		}
		return roundCoord(clipped[i].Left) < roundCoord(clipped[j].Left)
	})

	var b strings.Builder
	lineTop := clipped[0].Top
	prevRight := math.Inf(-1)
	for _, run := range clipped {
		switch {
		case run.Top > lineTop+lineTolerance:
			b.WriteString("\n")
			lineTop = run.Top
		case prevRight > math.Inf(-1) && run.Left-prevRight > gapTolerance:
			b.WriteString(" ")
		}
		b.WriteString(run.Text)
		prevRight = run.Left + run.Width
	}
	return b.String()
}

var paragraphBreakRe = regexp.MustCompile(`\n{2,}`)

// collapseSoftLineBreaks turns single newlines (line-wrap artifacts) into
// spaces while preserving blank-line paragraph breaks.
func collapseSoftLineBreaks(s string) string {
	paragraphs := paragraphBreakRe.Split(s, -1)
	for i, p := range paragraphs {
		paragraphs[i] = strings.TrimSpace(strings.ReplaceAll(p, "\n", " "))
	}
	return strings.Join(paragraphs, "\n\n")
}

// roundCoord rounds a coordinate to two decimal places so floating-point
// jitter cannot flip the reading order of rectangles on the same line.
func roundCoord(v float64) float64 {
	return math.Round(v*100) / 100
}
