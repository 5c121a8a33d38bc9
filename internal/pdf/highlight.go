package pdf

// Highlight represents one highlighted passage extracted from a document.
// Text reflects top-to-bottom, left-to-right reading order within the
// highlight's covered region, not the document's raw text order.
type Highlight struct {
	Text       string `json:"text"`
	PageNumber int    `json:"page_number"`
	Color      string `json:"color,omitempty"`
	Note       string `json:"note"`
}

// DocumentInfo carries the metadata embedded in a document, used as a match
// candidate and as fallback identity when no bibliography record matches.
type DocumentInfo struct {
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
}

// Point is a coordinate in page space. The origin is the top-left corner of
// the page, with Y growing downward, so "smaller top" always means "earlier
// in reading order".
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in top-left-origin page space.
// Top <= Bottom and Left <= Right.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Contains reports whether the point (x, y) lies within the rectangle,
// expanded by tolerance on every side.
func (r Rect) Contains(x, y, tolerance float64) bool {
	return x >= r.Left-tolerance && x <= r.Right+tolerance &&
		y >= r.Top-tolerance && y <= r.Bottom+tolerance
}

// TextRun is a positioned fragment of page text, in the same
// top-left-origin space as Rect.
type TextRun struct {
	Text   string
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Annotation is a raw highlight-type annotation as exposed by the document
// parsing capability, before text reconstruction.
type Annotation struct {
	Subtype     string
	Geometry    Geometry
	StrokeColor []float64
	FillColor   []float64
	Note        string
}
