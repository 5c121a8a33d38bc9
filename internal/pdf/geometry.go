package pdf

import "fmt"

// GeometryKind tags the representation an annotation uses for its covered
// region. Sources differ: some expose flat coordinate quads, some corner
// points, some rectangle lists and some only a bounding rectangle.
type GeometryKind int

const (
	GeometryNone GeometryKind = iota
	GeometryQuadFloats
	GeometryQuadPoints
	GeometryRectList
	GeometryBounds
)

// String returns the kind name for logging.
func (k GeometryKind) String() string {
	switch k {
	case GeometryQuadFloats:
		return "quad_floats"
	case GeometryQuadPoints:
		return "quad_points"
	case GeometryRectList:
		return "rect_list"
	case GeometryBounds:
		return "bounds"
	default:
		return "none"
	}
}

// Geometry is a tagged variant over the annotation-geometry representations.
// Exactly the field matching Kind is meaningful.
type Geometry struct {
	Kind   GeometryKind
	Floats []float64 // GeometryQuadFloats: x1 y1 x2 y2 x3 y3 x4 y4 per quad
	Points []Point   // GeometryQuadPoints: four corner points per quad
	Rects  []Rect    // GeometryRectList
	Bounds Rect      // GeometryBounds
}

// Rectangles normalizes the geometry into a common rectangle list. Each
// variant has its own normalization; an inconsistent payload is an error so
// the caller can skip the annotation instead of aborting the page.
func (g Geometry) Rectangles() ([]Rect, error) {
	switch g.Kind {
	case GeometryQuadFloats:
		return rectsFromQuadFloats(g.Floats)
	case GeometryQuadPoints:
		return rectsFromQuadPoints(g.Points)
	case GeometryRectList:
		return rectsFromList(g.Rects)
	case GeometryBounds:
		return []Rect{g.Bounds}, nil
	default:
		return nil, fmt.Errorf("annotation has no geometry")
	}
}

func rectsFromQuadFloats(floats []float64) ([]Rect, error) {
	if len(floats) == 0 || len(floats)%8 != 0 {
		return nil, fmt.Errorf("quad coordinate count %d is not a multiple of 8", len(floats))
	}

	rects := make([]Rect, 0, len(floats)/8)
	for i := 0; i < len(floats); i += 8 {
		quad := floats[i : i+8]
		rects = append(rects, boundingRect(
			Point{X: quad[0], Y: quad[1]},
			Point{X: quad[2], Y: quad[3]},
			Point{X: quad[4], Y: quad[5]},
			Point{X: quad[6], Y: quad[7]},
		))
	}
	return rects, nil
}

func rectsFromQuadPoints(points []Point) ([]Rect, error) {
	if len(points) == 0 || len(points)%4 != 0 {
		return nil, fmt.Errorf("quad point count %d is not a multiple of 4", len(points))
	}

	rects := make([]Rect, 0, len(points)/4)
	for i := 0; i < len(points); i += 4 {
		rects = append(rects, boundingRect(points[i], points[i+1], points[i+2], points[i+3]))
	}
	return rects, nil
}

func rectsFromList(rects []Rect) ([]Rect, error) {
	if len(rects) == 0 {
		return nil, fmt.Errorf("empty rectangle list")
	}
	normalized := make([]Rect, len(rects))
	for i, r := range rects {
		normalized[i] = boundingRect(
			Point{X: r.Left, Y: r.Top},
			Point{X: r.Right, Y: r.Bottom},
		)
	}
	return normalized, nil
}

// boundingRect returns the axis-aligned rectangle covering the given points.
func boundingRect(points ...Point) Rect {
	r := Rect{Left: points[0].X, Top: points[0].Y, Right: points[0].X, Bottom: points[0].Y}
	for _, p := range points[1:] {
		if p.X < r.Left {
			r.Left = p.X
		}
		if p.X > r.Right {
			r.Right = p.X
		}
		if p.Y < r.Top {
			r.Top = p.Y
		}
		if p.Y > r.Bottom {
			r.Bottom = p.Y
		}
	}
	return r
}
