package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// defaultTextHeight approximates run height when a font size is missing.
const defaultTextHeight = 12.0

// Document is the boundary to the underlying document-parsing libraries:
// per-page positioned text runs plus raw highlight annotations.
type Document interface {
	NumPages() int
	Info() DocumentInfo
	PageText(pageNum int) ([]TextRun, error)
	PageAnnotations(pageNum int) ([]Annotation, error)
	Close() error
}

// fileDocument implements Document over one PDF file, combining
// ledongthuc/pdf for positioned text with pdfcpu for annotation
// dictionaries and page geometry.
type fileDocument struct {
	path     string
	reader   *pdflib.Reader
	ctx      *model.Context
	info     DocumentInfo
	pageTops map[int]float64
}

// Open reads and decodes the PDF at path. A file that is missing, not a
// PDF, or undecodable is a fatal error for the whole extraction.
func Open(path string) (Document, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return nil, fmt.Errorf("file is not a PDF: %s", path)
	}
	if fileInfo.Size() == 0 {
		return nil, fmt.Errorf("file is empty: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	doc := &fileDocument{
		path:     path,
		reader:   reader,
		ctx:      ctx,
		pageTops: make(map[int]float64),
	}
	doc.info = extractInfo(reader)
	return doc, nil
}

// NumPages returns the page count of the document.
func (d *fileDocument) NumPages() int {
	return d.ctx.PageCount
}

// Info returns the document's embedded metadata.
func (d *fileDocument) Info() DocumentInfo {
	return d.info
}

// Close releases document resources.
func (d *fileDocument) Close() error {
	d.reader = nil
	d.ctx = nil
	return nil
}

// PageText returns the positioned text runs of a page, converted to
// top-left-origin coordinates.
func (d *fileDocument) PageText(pageNum int) ([]TextRun, error) {
	if pageNum < 1 || pageNum > d.reader.NumPage() {
		return nil, fmt.Errorf("invalid page number %d (document has %d pages)", pageNum, d.reader.NumPage())
	}

	pageTop, err := d.pageTop(pageNum)
	if err != nil {
		return nil, err
	}

	page := d.reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil
	}

	content := page.Content()
	runs := make([]TextRun, 0, len(content.Text))
	for _, t := range content.Text {
		height := t.FontSize
		if height == 0 {
			height = defaultTextHeight
		}
		runs = append(runs, TextRun{
			Text:   t.S,
			Left:   t.X,
			Top:    pageTop - (t.Y + height),
			Width:  t.W,
			Height: height,
		})
	}
	return runs, nil
}

// PageAnnotations returns the page's raw annotations. A single annotation
// whose dictionary cannot be resolved is dropped; a page whose dictionary
// cannot be read at all is an error.
func (d *fileDocument) PageAnnotations(pageNum int) ([]Annotation, error) {
	pageDict, _, _, err := d.ctx.PageDict(pageNum, false)
	if err != nil {
		return nil, fmt.Errorf("failed to read page %d: %w", pageNum, err)
	}
	if pageDict == nil {
		return nil, fmt.Errorf("page %d has no dictionary", pageNum)
	}

	annotsObj, found := pageDict.Find("Annots")
	if !found {
		return nil, nil
	}
	annotsArr, err := d.ctx.DereferenceArray(annotsObj)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference annotations of page %d: %w", pageNum, err)
	}

	pageTop, err := d.pageTop(pageNum)
	if err != nil {
		return nil, err
	}

	annotations := make([]Annotation, 0, len(annotsArr))
	for _, obj := range annotsArr {
		annotDict, err := d.ctx.DereferenceDict(obj)
		if err != nil || annotDict == nil {
			continue
		}
		annotations = append(annotations, d.annotationFromDict(annotDict, pageTop))
	}
	return annotations, nil
}

// annotationFromDict converts one annotation dictionary, normalizing its
// coordinates to top-left origin.
func (d *fileDocument) annotationFromDict(dict types.Dict, pageTop float64) Annotation {
	annot := Annotation{}

	if subtype := dict.NameEntry("Subtype"); subtype != nil {
		annot.Subtype = *subtype
	}

	// Prefer the most granular geometry available: QuadPoints over Rect.
	if quadObj, found := dict.Find("QuadPoints"); found {
		if quads, err := d.ctx.DereferenceArray(quadObj); err == nil {
			floats := d.floatValues(quads)
			for i := 1; i < len(floats); i += 2 {
				floats[i] = pageTop - floats[i]
			}
			annot.Geometry = Geometry{Kind: GeometryQuadFloats, Floats: floats}
		}
	}
	if annot.Geometry.Kind == GeometryNone {
		if rectObj, found := dict.Find("Rect"); found {
			if arr, err := d.ctx.DereferenceArray(rectObj); err == nil {
				if coords := d.floatValues(arr); len(coords) == 4 {
					annot.Geometry = Geometry{
						Kind: GeometryBounds,
						Bounds: boundingRect(
							Point{X: coords[0], Y: pageTop - coords[1]},
							Point{X: coords[2], Y: pageTop - coords[3]},
						),
					}
				}
			}
		}
	}

	if colorObj, found := dict.Find("C"); found {
		if arr, err := d.ctx.DereferenceArray(colorObj); err == nil {
			annot.StrokeColor = d.floatValues(arr)
		}
	}
	if colorObj, found := dict.Find("IC"); found {
		if arr, err := d.ctx.DereferenceArray(colorObj); err == nil {
			annot.FillColor = d.floatValues(arr)
		}
	}

	if contentsObj, found := dict.Find("Contents"); found {
		annot.Note = d.stringValue(contentsObj)
	}

	return annot
}

// pageTop returns the page's top Y coordinate in PDF user space, caching
// per page since every annotation on the page needs it.
func (d *fileDocument) pageTop(pageNum int) (float64, error) {
	if top, ok := d.pageTops[pageNum]; ok {
		return top, nil
	}

	_, _, inhAttrs, err := d.ctx.PageDict(pageNum, false)
	if err != nil {
		return 0, fmt.Errorf("failed to read page %d: %w", pageNum, err)
	}
	if inhAttrs == nil || inhAttrs.MediaBox == nil {
		return 0, fmt.Errorf("page %d has no media box", pageNum)
	}

	top := inhAttrs.MediaBox.UR.Y
	d.pageTops[pageNum] = top
	return top, nil
}

// floatValues dereferences an array of numbers, dropping anything that is
// not numeric.
func (d *fileDocument) floatValues(arr types.Array) []float64 {
	floats := make([]float64, 0, len(arr))
	for _, obj := range arr {
		resolved, err := d.ctx.Dereference(obj)
		if err != nil {
			continue
		}
		switch v := resolved.(type) {
		case types.Float:
			floats = append(floats, float64(v))
		case types.Integer:
			floats = append(floats, float64(v))
		}
	}
	return floats
}

// stringValue dereferences a text string object, decoding both literal and
// hex forms.
func (d *fileDocument) stringValue(obj types.Object) string {
	resolved, err := d.ctx.Dereference(obj)
	if err != nil {
		return ""
	}
	switch v := resolved.(type) {
	case types.StringLiteral:
		s, err := types.StringLiteralToString(v)
		if err != nil {
			return ""
		}
		return s
	case types.HexLiteral:
		s, err := types.HexLiteralToString(v)
		if err != nil {
			return ""
		}
		return s
	default:
		return ""
	}
}

// extractInfo pulls title and author from the document information
// dictionary. Extraction is best effort; a malformed info dictionary must
// not fail the document.
func extractInfo(reader *pdflib.Reader) DocumentInfo {
	var info DocumentInfo

	defer func() {
		// Some PDFs carry info dictionaries the parser chokes on.
		_ = recover()
	}()

	trailer := reader.Trailer()
	if trailer.IsNull() {
		return info
	}
	infoDict := trailer.Key("Info")
	if infoDict.IsNull() {
		return info
	}

	if title := infoDict.Key("Title"); !title.IsNull() {
		info.Title = strings.TrimSpace(title.Text())
	}
	if author := infoDict.Key("Author"); !author.IsNull() {
		info.Author = strings.TrimSpace(author.Text())
	}
	return info
}
