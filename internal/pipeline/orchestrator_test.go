package pipeline

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdfmarks/pdfmarks/internal/bibliography"
	"github.com/pdfmarks/pdfmarks/internal/export"
	"github.com/pdfmarks/pdfmarks/internal/pdf"
)

type fakeDoc struct {
	info   pdf.DocumentInfo
	runs   map[int][]pdf.TextRun
	annots map[int][]pdf.Annotation
	pages  int
	closed bool
}

func (d *fakeDoc) NumPages() int { return d.pages }

func (d *fakeDoc) Info() pdf.DocumentInfo { return d.info }

func (d *fakeDoc) Close() error { d.closed = true; return nil }

func (d *fakeDoc) PageText(pageNum int) ([]pdf.TextRun, error) {
	return d.runs[pageNum], nil
}

func (d *fakeDoc) PageAnnotations(pageNum int) ([]pdf.Annotation, error) {
	return d.annots[pageNum], nil
}

// highlightedDoc is a one-page document with a single highlight covering the
// text "Neural &amp; symbolic systems" and carrying a note.
func highlightedDoc() *fakeDoc {
	return &fakeDoc{
		pages: 1,
		info:  pdf.DocumentInfo{Title: "Deep Learning Survey", Author: "Jane Smith; Bob Jones"},
		runs: map[int][]pdf.TextRun{
			1: {{Text: "Neural &amp; symbolic systems", Left: 0, Top: 5, Width: 120, Height: 10}},
		},
		annots: map[int][]pdf.Annotation{
			1: {{
				Subtype:  "Highlight",
				Geometry: pdf.Geometry{Kind: pdf.GeometryRectList, Rects: []pdf.Rect{{Left: 0, Top: 0, Right: 200, Bottom: 20}}},
				Note:     "  worth citing  ",
			}},
		},
	}
}

// titleScorer matches when both inputs mention the survey title.
func titleScorer(a, b string) int {
	if strings.Contains(a, "deep learning survey") && strings.Contains(strings.ToLower(b), "deep learning survey") {
		return 90
	}
	return 0
}

func newTestOrchestrator(t *testing.T, records []bibliography.Record, open OpenFunc) (*Orchestrator, string) {
	t.Helper()
	dir := t.TempDir()
	resolver := bibliography.NewResolver(records, titleScorer, slog.Default())
	o := NewOrchestrator(resolver, []export.Exporter{export.NewJSONExporter()}, dir, slog.Default())
	o.open = open
	return o, dir
}

func TestEnrichMatchedDocument(t *testing.T) {
	doc := highlightedDoc()
	records := []bibliography.Record{{ID: "smith2020", EntryType: "article", Title: "Deep Learning Survey", Year: "2020"}}
	o, _ := newTestOrchestrator(t, records, func(string) (pdf.Document, error) { return doc, nil })

	enriched, result := o.Enrich("/papers/Deep_Learning_Survey_Smith_2020.pdf")

	require.NotNil(t, enriched)
	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "smith2020", result.CitationKey)
	assert.Equal(t, 1, result.Highlights)
	assert.Equal(t, "smith2020", enriched.Meta.CitationKey)

	// Text and note pass through the sanitizer.
	require.Len(t, enriched.Data, 1)
	assert.Equal(t, "Neural & symbolic systems", enriched.Data[0].Text)
	assert.Equal(t, "worth citing", enriched.Data[0].Note)

	assert.True(t, doc.closed)
}

func TestEnrichUnmatchedDocumentDegradesToWarning(t *testing.T) {
	doc := highlightedDoc()
	o, _ := newTestOrchestrator(t, nil, func(string) (pdf.Document, error) { return doc, nil })

	enriched, result := o.Enrich("/papers/unknown.pdf")

	require.NotNil(t, enriched)
	assert.Equal(t, StatusWarning, result.Status)
	assert.Empty(t, result.CitationKey)
	assert.Equal(t, "Deep Learning Survey", enriched.Meta.Title)
	assert.Equal(t, []string{"Jane Smith", "Bob Jones"}, enriched.Meta.Authors)
	assert.Empty(t, enriched.Meta.CitationKey)
}

func TestEnrichFallsBackToFilenameTitle(t *testing.T) {
	doc := highlightedDoc()
	doc.info = pdf.DocumentInfo{}
	o, _ := newTestOrchestrator(t, nil, func(string) (pdf.Document, error) { return doc, nil })

	enriched, result := o.Enrich("/papers/untitled-scan.pdf")

	require.NotNil(t, enriched)
	assert.Equal(t, StatusWarning, result.Status)
	assert.Equal(t, "untitled-scan", enriched.Meta.Title)
}

func TestEnrichEmptyDocumentShortCircuits(t *testing.T) {
	doc := &fakeDoc{pages: 2}
	o, _ := newTestOrchestrator(t, nil, func(string) (pdf.Document, error) { return doc, nil })

	enriched, result := o.Enrich("/papers/clean.pdf")

	assert.Nil(t, enriched)
	assert.Equal(t, StatusEmpty, result.Status)
	assert.Equal(t, 0, result.Highlights)
}

func TestEnrichOpenFailure(t *testing.T) {
	o, _ := newTestOrchestrator(t, nil, func(string) (pdf.Document, error) {
		return nil, errors.New("corrupt header")
	})

	enriched, result := o.Enrich("/papers/broken.pdf")

	assert.Nil(t, enriched)
	assert.Equal(t, StatusFailed, result.Status)
	assert.ErrorContains(t, result.Err, "corrupt header")
}

func TestProcessFileWritesExports(t *testing.T) {
	o, dir := newTestOrchestrator(t, nil, func(string) (pdf.Document, error) { return highlightedDoc(), nil })

	result := o.ProcessFile("/papers/survey.pdf")

	assert.Equal(t, StatusWarning, result.Status)
	content, err := os.ReadFile(filepath.Join(dir, "json", "survey.json"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"Neural & symbolic systems"`)
}

func TestProcessFileEmptyWritesNothing(t *testing.T) {
	o, dir := newTestOrchestrator(t, nil, func(string) (pdf.Document, error) {
		return &fakeDoc{pages: 1}, nil
	})

	result := o.ProcessFile("/papers/clean.pdf")

	assert.Equal(t, StatusEmpty, result.Status)
	_, err := os.Stat(filepath.Join(dir, "json"))
	assert.True(t, os.IsNotExist(err))
}

func TestProcessAggregatesSummary(t *testing.T) {
	docs := map[string]func() (pdf.Document, error){
		"/papers/a.pdf": func() (pdf.Document, error) { return highlightedDoc(), nil },
		"/papers/b.pdf": func() (pdf.Document, error) { return &fakeDoc{pages: 1}, nil },
		"/papers/c.pdf": func() (pdf.Document, error) { return nil, errors.New("unreadable") },
	}
	o, _ := newTestOrchestrator(t, nil, func(path string) (pdf.Document, error) { return docs[path]() })

	summary := o.Process([]string{"/papers/a.pdf", "/papers/b.pdf", "/papers/c.pdf"})

	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 0, summary.Succeeded)
	assert.Equal(t, 1, summary.Warnings)
	assert.Equal(t, 1, summary.Empty)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Highlights)
	assert.True(t, summary.HasFailures())
	assert.Len(t, summary.Results, 3)
}

func TestProcessBatchFiltersPDFs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.pdf", "b.PDF", "notes.txt", "c.pdf.bak"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf.d"), 0o750))

	var opened []string
	o, _ := newTestOrchestrator(t, nil, func(path string) (pdf.Document, error) {
		opened = append(opened, filepath.Base(path))
		return &fakeDoc{pages: 1}, nil
	})

	summary, err := o.ProcessBatch(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "b.PDF"}, opened)
	assert.Equal(t, 2, summary.Empty)
}

func TestProcessBatchMissingDirectory(t *testing.T) {
	o, _ := newTestOrchestrator(t, nil, nil)
	_, err := o.ProcessBatch("/does/not/exist")
	assert.Error(t, err)
}

func TestSplitAuthors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"semicolons", "Jane Smith; Bob Jones", []string{"Jane Smith", "Bob Jones"}},
		{"commas", "Jane Smith, Bob Jones", []string{"Jane Smith", "Bob Jones"}},
		{"and", "Jane Smith and Bob Jones", []string{"Jane Smith", "Bob Jones"}},
		{"single", "Jane Smith", []string{"Jane Smith"}},
		{"empty", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitAuthors(tt.input))
		})
	}
}
