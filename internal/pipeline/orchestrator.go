// Package pipeline sequences extraction, identity resolution, metadata
// normalization, sanitization and export for one or many documents.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pdfmarks/pdfmarks/internal/bibliography"
	"github.com/pdfmarks/pdfmarks/internal/export"
	"github.com/pdfmarks/pdfmarks/internal/pdf"
	"github.com/pdfmarks/pdfmarks/internal/sanitize"
)

// OpenFunc opens a document for processing. It exists so tests can substitute
// in-memory documents for real files.
type OpenFunc func(path string) (pdf.Document, error)

// Orchestrator runs the pipeline: extract highlights, resolve the document's
// identity against the bibliography, normalize metadata, sanitize text, and
// hand the enriched document to the configured exporters.
type Orchestrator struct {
	extractor *pdf.Extractor
	resolver  *bibliography.Resolver
	exporters []export.Exporter
	outputDir string
	open      OpenFunc
	logger    *slog.Logger
}

// NewOrchestrator creates a pipeline over a resolver and a set of exporters.
// Outputs land under outputDir in one subdirectory per format.
func NewOrchestrator(resolver *bibliography.Resolver, exporters []export.Exporter, outputDir string, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		extractor: pdf.NewExtractor(logger),
		resolver:  resolver,
		exporters: exporters,
		outputDir: outputDir,
		open:      pdf.Open,
		logger:    logger,
	}
}

// Extract runs only the extraction and sanitization stages, returning the
// document's highlights without touching the bibliography.
func (o *Orchestrator) Extract(path string) ([]pdf.Highlight, error) {
	doc, err := o.open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open document: %w", err)
	}
	defer func() { _ = doc.Close() }()

	highlights, err := o.extractor.ExtractHighlights(doc)
	if err != nil {
		return nil, fmt.Errorf("cannot extract highlights: %w", err)
	}
	sanitizeHighlights(highlights)
	return highlights, nil
}

// Enrich runs the full pipeline for one document and returns the enriched
// record alongside its status. The returned document is nil unless the
// status is success or warning.
func (o *Orchestrator) Enrich(path string) (*export.Document, Result) {
	result := Result{Path: path, Status: StatusFailed}

	doc, err := o.open(path)
	if err != nil {
		result.Err = fmt.Errorf("cannot open document: %w", err)
		return nil, result
	}
	defer func() { _ = doc.Close() }()

	highlights, err := o.extractor.ExtractHighlights(doc)
	if err != nil {
		result.Err = fmt.Errorf("cannot extract highlights: %w", err)
		return nil, result
	}
	if len(highlights) == 0 {
		result.Status = StatusEmpty
		return nil, result
	}
	sanitizeHighlights(highlights)
	result.Highlights = len(highlights)

	info := doc.Info()
	candidate := bibliography.Candidate{
		Title:    info.Title,
		Authors:  splitAuthors(info.Author),
		Filename: filepath.Base(path),
	}

	var meta bibliography.Metadata
	if rec, ok := o.resolver.Resolve(candidate); ok {
		meta = bibliography.NormalizeRecord(rec)
		result.Status = StatusSuccess
		result.CitationKey = rec.ID
	} else {
		meta = bibliography.FallbackMetadata(fallbackTitle(info.Title, path), candidate.Authors)
		result.Status = StatusWarning
		o.logger.Warn("no bibliography match, using document metadata",
			"path", path, "title", meta.Title)
	}

	return &export.Document{Meta: meta, Data: highlights}, result
}

// ProcessFile enriches one document and writes every configured export.
// An export failure downgrades the result to failed; outputs already
// written stay in place.
func (o *Orchestrator) ProcessFile(path string) Result {
	doc, result := o.Enrich(path)
	if doc == nil {
		return result
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, exporter := range o.exporters {
		data, err := exporter.Export(*doc)
		if err != nil {
			result.Status = StatusFailed
			result.Err = fmt.Errorf("%s export failed: %w", exporter.Format(), err)
			return result
		}

		outPath := filepath.Join(o.outputDir, exporter.Format(), base+exporter.Extension())
		if err := export.WriteFileAtomic(outPath, data); err != nil {
			result.Status = StatusFailed
			result.Err = fmt.Errorf("%s export failed: %w", exporter.Format(), err)
			return result
		}
		o.logger.Debug("wrote export", "path", outPath, "format", exporter.Format())
	}

	return result
}

// Process runs the pipeline over the given documents, independently per
// document, and aggregates the outcome.
func (o *Orchestrator) Process(paths []string) Summary {
	start := time.Now()
	var summary Summary
	for _, path := range paths {
		result := o.ProcessFile(path)
		if result.Err != nil {
			o.logger.Error("processing failed", "path", path, "error", result.Err)
		}
		summary.add(result)
	}
	summary.Elapsed = time.Since(start)
	return summary
}

// ProcessBatch processes every PDF directly inside dir, in name order.
func (o *Orchestrator) ProcessBatch(dir string) (Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Summary{}, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return o.Process(paths), nil
}

// sanitizeHighlights flattens highlight text and notes in place.
func sanitizeHighlights(highlights []pdf.Highlight) {
	for i := range highlights {
		highlights[i].Text = sanitize.String(highlights[i].Text)
		highlights[i].Note = sanitize.String(highlights[i].Note)
	}
}

// authorSepRe splits an embedded author string on the separators documents
// use in practice.
var authorSepRe = regexp.MustCompile(`\s*[,;]\s*|\s+and\s+`)

// splitAuthors splits a document's embedded author field into individual
// names.
func splitAuthors(field string) []string {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	var authors []string
	for _, name := range authorSepRe.Split(field, -1) {
		if name = strings.TrimSpace(name); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}

// fallbackTitle prefers the embedded title and falls back to the file name
// stem so degraded metadata is never completely blank.
func fallbackTitle(title, path string) string {
	if strings.TrimSpace(title) != "" {
		return title
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
