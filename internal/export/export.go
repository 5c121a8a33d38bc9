// Package export serializes enriched documents into the interchange
// formats consumed by downstream note-taking and citation tools.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfmarks/pdfmarks/internal/bibliography"
	"github.com/pdfmarks/pdfmarks/internal/pdf"
)

// Directory permissions for created output directories.
const dirPerm = 0o750

// Document is the unit handed to serializers: canonical metadata plus the
// ordered, sanitized highlights of one source document. It is never
// constructed with an empty highlight list; the pipeline short-circuits
// before serialization in that case.
type Document struct {
	Meta bibliography.Metadata `json:"meta"`
	Data []pdf.Highlight       `json:"data"`
}

// Exporter renders an enriched document into one output format.
type Exporter interface {
	// Format names the exporter, e.g. "json".
	Format() string
	// Extension returns the output file extension including the dot.
	Extension() string
	// Export renders the document to bytes.
	Export(doc Document) ([]byte, error)
}

// WriteFileAtomic writes data to path via a temp file and rename, creating
// the parent directory when missing. Readers never observe a partially
// written output file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".pdfmarks-*")
	if err != nil {
		return fmt.Errorf("cannot create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cannot write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cannot close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("cannot move output into place: %w", err)
	}
	return nil
}
