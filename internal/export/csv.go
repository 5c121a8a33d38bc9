package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// Fixed category label for the spreadsheet table.
const csvCategory = "articles"

// csvHeaders are the column names the downstream reading tool requires.
var csvHeaders = []string{"Title", "Author", "Category", "Source URL", "Highlight", "Note", "Location"}

// CSVExporter renders one spreadsheet row per highlight.
type CSVExporter struct{}

// NewCSVExporter creates a spreadsheet-table CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) Format() string    { return "csv" }
func (e *CSVExporter) Extension() string { return ".csv" }

// Export writes the header row followed by one row per highlight.
func (e *CSVExporter) Export(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("cannot write CSV header: %w", err)
	}
	for _, h := range doc.Data {
		row := []string{
			doc.Meta.Title,
			strings.Join(doc.Meta.Authors, ", "),
			csvCategory,
			doc.Meta.URL,
			h.Text,
			h.Note,
			pageLocation(h.PageNumber),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("cannot write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("cannot flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// pageLocation formats the page reference shown in table rows.
func pageLocation(pageNumber int) string {
	return fmt.Sprintf("Page %d", pageNumber)
}
