package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Highlights"

// XLSXExporter renders the same table as the CSV exporter into an XLSX
// workbook, for users who import into a spreadsheet directly.
type XLSXExporter struct{}

// NewXLSXExporter creates an XLSX workbook exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

func (e *XLSXExporter) Format() string    { return "xlsx" }
func (e *XLSXExporter) Extension() string { return ".xlsx" }

// Export builds a single-sheet workbook with one row per highlight.
func (e *XLSXExporter) Export(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return nil, fmt.Errorf("cannot create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if defaultSheet := f.GetSheetName(0); defaultSheet != xlsxSheet {
		_ = f.DeleteSheet(defaultSheet)
	}

	for i, h := range csvHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(xlsxSheet, cell, h); err != nil {
			return nil, fmt.Errorf("cannot write header cell: %w", err)
		}
	}

	for rowIdx, h := range doc.Data {
		row := rowIdx + 2
		values := []any{
			doc.Meta.Title,
			strings.Join(doc.Meta.Authors, ", "),
			csvCategory,
			doc.Meta.URL,
			h.Text,
			h.Note,
			pageLocation(h.PageNumber),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return nil, fmt.Errorf("cannot write cell %s: %w", cell, err)
			}
		}
	}

	// Widen the text-heavy columns.
	_ = f.SetColWidth(xlsxSheet, "A", "A", 32) // title
	_ = f.SetColWidth(xlsxSheet, "B", "B", 24) // authors
	_ = f.SetColWidth(xlsxSheet, "E", "E", 64) // highlight
	_ = f.SetColWidth(xlsxSheet, "F", "F", 40) // note

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("cannot serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
