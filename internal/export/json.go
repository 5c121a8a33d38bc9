package export

import (
	"encoding/json"
	"fmt"
)

// JSONExporter renders the canonical record: {"meta": {...}, "data": [...]}.
type JSONExporter struct{}

// NewJSONExporter creates a canonical-record JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (e *JSONExporter) Format() string    { return "json" }
func (e *JSONExporter) Extension() string { return ".json" }

// Export marshals the enriched document with indentation.
func (e *JSONExporter) Export(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("cannot marshal enriched document: %w", err)
	}
	return append(data, '\n'), nil
}
