package bibliography

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nickng/bibtex"
)

// Loader reads BibTeX files into a queryable record set. The corpus is
// reloaded fresh on every invocation; nothing is cached across runs.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new bibliography loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// LoadFile parses the BibTeX file at path into records. A file that cannot
// be opened or parsed at all is a fatal error; individual entries without a
// citation key or title are skipped with a warning.
func (l *Loader) LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open bibliography file: %w", err)
	}
	defer f.Close()

	records, err := l.load(f)
	if err != nil {
		return nil, fmt.Errorf("cannot parse bibliography file %s: %w", path, err)
	}
	return records, nil
}

func (l *Loader) load(r io.Reader) ([]Record, error) {
	bib, err := bibtex.Parse(r)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(bib.Entries))
	for _, entry := range bib.Entries {
		rec := Record{
			ID:          entry.CiteName,
			EntryType:   entry.Type,
			Title:       decodeLaTeX(fieldValue(entry, "title")),
			Year:        decodeLaTeX(fieldValue(entry, "year")),
			AuthorField: decodeLaTeX(fieldValue(entry, "author")),
			EditorField: decodeLaTeX(fieldValue(entry, "editor")),
			DOI:         fieldValue(entry, "doi"),
			URL:         fieldValue(entry, "url"),
		}

		if rec.ID == "" && rec.Title == "" {
			l.logger.Warn("skipping bibliography entry without citation key or title",
				"entry_type", rec.EntryType)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func fieldValue(entry *bibtex.BibEntry, name string) string {
	if v, ok := entry.Fields[name]; ok && v != nil {
		return v.String()
	}
	return ""
}
