// Package bibliography loads BibTeX corpora, resolves document identity
// against them and normalizes matched records into canonical metadata.
package bibliography

// Record represents one entry of a loaded bibliography corpus. Field values
// are Unicode-normalized; author and editor fields keep their raw BibTeX
// "and"-delimited form until name parsing.
type Record struct {
	ID          string `json:"id"`
	EntryType   string `json:"entry_type"`
	Title       string `json:"title"`
	Year        string `json:"year"`
	AuthorField string `json:"author_field"`
	EditorField string `json:"editor_field"`
	DOI         string `json:"doi,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Authors returns the parsed "First Last" author names of the record.
func (r Record) Authors() []string {
	return ParseNames(r.AuthorField)
}

// Editors returns the parsed "First Last" editor names of the record.
func (r Record) Editors() []string {
	return ParseNames(r.EditorField)
}
