package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// colorTags maps highlight colors to note-taking tags. Unknown colors simply
// get no tag line.
var colorTags = map[string]string{
	"#b9e8b9": "#important-pdf",
	"#c3e1f8": "#reference-note-pdf",
	"#f0bbcd": "#secondary-pdf",
	"#f9e196": "#general-pdf",
}

// TagForColor returns the note tag associated with a highlight color.
func TagForColor(color string) (string, bool) {
	tag, ok := colorTags[color]
	return tag, ok
}

// MarkdownExporter renders an enriched document as a note file: YAML front
// matter describing the source, then one list entry per highlight.
type MarkdownExporter struct{}

// NewMarkdownExporter creates a note-file Markdown exporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

func (e *MarkdownExporter) Format() string    { return "markdown" }
func (e *MarkdownExporter) Extension() string { return ".md" }

// Export renders front matter plus the highlight entries.
func (e *MarkdownExporter) Export(doc Document) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("---\n")
	if err := writeFrontMatter(&buf, doc); err != nil {
		return nil, fmt.Errorf("cannot encode front matter: %w", err)
	}
	buf.WriteString("---\n\n")

	for _, h := range doc.Data {
		buf.WriteString("- " + h.Text + "\n")
		buf.WriteString("> page: `" + strconv.Itoa(h.PageNumber) + "`\n")

		if tag, ok := TagForColor(h.Color); ok {
			buf.WriteString("> tags: " + tag + "\n")
		}

		if note := strings.TrimSpace(h.Note); note != "" && !sameModuloWhitespace(note, h.Text) {
			buf.WriteString("\n>[!memo]\n")
			for _, line := range strings.Split(note, "\n") {
				buf.WriteString("> " + line + "\n")
			}
		}

		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// writeFrontMatter encodes the metadata block. Key order matters for diffs
// against previously exported notes, so the mapping is built node by node
// instead of marshaling a struct.
func writeFrontMatter(buf *bytes.Buffer, doc Document) error {
	meta := doc.Meta
	root := &yaml.Node{Kind: yaml.MappingNode}

	appendPair(root, "title", quotedScalar(meta.Title))
	appendPair(root, "year", plainScalar(meta.Year))

	for i, author := range meta.Authors {
		appendPair(root, fmt.Sprintf("author-%d", i+1), quotedScalar("[["+author+"]]"))
	}
	for i, editor := range meta.Editors {
		appendPair(root, fmt.Sprintf("editor-%d", i+1), quotedScalar("[["+editor+"]]"))
	}

	if meta.CitationKey != "" {
		appendPair(root, "citation-key", quotedScalar("[[@"+meta.CitationKey+"]]"))
	}

	appendPair(root, "highlights", plainScalar(strconv.Itoa(len(doc.Data))))

	if meta.EntryType != "" {
		appendPair(root, "type", quotedScalar("#"+meta.EntryType+"-pdf"))
	}

	if meta.Title != "" || meta.ShortTitle != "" {
		aliases := &yaml.Node{Kind: yaml.SequenceNode}
		if meta.Title != "" {
			aliases.Content = append(aliases.Content, quotedScalar(meta.Title))
		}
		if meta.ShortTitle != "" {
			aliases.Content = append(aliases.Content, quotedScalar(meta.ShortTitle))
		}
		appendPair(root, "aliases", aliases)
	}

	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

func appendPair(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content, plainScalar(key), value)
}

func plainScalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

func quotedScalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: value}
}

// sameModuloWhitespace reports whether two strings are equal once runs of
// whitespace are collapsed. A sidebar note that merely repeats the
// highlighted text adds nothing worth a callout.
func sameModuloWhitespace(a, b string) bool {
	return strings.Join(strings.Fields(a), " ") == strings.Join(strings.Fields(b), " ")
}
