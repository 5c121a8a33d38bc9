package bibliography

import (
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Match acceptance thresholds. The id boost reflects that a citation-key hit
// is a stronger signal than a title substring for convention-named files.
const (
	filenameIDThreshold    = 75
	filenameTitleThreshold = 80
	titleThreshold         = 80
	idScoreBoost           = 1.05
)

// Scorer computes a 0-100 token-set similarity between two strings.
type Scorer func(a, b string) int

// TokenSetRatio is the default Scorer, an order-insensitive token-set
// similarity in [0, 100].
func TokenSetRatio(a, b string) int {
	return fuzzy.TokenSetRatio(a, b)
}

// Candidate describes the uncertain identity of a document to be matched
// against the corpus. Title and Authors come from embedded document
// metadata; Filename is the document's base file name.
type Candidate struct {
	Title    string
	Authors  []string
	Filename string
}

// Resolver selects the best bibliography record for a document candidate.
//
// Two independent strategies are tried in priority order, first hit wins:
// a filename-based lookup against record ids and titles (primary, since a
// Title_Authors_Year naming convention is a more reliable signal than
// embedded metadata), and a title+author fuzzy match as fallback.
type Resolver struct {
	records []Record
	score   Scorer
	logger  *slog.Logger
}

// NewResolver creates a resolver over a loaded corpus. The corpus is treated
// as read-only; passing a nil scorer selects TokenSetRatio.
func NewResolver(records []Record, score Scorer, logger *slog.Logger) *Resolver {
	if score == nil {
		score = TokenSetRatio
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{records: records, score: score, logger: logger}
}

// Resolve returns the best-matching record for the candidate, or false when
// neither strategy produces an acceptable match.
func (r *Resolver) Resolve(c Candidate) (Record, bool) {
	if rec, ok := r.matchFilename(c.Filename); ok {
		r.logger.Debug("resolved by filename", "filename", c.Filename, "id", rec.ID)
		return rec, true
	}
	if rec, ok := r.matchTitleAuthors(c.Title, c.Authors); ok {
		r.logger.Debug("resolved by title and authors", "title", c.Title, "id", rec.ID)
		return rec, true
	}
	return Record{}, false
}

// filenameMatch accumulates the best filename-strategy candidate as a pure
// fold over the corpus.
type filenameMatch struct {
	record     Record
	idScore    int
	titleScore int
	combined   float64
}

func (r *Resolver) matchFilename(filename string) (Record, bool) {
	normalized := normalizeFilename(filename)
	if normalized == "" {
		return Record{}, false
	}

	var best filenameMatch
	for _, rec := range r.records {
		idScore := r.score(normalized, strings.ToLower(rec.ID))
		titleScore := r.score(normalized, strings.ToLower(rec.Title))
		combined := max(float64(idScore)*idScoreBoost, float64(titleScore))
		if combined > best.combined {
			best = filenameMatch{record: rec, idScore: idScore, titleScore: titleScore, combined: combined}
		}
	}

	if best.idScore >= filenameIDThreshold || best.titleScore >= filenameTitleThreshold {
		return best.record, true
	}
	return Record{}, false
}

// titleAuthorMatch accumulates the best fallback-strategy candidate.
type titleAuthorMatch struct {
	record Record
	total  int
	found  bool
}

func (r *Resolver) matchTitleAuthors(title string, authors []string) (Record, bool) {
	if strings.TrimSpace(title) == "" {
		return Record{}, false
	}

	var best titleAuthorMatch
	for _, rec := range r.records {
		titleScore := r.score(title, rec.Title)
		if titleScore <= titleThreshold {
			continue
		}

		authorScore := 0
		recAuthors := rec.Authors()
		if len(authors) > 0 && len(recAuthors) > 0 {
			authorScore = r.score(sortedJoin(authors), sortedJoin(recAuthors))
		}

		// Strict > keeps the first record encountered on ties.
		if total := titleScore + authorScore; !best.found || total > best.total {
			best = titleAuthorMatch{record: rec, total: total, found: true}
		}
	}
	return best.record, best.found
}

// extensionRe matches a trailing extension-like suffix such as ".pdf".
var extensionRe = regexp.MustCompile(`\.[A-Za-z0-9]{1,4}$`)

// normalizeFilename lowercases a candidate file name, strips an extension
// suffix, maps the conventional separators to spaces and collapses
// whitespace.
func normalizeFilename(filename string) string {
	name := strings.ToLower(filepath.Base(strings.TrimSpace(filename)))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	name = extensionRe.ReplaceAllString(name, "")
	name = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}

// sortedJoin joins names alphabetically so author comparison is insensitive
// to declaration order.
func sortedJoin(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}
