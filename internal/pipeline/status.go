package pipeline

import "time"

// Status classifies the outcome of processing one document.
type Status string

const (
	// StatusSuccess means highlights were extracted and enriched with a
	// matched bibliography record.
	StatusSuccess Status = "success"
	// StatusWarning means highlights were extracted but no bibliography
	// record matched, so the metadata is degraded fallback metadata.
	StatusWarning Status = "warning"
	// StatusEmpty means the document was readable but contains no
	// highlights; no outputs are written.
	StatusEmpty Status = "empty"
	// StatusFailed means the document could not be processed at all.
	StatusFailed Status = "failed"
)

// Result is the per-document outcome of a pipeline run.
type Result struct {
	Path        string
	Status      Status
	Highlights  int
	CitationKey string
	Err         error
}

// Summary aggregates the results of one invocation.
type Summary struct {
	Processed  int
	Succeeded  int
	Warnings   int
	Empty      int
	Failed     int
	Highlights int
	Elapsed    time.Duration
	Results    []Result
}

// add folds one result into the tallies.
func (s *Summary) add(r Result) {
	s.Processed++
	s.Highlights += r.Highlights
	switch r.Status {
	case StatusSuccess:
		s.Succeeded++
	case StatusWarning:
		s.Warnings++
	case StatusEmpty:
		s.Empty++
	case StatusFailed:
		s.Failed++
	}
	s.Results = append(s.Results, r)
}

// HasFailures reports whether any document failed fatally. Warning and
// empty outcomes do not count; they still produce a zero exit.
func (s *Summary) HasFailures() bool {
	return s.Failed > 0
}
