// Package notify reports a run summary to the user: always to stdout, and
// additionally as a desktop notification when one can be delivered.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gen2brain/beeep"

	"github.com/pdfmarks/pdfmarks/internal/pipeline"
)

const notificationTitle = "PDF Highlight Extraction"

// Notifier renders run summaries. Failures to deliver a desktop
// notification are logged and swallowed; reporting must never change the
// outcome of the run it reports on.
type Notifier struct {
	out     io.Writer
	logger  *slog.Logger
	desktop bool
}

// NewNotifier creates a notifier writing its summary to out. When desktop is
// true the summary is also sent as a desktop notification.
func NewNotifier(out io.Writer, desktop bool, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{out: out, logger: logger, desktop: desktop}
}

// Summarize reports the outcome of a run.
func (n *Notifier) Summarize(summary pipeline.Summary) {
	body := formatSummary(summary)

	fmt.Fprintf(n.out, "\n=== %s Summary ===\n\n%s\n", notificationTitle, body)

	if !n.desktop {
		return
	}
	if err := beeep.Notify(notificationTitle, body, ""); err != nil {
		n.logger.Warn("desktop notification failed", "error", err)
	}
}

// formatSummary builds the human-readable summary body.
func formatSummary(s pipeline.Summary) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("Files processed: %d", s.Processed))
	lines = append(lines, fmt.Sprintf("Highlights exported: %d", s.Highlights))
	if s.Succeeded > 0 {
		lines = append(lines, fmt.Sprintf("Enriched successfully: %d", s.Succeeded))
	}
	if s.Warnings > 0 {
		lines = append(lines, fmt.Sprintf("Without bibliography match: %d", s.Warnings))
	}
	if s.Empty > 0 {
		lines = append(lines, fmt.Sprintf("Without highlights: %d", s.Empty))
	}
	if s.Failed > 0 {
		lines = append(lines, fmt.Sprintf("Failed: %d", s.Failed))
	}
	lines = append(lines, fmt.Sprintf("Time elapsed: %s", formatElapsed(s.Elapsed.Seconds())))

	return strings.Join(lines, "\n")
}

// formatElapsed renders seconds as "Xm Ys", dropping the minutes part for
// sub-minute runs.
func formatElapsed(seconds float64) string {
	mins := int(seconds) / 60
	secs := int(seconds) % 60
	if mins > 0 {
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
	return fmt.Sprintf("%ds", secs)
}
