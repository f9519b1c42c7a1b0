package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/lucaswerkmeister/clean-recently-used/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose adds the matching rule and applications of each entry.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the summary in human-readable format.
func (w *SimpleWriter) Write(summary *model.Summary) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Registry: %s\n", summary.RegistryPath)
	if len(summary.Prefixes) > 0 {
		fmt.Fprintf(&sb, "Prefixes: %s\n", strings.Join(summary.Prefixes, ", "))
	}
	if len(summary.Patterns) > 0 {
		fmt.Fprintf(&sb, "Patterns: %s\n", strings.Join(summary.Patterns, ", "))
	}
	fmt.Fprintf(&sb, "Status:   %s\n", runStatus(summary.DryRun, summary.Written, summary.Existed))
	sb.WriteString("\n")

	verb := "Removed"
	if summary.DryRun {
		verb = "Would remove"
	}

	if !summary.HasRemovals() {
		sb.WriteString("No matching entries.\n")
	} else {
		fmt.Fprintf(&sb, "%s %d %s:\n", verb, summary.RemovedCount(), plural(summary.RemovedCount(), "entry", "entries"))
		for _, e := range summary.Removed {
			fmt.Fprintf(&sb, "  - %s\n", e.Path)
			if w.verbose {
				fmt.Fprintf(&sb, "      rule: %s\n", e.Rule)
				if len(e.Applications) > 0 {
					fmt.Fprintf(&sb, "      apps: %s\n", strings.Join(e.Applications, ", "))
				}
			}
		}
	}
	fmt.Fprintf(&sb, "Kept %d %s.\n", summary.Kept, plural(summary.Kept, "entry", "entries"))

	return io.WriteString(w.output, sb.String())
}

// WriteRuns outputs one line per run, newest first.
func (w *SimpleWriter) WriteRuns(runs []model.Run) (int, error) {
	if len(runs) == 0 {
		return io.WriteString(w.output, "No runs recorded.\n")
	}

	var sb strings.Builder
	for _, r := range runs {
		status := runStatus(r.DryRun, r.Written, r.DigestBefore != "")
		fmt.Fprintf(&sb, "#%d  %s  removed=%d kept=%d  %s\n",
			r.ID, r.Time.Local().Format(timeLayout), r.Removed, r.Kept, status)
		if w.verbose {
			fmt.Fprintf(&sb, "     registry: %s\n", r.RegistryPath)
			if len(r.Prefixes) > 0 {
				fmt.Fprintf(&sb, "     prefixes: %s\n", strings.Join(r.Prefixes, ", "))
			}
			if len(r.Patterns) > 0 {
				fmt.Fprintf(&sb, "     patterns: %s\n", strings.Join(r.Patterns, ", "))
			}
		}
	}
	return io.WriteString(w.output, sb.String())
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
