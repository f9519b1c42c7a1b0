package report

import (
	"io"

	"github.com/lucaswerkmeister/clean-recently-used/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the summary of one purge run.
	// Returns the number of bytes written and any error encountered.
	Write(summary *model.Summary) (int, error)

	// WriteRuns outputs journal history, newest first.
	WriteRuns(runs []model.Run) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the summary to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(summary *model.Summary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteRuns outputs the runs to all configured Writers.
func (m *MultiWriter) WriteRuns(runs []model.Run) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteRuns(runs)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Format selects a Writer implementation.
type Format int

const (
	// FormatSimple is the human-readable text format.
	FormatSimple Format = iota
	// FormatJSON is indented JSON.
	FormatJSON
	// FormatMarkdown is GitHub-flavored Markdown.
	FormatMarkdown
)

// New returns the Writer for format writing to output.
func New(format Format, output io.Writer) Writer {
	switch format {
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint())
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	default:
		return NewSimpleWriter(output)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// timeLayout is used for run times in text and Markdown output.
const timeLayout = "2006-01-02 15:04:05 MST"

// runStatus describes what a run did to the registry file.
func runStatus(dryRun, written, existed bool) string {
	switch {
	case dryRun:
		return "dry run"
	case written:
		return "rewritten"
	case !existed:
		return "no registry"
	default:
		return "unchanged"
	}
}
