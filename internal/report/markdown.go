package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/lucaswerkmeister/clean-recently-used/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Recently Used Cleanup")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Item", "Value"},
		Rows: [][]string{
			{"Registry", "`" + summary.RegistryPath + "`"},
			{"Prefixes", codeList(summary.Prefixes)},
			{"Patterns", codeList(summary.Patterns)},
			{"Status", runStatus(summary.DryRun, summary.Written, summary.Existed)},
			{"Removed", strconv.Itoa(summary.RemovedCount())},
			{"Kept", strconv.Itoa(summary.Kept)},
		},
	})
	md.PlainText("")

	switch {
	case summary.DryRun && summary.HasRemovals():
		md.Note("Dry run: the registry was not modified.")
		md.PlainText("")
	case !summary.Existed:
		md.Tip("No registry file was found. Nothing to clean.")
		md.PlainText("")
	}

	md.H2("Removed Entries")
	md.PlainText("")
	if !summary.HasRemovals() {
		md.PlainText("No matching entries.")
		md.PlainText("")
	} else {
		rows := make([][]string, 0, len(summary.Removed))
		for _, e := range summary.Removed {
			rows = append(rows, []string{
				"`" + escapeCell(e.Path) + "`",
				"`" + escapeCell(e.Rule) + "`",
				escapeCell(strings.Join(e.Applications, ", ")),
				e.Modified,
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Path", "Rule", "Applications", "Modified"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

// WriteRuns outputs the runs as a Markdown table.
func (w *MarkdownWriter) WriteRuns(runs []model.Run) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Cleanup History")
	md.PlainText("")

	if len(runs) == 0 {
		md.PlainText("No runs recorded.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Time.Local().Format(timeLayout),
			"`" + escapeCell(r.RegistryPath) + "`",
			strconv.Itoa(r.Removed),
			strconv.Itoa(r.Kept),
			runStatus(r.DryRun, r.Written, r.DigestBefore != ""),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Run", "Time", "Registry", "Removed", "Kept", "Status"},
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}

func codeList(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "`" + escapeCell(s) + "`"
	}
	return strings.Join(quoted, ", ")
}

// escapeCell keeps a value from breaking the table layout.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
