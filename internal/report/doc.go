// Package report renders purge summaries and journal history.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: Markdown output for notes and issue comments
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report
