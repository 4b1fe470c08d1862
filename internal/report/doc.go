// Package report writes the results of an annotation run.
//
// Three formats are available:
//   - SimpleWriter: plain text for the terminal
//   - JSONWriter: structured output for other tools
//   - MarkdownWriter: a Markdown document with tables and a link chart
//
// Report data lives in the model package; this package only formats it.
// Every writer implements Writer, so formats can be combined with
// MultiWriter.
package report
