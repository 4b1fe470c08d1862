package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/linkguard/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs reports as Markdown documents.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the summary and a link table for every page.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Linkguard Report")
	md.PlainText("")
	md.PlainTextf("Generated %s", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	md.PlainText("")

	w.writeSummary(md, report.Summary)
	w.writePages(md, report.Pages)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteSummary outputs only the summary section.
func (w *MarkdownWriter) WriteSummary(summary model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Linkguard Summary")
	md.PlainText("")
	w.writeSummary(md, summary)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeSummary writes the counts table, chart and alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, s model.Summary) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Kind", "Count"},
		Rows: [][]string{
			{"Pages", strconv.Itoa(s.Pages)},
			{"Failed pages", strconv.Itoa(s.FailedPages)},
			{"External", strconv.Itoa(s.External)},
			{"Internal", strconv.Itoa(s.Internal)},
			{"Skipped", strconv.Itoa(s.Skipped)},
			{"Malformed", strconv.Itoa(s.Malformed)},
			{"Decorated", strconv.Itoa(s.Decorated)},
			{"**Links**", "**" + strconv.Itoa(s.Links) + "**"},
		},
	})
	md.PlainText("")

	if s.Links > 0 {
		w.writePieChart(md, s)
	}

	switch {
	case s.FailedPages > 0:
		md.Warningf("%d page(s) could not be annotated.", s.FailedPages)
	case s.HasExternal():
		md.Note(fmt.Sprintf("%d external link(s) now ask for confirmation before leaving the site.", s.External))
	default:
		md.Tip("No external links found.")
	}
	md.PlainText("")

	if len(s.ExternalHosts) > 0 {
		md.H3("External hosts")
		md.PlainText("")
		md.BulletList(s.ExternalHosts...)
		md.PlainText("")
	}
}

// writePieChart writes a mermaid pie chart of link kinds.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, s model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Link Kinds"),
		piechart.WithShowData(true),
	)

	kinds := []struct {
		label string
		count int
	}{
		{"External", s.External},
		{"Internal", s.Internal},
		{"Skipped", s.Skipped},
		{"Malformed", s.Malformed},
	}
	for _, k := range kinds {
		if k.count > 0 {
			chart.LabelAndIntValue(k.label, uint64(k.count)) //nolint:gosec // counts are never negative
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writePages writes the external links of each page.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, pages []*model.Page) {
	md.H2("Pages")
	md.PlainText("")

	if len(pages) == 0 {
		md.PlainText("No pages processed.")
		md.PlainText("")
		return
	}

	for _, p := range pages {
		md.H3(p.Path)
		md.PlainText("")
		md.PlainTextf("Location: `%s`, status: %s", p.Location, pageStatus(p))
		md.PlainText("")

		external := p.ExternalLinks()
		if len(external) == 0 {
			md.PlainText("No external links.")
			md.PlainText("")
			continue
		}

		rows := make([][]string, len(external))
		for i, l := range external {
			decorated := "no"
			if l.Decorated {
				decorated = "yes"
			}
			rows[i] = []string{
				truncateString(l.Href, 60),
				l.Host,
				decorated,
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Href", "Host", "Icon added"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by linkguard*")
}
