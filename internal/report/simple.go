package report

import (
	"io"
	"strings"

	"github.com/nao1215/linkguard/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SimpleWriter outputs plain-text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// printer formats counts with thousands separators.
	printer *message.Printer

	// verbose lists every link, not only the external ones.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose lists every link of every page.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithLanguage sets the language used for number formatting.
func WithLanguage(tag language.Tag) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.printer = message.NewPrinter(tag)
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.English),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the summary followed by the links of each page.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb)
	w.writeSummary(&sb, report.Summary)
	w.writePages(&sb, report.Pages)
	w.writeRule(&sb, "=")

	return io.WriteString(w.output, sb.String())
}

// WriteSummary outputs only the summary counts.
func (w *SimpleWriter) WriteSummary(summary model.Summary) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb)
	w.writeSummary(&sb, summary)
	w.writeRule(&sb, "=")

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeRule(sb *strings.Builder, char string) {
	sb.WriteString(strings.Repeat(char, 70))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder) {
	w.writeRule(sb, "=")
	sb.WriteString("                      LINKGUARD REPORT\n")
	w.writeRule(sb, "=")
	sb.WriteString("\n")
}

// writeSummary writes the link counts.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, s model.Summary) {
	sb.WriteString(w.printer.Sprintf("  Pages:      %d (%d failed)\n", s.Pages, s.FailedPages))
	sb.WriteString(w.printer.Sprintf("  Links:      %d\n", s.Links))
	sb.WriteString(w.printer.Sprintf("  External:   %d\n", s.External))
	sb.WriteString(w.printer.Sprintf("  Internal:   %d\n", s.Internal))
	sb.WriteString(w.printer.Sprintf("  Skipped:    %d\n", s.Skipped))
	sb.WriteString(w.printer.Sprintf("  Malformed:  %d\n", s.Malformed))
	sb.WriteString(w.printer.Sprintf("  Decorated:  %d\n", s.Decorated))
	sb.WriteString("\n")

	if len(s.ExternalHosts) > 0 {
		sb.WriteString("  External hosts:\n")
		for _, h := range s.ExternalHosts {
			sb.WriteString("    [+] " + h + "\n")
		}
		sb.WriteString("\n")
	}
}

// writePages writes one section per page.
func (w *SimpleWriter) writePages(sb *strings.Builder, pages []*model.Page) {
	title := cases.Title(language.English)

	for _, p := range pages {
		w.writeRule(sb, "-")
		sb.WriteString(p.Path + " (" + p.Location + ")\n")
		sb.WriteString("  Status: " + pageStatus(p) + "\n")
		if p.OutputPath != "" {
			sb.WriteString("  Output: " + p.OutputPath + "\n")
		}

		links := p.Links
		if !w.verbose {
			links = p.ExternalLinks()
		}
		if len(links) == 0 {
			sb.WriteString("  No external links\n\n")
			continue
		}

		sb.WriteString("\n")
		for _, l := range links {
			label := title.String(strings.ReplaceAll(l.Reason, "_", " "))
			target := l.URL
			if target == "" {
				target = l.Href
			}
			sb.WriteString("  * [" + label + "] " + target + "\n")
		}
		sb.WriteString("\n")
	}
}
