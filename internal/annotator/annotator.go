package annotator

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nao1215/linkguard/internal/dom"
	"github.com/nao1215/linkguard/internal/linkclass"
	"github.com/nao1215/linkguard/internal/model"
)

// ExternalRel is written to the rel attribute of every external anchor.
// Existing tokens are replaced, not merged.
const ExternalRel = "nofollow noopener noreferrer"

// Annotator marks external links in a document and asks for confirmation
// before they are followed.
type Annotator struct {
	// confirm is asked whether navigation to an external link may proceed.
	confirm Confirmer

	// message builds the confirmation text for a destination URL.
	message *MessageTemplate

	// inlineConfirm also writes an onclick attribute so that the rendered
	// HTML keeps asking for confirmation in a browser.
	inlineConfirm bool

	// logger is used for debug output only; malformed links are never logged.
	logger *slog.Logger
}

// Option configures an Annotator.
type Option func(*Annotator)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Annotator) {
		a.logger = logger
	}
}

// WithMessage replaces the default confirmation message template.
func WithMessage(m *MessageTemplate) Option {
	return func(a *Annotator) {
		if m != nil {
			a.message = m
		}
	}
}

// WithInlineConfirm enables the onclick attribute on annotated anchors.
func WithInlineConfirm(enabled bool) Option {
	return func(a *Annotator) {
		a.inlineConfirm = enabled
	}
}

// New creates an Annotator that asks confirm before external navigation.
// A nil confirm declines every navigation.
func New(confirm Confirmer, opts ...Option) *Annotator {
	if confirm == nil {
		confirm = DeclineAll
	}

	a := &Annotator{
		confirm: confirm,
		message: DefaultMessage(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.Default()
	}

	return a
}

// Attach registers the annotator on the document's ready event. The scan
// runs once, when the document fires ready, or at once when the document is
// already ready. When done is not nil it receives the per-anchor records of
// that scan.
func (a *Annotator) Attach(doc *dom.Document, done func([]model.LinkRecord)) {
	run := func(d *dom.Document) {
		records := a.Scan(d)
		if done != nil {
			done(records)
		}
	}

	// Ready fires only once.
	if doc.IsReady() {
		run(doc)
		return
	}
	doc.OnReady(run)
}

// Scan classifies every anchor present in the document and annotates the
// external ones. Anchors are processed independently in document order.
func (a *Annotator) Scan(doc *dom.Document) []model.LinkRecord {
	location := doc.Location()
	anchors := doc.Anchors()
	records := make([]model.LinkRecord, 0, len(anchors))

	a.logger.Debug("scanning document", "host", doc.Host(), "anchors", len(anchors))

	for _, anchor := range anchors {
		href := anchor.Href()
		result := linkclass.Classify(href, location)

		record := model.LinkRecord{
			Href:     href,
			Text:     strings.TrimSpace(anchor.Text()),
			URL:      result.URL,
			Host:     result.Host,
			Reason:   string(result.Reason),
			External: result.External,
		}

		// Excluded schemes and malformed hrefs are recorded but never touched.
		if result.Skipped() {
			records = append(records, record)
			continue
		}

		if result.External {
			record.Decorated = a.Annotate(anchor, result.URL)
			record.Annotated = true
			a.logger.Debug("annotated external link",
				"url", result.URL,
				"host", result.Host,
			)
		}

		records = append(records, record)
	}

	return records
}

// Annotate applies the external-link treatment to anchor. dest is the fully
// resolved destination shown in the confirmation message. It reports
// whether a decoration icon was appended by this call.
//
// rel is always overwritten. Decoration and the click listener are added
// only the first time a handle is annotated; the decoration is also skipped
// when the markup already contains one.
func (a *Annotator) Annotate(anchor *dom.Anchor, dest string) bool {
	anchor.SetAttr("rel", ExternalRel)

	message := a.message.Render(dest)
	if a.inlineConfirm {
		anchor.SetAttr("onclick", inlineHandler(message))
	}

	if anchor.Annotated() {
		return false
	}

	decorated := false
	if !anchor.HasDecoration() {
		anchor.AppendDecoration()
		decorated = true
	}

	anchor.AddClickListener(func(event *dom.ClickEvent, target *dom.Anchor) {
		a.ConfirmBeforeNavigate(event, target, dest)
	})
	anchor.MarkAnnotated()

	return decorated
}

// ConfirmBeforeNavigate asks for confirmation before following anchor to
// dest and cancels the navigation when the answer is no. Accepted clicks
// are left untouched, so the anchor's own target still applies.
func (a *Annotator) ConfirmBeforeNavigate(event *dom.ClickEvent, anchor *dom.Anchor, dest string) {
	if !a.confirm(a.message.Render(dest)) {
		event.PreventDefault()
		a.logger.Debug("external navigation declined", "url", dest, "href", anchor.Href())
	}
}

// inlineHandler returns `return confirm("...");` with message encoded as a
// JavaScript string literal.
func inlineHandler(message string) string {
	// json.Marshal of a string cannot fail.
	quoted, _ := json.Marshal(message) //nolint:errchkjson
	return "return confirm(" + string(quoted) + ");"
}
