package dom

import (
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrNoLocation is returned when a document is loaded without a location.
var ErrNoLocation = errors.New("document location is required")

// Document is a parsed HTML page together with the location it is served
// from. It plays the role of the browser document: it owns the anchors and
// fires its ready handlers once.
type Document struct {
	// doc is the goquery document wrapping the parsed node tree.
	doc *goquery.Document

	// location is the absolute URL of the page.
	location *url.URL

	// readyHandlers run once, in registration order, when Ready fires.
	readyHandlers []func(*Document)

	// ready is set as soon as Ready starts firing.
	ready bool

	// anchors keeps one handle per anchor node so that per-anchor state
	// (annotation flag, listeners) survives repeated Anchors calls.
	anchors map[*html.Node]*Anchor
}

// Load parses HTML from r. The location must be an absolute URL and is used
// to resolve relative hrefs.
func Load(r io.Reader, location string) (*Document, error) {
	if location == "" {
		return nil, ErrNoLocation
	}
	loc, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("invalid document location %q: %w", location, err)
	}
	if !loc.IsAbs() {
		return nil, fmt.Errorf("document location %q must be absolute", location)
	}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	return &Document{
		doc:      doc,
		location: loc,
		anchors:  make(map[*html.Node]*Anchor),
	}, nil
}

// Location returns a copy of the page URL.
func (d *Document) Location() *url.URL {
	loc := *d.location
	return &loc
}

// Host returns the host (with port) of the page, as location.host would.
func (d *Document) Host() string {
	return d.location.Host
}

// OnReady registers fn to run when the document becomes ready.
// Handlers registered after Ready has fired are never called.
func (d *Document) OnReady(fn func(*Document)) {
	if d.ready {
		return
	}
	d.readyHandlers = append(d.readyHandlers, fn)
}

// Ready fires the ready lifecycle event. It runs every registered handler
// exactly once; later calls, including calls made from a handler, do nothing.
func (d *Document) Ready() {
	if d.ready {
		return
	}
	d.ready = true

	handlers := d.readyHandlers
	d.readyHandlers = nil
	for _, fn := range handlers {
		fn(d)
	}
}

// IsReady reports whether Ready has fired.
func (d *Document) IsReady() bool {
	return d.ready
}

// Anchors returns a handle for every <a> element that carries an href
// attribute, in document order. The set is captured at call time.
func (d *Document) Anchors() []*Anchor {
	sel := d.doc.Find("a[href]")
	anchors := make([]*Anchor, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		a, ok := d.anchors[node]
		if !ok {
			a = &Anchor{sel: s}
			d.anchors[node] = a
		}
		anchors = append(anchors, a)
	})
	return anchors
}

// Render writes the document, including every mutation, as HTML.
func (d *Document) Render(w io.Writer) error {
	for _, n := range d.doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("failed to render HTML: %w", err)
		}
	}
	return nil
}
