package dom

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Decoration attributes. The marker class identifies an icon that has
// already been appended, so a second pass never adds another one.
const (
	// DecorationMarkerClass is the class that marks the decoration node.
	DecorationMarkerClass = "fa-external-link"

	// DecorationClass is the full class list of the decoration node.
	DecorationClass = "fa " + DecorationMarkerClass

	// DecorationTitle is the tooltip shown on the icon.
	DecorationTitle = "Opens External Link"

	// DecorationStyle offsets the icon from the link text.
	DecorationStyle = "margin-left: 0.25rem"
)

// ClickListener handles a click on an anchor.
type ClickListener func(event *ClickEvent, anchor *Anchor)

// ClickEvent is dispatched to the listeners of an anchor on click.
type ClickEvent struct {
	defaultPrevented bool
}

// PreventDefault cancels the navigation the click would cause.
func (e *ClickEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener cancelled navigation.
func (e *ClickEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Anchor is a handle on one <a href> element of a Document.
type Anchor struct {
	sel *goquery.Selection

	// listeners are the click listeners in registration order.
	listeners []ClickListener

	// annotated is set once the anchor has been decorated and given its
	// confirmation listener.
	annotated bool
}

// Href returns the raw href attribute.
func (a *Anchor) Href() string {
	href, _ := a.sel.Attr("href")
	return href
}

// Attr returns the value of an attribute and whether it is present.
func (a *Anchor) Attr(name string) (string, bool) {
	return a.sel.Attr(name)
}

// SetAttr sets an attribute, replacing any previous value.
func (a *Anchor) SetAttr(name, value string) {
	a.sel.SetAttr(name, value)
}

// Rel returns the rel attribute.
func (a *Anchor) Rel() string {
	rel, _ := a.sel.Attr("rel")
	return rel
}

// Text returns the text content of the anchor.
func (a *Anchor) Text() string {
	return a.sel.Text()
}

// Annotated reports whether the anchor carries the annotation flag.
func (a *Anchor) Annotated() bool {
	return a.annotated
}

// MarkAnnotated sets the annotation flag.
func (a *Anchor) MarkAnnotated() {
	a.annotated = true
}

// HasDecoration reports whether a descendant carries the marker class.
func (a *Anchor) HasDecoration() bool {
	return a.DecorationCount() > 0
}

// DecorationCount returns the number of descendants with the marker class.
func (a *Anchor) DecorationCount() int {
	return a.sel.Find("." + DecorationMarkerClass).Length()
}

// Decoration returns the first decoration node, or nil.
func (a *Anchor) Decoration() *goquery.Selection {
	sel := a.sel.Find("." + DecorationMarkerClass).First()
	if sel.Length() == 0 {
		return nil
	}
	return sel
}

// AppendDecoration appends the external-link icon as the last child.
func (a *Anchor) AppendDecoration() {
	a.sel.AppendNodes(newDecorationNode())
}

// AddClickListener registers fn. Listeners are additive: registering the
// same function twice makes it run twice.
func (a *Anchor) AddClickListener(fn ClickListener) {
	a.listeners = append(a.listeners, fn)
}

// ListenerCount returns the number of registered click listeners.
func (a *Anchor) ListenerCount() int {
	return len(a.listeners)
}

// Click dispatches a click event to every listener and reports whether the
// default navigation still happens.
func (a *Anchor) Click() bool {
	event := &ClickEvent{}
	for _, fn := range a.listeners {
		fn(event, a)
	}
	return !event.DefaultPrevented()
}

// newDecorationNode builds <i class="fa fa-external-link" aria-hidden="true"
// title="Opens External Link" style="margin-left: 0.25rem"></i>.
func newDecorationNode() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.I,
		Data:     "i",
		Attr: []html.Attribute{
			{Key: "class", Val: DecorationClass},
			{Key: "aria-hidden", Val: "true"},
			{Key: "title", Val: DecorationTitle},
			{Key: "style", Val: DecorationStyle},
		},
	}
}
