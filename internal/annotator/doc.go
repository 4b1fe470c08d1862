// Package annotator implements the link annotator.
//
// Once a document fires ready, the annotator classifies every anchor with
// linkclass.Classify. External http(s) links get:
//   - rel="nofollow noopener noreferrer" (any previous value is replaced)
//   - an external-link icon, unless the anchor already contains one
//   - a click listener that asks a Confirmer before navigation proceeds
//
// mailto:, tel: and javascript: links, malformed hrefs and same-host links
// are never modified.
//
// Each anchor handle carries an annotation flag. Annotating the same handle
// twice rewrites rel but adds neither a second icon nor a second listener.
//
// The Confirmer is injected, so the annotator does not depend on any
// particular dialog implementation:
//
//	a := annotator.New(annotator.NewPromptConfirmer(os.Stdin, os.Stdout))
//	a.Attach(doc, nil)
//	doc.Ready()
package annotator
