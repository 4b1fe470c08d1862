// Package dom is the document environment the link annotator runs in.
//
// A Document wraps an HTML page parsed with goquery together with the URL
// it is served from. It offers the small slice of browser behavior the
// annotator relies on:
//   - a one-shot "ready" lifecycle event
//   - Anchor handles for every <a href> element
//   - attribute mutation and the decoration child node
//   - click listeners with a cancellable ClickEvent
//
// Click listeners live in memory on the handle; Render serialises only the
// node tree.
package dom
