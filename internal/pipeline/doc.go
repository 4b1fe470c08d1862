// Package pipeline runs HTML documents through the annotation steps.
//
// Every document goes through the same steps:
//  1. LoadStep reads the HTML from a file or stdin and rejects documents
//     over model.MaxPageSize
//  2. AnnotateStep parses it, fires the ready event with the link annotator
//     attached and renders the result
//  3. WriteStep writes the annotated HTML to the output directory or stdout
//
// Each step implements Step and receives the model.Page filled in by the
// previous ones. BatchProcessor runs one pipeline per document with bounded
// concurrency using errgroup.
package pipeline
