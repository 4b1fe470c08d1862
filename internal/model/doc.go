// Package model defines the data structures shared by the pipeline, the
// annotator and the report writers.
//
// This package contains the following main types:
//   - Page: one processed HTML document and its link records
//   - LinkRecord: the classification and annotation outcome for one anchor
//   - Report and Summary: the result of a run
//
// The types are plain values without dependencies on other internal
// packages, which keeps them free of import cycles. They serialise to JSON
// for report output.
package model
