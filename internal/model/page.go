package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// MaxPageSize is the maximum size of an HTML document that is read.
// Larger inputs are rejected.
const MaxPageSize = 5 * 1024 * 1024 // 5 MB

// Page is one HTML document processed by the annotator.
//
// Page is the unit of work handed from step to step in the pipeline: the
// load step fills Raw, the annotate step fills Links and Output, and the
// write step records OutputPath.
type Page struct {
	// Path is the input file path, or "-" for standard input.
	Path string `json:"path"`

	// Location is the absolute URL the document is served from.
	// Relative hrefs are resolved against it.
	Location string `json:"location"`

	// OutputPath is where the annotated document was written.
	// Empty when the document was written to standard output.
	OutputPath string `json:"output_path,omitempty"`

	// Links contains one record per anchor with an href, in document order.
	Links []LinkRecord `json:"links"`

	// Hash is the SHA-256 of the input bytes.
	Hash string `json:"hash,omitempty"`

	// Raw holds the input bytes.
	Raw []byte `json:"-"`

	// Output holds the annotated HTML.
	Output []byte `json:"-"`

	// ProcessedAt is when processing of the page started.
	ProcessedAt time.Time `json:"processed_at"`

	// Steps lists the pipeline steps that completed, in order.
	Steps []string `json:"steps,omitempty"`

	// Error is the first error encountered, if any.
	Error error `json:"-"`

	// ErrorMessage is Error as a string for serialisation.
	ErrorMessage string `json:"error,omitempty"`

	// Cancelled is true when processing stopped because the context ended.
	Cancelled bool `json:"cancelled,omitempty"`
}

// NewPage creates a Page for the input at path.
func NewPage(path, location string) *Page {
	return &Page{
		Path:        path,
		Location:    location,
		Links:       make([]LinkRecord, 0),
		ProcessedAt: time.Now(),
	}
}

// ComputeHash calculates and sets the SHA-256 hash of Raw.
func (p *Page) ComputeHash() {
	if len(p.Raw) == 0 {
		p.Hash = ""
		return
	}

	hash := sha256.Sum256(p.Raw)
	p.Hash = hex.EncodeToString(hash[:])
}

// Failed reports whether processing of the page failed.
func (p *Page) Failed() bool {
	return p.Error != nil || p.ErrorMessage != ""
}

// ExternalLinks returns the records classified as external.
func (p *Page) ExternalLinks() []LinkRecord {
	out := make([]LinkRecord, 0)
	for _, l := range p.Links {
		if l.External {
			out = append(out, l)
		}
	}
	return out
}
