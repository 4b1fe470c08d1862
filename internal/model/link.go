package model

// LinkRecord is the outcome of the annotator for one anchor.
// It is derived at scan time and never stored between runs.
type LinkRecord struct {
	// Href is the raw href attribute.
	Href string `json:"href"`

	// Text is the trimmed text content of the anchor.
	Text string `json:"text,omitempty"`

	// URL is the resolved absolute URL. Empty for malformed hrefs.
	URL string `json:"url,omitempty"`

	// Host is the normalised host of URL, including a non-default port.
	Host string `json:"host,omitempty"`

	// Reason is the classification reason (same_host, foreign_host,
	// excluded_scheme, unsupported_scheme, malformed).
	Reason string `json:"reason"`

	// External is true when the link leaves the site.
	External bool `json:"external"`

	// Annotated is true when rel and the confirmation were applied.
	Annotated bool `json:"annotated"`

	// Decorated is true when the external-link icon was appended during
	// this scan. An anchor that already carried an icon stays false.
	Decorated bool `json:"decorated"`
}

// Link classification reasons, mirrored from linkclass so that the model
// package has no dependencies.
const (
	ReasonSameHost          = "same_host"
	ReasonForeignHost       = "foreign_host"
	ReasonExcludedScheme    = "excluded_scheme"
	ReasonUnsupportedScheme = "unsupported_scheme"
	ReasonMalformed         = "malformed"
)
