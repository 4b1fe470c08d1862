package model

import (
	"sort"
	"time"
)

// Report collects the pages processed in one run.
type Report struct {
	// GeneratedAt is when the report was created.
	GeneratedAt time.Time `json:"generated_at"`

	// Pages are the processed documents, in input order.
	Pages []*Page `json:"pages"`

	// Summary aggregates the link counts of all pages.
	Summary Summary `json:"summary"`
}

// Summary counts links by outcome.
type Summary struct {
	// Pages is the number of documents processed.
	Pages int `json:"pages"`

	// FailedPages is the number of documents that could not be processed.
	FailedPages int `json:"failed_pages"`

	// Links is the number of anchors with an href.
	Links int `json:"links"`

	// External is the number of links leaving the site.
	External int `json:"external"`

	// Internal is the number of same-host links and links with a
	// non-http scheme.
	Internal int `json:"internal"`

	// Skipped is the number of mailto:, tel: and javascript: links.
	Skipped int `json:"skipped"`

	// Malformed is the number of hrefs that could not be resolved.
	Malformed int `json:"malformed"`

	// Decorated is the number of icons appended.
	Decorated int `json:"decorated"`

	// ExternalHosts lists the distinct external hosts, sorted.
	ExternalHosts []string `json:"external_hosts,omitempty"`
}

// NewReport builds a Report and its Summary from pages.
// Nil pages are ignored.
func NewReport(pages []*Page) *Report {
	r := &Report{
		GeneratedAt: time.Now(),
		Pages:       make([]*Page, 0, len(pages)),
	}
	for _, p := range pages {
		if p != nil {
			r.Pages = append(r.Pages, p)
		}
	}
	r.Summary = Summarize(r.Pages)
	return r
}

// Summarize counts the links of pages.
func Summarize(pages []*Page) Summary {
	var s Summary
	hosts := make(map[string]bool)

	for _, p := range pages {
		s.Pages++
		if p.Failed() {
			s.FailedPages++
		}

		for _, l := range p.Links {
			s.Links++
			switch l.Reason {
			case ReasonForeignHost:
				s.External++
				hosts[l.Host] = true
			case ReasonExcludedScheme:
				s.Skipped++
			case ReasonMalformed:
				s.Malformed++
			default:
				s.Internal++
			}
			if l.Decorated {
				s.Decorated++
			}
		}
	}

	if len(hosts) > 0 {
		s.ExternalHosts = make([]string, 0, len(hosts))
		for h := range hosts {
			s.ExternalHosts = append(s.ExternalHosts, h)
		}
		sort.Strings(s.ExternalHosts)
	}

	return s
}

// HasExternal reports whether any external link was found.
func (s Summary) HasExternal() bool {
	return s.External > 0
}
