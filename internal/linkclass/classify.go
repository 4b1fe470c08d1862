// Package linkclass decides whether a hyperlink leaves the current site.
//
// Classification is a pure function of the href and the location of the
// page that contains it. It has no dependency on a parsed document, so it
// can be tested and reused without any rendering environment.
package linkclass

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// Reason explains how a link was classified.
type Reason string

const (
	// ReasonSameHost means the resolved host equals the page host.
	ReasonSameHost Reason = "same_host"

	// ReasonForeignHost means the resolved host differs from the page host.
	ReasonForeignHost Reason = "foreign_host"

	// ReasonExcludedScheme is used for mailto:, tel: and javascript: links.
	// These links are never annotated, whatever their host.
	ReasonExcludedScheme Reason = "excluded_scheme"

	// ReasonUnsupportedScheme is used for schemes that do not start with "http".
	ReasonUnsupportedScheme Reason = "unsupported_scheme"

	// ReasonMalformed means the href could not be resolved to a URL.
	ReasonMalformed Reason = "malformed"
)

// Result is the outcome of classifying a single href.
type Result struct {
	// External is true only for http(s) links whose host differs from
	// the page host.
	External bool `json:"external"`

	// Reason records which rule decided the classification.
	Reason Reason `json:"reason"`

	// URL is the fully resolved absolute URL.
	// Empty when the href is malformed.
	URL string `json:"url,omitempty"`

	// Host is the normalised host (with port) of the resolved URL.
	Host string `json:"host,omitempty"`
}

// Skipped reports whether the link must be left entirely untouched.
func (r Result) Skipped() bool {
	return r.Reason == ReasonExcludedScheme || r.Reason == ReasonMalformed
}

// excludedSchemes are never subject to rel mutation or confirmation.
var excludedSchemes = map[string]bool{
	"mailto":     true,
	"tel":        true,
	"javascript": true,
}

// defaultPorts are dropped from hosts before comparison, the same way a
// browser reports location.host.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// Classify resolves href against location and reports whether it points to
// another host. A malformed href is never external and never an error.
func Classify(href string, location *url.URL) Result {
	if location == nil {
		return Result{Reason: ReasonMalformed}
	}

	ref, err := parseHref(strings.TrimSpace(href))
	if err != nil {
		return Result{Reason: ReasonMalformed}
	}
	resolved := location.ResolveReference(ref)

	scheme := strings.ToLower(resolved.Scheme)
	if excludedSchemes[scheme] {
		return Result{Reason: ReasonExcludedScheme, URL: resolved.String()}
	}

	if !strings.HasPrefix(scheme, "http") {
		return Result{Reason: ReasonUnsupportedScheme, URL: resolved.String()}
	}

	host := NormalizeHost(scheme, resolved.Host)
	current := NormalizeHost(strings.ToLower(location.Scheme), location.Host)

	result := Result{URL: resolved.String(), Host: host}
	if host == current {
		result.Reason = ReasonSameHost
		return result
	}
	result.External = true
	result.Reason = ReasonForeignHost
	return result
}

// parseHref parses href, keeping a "%" that does not start an escape
// sequence as a literal percent sign the way browsers do. Hosts must still
// be valid.
func parseHref(href string) (*url.URL, error) {
	ref, err := url.Parse(href)
	var escErr url.EscapeError
	if err == nil || !errors.As(err, &escErr) {
		return ref, err
	}

	ref, err = url.Parse(escapeStrayPercents(href))
	if err != nil {
		return nil, err
	}
	if strings.Contains(ref.Host, "%") {
		return nil, fmt.Errorf("invalid host %q", ref.Host)
	}
	return ref, nil
}

// escapeStrayPercents encodes every "%" not followed by two hex digits.
func escapeStrayPercents(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && (i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// NormalizeHost lower-cases host, converts internationalised names to their
// ASCII form and drops the default port of scheme. Names the IDNA lookup
// profile rejects (underscores, for example) are only lower-cased.
func NormalizeHost(scheme, host string) string {
	if host == "" {
		return ""
	}

	name, port := host, ""
	if h, p, err := net.SplitHostPort(host); err == nil {
		name, port = h, p
	}

	// IPv6 literals keep their brackets and skip IDNA.
	if strings.Contains(name, ":") {
		name = "[" + strings.ToLower(strings.Trim(name, "[]")) + "]"
	} else if ascii, err := idna.Lookup.ToASCII(name); err == nil {
		name = strings.ToLower(ascii)
	} else {
		name = strings.ToLower(name)
	}

	if port == "" || port == defaultPorts[scheme] {
		return name
	}
	return name + ":" + port
}
