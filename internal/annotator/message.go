package annotator

import (
	"strings"
	"text/template"
)

// Default organisation shown in the confirmation message.
const (
	DefaultOrganization = "Foundation for Atlanta Veterans Education and Research"
	DefaultAbbreviation = "FAVER"
)

// messageText is the fixed confirmation text. Only the destination URL and
// the organisation names vary.
const messageText = `The link you have selected is located on another server:

{{.URL}}

This link leaves the website of the {{.Organization}} ({{.Abbreviation}}). ` +
	`The appearance of this hyperlink does not constitute endorsement by {{.Abbreviation}} ` +
	`of this website or the information, products or services contained therein.

Please click "Ok" to leave this website and proceed to the selected site.`

var messageTmpl = template.Must(template.New("confirm").Parse(messageText))

// MessageTemplate renders the confirmation message for a destination URL.
type MessageTemplate struct {
	// Organization is the full name used in the disclaimer.
	Organization string

	// Abbreviation is the short name used in the disclaimer.
	Abbreviation string
}

// DefaultMessage returns the template for the default organisation.
func DefaultMessage() *MessageTemplate {
	return &MessageTemplate{
		Organization: DefaultOrganization,
		Abbreviation: DefaultAbbreviation,
	}
}

// NewMessage returns a template for the given organisation. Empty values
// fall back to the defaults.
func NewMessage(organization, abbreviation string) *MessageTemplate {
	m := DefaultMessage()
	if organization != "" {
		m.Organization = organization
	}
	if abbreviation != "" {
		m.Abbreviation = abbreviation
	}
	return m
}

// Render returns the message embedding dest.
func (m *MessageTemplate) Render(dest string) string {
	var b strings.Builder
	// Executing a parsed text/template into a strings.Builder with plain
	// string fields has no failure path.
	_ = messageTmpl.Execute(&b, struct { //nolint:errcheck
		URL          string
		Organization string
		Abbreviation string
	}{
		URL:          dest,
		Organization: m.Organization,
		Abbreviation: m.Abbreviation,
	})
	return b.String()
}
