package config

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "linkguard"

	// DefaultBatchSize is the number of documents processed concurrently.
	// Documents are small and processing is CPU bound, so a handful of
	// workers is enough.
	DefaultBatchSize = 4

	// DefaultInlineConfirm controls whether annotated anchors get an
	// onclick attribute carrying the confirmation.
	DefaultInlineConfirm = true

	// StdinPath is the input name that reads HTML from standard input.
	StdinPath = "-"
)

// Config holds all options of an annotate run.
// It is populated from CLI flags and the optional config file, then passed
// down explicitly rather than kept in global state.
type Config struct {
	// BaseURL is the URL the input directory is served from. The location
	// of each document is BaseURL resolved with the document's path.
	BaseURL string

	// Inputs are the HTML files to annotate, or a single "-" for stdin.
	Inputs []string

	// OutDir is the directory annotated documents are written to, keeping
	// their relative paths. Empty writes to stdout.
	OutDir string

	// Organization is the full organisation name used in the confirmation.
	Organization string

	// Abbreviation is the short organisation name used in the confirmation.
	Abbreviation string

	// InlineConfirm writes an onclick confirmation attribute.
	InlineConfirm bool

	// BatchSize is the number of documents processed concurrently.
	BatchSize int

	// Verbose enables debug logging.
	Verbose bool

	// JSONReport writes the run summary as JSON.
	JSONReport bool

	// MarkdownReport writes the run summary as Markdown.
	MarkdownReport bool

	// ReportFile is where the summary is written. Empty means stderr.
	ReportFile string

	// ConfigFilePath is the explicit config file path, if any.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		InlineConfirm: DefaultInlineConfirm,
		BatchSize:     DefaultBatchSize,
	}
}

// ApplyFile fills fields that are still unset from the config file.
// InlineConfirm is replaced whenever the file sets it, so callers apply
// their own explicit flags afterwards.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if c.BaseURL == "" {
		c.BaseURL = f.BaseURL
	}
	if c.OutDir == "" {
		c.OutDir = f.OutDir
	}
	if c.Organization == "" {
		c.Organization = f.Organization.Name
	}
	if c.Abbreviation == "" {
		c.Abbreviation = f.Organization.Abbreviation
	}
	if f.InlineConfirm != nil {
		c.InlineConfirm = *f.InlineConfirm
	}
}

// XDGConfigDir returns the XDG config directory for linkguard.
// On Linux: ~/.config/linkguard
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}
	if len(c.Inputs) > 1 {
		for _, in := range c.Inputs {
			if in == StdinPath {
				return ErrStdinWithOthers
			}
		}
	}

	if c.BaseURL == "" {
		return ErrNoBaseURL
	}
	if !isHTTPURL(c.BaseURL) {
		return ErrInvalidBaseURL
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// isHTTPURL reports whether raw is an absolute http(s) URL with a host.
func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}
