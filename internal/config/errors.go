package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() so that callers can use
// errors.Is() while still getting a readable message.
var (
	// ErrNoInput is returned when no HTML file is given.
	ErrNoInput = errors.New("no input specified: provide one or more HTML files or '-' for stdin")

	// ErrNoBaseURL is returned when neither --base-url nor the config file
	// provides the URL the documents are served from.
	ErrNoBaseURL = errors.New("no base URL specified: use --base-url or set base_url in the config file")

	// ErrInvalidBaseURL is returned when the base URL is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http or https URL")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrStdinWithOthers is returned when "-" is mixed with file inputs.
	ErrStdinWithOthers = errors.New("'-' (stdin) cannot be combined with other inputs")
)
