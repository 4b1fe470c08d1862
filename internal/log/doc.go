// Package log provides secure logging built on top of the standard slog
// package.
//
// The SecureHandler sanitizes log output before it reaches the underlying
// handler:
//   - attributes whose key names a secret (token, password, signature...) are masked
//   - values that look like credentials (JWT, bearer, basic auth) are masked
//   - URL and href values keep their host and path, but userinfo passwords
//     and secret query parameters are redacted
//
// # Usage
//
//	logger, err := log.NewLogger(os.Stderr, log.FormatJSON, true) // verbose=true
//	if err != nil {
//		return err
//	}
//	logger.Debug("annotated external link",
//	    "url", "https://other.org/file?token=abc", // logged as token=***REDACTED***
//	)
//	slog.SetDefault(logger)
package log
