// Package main provides the entry point for the linkguard CLI.
//
// linkguard rewrites HTML documents so that links leaving the site are
// marked with rel="nofollow noopener noreferrer", get an external-link
// icon and ask the reader for confirmation before navigating away.
//
// Usage:
//
//	linkguard annotate --base-url https://example.org/ index.html
//	linkguard classify https://other.org/ --location https://example.org/
//
// See --help for all available options.
package main

func main() {
	Execute()
}
