// Package version exposes build-time version metadata.
package version

import "fmt"

// Set at build time via -ldflags. Defaults describe a development build.
var (
	Version = "0.1.0"
	Commit  = "none"
	Date    = "unknown"
)

// Short returns the bare version string.
func Short() string {
	return Version
}

// Info returns a human-readable version line for the CLI.
func Info() string {
	return fmt.Sprintf("pulseboard %s (commit %s, built %s)", Version, Commit, Date)
}

// Map returns version metadata for JSON responses.
func Map() map[string]string {
	return map[string]string{
		"version": Version,
		"commit":  Commit,
		"date":    Date,
	}
}
