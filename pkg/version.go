// Package colex provides shared metadata for the colex application.
package colex

var (
	// Version is set by the build flags.
	Version = "v0.1.0"
	// Build is a timestamp set by the build flags.
	Build = "n/a"
)
