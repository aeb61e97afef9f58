// Package version holds build information set via -ldflags.
package version

var (
	// Version is the forge release, e.g. "5.2.0".
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "unknown"
)
