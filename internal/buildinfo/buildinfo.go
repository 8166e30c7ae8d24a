// Package buildinfo exposes version information stamped at build time.
package buildinfo

// Set via -ldflags at release build time.
var (
	Version = "dev"
	Commit  = "none"
)

// Short returns a single-line version string for tooltips and the
// version command.
func Short() string {
	if Commit == "none" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
