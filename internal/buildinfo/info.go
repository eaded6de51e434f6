// Package buildinfo holds the version metadata stamped into the
// budgetwise binary. Release builds overwrite the defaults with
// -ldflags "-X github.com/budgetwise-dev/budgetwise/internal/buildinfo.Version=...".
package buildinfo

// Defaults identify a local, unstamped build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
