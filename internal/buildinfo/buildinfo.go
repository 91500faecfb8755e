package buildinfo

import "fmt"

// Set with -ldflags "-X github.com/evanraalte/nstimes/internal/buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("nstimes %s (commit=%s, date=%s)", Version, Commit, Date)
}
