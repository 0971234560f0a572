package version

import "fmt"

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/packmapper/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/packmapper/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/packmapper/internal/version.Date={{.Date}}
)

// String returns the multi-line version report of the version command
func String() string {
	return fmt.Sprintf("packmapper version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
