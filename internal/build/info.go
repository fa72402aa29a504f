// Package build exposes build-time metadata injected via ldflags.
package build

import "fmt"

// Version, Commit, and Branch are set at build time by:
//
//	-ldflags "-X github.com/promptforge/promptforge/internal/build.Version=... ..."
var (
	Version = "dev"
	Commit  = "unknown"
	Branch  = "unknown"
)

// String formats the build metadata for `promptforge version`.
func String() string {
	return fmt.Sprintf("promptforge %s (commit %s, branch %s)", Version, Commit, Branch)
}
