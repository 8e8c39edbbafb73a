// Package buildinfo holds release metadata stamped in with -ldflags, e.g.
//
//	-X github.com/cleared-dev/stmtledger/internal/buildinfo.Version=v0.3.0
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the metadata for --version. Unstamped builds fall back to
// the module version recorded by "go install".
func String() string {
	v := Version
	if v == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			v = bi.Main.Version
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", v, Commit, Date)
}
