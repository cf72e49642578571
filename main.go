// Package main is the entry point for marktime.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/zjrosen/marktime/cmd"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// buildVersion falls back to the module version for `go install` builds,
// which carry no ldflags.
func buildVersion() string {
	if version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

func main() {
	cmd.SetVersion(buildVersion())
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
