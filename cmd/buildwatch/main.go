// Package main provides the entry point for the buildwatch CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/buildwatch/internal/cli"
)

// Set via ldflags at build time.
var (
	version = "dev"     //nolint:gochecknoglobals // set by ldflags
	commit  = "none"    //nolint:gochecknoglobals // set by ldflags
	date    = "unknown" //nolint:gochecknoglobals // set by ldflags
)

func main() {
	ctx := context.Background()
	os.Exit(cli.Execute(ctx, cli.BuildInfo{Version: version, Commit: commit, Date: date}, os.Stderr))
}
