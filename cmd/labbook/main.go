// Package main provides the entry point for the labbook CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/wetbench/labbook/internal/cli"
)

// Build info set via ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	if err := fang.Execute(context.Background(), cli.RootCmd(), fang.WithVersion(buildVersion())); err != nil {
		os.Exit(1)
	}
}
