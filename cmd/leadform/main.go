// Package main is the entry point for the leadform service and terminal
// wizard.
//
// Commands: serve, wizard, contract, version.
package main

import (
	"fmt"
	"os"

	"github.com/goliatone/go-leadform/cmd/leadform/commands"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
