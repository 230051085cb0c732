// Package main is the entry point for the itemplane CLI.
// The CLI is the developer terminal tool for interacting with the item API.
package main

import (
	"itemplane/cmd/cli/cmd"
	"os"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
