// Package main is the entry point for the graphmirror CLI.
package main

import (
	"os"

	"graphmirror/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
