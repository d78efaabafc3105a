// Package main is the entry point for the titlequote CLI.
package main

import (
	"os"

	"titlequote/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
