// Package main is the entry point for the prodhub CLI/TUI.
package main

import (
	"os"

	"github.com/prodhub-io/prodhub/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
