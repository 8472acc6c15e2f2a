// Package main is the entry point for the slashcmd CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/slashcmd/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
