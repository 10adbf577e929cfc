// Package main provides the entry point for the hitmatch CLI.
package main

import (
	"os"

	"github.com/gcbaptista/go-hit-matcher/cmd/hitmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
