// Package main is the entry point for the bstats CLI.
package main

import (
	"os"

	"github.com/f3rmion/battlestats/cmd/bstats/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
