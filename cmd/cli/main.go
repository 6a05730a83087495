// Package main is the entry point for the recipe-pricing CLI.
package main

import (
	"os"

	"recipe-pricing/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
