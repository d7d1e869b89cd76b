// Package main is the entry point for the athletescrape CLI.
package main

import (
	"os"

	"github.com/jmylchreest/athletescrape/cmd/athletescrape/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
