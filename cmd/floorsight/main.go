package main

import (
	"os"

	"github.com/floorsight/backend/cmd/floorsight/commands"
)

// main is the entry point for the Floorsight CLI.
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
