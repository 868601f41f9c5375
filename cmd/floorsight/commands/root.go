package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "floorsight",
	Short: "Floorsight - NEPSE floor-sheet ingestion and broker analytics",
	Long: `Floorsight Unified CLI

Ingests NEPSE floor-sheet trades and builds two daily aggregate views:
per-symbol stock summaries and per-broker net positions with behavioral
classification.

Usage:
  go run ./cmd/floorsight [command]

Examples:
  go run ./cmd/floorsight api
  go run ./cmd/floorsight ingest floorsheet.csv
  go run ./cmd/floorsight fetch
  go run ./cmd/floorsight scheduler`,
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
