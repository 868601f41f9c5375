package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// ingestCmd represents the ingest command.
var ingestCmd = &cobra.Command{
	Use:   "ingest <file.csv>",
	Short: "Ingest a floor-sheet CSV file",
	Long: `Reads a floor-sheet CSV export, normalizes the trades and stores
the per-symbol and per-broker daily aggregates.

Example:
  go run ./cmd/floorsight ingest floorsheet-2025-06-30.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	path := args[0]
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	svc := rt.ingestService(nil)
	result, err := svc.IngestCSV(context.Background(), filepath.Base(path), file)
	if err != nil {
		return fmt.Errorf("ingest %s: %w", path, err)
	}

	fmt.Printf("Ingested %s\n", path)
	fmt.Printf("  rows read:     %d\n", result.Stats.RowsRead)
	fmt.Printf("  valid trades:  %d\n", result.Stats.ValidTrades)
	fmt.Printf("  symbols:       %d\n", result.Stats.UniqueSymbols)
	fmt.Printf("  brokers:       %d\n", result.Stats.UniqueBrokers)
	fmt.Printf("  total value:   %.2f\n", result.Stats.TotalValue)
	return nil
}
