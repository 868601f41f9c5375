package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// fetchCmd represents the fetch command.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch today's floor sheet from the NEPSE portal and ingest it",
	Long: `Pages through the portal's floor-sheet table, normalizes the
trades and stores the daily aggregates. Identical to the scheduled sync
job, run once in the foreground.

Example:
  go run ./cmd/floorsight fetch`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := context.Background()

	rows, err := rt.fetcher.FetchFloorSheet(ctx)
	if err != nil {
		return fmt.Errorf("fetch floor sheet: %w", err)
	}
	fmt.Printf("Fetched %d rows from %s\n", len(rows), rt.cfg.Nepse.BaseURL)

	source := fmt.Sprintf("nepse-fetch-%s", time.Now().UTC().Format("2006-01-02"))
	svc := rt.ingestService(nil)
	result, err := svc.IngestRows(ctx, source, rows)
	if err != nil {
		return fmt.Errorf("ingest floor sheet: %w", err)
	}

	fmt.Printf("Ingested %d trades across %d symbols and %d brokers\n",
		result.Stats.ValidTrades, result.Stats.UniqueSymbols, result.Stats.UniqueBrokers)
	return nil
}
