package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database health and recent ingest history",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	health, err := rt.db.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("database health check: %w", err)
	}
	fmt.Printf("Database: healthy (ping %s, %d/%d connections)\n",
		health.ResponseTime, health.TotalConns, health.MaxConns)

	records, err := rt.uploads.ListRecent(ctx, 10)
	if err != nil {
		return fmt.Errorf("list uploads: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No ingests recorded yet")
		return nil
	}

	fmt.Println("Recent ingests:")
	for _, rec := range records {
		line := fmt.Sprintf("  %s  %-7s %s", rec.UploadedAt.Format("2006-01-02 15:04"), rec.Status, rec.FileName)
		if rec.Status == "success" {
			line += fmt.Sprintf(" (%d trades)", rec.TradesCount)
		} else if rec.Error != "" {
			line += " (" + rec.Error + ")"
		}
		fmt.Println(line)
	}
	return nil
}
