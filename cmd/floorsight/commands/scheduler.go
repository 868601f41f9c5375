package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/floorsight/backend/internal/analytics"
	"github.com/floorsight/backend/internal/scheduler"
	"github.com/floorsight/backend/internal/scheduler/jobs"
	"github.com/floorsight/backend/pkg/redis"
)

// schedulerCmd represents the scheduler command.
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the job scheduler",
	Long: `Runs the recurring market jobs:

  floorsheet_sync - fetch and ingest the floor sheet after market close
  analytics_warm  - precompute the day's analytics views

Example:
  go run ./cmd/floorsight scheduler`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	rdb, err := redis.New(rt.cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer rdb.Close()
	cache := redis.NewCache(rdb, "floorsight")

	ingestSvc := rt.ingestService(nil)
	analyticsSvc := analytics.NewService(rt.stocks, rt.brokers, cache, rt.log.Zerolog())

	sched := scheduler.New(rt.log)
	if err := sched.AddJob(jobs.NewFloorsheetSyncJob(rt.fetcher, ingestSvc, rt.log)); err != nil {
		return err
	}
	if err := sched.AddJob(jobs.NewAnalyticsWarmJob(analyticsSvc, rt.log)); err != nil {
		return err
	}

	sched.Start()
	fmt.Println("Scheduler running. Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
