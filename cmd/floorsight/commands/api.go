package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/floorsight/backend/internal/analytics"
	"github.com/floorsight/backend/internal/api"
	"github.com/floorsight/backend/internal/api/handlers"
	"github.com/floorsight/backend/internal/predict"
	"github.com/floorsight/backend/pkg/redis"
)

// apiCmd represents the api command.
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Starts the HTTP API server.

Endpoints:
  GET  /health                       - Health check
  WS   /ws/progress                  - Live ingest progress
  POST /api/floorsheet/upload        - Ingest a floor-sheet CSV
  POST /api/floorsheet/sync          - Fetch and ingest from the NEPSE portal
  GET  /api/floorsheet/uploads       - Ingest history
  GET  /api/stocks                   - Stock daily summaries
  GET  /api/brokers/{code}/positions - Broker positions
  GET  /api/brokers/alerts           - Positions by alert level
  GET  /api/analytics/movers         - Top symbols by traded amount
  GET  /api/analytics/sentiment      - Market breadth
  GET  /api/analytics/concentration  - Broker flow concentration
  GET  /api/analytics/alerts         - Accumulation alerts
  GET  /api/predict/signal           - Model market signal

Example:
  go run ./cmd/floorsight api
  go run ./cmd/floorsight api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	if apiPort != "" {
		rt.cfg.Port = apiPort
	}

	log := rt.log
	log.WithFields(map[string]interface{}{
		"port": rt.cfg.Port,
		"env":  rt.cfg.Env,
	}).Info("Initializing API server")

	// Cache layer; degrades to pass-through when Redis is disabled.
	rdb, err := redis.New(rt.cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer rdb.Close()
	cache := redis.NewCache(rdb, "floorsight")

	// Services
	progressHub := api.NewProgressHub(log)
	ingestSvc := rt.ingestService(progressHub)
	analyticsSvc := analytics.NewService(rt.stocks, rt.brokers, cache, log.Zerolog())
	predictClient := predict.NewClient(rt.cfg, log)

	// Handlers and router
	router := api.NewRouter(api.Handlers{
		Floorsheet: handlers.NewFloorsheetHandler(ingestSvc, rt.fetcher, rt.uploads, log),
		Market:     handlers.NewMarketHandler(rt.stocks, rt.brokers, log),
		Analytics:  handlers.NewAnalyticsHandler(analyticsSvc, log),
		Predict:    handlers.NewPredictHandler(predictClient, rt.stocks, rt.brokers, log),
		Health:     handlers.NewHealthHandler(rt.db, rdb),
		Progress:   progressHub,
	}, log)

	server := api.New(rt.cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", rt.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
