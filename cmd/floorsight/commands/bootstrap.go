package commands

import (
	"context"
	"fmt"

	"github.com/floorsight/backend/internal/external/nepse"
	"github.com/floorsight/backend/internal/floorsheet"
	"github.com/floorsight/backend/internal/ingest"
	"github.com/floorsight/backend/internal/storage"
	"github.com/floorsight/backend/pkg/config"
	"github.com/floorsight/backend/pkg/database"
	"github.com/floorsight/backend/pkg/httputil"
	"github.com/floorsight/backend/pkg/logger"
)

// runtime holds the shared service graph built by every command that needs
// the database.
type runtime struct {
	cfg     *config.Config
	log     *logger.Logger
	db      *database.DB
	stocks  *storage.StockRepository
	brokers *storage.BrokerRepository
	uploads *storage.UploadRepository
	fetcher *nepse.Client
}

// newRuntime loads config, connects to the database and ensures the schema.
// notifier wiring stays with the caller; the API command attaches its
// websocket hub, batch commands run without one.
func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := storage.EnsureSchema(context.Background(), db.Pool); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	httpClient := httputil.New(log, cfg.Nepse.HTTPTimeout)

	return &runtime{
		cfg:     cfg,
		log:     log,
		db:      db,
		stocks:  storage.NewStockRepository(db.Pool),
		brokers: storage.NewBrokerRepository(db.Pool),
		uploads: storage.NewUploadRepository(db.Pool),
		fetcher: nepse.NewClient(cfg, httpClient, log),
	}, nil
}

// ingestService builds an ingest service over the runtime's repositories.
func (rt *runtime) ingestService(notifier ingest.Notifier) *ingest.Service {
	zlog := rt.log.Zerolog()
	return ingest.NewService(
		floorsheet.New(zlog),
		rt.stocks,
		rt.brokers,
		rt.uploads,
		notifier,
		zlog,
	)
}

func (rt *runtime) close() {
	rt.db.Close()
}
