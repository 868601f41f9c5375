package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/floorsight/backend/internal/analytics"
	"github.com/floorsight/backend/pkg/logger"
)

// AnalyticsWarmJob precomputes the day's analytics views so the first
// dashboard request after market close hits a warm cache.
type AnalyticsWarmJob struct {
	analytics *analytics.Service
	logger    *logger.Logger
}

// NewAnalyticsWarmJob creates a new analytics warm-up job.
func NewAnalyticsWarmJob(svc *analytics.Service, log *logger.Logger) *AnalyticsWarmJob {
	return &AnalyticsWarmJob{
		analytics: svc,
		logger:    log,
	}
}

// Name returns the job name.
func (j *AnalyticsWarmJob) Name() string {
	return "analytics_warm"
}

// Schedule returns the cron schedule, shortly after the floor-sheet sync.
func (j *AnalyticsWarmJob) Schedule() string {
	return "0 45 15 * * SUN-THU"
}

// Run computes the standard analytics views for today.
func (j *AnalyticsWarmJob) Run(ctx context.Context) error {
	date := time.Now().UTC().Format("2006-01-02")

	if _, err := j.analytics.TopMovers(ctx, date, 10); err != nil {
		return fmt.Errorf("warm movers: %w", err)
	}
	if _, err := j.analytics.MarketSentiment(ctx, date); err != nil {
		return fmt.Errorf("warm sentiment: %w", err)
	}
	if _, err := j.analytics.Concentration(ctx, 10); err != nil {
		return fmt.Errorf("warm concentration: %w", err)
	}

	j.logger.WithField("date", date).Info("Analytics caches warmed")
	return nil
}
