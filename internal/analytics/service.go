package analytics

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/floorsight/backend/internal/contracts"
	"github.com/floorsight/backend/pkg/redis"
)

// Service answers analytics queries over the stored aggregates, with a
// short-TTL cache in front of the repository reads.
type Service struct {
	stocks  contracts.StockRepository
	brokers contracts.BrokerRepository
	cache   *redis.Cache
	log     zerolog.Logger
}

// NewService creates an analytics service.
func NewService(stocks contracts.StockRepository, brokers contracts.BrokerRepository, cache *redis.Cache, log zerolog.Logger) *Service {
	return &Service{
		stocks:  stocks,
		brokers: brokers,
		cache:   cache,
		log:     log.With().Str("component", "analytics").Logger(),
	}
}

// TopMovers returns the symbols with the largest traded amount on a date.
func (s *Service) TopMovers(ctx context.Context, date string, limit int) ([]Mover, error) {
	cacheKey := fmt.Sprintf("movers:%s:%d", date, limit)
	var movers []Mover
	if found, _ := s.cache.Get(ctx, cacheKey, &movers); found {
		return movers, nil
	}

	summaries, err := s.stocks.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load summaries: %w", err)
	}

	movers = ComputeMovers(summaries, limit)
	if err := s.cache.Set(ctx, cacheKey, movers, redis.TTLShort); err != nil {
		s.log.Warn().Err(err).Msg("cache write failed")
	}
	return movers, nil
}

// MarketSentiment returns breadth counts for a date.
func (s *Service) MarketSentiment(ctx context.Context, date string) (*Sentiment, error) {
	cacheKey := "sentiment:" + date
	var sentiment Sentiment
	if found, _ := s.cache.Get(ctx, cacheKey, &sentiment); found {
		return &sentiment, nil
	}

	summaries, err := s.stocks.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load summaries: %w", err)
	}

	sentiment = ComputeSentiment(summaries)
	if err := s.cache.Set(ctx, cacheKey, sentiment, redis.TTLShort); err != nil {
		s.log.Warn().Err(err).Msg("cache write failed")
	}
	return &sentiment, nil
}

// Concentration returns the top brokers by absolute net flow over the most
// recent positions.
func (s *Service) Concentration(ctx context.Context, top int) ([]ConcentrationEntry, error) {
	cacheKey := fmt.Sprintf("concentration:%d", top)
	var entries []ConcentrationEntry
	if found, _ := s.cache.Get(ctx, cacheKey, &entries); found {
		return entries, nil
	}

	positions, err := s.brokers.ListRecent(ctx, 500)
	if err != nil {
		return nil, fmt.Errorf("load positions: %w", err)
	}

	entries = ComputeConcentration(positions, top)
	if err := s.cache.Set(ctx, cacheKey, entries, redis.TTLMedium); err != nil {
		s.log.Warn().Err(err).Msg("cache write failed")
	}
	return entries, nil
}

// AccumulationAlerts returns HIGH-alert positions, strongest accumulation
// first.
func (s *Service) AccumulationAlerts(ctx context.Context, limit int) ([]*contracts.BrokerPosition, error) {
	return s.brokers.ListAlerts(ctx, contracts.AlertHigh, limit)
}
