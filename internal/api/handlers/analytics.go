package handlers

import (
	"net/http"
	"time"

	"github.com/floorsight/backend/internal/analytics"
	"github.com/floorsight/backend/pkg/logger"
)

// AnalyticsHandler serves derived market views.
type AnalyticsHandler struct {
	service *analytics.Service
	logger  *logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(svc *analytics.Service, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: svc,
		logger:  log,
	}
}

// requestDate returns the date query parameter or today (UTC).
func requestDate(r *http.Request) string {
	if date := r.URL.Query().Get("date"); date != "" {
		return date
	}
	return time.Now().UTC().Format("2006-01-02")
}

// GetMovers returns the top symbols by traded amount for a date.
// GET /api/analytics/movers?date=YYYY-MM-DD&limit=N
func (h *AnalyticsHandler) GetMovers(w http.ResponseWriter, r *http.Request) {
	movers, err := h.service.TopMovers(r.Context(), requestDate(r), queryInt(r, "limit", 10))
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute movers")
		respondError(w, http.StatusInternalServerError, "Failed to compute movers")
		return
	}

	respondJSON(w, http.StatusOK, movers)
}

// GetSentiment returns market breadth for a date.
// GET /api/analytics/sentiment?date=YYYY-MM-DD
func (h *AnalyticsHandler) GetSentiment(w http.ResponseWriter, r *http.Request) {
	sentiment, err := h.service.MarketSentiment(r.Context(), requestDate(r))
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute sentiment")
		respondError(w, http.StatusInternalServerError, "Failed to compute sentiment")
		return
	}

	respondJSON(w, http.StatusOK, sentiment)
}

// GetConcentration returns the brokers with the largest absolute net flows.
// GET /api/analytics/concentration?top=N
func (h *AnalyticsHandler) GetConcentration(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Concentration(r.Context(), queryInt(r, "top", 10))
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute concentration")
		respondError(w, http.StatusInternalServerError, "Failed to compute concentration")
		return
	}

	respondJSON(w, http.StatusOK, entries)
}

// GetAccumulationAlerts returns HIGH-alert broker positions.
// GET /api/analytics/alerts?limit=N
func (h *AnalyticsHandler) GetAccumulationAlerts(w http.ResponseWriter, r *http.Request) {
	positions, err := h.service.AccumulationAlerts(r.Context(), queryInt(r, "limit", 20))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list accumulation alerts")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve accumulation alerts")
		return
	}

	respondJSON(w, http.StatusOK, positions)
}
