package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/floorsight/backend/internal/contracts"
	"github.com/floorsight/backend/pkg/logger"
)

// MarketHandler serves the stored aggregate views.
type MarketHandler struct {
	stocks  contracts.StockRepository
	brokers contracts.BrokerRepository
	logger  *logger.Logger
}

// NewMarketHandler creates a new market handler.
func NewMarketHandler(stocks contracts.StockRepository, brokers contracts.BrokerRepository, log *logger.Logger) *MarketHandler {
	return &MarketHandler{
		stocks:  stocks,
		brokers: brokers,
		logger:  log,
	}
}

// GetStocks returns stock daily summaries, filtered by date when given.
// GET /api/stocks?date=YYYY-MM-DD
func (h *MarketHandler) GetStocks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		summaries []*contracts.StockDailySummary
		err       error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		summaries, err = h.stocks.ListByDate(ctx, date)
	} else {
		summaries, err = h.stocks.ListRecent(ctx, queryInt(r, "limit", 100))
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to list stock summaries")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve stock summaries")
		return
	}

	respondJSON(w, http.StatusOK, summaries)
}

// GetBrokerPositions returns recent positions for one broker.
// GET /api/brokers/{code}/positions
func (h *MarketHandler) GetBrokerPositions(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if code == "" {
		respondError(w, http.StatusBadRequest, "Missing broker code")
		return
	}

	positions, err := h.brokers.ListByBroker(r.Context(), code, queryInt(r, "limit", 50))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list broker positions")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve broker positions")
		return
	}

	respondJSON(w, http.StatusOK, positions)
}

// GetAlerts returns positions at a given alert level, defaulting to HIGH.
// GET /api/brokers/alerts?level=HIGH
func (h *MarketHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	level := contracts.AlertLevel(r.URL.Query().Get("level"))
	switch level {
	case contracts.AlertLow, contracts.AlertMedium, contracts.AlertHigh:
	case "":
		level = contracts.AlertHigh
	default:
		respondError(w, http.StatusBadRequest, "Invalid alert level (valid: LOW, MEDIUM, HIGH)")
		return
	}

	positions, err := h.brokers.ListAlerts(r.Context(), level, queryInt(r, "limit", 50))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list alerts")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve alerts")
		return
	}

	respondJSON(w, http.StatusOK, positions)
}
