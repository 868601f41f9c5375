package handlers

import (
	"errors"
	"net/http"

	"github.com/floorsight/backend/internal/contracts"
	"github.com/floorsight/backend/internal/predict"
	"github.com/floorsight/backend/pkg/logger"
)

// PredictHandler serves model-generated market signals.
type PredictHandler struct {
	client  *predict.Client
	stocks  contracts.StockRepository
	brokers contracts.BrokerRepository
	logger  *logger.Logger
}

// NewPredictHandler creates a new prediction handler.
func NewPredictHandler(client *predict.Client, stocks contracts.StockRepository, brokers contracts.BrokerRepository, log *logger.Logger) *PredictHandler {
	return &PredictHandler{
		client:  client,
		stocks:  stocks,
		brokers: brokers,
		logger:  log,
	}
}

// GetSignal asks the model for a next-session signal over a date's data.
// GET /api/predict/signal?date=YYYY-MM-DD
func (h *PredictHandler) GetSignal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	date := requestDate(r)

	summaries, err := h.stocks.ListByDate(ctx, date)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load summaries for prediction")
		respondError(w, http.StatusInternalServerError, "Failed to load market data")
		return
	}
	if len(summaries) == 0 {
		respondError(w, http.StatusNotFound, "No market data for date "+date)
		return
	}

	alerts, err := h.brokers.ListAlerts(ctx, contracts.AlertHigh, 20)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load alerts for prediction")
		respondError(w, http.StatusInternalServerError, "Failed to load market data")
		return
	}

	signal, err := h.client.Predict(ctx, summaries, alerts)
	if err != nil {
		if errors.Is(err, predict.ErrDisabled) {
			respondError(w, http.StatusServiceUnavailable, "Prediction is disabled")
			return
		}
		h.logger.WithError(err).Error("Prediction failed")
		respondError(w, http.StatusBadGateway, "Prediction failed")
		return
	}

	respondJSON(w, http.StatusOK, signal)
}
