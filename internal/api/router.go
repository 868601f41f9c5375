package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/floorsight/backend/internal/api/handlers"
	"github.com/floorsight/backend/pkg/logger"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Floorsheet *handlers.FloorsheetHandler
	Market     *handlers.MarketHandler
	Analytics  *handlers.AnalyticsHandler
	Predict    *handlers.PredictHandler
	Health     *handlers.HealthHandler
	Progress   *ProgressHub
}

// NewRouter creates and configures the HTTP router.
func NewRouter(h Handlers, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.Handle("/health", http.HandlerFunc(h.Health.Get)).Methods("GET")

	// Live ingest progress
	r.Handle("/ws/progress", h.Progress)

	// API v1
	api := r.PathPrefix("/api").Subrouter()

	// Floor-sheet ingestion
	api.HandleFunc("/floorsheet/upload", h.Floorsheet.Upload).Methods("POST")
	api.HandleFunc("/floorsheet/sync", h.Floorsheet.Sync).Methods("POST")
	api.HandleFunc("/floorsheet/uploads", h.Floorsheet.History).Methods("GET")

	// Aggregate views
	api.HandleFunc("/stocks", h.Market.GetStocks).Methods("GET")
	api.HandleFunc("/brokers/alerts", h.Market.GetAlerts).Methods("GET")
	api.HandleFunc("/brokers/{code}/positions", h.Market.GetBrokerPositions).Methods("GET")

	// Analytics
	api.HandleFunc("/analytics/movers", h.Analytics.GetMovers).Methods("GET")
	api.HandleFunc("/analytics/sentiment", h.Analytics.GetSentiment).Methods("GET")
	api.HandleFunc("/analytics/concentration", h.Analytics.GetConcentration).Methods("GET")
	api.HandleFunc("/analytics/alerts", h.Analytics.GetAccumulationAlerts).Methods("GET")

	// Prediction
	api.HandleFunc("/predict/signal", h.Predict.GetSignal).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics.
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
