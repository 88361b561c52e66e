package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/nvaldez/steelbrain/internal/api/handlers"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	pipelineHandler *handlers.PipelineHandler,
	riskHandler *handlers.RiskHandler,
	marketHandler *handlers.MarketHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Pipeline endpoints
	api.HandleFunc("/pipeline/run", pipelineHandler.Run).Methods("POST")
	api.HandleFunc("/pipeline/latest", pipelineHandler.Latest).Methods("GET")
	api.HandleFunc("/pipeline/runs", pipelineHandler.List).Methods("GET")
	api.HandleFunc("/pipeline/runs/{runID}", pipelineHandler.Get).Methods("GET")

	// Risk endpoints
	api.HandleFunc("/risk/assessment", riskHandler.Assessment).Methods("GET")
	api.HandleFunc("/suppliers/allocation", riskHandler.Allocation).Methods("GET")

	// Market endpoints
	api.HandleFunc("/market/ticks", marketHandler.Ticks).Methods("GET")
	api.HandleFunc("/demand/{product}", marketHandler.Demand).Methods("GET")
	api.HandleFunc("/reorder/{product}", marketHandler.Reorder).Methods("GET")

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "steelbrain-api",
	})
}

// loggingMiddleware logs HTTP requests
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

// recoveryMiddleware recovers from panics
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
