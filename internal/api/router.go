package api

import (
	"bufio"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/rostercast/internal/api/handlers"
	"github.com/wonny/rostercast/internal/dataset"
	"github.com/wonny/rostercast/pkg/logger"
)

// Handlers groups the endpoint handlers the router mounts
type Handlers struct {
	Players     *handlers.PlayerHandler
	Sessions    *handlers.SessionHandler
	Projections *handlers.ProjectionHandler
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: routes are declared in this function only
func NewRouter(h Handlers, store *dataset.Store, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler(store)).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Dataset
	api.HandleFunc("/players", h.Players.Search).Methods("GET")

	// Sessions
	api.HandleFunc("/sessions", h.Sessions.Create).Methods("POST")
	api.HandleFunc("/sessions/{id}", h.Sessions.Get).Methods("GET")
	api.HandleFunc("/sessions/{id}", h.Sessions.Delete).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/players", h.Sessions.AddPlayer).Methods("POST")
	api.HandleFunc("/sessions/{id}/players", h.Sessions.Clear).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/players/{name}", h.Sessions.RemovePlayer).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/stream", h.Sessions.Stream).Methods("GET")

	// Stateless projections
	api.HandleFunc("/projections", h.Projections.Project).Methods("POST")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler reports liveness plus the loaded dataset
func healthCheckHandler(store *dataset.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{
			"status":  "ok",
			"service": "rostercast-api",
		}
		status := http.StatusOK

		if d, err := store.Current(); err != nil {
			body["status"] = "degraded"
			body["error"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			body["season"] = d.Season()
			body["players"] = d.Len()
			body["loaded_at"] = store.LoadedAt()
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

// statusRecorder captures the response status for logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Hijack is required by the websocket upgrader
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return h.Hijack()
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			// Call next handler
			next.ServeHTTP(rec, r)

			// Log request
			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
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
