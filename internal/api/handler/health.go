package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Rrens/reservasi-bot/internal/api/response"
	"github.com/Rrens/reservasi-bot/internal/llm"
	"github.com/rs/zerolog/log"
)

// Pinger checks a backing store
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProviderLister reports the registered LLM providers
type ProviderLister interface {
	Status() []llm.ProviderStatus
}

// Root answers GET / for uptime checks
func Root(w http.ResponseWriter, r *http.Request) {
	response.Write(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"message":   "Chatbot Reservasi API is running!",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// HealthCheck returns a simple health check response
func HealthCheck(providers ProviderLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"status": "ok",
		}
		if providers != nil {
			data["llm_providers"] = providers.Status()
		}
		response.OK(w, data)
	}
}

// ReadyCheck returns readiness status including database connectivity
func ReadyCheck(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			log.Warn().Err(err).Msg("Readiness check failed")
			response.ServiceUnavailable(w, msgNotReady)
			return
		}

		response.OK(w, map[string]string{
			"status": "ready",
		})
	}
}

// NotFound answers unknown routes
func NotFound(w http.ResponseWriter, r *http.Request) {
	response.NotFound(w, msgRouteNotFound)
}

// MethodNotAllowed answers known routes called with the wrong method
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.MethodNotAllowed(w, msgMethodNotAllowed)
}
