package api

import (
	"net/http"

	"github.com/Rrens/reservasi-bot/internal/api/handler"
	customMiddleware "github.com/Rrens/reservasi-bot/internal/api/middleware"
	"github.com/Rrens/reservasi-bot/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Services are the collaborators the HTTP layer calls into
type Services struct {
	Chat         handler.ChatProcessor
	Reservations handler.ReservationManager
	Ready        handler.Pinger
	Providers    handler.ProviderLister
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg config.ServerConfig, svc Services) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(customMiddleware.Recoverer)
	if cfg.MiddlewareTimeout > 0 {
		r.Use(middleware.Timeout(cfg.MiddlewareTimeout))
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(customMiddleware.Options)

	chatHandler := handler.NewChatHandler(svc.Chat)
	reservationHandler := handler.NewReservationHandler(svc.Reservations)

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/", handler.Root)

	r.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck(svc.Providers))
		r.Get("/ready", handler.ReadyCheck(svc.Ready))

		r.Post("/chat", chatHandler.Send)

		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", reservationHandler.List)
			r.Get("/{code}", reservationHandler.Get)
			r.Delete("/{code}", reservationHandler.Cancel)
		})
	})

	return r
}
