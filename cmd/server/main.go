package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Rrens/reservasi-bot/internal/api"
	"github.com/Rrens/reservasi-bot/internal/config"
	"github.com/Rrens/reservasi-bot/internal/dialogue"
	"github.com/Rrens/reservasi-bot/internal/intake"
	"github.com/Rrens/reservasi-bot/internal/llm"
	"github.com/Rrens/reservasi-bot/internal/llm/gemini"
	"github.com/Rrens/reservasi-bot/internal/llm/openai"
	"github.com/Rrens/reservasi-bot/internal/logger"
	"github.com/Rrens/reservasi-bot/internal/service"
	"github.com/Rrens/reservasi-bot/internal/session"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file - try multiple locations
	envPaths := []string{".env", "../.env", "../../.env"}
	envLoaded := false
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			fmt.Printf("Loaded .env from: %s\n", p)
			envLoaded = true
			break
		}
	}
	if !envLoaded {
		fmt.Println("Warning: .env file not found in any standard location")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	logFile, err := logger.Setup(cfg.Logging, cfg.IsProduction())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}
	defer logFile.Close()

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("dialogue_mode", cfg.Dialogue.Mode).
		Str("database", cfg.Database.Driver).
		Msg("Starting reservation chatbot API server")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := clockwork.NewRealClock()
	loc := cfg.Restaurant.Location()

	// Initialize storage
	store, err := openStorage(ctx, cfg, clock)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer store.Close()

	// Initialize LLM providers
	router := llm.NewRouter(cfg.LLM.DefaultProvider)
	router.RegisterProvider(openai.NewProvider(cfg.LLM.OpenAI))
	router.RegisterProvider(gemini.NewProvider(cfg.LLM.Gemini))
	log.Info().Strs("configured", router.ListProviders()).Msg("LLM providers registered")

	var phraser *llm.Phraser
	if provider, err := router.GetProvider(cfg.LLM.DefaultProvider); err != nil {
		log.Warn().Err(err).Msg("No LLM provider available, replies use literal lines")
	} else {
		phraser = llm.NewPhraser(provider, llm.PhraserOptions{
			Restaurant:  cfg.Restaurant.Name,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			Timeout:     cfg.LLM.Timeout,
		})
		log.Info().Str("provider", provider.Name()).Msg("LLM provider ready")
	}

	// Initialize dialogue
	codes := dialogue.NewCodeGenerator(clock)
	committer := dialogue.NewCommitter(store.reservations, codes, cfg.Dialogue.CompletionGrace)
	lines := dialogue.Lines{Restaurant: cfg.Restaurant.Name}

	var engine dialogue.Engine
	switch cfg.Dialogue.Mode {
	case config.ModeFreeform:
		if phraser == nil {
			log.Fatal().Msg("Free-form dialogue mode requires a configured LLM provider")
		}
		system := llm.BuildSystemPrompt(cfg.Restaurant.Name,
			intake.OpeningHour, intake.ClosingHour, intake.MinGuests, intake.MaxGuests)
		engine = dialogue.NewFreeformEngine(phraser, system, committer, clock, loc, lines)
	default:
		engine = dialogue.NewGuidedEngine(committer, clock, loc, lines)
	}

	var renderer service.Renderer
	if cfg.LLM.Rephrase && phraser != nil && cfg.Dialogue.Mode == config.ModeGuided {
		renderer = phraser
	}

	sessions := session.NewMemoryStore(clock, session.WithIdleTTL(cfg.Dialogue.IdleTTL))
	go sessions.Run(ctx, cfg.Dialogue.SweepInterval)

	// Initialize services
	chatService := service.NewChatService(sessions, engine, renderer, store.logs, clock)
	reservationService := service.NewReservationService(store.reservations, store.cache)

	// Initialize router
	handler := api.NewRouter(cfg.Server, api.Services{
		Chat:         chatService,
		Reservations: reservationService,
		Ready:        reservationService,
		Providers:    router,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Error().Err(err).Msg("Server failed")
	}

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
