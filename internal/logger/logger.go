// Package logger configures the global zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Rrens/reservasi-bot/internal/config"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at stdout, and at a rotating file when
// cfg.File is set. The returned closer releases the file.
func Setup(cfg config.LoggingConfig, production bool) (io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	var console io.Writer = os.Stdout
	if !production && cfg.Format != "json" {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	if cfg.File == "" {
		log.Logger = zerolog.New(console).With().Timestamp().Logger()
		return nopCloser{}, nil
	}

	rotator, err := newRotator(cfg)
	if err != nil {
		return nil, err
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(console, rotator)).With().Timestamp().Logger()
	return rotator, nil
}

func newRotator(cfg config.LoggingConfig) (*rotatelogs.RotateLogs, error) {
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}
	rotation := cfg.RotationTime
	if rotation <= 0 {
		rotation = 24 * time.Hour
	}

	rotator, err := rotatelogs.New(
		cfg.File+".%Y%m%d",
		rotatelogs.WithLinkName(cfg.File),
		rotatelogs.WithMaxAge(maxAge),
		rotatelogs.WithRotationTime(rotation),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create log rotator: %w", err)
	}
	return rotator, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
