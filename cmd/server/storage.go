package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Rrens/reservasi-bot/internal/config"
	"github.com/Rrens/reservasi-bot/internal/domain"
	"github.com/Rrens/reservasi-bot/internal/repository/mongo"
	"github.com/Rrens/reservasi-bot/internal/repository/postgres"
	"github.com/Rrens/reservasi-bot/internal/repository/redis"
	"github.com/Rrens/reservasi-bot/internal/repository/sqlstore"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// storage bundles the repositories picked by configuration
type storage struct {
	reservations domain.ReservationRepository
	logs         domain.ConversationLogRepository
	cache        domain.ReservationCache

	closers []func()
}

func (s *storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStorage(ctx context.Context, cfg *config.Config, clock clockwork.Clock) (*storage, error) {
	s := &storage{}
	var sqlLogs domain.ConversationLogRepository

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		if err := postgres.RunMigrations(cfg.Database.DSN()); err != nil {
			return nil, err
		}
		db, err := postgres.NewDB(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, db.Close)
		s.reservations = postgres.NewReservationRepository(db.Pool, clock)
		sqlLogs = postgres.NewConversationLogRepository(db.Pool)

	default:
		db, err := sqlstore.Open(ctx, cfg.Database, sqlstore.WithClock(clock))
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() { db.Close() })
		if err := db.Migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
		s.reservations = db.Reservations()
		sqlLogs = db.ConversationLogs()
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("Connected to database")

	switch cfg.ConversationLog.Driver {
	case "database":
		s.logs = sqlLogs
	case "mongo":
		client, err := mongo.NewClient(ctx, cfg.ConversationLog.Mongo)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			client.Close(closeCtx)
		})
		repo := mongo.NewConversationLogRepository(client, cfg.ConversationLog.Mongo.Collection)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to create conversation log indexes")
		}
		s.logs = repo
		log.Info().Msg("Conversation logs go to MongoDB")
	}

	if cfg.Redis.Enabled {
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		s.closers = append(s.closers, func() { client.Close() })
		s.cache = redis.NewReservationCache(client, cfg.Redis.CacheTTL)
		log.Info().Str("addr", cfg.Redis.Addr()).Msg("Reservation cache enabled")
	}

	return s, nil
}
