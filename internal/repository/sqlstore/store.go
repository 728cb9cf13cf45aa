// Package sqlstore keeps reservations and conversation logs in an embedded
// sqlite file or a MySQL server through database/sql.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/reservasi-bot/internal/config"
	"github.com/go-sql-driver/mysql"
	"github.com/jonboulle/clockwork"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Timestamps are stored as fixed-width UTC text so they sort as strings
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const mysqlDuplicateEntry = 1062

var schema = []string{
	`CREATE TABLE IF NOT EXISTS reservations (
		id               VARCHAR(36)  NOT NULL PRIMARY KEY,
		reservation_code VARCHAR(20)  NOT NULL UNIQUE,
		customer_name    VARCHAR(100) NOT NULL,
		phone            VARCHAR(20)  NOT NULL,
		reservation_date VARCHAR(10)  NOT NULL,
		reservation_time VARCHAR(5)   NOT NULL,
		guest_count      INTEGER      NOT NULL,
		status           VARCHAR(16)  NOT NULL,
		created_at       VARCHAR(30)  NOT NULL,
		updated_at       VARCHAR(30)  NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS conversation_logs (
		id           VARCHAR(36)  NOT NULL PRIMARY KEY,
		session_id   VARCHAR(128) NOT NULL,
		user_message TEXT         NOT NULL,
		bot_response TEXT         NOT NULL,
		created_at   VARCHAR(30)  NOT NULL
	)`,
}

// Store is a database/sql handle with the service schema
type Store struct {
	db     *sql.DB
	driver string
	clock  clockwork.Clock
}

// Option configures a Store
type Option func(*Store)

// WithClock sets the clock used for updated_at stamps
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

// Open connects to the database selected by cfg.Driver ("sqlite" or "mysql")
func Open(ctx context.Context, cfg config.DatabaseConfig, opts ...Option) (*Store, error) {
	var (
		db  *sql.DB
		err error
	)

	switch cfg.Driver {
	case config.DriverSQLite:
		dsn := cfg.Path
		if dsn != ":memory:" {
			dsn = "file:" + dsn + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
		}
		db, err = sql.Open("sqlite", dsn)
		if err == nil {
			// sqlite allows a single writer
			db.SetMaxOpenConns(1)
		}
	case config.DriverMySQL:
		db, err = sql.Open("mysql", cfg.MySQLDSN)
		if err == nil && cfg.MaxConns > 0 {
			db.SetMaxOpenConns(int(cfg.MaxConns))
		}
	default:
		return nil, fmt.Errorf("unsupported sql driver: %s", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.Driver, err)
	}

	s := &Store{db: db, driver: cfg.Driver, clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Migrate creates the tables when they do not exist
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// Close closes the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Reservations returns the reservation repository backed by this store
func (s *Store) Reservations() *ReservationRepository {
	return &ReservationRepository{db: s.db, clock: s.clock}
}

// ConversationLogs returns the conversation log repository backed by this store
func (s *Store) ConversationLogs() *ConversationLogRepository {
	return &ConversationLogRepository{db: s.db}
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(sqliteErr.Error(), "UNIQUE")
		}
		return false
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}

	return false
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored time %q: %w", s, err)
	}
	return t, nil
}
