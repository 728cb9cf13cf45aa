package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Rrens/reservasi-bot/internal/config"
	"github.com/Rrens/reservasi-bot/internal/repository/postgres"
	"github.com/Rrens/reservasi-bot/internal/repository/sqlstore"
	"github.com/joho/godotenv"
)

func main() {
	steps := flag.Int("steps", 1, "number of migrations to roll back with down")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: migrate [-steps n] up|down|version")
		flag.PrintDefaults()
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	// Load .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fail("Failed to load config: %v", err)
	}

	if cfg.Database.Driver != config.DriverPostgres {
		migrateSQLStore(cfg, command)
		return
	}

	dsn := cfg.Database.DSN()
	switch command {
	case "up":
		if err := postgres.RunMigrations(dsn); err != nil {
			fail("%v", err)
		}
	case "down":
		if err := postgres.RollbackMigrations(dsn, *steps); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Rolled back %d migration(s)\n", *steps)
	case "version":
		version, dirty, err := postgres.MigrationVersion(dsn)
		if err != nil {
			fail("%v", err)
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// sqlite and mysql carry an idempotent schema with no version history
func migrateSQLStore(cfg *config.Config, command string) {
	if command != "up" {
		fail("%s is only supported for the postgres driver", command)
	}

	ctx := context.Background()
	store, err := sqlstore.Open(ctx, cfg.Database)
	if err != nil {
		fail("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Schema applied (%s)\n", cfg.Database.Driver)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
