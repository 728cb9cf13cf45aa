package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, ModeGuided, cfg.Dialogue.Mode)
	assert.Equal(t, 5*time.Minute, cfg.Dialogue.CompletionGrace)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.OpenAI.Model)
	assert.Equal(t, "Restoran WAJIB", cfg.Restaurant.Name)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8081
database:
  driver: sqlite
  path: /tmp/test.db
dialogue:
  mode: freeform
  completion_grace: 1m
`), 0o644))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "9090")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
	assert.Equal(t, ModeFreeform, cfg.Dialogue.Mode)
	assert.Equal(t, time.Minute, cfg.Dialogue.CompletionGrace)
	assert.Equal(t, "gsk_test", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "mongodb://mongo:27017", cfg.ConversationLog.Mongo.URI)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dialogue:\n  mode: chaotic\n"), 0o644))
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	assert.ErrorContains(t, err, "unsupported dialogue mode")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{User: "u", Password: "p", Host: "db", Port: 5432, Database: "d", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/d?sslmode=disable", cfg.DSN())

	cfg.URL = "postgres://override"
	assert.Equal(t, "postgres://override", cfg.DSN())
}

func TestRestaurantConfig_Location(t *testing.T) {
	loc := RestaurantConfig{Timezone: "Not/AZone"}.Location()
	_, offset := time.Date(2026, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 7*3600, offset)
}
