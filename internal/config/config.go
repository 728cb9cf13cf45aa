package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Env             string                `mapstructure:"env"`
	Server          ServerConfig          `mapstructure:"server"`
	Database        DatabaseConfig        `mapstructure:"database"`
	Redis           RedisConfig           `mapstructure:"redis"`
	LLM             LLMConfig             `mapstructure:"llm"`
	Dialogue        DialogueConfig        `mapstructure:"dialogue"`
	ConversationLog ConversationLogConfig `mapstructure:"conversation_log"`
	Logging         LoggingConfig         `mapstructure:"logging"`
	Restaurant      RestaurantConfig      `mapstructure:"restaurant"`
}

// IsProduction reports whether the service runs in production mode
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	MiddlewareTimeout time.Duration `mapstructure:"middleware_timeout"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins"`
}

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
)

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
	MaxConns int32  `mapstructure:"max_conns"`
	MinConns int32  `mapstructure:"min_conns"`
	// Path is the sqlite database file
	Path string `mapstructure:"path"`
	// MySQLDSN is a go-sql-driver/mysql data source name
	MySQLDSN string `mapstructure:"mysql_dsn"`
}

// DSN returns the postgres connection string. URL wins when set.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type LLMConfig struct {
	DefaultProvider string        `mapstructure:"default_provider"`
	// Rephrase enables LLM rewording of guided replies
	Rephrase    bool          `mapstructure:"rephrase"`
	Temperature float32       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
	OpenAI      OpenAIConfig  `mapstructure:"openai"`
	Gemini      GeminiConfig  `mapstructure:"gemini"`
}

type OpenAIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Dialogue modes
const (
	ModeGuided   = "guided"
	ModeFreeform = "freeform"
)

type DialogueConfig struct {
	Mode            string        `mapstructure:"mode"`
	CompletionGrace time.Duration `mapstructure:"completion_grace"`
	SweepInterval   time.Duration `mapstructure:"sweep_interval"`
	// IdleTTL removes abandoned sessions; zero keeps them until restart
	IdleTTL time.Duration `mapstructure:"idle_ttl"`
}

type ConversationLogConfig struct {
	// Driver is "database", "mongo" or "none"
	Driver string      `mapstructure:"driver"`
	Mongo  MongoConfig `mapstructure:"mongo"`
}

type MongoConfig struct {
	URI        string        `mapstructure:"uri"`
	Database   string        `mapstructure:"database"`
	Collection string        `mapstructure:"collection"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File enables rotating file output next to stdout
	File         string        `mapstructure:"file"`
	MaxAge       time.Duration `mapstructure:"max_age"`
	RotationTime time.Duration `mapstructure:"rotation_time"`
}

type RestaurantConfig struct {
	Name     string `mapstructure:"name"`
	Timezone string `mapstructure:"timezone"`
}

// Location resolves the restaurant time zone, falling back to a fixed
// UTC+7 zone when the tz database is unavailable
func (c RestaurantConfig) Location() *time.Location {
	if loc, err := time.LoadLocation(c.Timezone); err == nil && c.Timezone != "" {
		return loc
	}
	return time.FixedZone("WIB", 7*3600)
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set config file path
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	// Set defaults
	setDefaults(v)

	// The file is optional; defaults and env vars are enough to run
	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnvVars(v); err != nil {
		return nil, fmt.Errorf("failed to bind env vars: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	switch c.Dialogue.Mode {
	case ModeGuided, ModeFreeform:
	default:
		return fmt.Errorf("unsupported dialogue mode: %q", c.Dialogue.Mode)
	}

	switch c.ConversationLog.Driver {
	case "database", "mongo", "none":
	default:
		return fmt.Errorf("unsupported conversation log driver: %q", c.ConversationLog.Driver)
	}

	if c.Database.Driver == DriverMySQL && c.Database.MySQLDSN == "" {
		return fmt.Errorf("database.mysql_dsn is required for the mysql driver")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("server.middleware_timeout", "60s")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Database
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "reservasi")
	v.SetDefault("database.database", "reservasi")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.path", "reservasi.db")

	// Redis
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", "10m")

	// LLM
	v.SetDefault("llm.default_provider", "openai")
	v.SetDefault("llm.rephrase", false)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 500)
	v.SetDefault("llm.timeout", "30s")
	v.SetDefault("llm.openai.model", "llama-3.3-70b-versatile")
	v.SetDefault("llm.openai.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.openai.timeout", "60s")
	v.SetDefault("llm.gemini.model", "gemini-2.5-flash")

	// Dialogue
	v.SetDefault("dialogue.mode", ModeGuided)
	v.SetDefault("dialogue.completion_grace", "5m")
	v.SetDefault("dialogue.sweep_interval", "1m")
	v.SetDefault("dialogue.idle_ttl", "2h")

	// Conversation log
	v.SetDefault("conversation_log.driver", "database")
	v.SetDefault("conversation_log.mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("conversation_log.mongo.database", "reservasi")
	v.SetDefault("conversation_log.mongo.collection", "conversation_logs")
	v.SetDefault("conversation_log.mongo.timeout", "10s")

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.max_age", "168h")
	v.SetDefault("logging.rotation_time", "24h")

	// Restaurant
	v.SetDefault("restaurant.name", "Restoran WAJIB")
	v.SetDefault("restaurant.timezone", "Asia/Jakarta")
}

func bindEnvVars(v *viper.Viper) error {
	bindings := map[string][]string{
		"env":         {"ENV"},
		"server.port": {"PORT"},

		// Database
		"database.url":       {"DATABASE_URL"},
		"database.password":  {"POSTGRES_PASSWORD"},
		"database.mysql_dsn": {"MYSQL_DSN"},

		// Redis
		"redis.password": {"REDIS_PASSWORD"},

		// LLM API Keys
		"llm.openai.api_key": {"GROQ_API_KEY", "OPENAI_API_KEY"},
		"llm.gemini.api_key": {"GEMINI_API_KEY"},

		"conversation_log.mongo.uri": {"MONGO_URI"},
	}

	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return err
		}
	}
	return nil
}
