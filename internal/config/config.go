package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Archive  ArchiveConfig
	Wizard   WizardConfig
	Catalog  CatalogConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// ArchiveConfig defines the ticket archiving job parameters.
type ArchiveConfig struct {
	// Secret expected in the Authorization header of scheduler calls.
	CronSecret string
	// MaxAgeDays is the age threshold beyond which active tickets archive.
	MaxAgeDays int
	// Schedule is a cron expression for the in-process daily sweep.
	// Empty disables the internal schedule (external cron only).
	Schedule string
}

// WizardConfig controls intake session behavior.
type WizardConfig struct {
	SessionTTLMinutes int
}

// CatalogConfig controls error-type catalog caching.
type CatalogConfig struct {
	CacheTTLSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "rma-portal"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Archive: ArchiveConfig{
			CronSecret: getEnv("CRON_SECRET", ""),
			MaxAgeDays: getEnvAsInt("ARCHIVE_MAX_AGE_DAYS", 90),
			Schedule:   getEnv("ARCHIVE_SCHEDULE", "0 3 * * *"),
		},
		Wizard: WizardConfig{
			SessionTTLMinutes: getEnvAsInt("WIZARD_SESSION_TTL_MINUTES", 60),
		},
		Catalog: CatalogConfig{
			CacheTTLSeconds: getEnvAsInt("CATALOG_CACHE_TTL_SECONDS", 300),
		},
	}

	if cfg.Archive.MaxAgeDays <= 0 {
		return nil, fmt.Errorf("ARCHIVE_MAX_AGE_DAYS must be positive")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// MaxAge returns the archive age threshold as a duration.
func (a ArchiveConfig) MaxAge() time.Duration {
	return time.Duration(a.MaxAgeDays) * 24 * time.Hour
}

// SessionTTL returns the idle lifetime of a wizard session.
func (w WizardConfig) SessionTTL() time.Duration {
	if w.SessionTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(w.SessionTTLMinutes) * time.Minute
}

// CacheTTL returns the catalog cache entry lifetime.
func (c CatalogConfig) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
