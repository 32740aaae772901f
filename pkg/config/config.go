package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Dataset sources
const (
	DatasetSourceFile     = "file"
	DatasetSourcePostgres = "postgres"
)

// Config holds all configuration for the application
// ⭐ SSOT: every environment variable is read here and nowhere else
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Season dataset
	Dataset DatasetConfig

	// Database (only used when Dataset.Source is postgres or for dataset sync)
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Upstream stats API used to build datasets
	StatsAPI StatsAPIConfig

	// Roster-building sessions
	Session SessionConfig

	// Scheduled jobs
	Scheduler SchedulerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatasetConfig describes where the per-season player data comes from
type DatasetConfig struct {
	Source string // file, postgres
	Path   string
	Season string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// StatsAPIConfig holds the upstream stats endpoint settings
type StatsAPIConfig struct {
	BaseURL           string
	RequestsPerSecond float64
	Timeout           time.Duration
}

// SessionConfig bounds the in-memory roster sessions
type SessionConfig struct {
	IdleTTL     time.Duration
	MaxSessions int
}

// SchedulerConfig holds cron expressions (with seconds field)
type SchedulerConfig struct {
	Enabled                bool
	DatasetRefreshSchedule string
	SessionCleanupSchedule string
}

// Load reads configuration from environment variables
// ⭐ SSOT: the only function that calls os.Getenv()
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		Dataset: DatasetConfig{
			Source: getEnv("DATASET_SOURCE", DatasetSourceFile),
			Path:   getEnv("DATASET_PATH", "data/player_data.json"),
			Season: getEnv("DATASET_SEASON", "2024-25"),
		},

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		StatsAPI: StatsAPIConfig{
			BaseURL:           getEnv("STATS_API_BASE_URL", "https://stats.nba.com/stats"),
			RequestsPerSecond: getEnvAsFloat("STATS_API_RPS", 1),
			Timeout:           getEnvAsDuration("STATS_API_TIMEOUT", "30s"),
		},

		Session: SessionConfig{
			IdleTTL:     getEnvAsDuration("SESSION_IDLE_TTL", "30m"),
			MaxSessions: getEnvAsInt("SESSION_MAX", 1000),
		},

		Scheduler: SchedulerConfig{
			Enabled:                getEnvAsBool("SCHEDULER_ENABLED", false),
			DatasetRefreshSchedule: getEnv("DATASET_REFRESH_SCHEDULE", "0 0 6 * * *"),
			SessionCleanupSchedule: getEnv("SESSION_CLEANUP_SCHEDULE", "0 */5 * * * *"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Dataset.Source {
	case DatasetSourceFile:
		if c.Dataset.Path == "" {
			return fmt.Errorf("DATASET_PATH is required when DATASET_SOURCE=file")
		}
	case DatasetSourcePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when DATASET_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("DATASET_SOURCE must be one of: file, postgres")
	}

	if c.Dataset.Season == "" {
		return fmt.Errorf("DATASET_SEASON is required")
	}

	if c.StatsAPI.RequestsPerSecond <= 0 {
		return fmt.Errorf("STATS_API_RPS must be positive")
	}

	if c.Session.MaxSessions <= 0 {
		return fmt.Errorf("SESSION_MAX must be positive")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
