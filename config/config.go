// Package config provides configuration management and environment variable handling for the application
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/amirphl/linkhub/utils"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the service. It is built once at startup
// and passed by pointer; nothing downstream reads the environment.
type Config struct {
	Database   DatabaseConfig   `json:"database"`
	Server     ServerConfig     `json:"server"`
	Link       LinkConfig       `json:"link"`
	Contact    ContactConfig    `json:"contact"`
	Logging    LoggingConfig    `json:"logging"`
	Metrics    MetricsConfig    `json:"metrics"`
	Cache      CacheConfig      `json:"cache"`
	Deployment DeploymentConfig `json:"deployment"`
}

type DatabaseConfig struct {
	URL             string        `json:"-"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time"`
	RunMigrations   bool          `json:"run_migrations"`
}

type ServerConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	BodyLimit       int           `json:"body_limit"`
}

// LinkConfig drives short link generation and the URLs handed back to callers
type LinkConfig struct {
	Scheme            string `json:"scheme"`
	KeyLength         int    `json:"key_length"`
	TokenLength       int    `json:"token_length"`
	MaxKeyAttempts    int    `json:"max_key_attempts"`
	MaxInsertAttempts int    `json:"max_insert_attempts"`
}

type ContactConfig struct {
	Token string `json:"-"`
}

type LoggingConfig struct {
	Level      string `json:"level"`  // debug, info, warn, error
	Format     string `json:"format"` // json, console
	Output     string `json:"output"` // stdout, file, both
	FilePath   string `json:"file_path"`
	MaxSize    int    `json:"max_size"` // MB
	MaxBackups int    `json:"max_backups"`
	MaxAge     int    `json:"max_age"` // days
	Compress   bool   `json:"compress"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

type CacheConfig struct {
	RedisURL       string        `json:"-"`
	RedisDB        int           `json:"redis_db"`
	RedisPrefix    string        `json:"redis_prefix"`
	DefaultTTL     time.Duration `json:"default_ttl"`
	HealthInterval time.Duration `json:"health_interval"`
}

type DeploymentConfig struct {
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

// Address returns the host:port the HTTP server binds to
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsDevelopment reports whether development-only routes should be exposed
func (d DeploymentConfig) IsDevelopment() bool {
	return d.Environment == "development" || d.Environment == "local"
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := loadEnvFile(".env"); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Database: DatabaseConfig{
			URL:             getEnvString("POSTGRES_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", 15*time.Minute),
			RunMigrations:   getEnvBool("DB_RUN_MIGRATIONS", true),
		},
		Server: ServerConfig{
			Host:            getEnvString("HOST", ""),
			Port:            getEnvInt("PORT", 0),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
			BodyLimit:       getEnvInt("SERVER_BODY_LIMIT", 4*1024*1024), // 4MB
		},
		Link: LinkConfig{
			Scheme:            getEnvString("LINK_SCHEME", "http"),
			KeyLength:         getEnvInt("LINK_KEY_LENGTH", utils.ShortKeyLength),
			TokenLength:       getEnvInt("LINK_TOKEN_LENGTH", utils.StatsTokenLength),
			MaxKeyAttempts:    getEnvInt("LINK_MAX_KEY_ATTEMPTS", utils.MaxKeyAttempts),
			MaxInsertAttempts: getEnvInt("LINK_MAX_INSERT_ATTEMPTS", utils.MaxInsertAttempts),
		},
		Contact: ContactConfig{
			Token: getEnvString("CONTACT_TOKEN", ""),
		},
		Logging: LoggingConfig{
			Level:      getEnvString("LOG_LEVEL", "info"),
			Format:     getEnvString("LOG_FORMAT", "json"),
			Output:     getEnvString("LOG_OUTPUT", "stdout"),
			FilePath:   getEnvString("LOG_FILE_PATH", "/var/log/linkhub/app.log"),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 10),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 30),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnvString("METRICS_PATH", "/metrics"),
		},
		Cache: CacheConfig{
			RedisURL:       getEnvString("REDIS_URL", ""),
			RedisDB:        getEnvInt("CACHE_REDIS_DB", 0),
			RedisPrefix:    getEnvString("CACHE_REDIS_PREFIX", "linkhub:"),
			DefaultTTL:     getEnvDuration("CACHE_DEFAULT_TTL", 1*time.Hour),
			HealthInterval: getEnvDuration("CACHE_HEALTH_INTERVAL", 30*time.Second),
		},
		Deployment: DeploymentConfig{
			Environment: getEnvString("APP_ENV", "production"),
			Version:     getEnvString("VERSION", "1.0.0"),
		},
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadEnvFile loads variables from path if it exists. Variables already set
// in the process environment are left untouched.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// ValidateConfig validates the configuration and reports every problem at once
func ValidateConfig(cfg *Config) error {
	var errors []string

	// Required connection settings
	if cfg.Database.URL == "" {
		errors = append(errors, "POSTGRES_URL must be set")
	}
	if cfg.Cache.RedisURL == "" {
		errors = append(errors, "REDIS_URL must be set")
	}
	if cfg.Server.Host == "" {
		errors = append(errors, "HOST must be set")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}
	if cfg.Contact.Token == "" {
		errors = append(errors, "CONTACT_TOKEN must be set")
	}

	// Link generation
	if cfg.Link.Scheme != "http" && cfg.Link.Scheme != "https" {
		errors = append(errors, "LINK_SCHEME must be http or https")
	}
	if cfg.Link.KeyLength != utils.ShortKeyLength {
		errors = append(errors, fmt.Sprintf("LINK_KEY_LENGTH must be %d", utils.ShortKeyLength))
	}
	if cfg.Link.TokenLength <= 0 {
		errors = append(errors, "LINK_TOKEN_LENGTH must be positive")
	}
	if cfg.Link.MaxKeyAttempts <= 0 {
		errors = append(errors, "LINK_MAX_KEY_ATTEMPTS must be positive")
	}
	if cfg.Link.MaxInsertAttempts <= 0 {
		errors = append(errors, "LINK_MAX_INSERT_ATTEMPTS must be positive")
	}

	// Server timeouts
	if cfg.Server.ReadTimeout <= 0 {
		errors = append(errors, "SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		errors = append(errors, "SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Server.IdleTimeout <= 0 {
		errors = append(errors, "SERVER_IDLE_TIMEOUT must be positive")
	}

	// Logging
	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, cfg.Logging.Level) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %v", validLevels))
	}
	validOutputs := []string{"stdout", "file", "both"}
	if !slices.Contains(validOutputs, cfg.Logging.Output) {
		errors = append(errors, fmt.Sprintf("LOG_OUTPUT must be one of: %v", validOutputs))
	}
	if cfg.Logging.Output != "stdout" && cfg.Logging.FilePath == "" {
		errors = append(errors, "LOG_FILE_PATH is required when logging to a file")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}
