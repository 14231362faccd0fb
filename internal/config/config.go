package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration.
// It is populated from environment variables (optionally seeded by a .env file).
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Worker   WorkerConfig
	Email    EmailConfig
	Catalog  CatalogConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// WorkerConfig drives the asynq worker and its scheduler.
type WorkerConfig struct {
	Concurrency     int
	OverdueScanCron string
	HealthPort      string
}

type EmailConfig struct {
	Provider string // log, smtp
	From     string
	SMTPHost string
	SMTPPort string
}

// CatalogConfig groups the tunables of the catalog itself.
type CatalogConfig struct {
	StatsCacheTTL time.Duration
}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	EmailProviderLog  = "log"
	EmailProviderSMTP = "smtp"
)

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	statsTTL, err := time.ParseDuration(getEnv("STATS_CACHE_TTL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_CACHE_TTL: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library Catalog"),
			Environment: getEnv("APP_ENV", EnvDevelopment),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "library"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "library"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Worker: WorkerConfig{
			Concurrency:     getEnvInt("WORKER_CONCURRENCY", 5),
			OverdueScanCron: getEnv("OVERDUE_SCAN_CRON", "0 8 * * *"),
			HealthPort:      getEnv("WORKER_HEALTH_PORT", "9999"),
		},
		Email: EmailConfig{
			Provider: getEnv("EMAIL_PROVIDER", EmailProviderLog),
			From:     getEnv("EMAIL_FROM", "biblioteca@library.local"),
			SMTPHost: getEnv("SMTP_HOST", "localhost"),
			SMTPPort: getEnv("SMTP_PORT", "1025"),
		},
		Catalog: CatalogConfig{
			StatsCacheTTL: statsTTL,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the values that would make the application misbehave.
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("APP_PORT must not be empty")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("DB_PORT out of range: %d", c.Database.Port)
	}
	if c.Worker.Concurrency <= 0 {
		return fmt.Errorf("WORKER_CONCURRENCY must be positive")
	}
	if c.Email.Provider != EmailProviderLog && c.Email.Provider != EmailProviderSMTP {
		return fmt.Errorf("EMAIL_PROVIDER must be %q or %q", EmailProviderLog, EmailProviderSMTP)
	}
	if c.Catalog.StatsCacheTTL < 0 {
		return fmt.Errorf("STATS_CACHE_TTL must not be negative")
	}

	if c.App.Environment == EnvProduction {
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// IsDevelopment reports whether the app runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}

// DSN builds a libpq-compatible connection string, used by the migration runner.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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
