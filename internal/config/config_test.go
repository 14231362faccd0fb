package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_Defaults(t *testing.T) {
	// setup
	t.Setenv("APP_ENV", "")
	t.Setenv("STATS_CACHE_TTL", "")
	t.Setenv("EMAIL_PROVIDER", "")

	// act
	cfg, err := Load()

	// assert
	require.NoError(t, err)
	assert.Equal(t, EnvDevelopment, cfg.App.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 30*time.Second, cfg.Catalog.StatsCacheTTL)
	assert.Equal(t, EmailProviderLog, cfg.Email.Provider)
	assert.Equal(t, "0 8 * * *", cfg.Worker.OverdueScanCron)
}

func Test_Load_ReadsEnvironment(t *testing.T) {
	// setup
	t.Setenv("APP_PORT", "9090")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("STATS_CACHE_TTL", "2m")
	t.Setenv("WORKER_CONCURRENCY", "3")
	t.Setenv("EMAIL_PROVIDER", EmailProviderSMTP)

	// act
	cfg, err := Load()

	// assert
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 2*time.Minute, cfg.Catalog.StatsCacheTTL)
	assert.Equal(t, 3, cfg.Worker.Concurrency)
	assert.Equal(t, EmailProviderSMTP, cfg.Email.Provider)
}

func Test_Load_InvalidDuration(t *testing.T) {
	// setup
	t.Setenv("STATS_CACHE_TTL", "soon")

	// act
	_, err := Load()

	// assert
	assert.ErrorContains(t, err, "invalid STATS_CACHE_TTL")
}

func Test_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:      AppConfig{Port: "8080", Environment: EnvDevelopment},
			Database: DatabaseConfig{Port: 5432},
			Worker:   WorkerConfig{Concurrency: 1},
			Email:    EmailConfig{Provider: EmailProviderLog},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty port", mutate: func(c *Config) { c.App.Port = "" }, wantErr: "APP_PORT"},
		{name: "db port out of range", mutate: func(c *Config) { c.Database.Port = 70000 }, wantErr: "DB_PORT"},
		{name: "zero concurrency", mutate: func(c *Config) { c.Worker.Concurrency = 0 }, wantErr: "WORKER_CONCURRENCY"},
		{name: "unknown email provider", mutate: func(c *Config) { c.Email.Provider = "ses" }, wantErr: "EMAIL_PROVIDER"},
		{name: "negative ttl", mutate: func(c *Config) { c.Catalog.StatsCacheTTL = -time.Second }, wantErr: "STATS_CACHE_TTL"},
		{name: "production without password", mutate: func(c *Config) { c.App.Environment = EnvProduction }, wantErr: "DB_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// setup
			cfg := valid()
			tt.mutate(cfg)

			// act
			err := cfg.Validate()

			// assert
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func Test_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "library", SSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=library sslmode=disable", d.DSN())
}

func Test_LoadDatabaseConfig_RejectsMinAboveMax(t *testing.T) {
	// setup
	t.Setenv("DB_MAX_CONNECTIONS", "2")
	t.Setenv("DB_MIN_CONNECTIONS", "5")

	// act
	_, err := LoadDatabaseConfig()

	// assert
	assert.ErrorContains(t, err, "DB_MIN_CONNECTIONS")
}
