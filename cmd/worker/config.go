package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	"library-catalog/pkg/container"
)

// Config holds all configuration for the worker
type Config struct {
	RedisOpt   asynq.RedisClientOpt
	Worker     config.WorkerConfig
	EmailLabel string
}

// loadConfig derives the worker settings from the container configuration
func loadConfig(c *container.Container) *Config {
	cfg := &Config{
		RedisOpt:   c.RedisOpt(),
		Worker:     c.Config.Worker,
		EmailLabel: c.Config.Email.Provider,
	}

	log.Info().
		Str("redis", cfg.RedisOpt.Addr).
		Int("concurrency", cfg.Worker.Concurrency).
		Str("overdue_cron", cfg.Worker.OverdueScanCron).
		Str("email", cfg.EmailLabel).
		Msg("[Config] worker settings")

	return cfg
}
