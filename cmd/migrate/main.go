// cmd/migrate/main.go
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("[MIGRATE] failed to load config")
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	migrator, err := database.OpenMigrator(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("[MIGRATE] failed to connect")
	}
	defer migrator.Close()

	applied, err := migrator.Up(ctx)
	if err != nil {
		log.Fatal().Err(err).Int("applied", applied).Msg("[MIGRATE] failed")
	}

	log.Info().Int("applied", applied).Msg("[MIGRATE] database is up to date")
}
