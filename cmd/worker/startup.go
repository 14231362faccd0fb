// cmd/worker/startup.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/pkg/container"
)

// startServices performs health checks and exposes the worker health endpoint
func startServices(c *container.Container, cfg *Config) error {
	log.Info().Str("service", c.Config.App.Name+" worker").Msg("Worker starting")

	checks := []struct {
		name string
		fn   func(ctx context.Context) error
	}{
		{"PostgreSQL", c.DB.HealthCheck},
		{"Redis", func(ctx context.Context) error {
			if c.Redis == nil {
				return fmt.Errorf("redis is required by the worker")
			}
			return c.Redis.HealthCheck(ctx)
		}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, check := range checks {
		if err := check.fn(ctx); err != nil {
			log.Error().Err(err).Str("check", check.name).Msg("Health check failed")
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Info().Str("check", check.name).Msg("Health check OK")
	}

	go startHealthCheckServer(c, cfg.Worker.HealthPort)

	return nil
}

// startHealthCheckServer serves /health and /ready for the orchestrator
func startHealthCheckServer(c *container.Container, port string) {
	router := gin.New()
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "UP", "service": "library-worker"})
	})
	router.GET("/ready", func(ctx *gin.Context) {
		reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		health := c.Health(reqCtx)
		status := http.StatusOK
		if health.Status != "UP" {
			status = http.StatusServiceUnavailable
		}
		ctx.JSON(status, health)
	})

	log.Info().Str("port", port).Msg("[Health] Starting health check server")
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Error().Err(err).Msg("[Health] Failed to start")
	}
}
