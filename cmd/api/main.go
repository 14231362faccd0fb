package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
)

func main() {
	// .env is optional; production uses the process environment.
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	if os.Getenv("APP_ENV") == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	Serve()
}
