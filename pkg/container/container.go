package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	bookHandler "library-catalog/internal/domains/book/handler"
	bookRepo "library-catalog/internal/domains/book/repository"
	bookService "library-catalog/internal/domains/book/service"
	loanHandler "library-catalog/internal/domains/loan/handler"
	loanRepo "library-catalog/internal/domains/loan/repository"
	loanService "library-catalog/internal/domains/loan/service"
	infraCache "library-catalog/internal/infrastructure/cache"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/infrastructure/email"
	"library-catalog/internal/web"
	"library-catalog/pkg/cache"
	pkgdb "library-catalog/pkg/database"
	"library-catalog/pkg/logger"
)


// Container holds the dependency graph shared by the api and worker binaries.
// Build order: config, infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient // nil when Redis is unreachable
	Cache       cache.Cache
	Transactor  pkgdb.Transactor
	AsynqClient *asynq.Client

	// Repositories
	BookRepo bookRepo.RepositoryInterface
	LoanRepo loanRepo.RepositoryInterface

	// Services
	BookService  bookService.ServiceInterface
	LoanService  loanService.ServiceInterface
	EmailService email.EmailService

	// Handlers
	BookHandler *bookHandler.Handler
	LoanHandler *loanHandler.Handler
	PageHandler *web.Handler
}

// NewContainer loads the configuration and wires every layer.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	log.Info().Str("env", cfg.App.Environment).Msg("[Container] config loaded")

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	c.initCache()
	c.AsynqClient = asynq.NewClient(c.RedisOpt())

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("[Container] initialized")
	return c, nil
}

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	c.Transactor = pkgdb.NewTransactor(db.Pool)
	return nil
}

// initCache uses Redis when reachable and falls back to an in-process cache.
// Cache failures are never fatal.
func (c *Container) initCache() {
	rc := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("[Container] Redis unavailable, using in-memory cache")
		_ = rc.Close()
		c.Cache = infraCache.NewMemoryCache()
		return
	}

	c.Redis = rc
	c.Cache = infraCache.NewRedisCache(rc.Client, infraCache.KeyPrefix)
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.LoanRepo = loanRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.BookService = bookService.NewService(
		c.BookRepo,
		c.LoanRepo, // satisfies bookService.LoanCounter
		c.Cache,
		c.Config.Catalog.StatsCacheTTL,
	)
	c.LoanService = loanService.NewService(c.LoanRepo, c.BookRepo, c.Transactor, c.Cache)
	c.EmailService = email.NewEmailService(c.Config.Email)
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.LoanHandler = loanHandler.NewHandler(c.LoanService)
	c.PageHandler = web.NewHandler(c.BookService, c.LoanService)
}

// RedisOpt is the asynq connection to the configured Redis.
func (c *Container) RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
}

// HealthStatus is the body of GET /api/health.
type HealthStatus struct {
	Status   string              `json:"status"`
	Version  string              `json:"version"`
	Database string              `json:"database"`
	Cache    string              `json:"cache"`
	Pool     *database.PoolStats `json:"pool,omitempty"`
}

// Health pings the database and cache. The service is DOWN only when the database is.
func (c *Container) Health(ctx context.Context) HealthStatus {
	h := HealthStatus{Status: "UP", Version: c.Config.App.Version, Database: "UP", Cache: "UP"}

	if err := c.DB.HealthCheck(ctx); err != nil {
		log.Warn().Err(err).Msg("[Health] database check failed")
		h.Status, h.Database = "DOWN", "DOWN"
	} else if stats, err := c.DB.Stats(); err == nil {
		h.Pool = stats
	}

	if err := c.Cache.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("[Health] cache check failed")
		h.Cache = "DOWN"
	} else if c.Redis == nil {
		h.Cache = "MEMORY"
	}
	return h
}

// Cleanup releases connections. Safe to call on a partially built container.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Warn().Err(err).Msg("[Container] failed to close asynq client")
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("[Container] failed to close Redis")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("[Container] failed to close database")
		}
	}

	log.Info().Msg("[Container] cleanup completed")
}
