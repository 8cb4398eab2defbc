package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gatherly/eventhub/internal/api"
	"github.com/gatherly/eventhub/internal/api/middleware"
	"github.com/gatherly/eventhub/internal/infrastructure/db/postgres"
	"github.com/gatherly/eventhub/internal/infrastructure/db/redis"
	"github.com/gatherly/eventhub/internal/pkg/config"
	"github.com/gatherly/eventhub/internal/pkg/password"
	"github.com/gatherly/eventhub/internal/pkg/token"
	"github.com/gatherly/eventhub/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		fallback := logger.Get()
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	hasher := password.NewHasher(cfg.BcryptCost)

	seeder := postgres.NewSeeder(
		postgres.NewUserRepository(db),
		postgres.NewRoleRepository(db),
		postgres.NewPermissionRepository(db),
		hasher,
		log,
	)
	if err := seeder.Run(ctx, cfg.SeedAdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to seed reference data")
	}

	tokens, err := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise token manager")
	}

	// Redis backs only the login rate limiter. The server still starts
	// without it; the limiter simply stays off.
	var limiter middleware.Limiter
	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, login rate limiting disabled")
		rdb = nil
	} else if cfg.RateLimit.Enabled {
		limiter = redis.NewLoginLimiter(rdb, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	}

	e := api.NewRouter(api.Deps{
		DB:      db,
		Redis:   rdb,
		Tokens:  tokens,
		Hasher:  hasher,
		Limiter: limiter,
		Logger:  log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
