package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dosmed/drug-ordering-system/internal/api"
	"github.com/dosmed/drug-ordering-system/internal/infrastructure/config"
	"github.com/dosmed/drug-ordering-system/internal/infrastructure/db/redis"
	"github.com/dosmed/drug-ordering-system/internal/infrastructure/db/sqlite"
	"github.com/dosmed/drug-ordering-system/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	db, err := sqlite.Connect(cfg.SQLite.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer func() { _ = db.Close() }()

	if err := sqlite.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	// Redis is optional; without it sessions live in process memory.
	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = rdb.Close() }()
	}

	e := api.NewRouter(api.RouterConfig{
		DB:         db,
		Redis:      rdb,
		JWTSecret:  cfg.JWTSecret,
		SessionTTL: cfg.Redis.SessionTTL,
		Log:        log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("server stopped")
}
