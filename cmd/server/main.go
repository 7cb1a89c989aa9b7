package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ratetask/rating-platform/internal/api"
	"github.com/ratetask/rating-platform/internal/core/service"
	"github.com/ratetask/rating-platform/internal/infrastructure/ai"
	"github.com/ratetask/rating-platform/internal/infrastructure/config"
	mongodb "github.com/ratetask/rating-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/ratetask/rating-platform/internal/infrastructure/db/redis"
	"github.com/ratetask/rating-platform/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

// @title        Rating Platform API
// @version      1.0
// @description  REST API for collecting human ratings of AI chat responses.
// @BasePath     /api
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	generator, err := ai.New(ai.Config{
		Provider: cfg.AI.Provider,
		Model:    cfg.AI.Model,
		APIKey:   cfg.AI.APIKey,
		BaseURL:  cfg.AI.BaseURL,
		Timeout:  cfg.AI.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("generator setup failed")
	}

	if err := service.SeedDemoUsers(ctx, mongodb.NewUserRepository(db), log); err != nil {
		log.Fatal().Err(err).Msg("demo user seeding failed")
	}

	e := api.NewRouter(db, rdb, generator, cfg.JWTSecret, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server exited")
}
