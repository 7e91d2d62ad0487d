package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plataforma/auth-backend/internal/api"
	"github.com/plataforma/auth-backend/internal/core/service"
	"github.com/plataforma/auth-backend/internal/infrastructure/config"
	mongodb "github.com/plataforma/auth-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/plataforma/auth-backend/internal/infrastructure/db/redis"
	"github.com/plataforma/auth-backend/pkg/logger"
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

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Database.URL,
		Database: cfg.Database.Name,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	hasher := service.NewBcryptHasher(0)
	tokens := service.NewJWTService(cfg.SecretKey, time.Duration(cfg.AccessTokenExpireMinutes)*time.Minute)
	statsCache := redisdb.NewStatsCache(rdb)

	authService := service.NewAuthService(userRepo, hasher, tokens, log)
	userService := service.NewUserService(userRepo, hasher, statsCache, log)

	// Explicit seeding, decoupled from any constructor. Idempotent.
	if err := userService.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("bootstrap failed")
	}

	e := api.NewRouter(authService, userService, tokens, db, rdb, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
