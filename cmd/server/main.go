package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/platformkit/identity-api/internal/api"
	"github.com/platformkit/identity-api/internal/core/service"
	"github.com/platformkit/identity-api/internal/infrastructure/config"
	mongodb "github.com/platformkit/identity-api/internal/infrastructure/db/mongo"
	redisdb "github.com/platformkit/identity-api/internal/infrastructure/db/redis"
	"github.com/platformkit/identity-api/internal/infrastructure/queue"
	"github.com/platformkit/identity-api/pkg/logger"
)

// @title        Identity Service API
// @version      1.0
// @description  Authentication and role-based authorization over a user directory.
// @BasePath     /
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("configuration failed")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})
	if cfg.JWTSecret == config.DevJWTSecret {
		log.Warn().Msg("using insecure development signing secret")
	}

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	// --- Core services ---
	codec := service.NewTokenCodec(cfg.JWTSecret, service.ParseTTL(cfg.TokenTTL))
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	presence := redisdb.NewPresenceTracker(rdb)
	activitySink := service.NewActivityService(userRepo, presence, log)

	dispatcher := queue.NewDispatcher(0, activitySink, log)
	dispatcher.Start(ctx)

	authService := service.NewAuthService(userRepo, codec, hasher, dispatcher, log)
	userService := service.NewUserService(userRepo, hasher)
	resolver := service.NewIdentityResolver(userRepo, codec)

	e := api.NewRouter(api.Dependencies{
		AuthService: authService,
		UserService: userService,
		Resolver:    resolver,
		Presence:    presence,
		Mongo:       db,
		Redis:       rdb,
		Logger:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
		os.Exit(1)
	}
}
