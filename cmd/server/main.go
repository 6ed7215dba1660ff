package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/updates-app/updates-backend/internal/api"
	"github.com/updates-app/updates-backend/internal/core/service"
	"github.com/updates-app/updates-backend/internal/infrastructure/config"
	mongodb "github.com/updates-app/updates-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/updates-app/updates-backend/internal/infrastructure/db/redis"
	"github.com/updates-app/updates-backend/internal/infrastructure/queue"
	"github.com/updates-app/updates-backend/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	userRepo := mongodb.NewUserRepository(db)
	assignmentRepo := mongodb.NewAssignmentRepository(client, db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := assignmentRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("assignment index creation failed")
	}

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

	// --- Services ---
	dispatcher := queue.NewDispatcher(0, queue.NewLogNotifier(log), log)
	dispatcher.Start(ctx)

	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	guard := redisdb.NewLoginGuard(rdb)
	authService := service.NewAuthService(userRepo, assignmentRepo, tokens, guard)
	resetService := service.NewPasswordResetService(userRepo, dispatcher, cfg.ResetTokenTTL, cfg.ResetCooldown)
	assignmentService := service.NewAssignmentService(userRepo, assignmentRepo)

	e := api.NewRouter(api.Deps{
		Mongo:        db,
		Redis:        rdb,
		AuthService:  authService,
		ResetService: resetService,
		Assignments:  assignmentService,
		Tokens:       tokens,
		Log:          log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
