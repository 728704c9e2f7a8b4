package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyboss/study-service/internal/auth"
	"github.com/studyboss/study-service/internal/cache"
	"github.com/studyboss/study-service/internal/config"
	"github.com/studyboss/study-service/internal/handlers"
	"github.com/studyboss/study-service/internal/repositories"
	"github.com/studyboss/study-service/internal/repositories/memory"
	"github.com/studyboss/study-service/internal/repositories/postgres"
	"github.com/studyboss/study-service/internal/services"
	"github.com/studyboss/study-service/internal/utils"
	"github.com/studyboss/study-service/internal/validator"
	"github.com/studyboss/study-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogLogger := utils.ToSlogLogger(logger)

	// Storage backend
	var repo repositories.Repository
	switch cfg.StorageBackend {
	case "postgres":
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		if err := postgres.AutoMigrate(db); err != nil {
			logger.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
		repo = postgres.NewRepository(db)
		logger.Info("Using postgres storage", "backend", cfg.StorageBackend)
	default:
		repo = memory.NewRepository()
		logger.Info("Using in-memory storage", "backend", cfg.StorageBackend)
	}

	// Summary cache
	var cacheService cache.CacheService
	if cfg.RedisURL != "" {
		redisClient, err := pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Error("Failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, slogLogger)
		logger.Info("Summary cache enabled")
	} else {
		cacheService = cache.NewNoopCache()
	}

	// Event publisher
	publisher, err := cfg.Events.CreateEventPublisher(slogLogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	v := validator.New()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	userService := services.NewUserService(repo, publisher, slogLogger, v)
	taskService := services.NewTaskService(repo, publisher, slogLogger, v)
	contentService := services.NewContentService(repo, cacheService, slogLogger, v)
	progressService := services.NewProgressService(repo, publisher, slogLogger, v)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(
		userService,
		taskService,
		contentService,
		progressService,
		tokens,
		cfg.AdminEmail,
		logger,
	)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
