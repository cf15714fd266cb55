package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/almeidarc/affiliate-catalog/config"
	"github.com/almeidarc/affiliate-catalog/internal/catalog/handler"
	"github.com/almeidarc/affiliate-catalog/internal/catalog/repository"
	"github.com/almeidarc/affiliate-catalog/internal/catalog/usecase"
	"github.com/almeidarc/affiliate-catalog/internal/localstore"
	"github.com/almeidarc/affiliate-catalog/internal/migration"
	"github.com/almeidarc/affiliate-catalog/pkg/cache"
	"github.com/almeidarc/affiliate-catalog/pkg/database/postgres"
	"github.com/almeidarc/affiliate-catalog/pkg/logger"
	"github.com/almeidarc/affiliate-catalog/pkg/middleware"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.Config{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     false,
		DisableStacktrace: true,
	}

	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.New(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Open the legacy local product store
	local, err := localstore.Open(cfg.LocalStore.Path)
	if err != nil {
		appLogger.Fatal("Could not open local product store", zap.Error(err))
	}
	defer local.Close()

	// 5. Initialize Redis (optional, list cache only)
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis (list cache disabled)", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 6. Initialize Repository, UseCase, Handler
	repo := repository.NewPGRepository(db)
	catalogUC := usecase.NewCatalogUseCase(repo, redisClient, appLogger)
	catalogHandler := handler.NewCatalogHandler(catalogUC, appLogger)

	// 7. Migrate locally cached products into the remote store (runs once;
	// a failure keeps the flag unset so the next start retries)
	migrator := migration.New(local, catalogUC, appLogger)
	if err := migrator.Run(context.Background()); err != nil {
		appLogger.Fatal("Local product migration failed", zap.Error(err))
	}

	// 8. Start HTTP Server
	if cfg.Server.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(appLogger))
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	catalogHandler.MapRoutes(router.Group("/v1"))

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
