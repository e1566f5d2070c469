package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/sales-api/internal/application/service"
	"github.com/sangkips/sales-api/internal/config"
	"github.com/sangkips/sales-api/internal/infrastructure/database"
	"github.com/sangkips/sales-api/internal/infrastructure/repository"
	"github.com/sangkips/sales-api/internal/presentation/http/handler"
	"github.com/sangkips/sales-api/internal/presentation/http/middleware"
	"github.com/sangkips/sales-api/internal/presentation/http/routes"
	"github.com/sangkips/sales-api/pkg/logger"
	"github.com/sangkips/sales-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New(cfg.App.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync(zl)

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.Log.Level, zl)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.AutoMigrate(db, zl); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}

	if err := database.SeedAdmin(db, cfg.Admin, zl); err != nil {
		zl.Warn("failed to seed admin user", zap.Error(err))
	}

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, zl.Named("auth"))
	saleService := service.NewSaleService(saleRepo, userRepo, zl.Named("sales"))
	reportService := service.NewReportService(saleRepo, zl.Named("reports"))
	cleaner := service.NewIdempotencyCleaner(idempotencyRepo, zl.Named("idempotency"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go cleaner.Run(ctx, cfg.Idempotency.CleanupInterval)

	rateLimiter := middleware.NewUserRateLimiter(
		middleware.RateLimiterConfigFromWindow(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	defer rateLimiter.Close()

	handlers := &routes.Handlers{
		Auth:   handler.NewAuthHandler(authService, jwtManager, cfg.Cookie),
		Sale:   handler.NewSaleHandler(saleService),
		Report: handler.NewReportHandler(reportService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Logger:          zl,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Error("server stopped unexpectedly", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
