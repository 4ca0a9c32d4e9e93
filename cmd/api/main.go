package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/estate-marketplace/internal/api/http"
	"github.com/spec-kit/estate-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/estate-marketplace/internal/auth"
	"github.com/spec-kit/estate-marketplace/internal/config"
	"github.com/spec-kit/estate-marketplace/internal/observability"
	"github.com/spec-kit/estate-marketplace/internal/persistence"
	"github.com/spec-kit/estate-marketplace/internal/ratelimit"
	"github.com/spec-kit/estate-marketplace/internal/repository"
	"github.com/spec-kit/estate-marketplace/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Auth.AdminEmail == "" {
		logger.Warn("AUTH_ADMIN_EMAIL not set; all admin routes will be rejected")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	listingRepo := repository.NewListingRepository(pool)

	authService := service.NewAuthService(*cfg, accountRepo)
	listingService := service.NewListingService(listingRepo)

	adminPolicy := auth.NewSingleAdminPolicy(cfg.Auth.AdminEmail)
	gate := auth.NewRoleGate(authService.TokenManager(), adminPolicy)

	loginLimiter := ratelimit.NewLimiter(
		redis.LoginCounter(),
		cfg.RateLimit.LoginAttempts,
		cfg.RateLimit.LoginWindow(),
		"ratelimit:login",
	)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:     handlers.NewAuthHandler(authService, loginLimiter),
		Admin:    handlers.NewAdminHandler(authService),
		Listings: handlers.NewListingsHandler(listingService),
		Gate:     gate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
