package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httptransport "github.com/brainswarm/booking-api/internal/api/http"
	"github.com/brainswarm/booking-api/internal/api/http/handlers"
	"github.com/brainswarm/booking-api/internal/auth"
	"github.com/brainswarm/booking-api/internal/config"
	"github.com/brainswarm/booking-api/internal/events"
	"github.com/brainswarm/booking-api/internal/observability"
	"github.com/brainswarm/booking-api/internal/persistence"
	"github.com/brainswarm/booking-api/internal/repository"
	"github.com/brainswarm/booking-api/internal/service"
)

const serviceBanner = "Brain Swarm Authentication Backend"

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		if cfg.App.IsProduction() {
			logger.Fatal("AUTH_JWT_SECRET is required in production")
		}
		secret, err = auth.GenerateSecret()
		if err != nil {
			logger.Fatal("failed to generate jwt secret", zap.Error(err))
		}
		logger.Warn("AUTH_JWT_SECRET not set; using a random secret, tokens will not survive a restart")
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close() //nolint:errcheck

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	dispatcher := events.NewInMemoryDispatcher(logger)
	notifications := service.NewNotificationService(dispatcher, service.NewSendGridMailer(cfg.Notification), logger)
	notifications.RegisterHandlers()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	tokens := auth.NewTokenManager(secret, cfg.Auth.AccessTokenTTL())
	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo:   userRepo,
		Hasher:     auth.NewPasswordHasher(cfg.Auth.PBKDF2Iterations),
		Tokens:     tokens,
		Limiter:    service.NewRedisSignInLimiter(redis.Client, cfg.Auth.MaxFailedSignIns, cfg.Auth.SignInLockout(), logger),
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	bookingService := service.NewBookingService(service.BookingDependencies{
		BookingRepo: bookingRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
	})
	adminService := service.NewAdminService(statsRepo)

	if cfg.Admin.Seed {
		if cfg.App.IsProduction() && cfg.Admin.Password == "admin123" {
			logger.Warn("seed admin uses the default password; set ADMIN_PASSWORD")
		}
		if _, err := authService.EnsureAdmin(ctx, cfg.Admin); err != nil {
			logger.Fatal("failed to ensure seed admin", zap.Error(err))
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger),
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:    logger,
		Metrics:   metrics,
		Timeout:   cfg.App.RequestTimeout(),
		CORS:      cfg.CORS,
		RateLimit: cfg.RateLimit,
	})

	validator := handlers.NewValidator()
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(serviceBanner, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:           handlers.NewAuthHandler(authService, validator),
		Bookings:       handlers.NewBookingHandler(bookingService, validator),
		Admin:          handlers.NewAdminHandler(adminService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
		Gatherer:       registry,
	})

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(cfg.App.ShutdownTimeout()); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	drainCtx, drainCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout())
	defer drainCancel()
	if err := notifications.Wait(drainCtx); err != nil {
		logger.Warn("pending notification emails abandoned", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
