package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticketfront/api/routes"
	"ticketfront/internal/booking"
	"ticketfront/internal/history"
	"ticketfront/internal/notifications"
	"ticketfront/internal/payments"
	"ticketfront/internal/reservations"
	"ticketfront/internal/seats"
	"ticketfront/internal/shared/config"
	"ticketfront/internal/shared/database"
	"ticketfront/internal/shared/middleware"
	"ticketfront/internal/upstream"
	"ticketfront/pkg/cache"
	"ticketfront/pkg/logger"
	"ticketfront/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()

	// Set Gin mode (debug/release) before the logger picks its format
	gin.SetMode(cfg.GinMode)
	appLogger = logger.NewWithWriter(os.Stdout, cfg.LogLevel)
	logger.SetDefault(appLogger)

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("Failed to connect to storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	cacheService := cache.NewService(db.Redis)

	// Booking events
	var publisher notifications.Publisher = notifications.NoopPublisher{}
	if cfg.Kafka.Enabled {
		producer, err := notifications.NewKafkaProducer(notifications.NewKafkaProducerConfig(cfg.Kafka))
		if err != nil {
			appLogger.Error("Failed to initialize Kafka producer, booking events are disabled", slog.Any("error", err))
		} else {
			publisher = producer
			appLogger.Info("Kafka producer initialized",
				slog.Any("brokers", cfg.Kafka.Brokers),
				slog.String("topic", cfg.Kafka.Topic),
			)
		}
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			appLogger.Error("Error closing booking event producer", slog.Any("error", err))
		}
	}()

	// Reservation API
	api := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout).
		WithCircuitBreaker(uint32(max(cfg.Upstream.BreakerFailures, 0)), cfg.Upstream.BreakerCooldown)
	reservationClient := reservations.NewClient(api)

	var (
		historySvc history.Service
		ledger     booking.Ledger
	)
	if db.HistoryEnabled() {
		historySvc = history.NewService(history.NewRepository(db.PostgreSQL), reservationClient, publisher, cacheService)
		ledger = historySvc
	} else {
		appLogger.Info("Reservation history disabled")
	}

	manager := booking.NewManager(&booking.Dependencies{
		Inventory:    seats.NewClient(api),
		Reservations: reservationClient,
		Payments:     payments.NewClient(api),
		Publisher:    publisher,
		Logger:       appLogger,
		MaxSeats:     cfg.Booking.MaxSeats,
	}, booking.NewCacheStore(cacheService, cfg.Redis.SessionTTL), ledger, cfg.Redis.SessionTTL)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	manager.StartJanitor(ctx, time.Minute)
	defer manager.Stop()

	// Initialize Rate Limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.NewRateLimiter(db.Redis, &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			BookingRequests: cfg.RateLimit.BookingRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
			slog.Int("booking_requests", cfg.RateLimit.BookingRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	router := setupRouter(cfg, db, manager, historySvc, rateLimiter)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)),
			slog.String("upstream", cfg.Upstream.BaseURL),
			slog.String("version", Version),
			slog.String("commit", GitCommit),
			slog.String("build_time", BuildTime),
			slog.Bool("history", db.HistoryEnabled()),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	errgrp.Go(func() error {
		<-ctx.Done()
		appLogger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := errgrp.Wait(); err != nil {
		appLogger.Error("Server stopped with error", slog.Any("error", err))
		return
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, db *database.DB, manager *booking.Manager, historySvc history.Service, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	engine.Use(middleware.RequestID(), RequestLoggerMiddleware(appLogger), gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowOriginFunc = func(origin string) bool {
			return !cfg.IsProduction()
		}
	}
	engine.Use(cors.New(corsConfig))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	appRouter := routes.NewRouter(cfg, db, manager, historySvc)
	appRouter.SetupRoutes(engine)

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.LogHTTPRequest(c, time.Since(start))
	}
}
