// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/onms-dev/crm-backend/internal/admin"
	"github.com/onms-dev/crm-backend/internal/applicant"
	"github.com/onms-dev/crm-backend/internal/auth"
	"github.com/onms-dev/crm-backend/internal/config"
	"github.com/onms-dev/crm-backend/internal/core"
	"github.com/onms-dev/crm-backend/internal/health"
	"github.com/onms-dev/crm-backend/internal/middleware"
	"github.com/onms-dev/crm-backend/internal/server"
	"github.com/onms-dev/crm-backend/internal/store"
	"github.com/onms-dev/crm-backend/internal/user"
)

const (
	drainDelay     = 5 * time.Second
	idempotencyTTL = 24 * time.Hour
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	st, err := store.New(cfg.Storage)
	if err != nil {
		return err
	}
	logger.Info("flat-file store ready",
		"applicants", cfg.Storage.ApplicantsPath,
		"users", cfg.Storage.UsersPath,
	)

	var redisConn *core.Redis
	if cfg.RateLimit.Enabled {
		redisConn, err = core.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		logger.Info("redis connected",
			"pool_size", cfg.Redis.PoolSize,
		)
	}

	if err := ensureKeyPair(cfg, logger); err != nil {
		return err
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	applicantRepo := applicant.NewRepository(st)
	userRepo := user.NewRepository(st)

	userSvc := user.NewService(userRepo, applicantRepo)
	userHandler := user.NewHandler(userSvc)

	applicantSvc := applicant.NewService(applicantRepo, userSvc)
	applicantHandler := applicant.NewHandler(applicantSvc)

	authSvc := auth.NewService(jwtManager, userSvc)
	authHandler := auth.NewHandler(authSvc)

	var redisChecker health.Checker
	if redisConn != nil {
		redisChecker = redisConn
	}
	healthHandler := health.NewHandler(st, redisChecker)

	adminCfg := admin.HandlerConfig{
		StoreStats: st.Stats,
		StorePing:  st.Ping,
	}
	if redisConn != nil {
		adminCfg.RedisStats = redisConn.PoolStats
		adminCfg.RedisPing = redisConn.Ping
	}
	adminHandler := admin.NewHandler(adminCfg)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	if redisConn != nil {
		router.Use(
			middleware.NewRateLimiter(redisConn.Client, middleware.RateLimitConfig{
				Limit: middleware.PerMinute(
					cfg.RateLimit.Requests,
					cfg.RateLimit.Burst,
				),
				FailOpen: true,
			}).Handler,
		)
	}
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(jwtManager)
	masterOnly := middleware.RequireMaster
	idempotency := middleware.NewIdempotency(idempotencyTTL).Handler

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		applicantHandler.RegisterRoutes(r, authenticator, idempotency)
		userHandler.RegisterRoutes(r, authenticator, masterOnly, idempotency)
		adminHandler.RegisterRoutes(r, authenticator, masterOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if redisConn != nil {
		if err := redisConn.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	logger.Info("application stopped")
	return nil
}

// ensureKeyPair generates a signing key pair on first start in non-production
// environments. Production deployments must provision keys out of band.
func ensureKeyPair(cfg *config.Config, logger *slog.Logger) error {
	_, err := os.Stat(cfg.JWT.PrivateKeyPath)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if cfg.IsProduction() {
		return errors.New("jwt signing key missing in production")
	}

	logger.Info("generating jwt signing key pair",
		"private_key", cfg.JWT.PrivateKeyPath,
		"public_key", cfg.JWT.PublicKeyPath,
	)

	if err := os.MkdirAll(filepath.Dir(cfg.JWT.PrivateKeyPath), 0o750); err != nil {
		return err
	}

	return auth.GenerateKeyPair(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath)
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
