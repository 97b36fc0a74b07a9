package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dimos082/website-monitor/configs"
	"github.com/dimos082/website-monitor/internal/crawler"
	"github.com/dimos082/website-monitor/internal/handler"
	"github.com/dimos082/website-monitor/internal/middleware"
	"github.com/dimos082/website-monitor/internal/repository"
	"github.com/dimos082/website-monitor/internal/scanner"
	"github.com/dimos082/website-monitor/internal/server"
	"github.com/dimos082/website-monitor/internal/service"
)

// hookable functions for dependency injection
var (
	LoadConfig = configs.Load
	NewDB      = repository.NewDB
	MigrateDB  = repository.Migrate
)

// Run loads config, opens DB, runs migrations, starts the scan worker pool,
// and serves the HTTP API until the process is signalled.
func Run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("config load error: %w", err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("logger init error: %w", err)
	}

	db, err := NewDB(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}

	if err := MigrateDB(db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	// Repositories
	scanRepo := repository.NewScanRepo(db)
	findingRepo := repository.NewFindingRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	// Engine + worker pool
	engine := scanner.New(scanner.Options{
		Timeout:          cfg.ScanTimeout,
		ProbeConcurrency: cfg.ProbeConcurrency,
		UserAgent:        cfg.UserAgent,
		Logger:           log,
	})
	pool := crawler.New(scanRepo, engine, log, cfg.MaxWorkers, cfg.QueueSize)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go pool.Start(ctx)

	// Services
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, tokenRepo, cfg.JWTSecret, cfg.JWTLifetime)
	scanService := service.NewScanService(scanRepo, findingRepo, pool)
	healthService := service.NewHealthService(db, "website-monitor")

	// Handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	scanHandler := handler.NewScanHandler(scanService)
	healthHandler := handler.NewHealthHandler(healthService)

	gin.SetMode(cfg.ServerMode)
	r := gin.New()
	server.RegisterRoutes(
		r,
		middleware.AuthMiddleware(authService, userService, userRepo),
		[]server.RouteRegistrar{healthHandler, authHandler},
		[]server.ProtectedRouteRegistrar{authHandler, scanHandler},
	)

	addr := cfg.ServerHost + ":" + cfg.ServerPort
	log.WithField("addr", addr).Info("starting server")
	return r.Run(addr)
}

// newLogger builds the application logger, teeing to a log file when configured.
func newLogger(cfg *configs.Config) (*logrus.Logger, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	log.SetLevel(level)

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}
	return log, nil
}
