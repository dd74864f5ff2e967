package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"wallet-service/config"
	"wallet-service/docs"
	httpHandler "wallet-service/internal/adapter/http/handler"
	"wallet-service/internal/adapter/http/middleware"
	pgStorage "wallet-service/internal/adapter/storage/postgres"
	redisStorage "wallet-service/internal/adapter/storage/redis"
	"wallet-service/internal/core/ports"
	"wallet-service/internal/service"
	"wallet-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Wallet Service")

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("Wallet Service stopped")
		os.Exit(1)
	}
}

// run wires the service and blocks until SIGINT/SIGTERM or a server failure.
// Every resource opened here is released before it returns.
func run(cfg *config.Config, log zerolog.Logger) error {
	ctx := context.Background()

	if cfg.Database.AutoMigrate {
		if err := pgStorage.Migrate(cfg.Database.DSN(), log); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	healthCheckers := []ports.HealthChecker{pgStorage.NewHealthCheck(pool)}

	// Redis backs rate limiting only; the ledger runs without it.
	var rateLimitStore *redisStorage.RateLimitStore
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	} else {
		log.Warn().Msg("Redis disabled, rate limiting is off")
	}

	// Initialize repositories
	userRepo := pgStorage.NewUserRepo(pool)
	walletRepo := pgStorage.NewWalletRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize core services
	hashSvc := service.NewBcryptHashService(bcrypt.DefaultCost)
	tokenSvc, err := service.NewJWTTokenService(
		cfg.JWT.Secret,
		cfg.JWT.Algorithm,
		cfg.JWT.AccessTTL(),
		cfg.JWT.RefreshTTL(),
		cfg.JWT.Issuer,
	)
	if err != nil {
		return fmt.Errorf("initialize token service: %w", err)
	}

	authSvc := service.NewAuthService(userRepo, hashSvc, tokenSvc, log)
	walletSvc := service.NewWalletService(walletRepo, transactor, service.NewLedgerMetrics(registry), log)

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		if _, err := service.NewBootstrapper(userRepo, hashSvc, log).EnsureUser(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		WalletSvc:      walletSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		Metrics:        middleware.NewHTTPMetrics(registry),
		Gatherer:       registry,
		OpenAPISpec:    docs.OpenAPI,
		APIPrefix:      cfg.Server.APIPrefix,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
	return nil
}
