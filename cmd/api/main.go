package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sethvargo/go-retry"
	"go.uber.org/multierr"

	"github.com/hrgrifes/atelier-backend/api/routes"
	authsvc "github.com/hrgrifes/atelier-backend/internal/auth"
	cartsvc "github.com/hrgrifes/atelier-backend/internal/cart"
	"github.com/hrgrifes/atelier-backend/internal/content"
	"github.com/hrgrifes/atelier-backend/internal/records"
	"github.com/hrgrifes/atelier-backend/internal/transfer"
	"github.com/hrgrifes/atelier-backend/pkg/auth/session"
	"github.com/hrgrifes/atelier-backend/pkg/config"
	"github.com/hrgrifes/atelier-backend/pkg/db"
	"github.com/hrgrifes/atelier-backend/pkg/logger"
	"github.com/hrgrifes/atelier-backend/pkg/metrics"
	"github.com/hrgrifes/atelier-backend/pkg/migrate"
	"github.com/hrgrifes/atelier-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	// The database may still be coming up alongside us.
	pingBackoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	if err := retry.Do(ctx, pingBackoff, func(ctx context.Context) error {
		return retry.RetryableError(dbClient.Ping(ctx))
	}); err != nil {
		logg.Error(ctx, "database unreachable", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	saveMetrics := metrics.NewSaveMetrics(registry)

	recordsRepo := records.NewRepository(dbClient.DB())

	initial, hasPersisted := content.Load(ctx, recordsRepo, logg)
	store := content.NewStore(initial)

	scheduler := content.NewScheduler(cfg.Save, recordsRepo, logg, saveMetrics, hasPersisted)
	scheduler.Bind(store)

	contentService, err := content.NewService(content.ServiceParams{
		Store:  store,
		Repo:   recordsRepo,
		Saver:  scheduler,
		Logger: logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create content service", err)
		os.Exit(1)
	}

	cartService := cartsvc.NewService(ctx, recordsRepo, logg)
	authService := authsvc.NewService(cfg.JWT, cfg.Admin, sessionManager, logg)
	transferGateway := transfer.NewGateway(contentService, logg)

	handler := routes.NewRouter(routes.Deps{
		Config:    cfg,
		Logger:    logg,
		DB:        dbClient,
		Redis:     redisClient,
		Sessions:  sessionManager,
		Auth:      authService,
		Content:   contentService,
		Scheduler: scheduler,
		Cart:      cartService,
		Transfer:  transferGateway,
		Metrics:   registry,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(startCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))

	// Write out anything sitting in the debounce window before closing.
	closeErr = multierr.Append(closeErr, scheduler.Flush(shutdownCtx))
	scheduler.Close()

	closeErr = multierr.Append(closeErr, redisClient.Close())
	closeErr = multierr.Append(closeErr, dbClient.Close())

	if closeErr != nil {
		logg.Error(startCtx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(startCtx, "shutdown complete")
}
