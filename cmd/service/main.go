// Package main is the entry point for the quotedesk HTTP API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quotedesk/internal/adapters/access"
	"github.com/jsamuelsen/quotedesk/internal/adapters/clients"
	"github.com/jsamuelsen/quotedesk/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotedesk/internal/adapters/http"
	"github.com/jsamuelsen/quotedesk/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotedesk/internal/adapters/storage"
	"github.com/jsamuelsen/quotedesk/internal/app"
	"github.com/jsamuelsen/quotedesk/internal/platform/config"
	"github.com/jsamuelsen/quotedesk/internal/platform/logging"
	"github.com/jsamuelsen/quotedesk/internal/platform/telemetry"
	"github.com/jsamuelsen/quotedesk/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("storage", cfg.Storage.Driver),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:       cfg.Telemetry.Enabled,
		Endpoint:      cfg.Telemetry.Endpoint,
		ServiceName:   cfg.Telemetry.ServiceName,
		Version:       cfg.App.Version,
		Environment:   cfg.App.Environment,
		SamplingRate:  cfg.Telemetry.SamplingRate,
		StorageDriver: cfg.Storage.Driver,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	metrics, err := telemetry.NewDomainMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("registering domain metrics: %w", err)
	}

	// 5. Open the record store
	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", cfg.Storage.Driver, err)
	}

	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			logger.Error("store close error", slog.Any("error", closeErr))
		}
	}()

	// 6. ViaCEP client (ACL pattern)
	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Address.BaseURL,
		ServiceName: cfg.Services.Address.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		UserAgent:   cfg.App.Name + "/" + Version,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating HTTP client: %w", err)
	}

	postalCodes := acl.NewPostalCodeClient(httpClient, logger)

	// 7. Health registry
	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(store); err != nil {
		return fmt.Errorf("registering health check: %w", err)
	}

	if err := healthRegistry.RegisterOptional(postalCodes); err != nil {
		return fmt.Errorf("registering health check: %w", err)
	}

	// 8. Application services
	services := app.NewServices(app.ServicesConfig{
		StoreConfig: app.StoreConfig{
			Store:           store,
			NamespacePrefix: cfg.Storage.NamespacePrefix,
			Metrics:         metrics,
			Logger:          logger,
		},
		Validator:    access.NewAllowList(cfg.Access.Codes),
		ValidityDays: cfg.Access.ValidityDays,
	})
	addresses := app.NewAddressService(postalCodes, logger)

	// 9. Handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	buildInfo.StorageDriver = cfg.Storage.Driver

	// 10. HTTP server and router
	server := http.New(&cfg.Server, &cfg.CORS, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:      logger,
		ServiceName: cfg.Telemetry.ServiceName,
		AuthConfig:  &cfg.Auth,
		Access:      services.Gate,
		Timeout:     cfg.Server.RequestTimeout,
		Health:      handlers.NewHealthHandler(healthRegistry, buildInfo, nil),
		Gate:        handlers.NewAccessHandler(services.Gate),
		Company:     handlers.NewCompanyHandler(services.Company),
		Catalog:     handlers.NewCatalogHandler(services.Catalog),
		Quotes:      handlers.NewQuoteHandler(services.History),
		Backup:      handlers.NewBackupHandler(services.Backup),
		Address:     handlers.NewAddressHandler(addresses),
	})

	// 11. Start server (non-blocking)
	serverErr := server.Start()

	// 12. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Drain in-flight requests before the deferred store close runs.
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
