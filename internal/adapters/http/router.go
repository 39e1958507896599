package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotedesk/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotedesk/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotedesk/internal/platform/config"
	"github.com/jsamuelsen/quotedesk/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 15 * time.Second

// backupPath carries whole-namespace documents and runs without a deadline.
const backupPath = "/api/v1/backup"

// RouterConfig contains everything SetupRouter wires together.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// ServiceName names the tracer for request spans.
	ServiceName string

	// AuthConfig controls how the caller's user id is resolved.
	AuthConfig *config.AuthConfig

	// Access gates every API route except /access itself.
	Access middleware.AccessChecker

	// Timeout is the request deadline for API routes.
	Timeout time.Duration

	Health  *handlers.HealthHandler
	Gate    *handlers.AccessHandler
	Company *handlers.CompanyHandler
	Catalog *handlers.CatalogHandler
	Quotes  *handlers.QuoteHandler
	Backup  *handlers.BackupHandler
	Address *handlers.AddressHandler
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Context logger - seed the request logger
//  3. Request ID and Correlation ID
//  4. OpenTelemetry - spans and request metrics
//  5. Logging - one line per API request (skips /-/)
//
// Route groups:
//   - /-/ (internal): probes, build info and metrics
//   - /api/v1/access: activation, open to every resolved user
//   - /api/v1/...: everything else, behind the access gate
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.ContextLogger(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.Logging(cfg.Logger),
	)

	if cfg.Health != nil {
		cfg.Health.RegisterHealthRoutesOnEngine(engine)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultRequestTimeout
	}

	authCfg := cfg.AuthConfig
	if authCfg == nil {
		authCfg = &config.AuthConfig{DefaultUser: config.DefaultUser}
	}

	apiV1 := engine.Group("/api/v1")
	apiV1.Use(
		middleware.Timeout(timeout, backupPath),
		middleware.ResolveUser(authCfg),
	)

	setupAPIRoutes(apiV1, cfg)
}

// setupAPIRoutes registers the business routes.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Gate != nil {
		cfg.Gate.RegisterRoutes(rg)
	}

	gated := rg.Group("")
	if cfg.Access != nil {
		gated.Use(middleware.RequireAccess(cfg.Access))
	}

	if cfg.Company != nil {
		cfg.Company.RegisterRoutes(gated)
	}

	if cfg.Catalog != nil {
		cfg.Catalog.RegisterRoutes(gated)
	}

	if cfg.Quotes != nil {
		cfg.Quotes.RegisterRoutes(gated)
	}

	if cfg.Backup != nil {
		cfg.Backup.RegisterRoutes(gated)
	}

	if cfg.Address != nil {
		cfg.Address.RegisterRoutes(gated)
	}
}
