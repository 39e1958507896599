// Package app contains the application services behind the HTTP API and the
// quotectl CLI. Services depend on port interfaces only; every per-user
// record is read and written through the records package.
package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jsamuelsen/quotedesk/internal/app/records"
	"github.com/jsamuelsen/quotedesk/internal/platform/logging"
	"github.com/jsamuelsen/quotedesk/internal/platform/telemetry"
	"github.com/jsamuelsen/quotedesk/internal/ports"
)

// StoreConfig is shared by every service that persists per-user records.
type StoreConfig struct {
	// Store is required.
	Store ports.KeyValueStore

	// NamespacePrefix defaults to records.DefaultNamespacePrefix.
	NamespacePrefix string

	// Metrics may be nil.
	Metrics *telemetry.DomainMetrics

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// userStore is the common plumbing of the per-user services.
type userStore struct {
	store   ports.KeyValueStore
	prefix  string
	metrics *telemetry.DomainMetrics
	logger  *slog.Logger
}

func newUserStore(cfg StoreConfig, component string) userStore {
	if cfg.Store == nil {
		panic("app: " + component + " requires a Store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	prefix := cfg.NamespacePrefix
	if prefix == "" {
		prefix = records.DefaultNamespacePrefix
	}

	return userStore{
		store:   cfg.Store,
		prefix:  prefix,
		metrics: cfg.Metrics,
		logger:  logger.With(slog.String("component", component)),
	}
}

func (u userStore) namespace(user string) string {
	return records.UserNamespace(u.prefix, user)
}

// log prefers the request-scoped logger so request ids follow the call.
func (u userStore) log(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, u.logger)
}

func newUUID() string {
	return uuid.NewString()
}

// Services bundles the record services that share one store. The HTTP API,
// quotectl and the integration suite all build them the same way.
type Services struct {
	Gate    *AccessGate
	Company *CompanyService
	Catalog *CatalogService
	History *QuoteHistoryService
	Backup  *BackupService
}

// ServicesConfig configures NewServices.
type ServicesConfig struct {
	StoreConfig

	// Validator decides which activation codes the gate accepts.
	Validator ports.CodeValidator

	// ValidityDays is the lifetime of a new access grant.
	ValidityDays int
}

// NewServices wires every record service onto cfg.Store.
func NewServices(cfg ServicesConfig) *Services {
	company := NewCompanyService(cfg.StoreConfig)
	catalog := NewCatalogService(cfg.StoreConfig)
	history := NewQuoteHistoryService(cfg.StoreConfig)

	return &Services{
		Gate: NewAccessGate(AccessGateConfig{
			Store:        cfg.Store,
			Validator:    cfg.Validator,
			ValidityDays: cfg.ValidityDays,
			Metrics:      cfg.Metrics,
			Logger:       cfg.Logger,
		}),
		Company: company,
		Catalog: catalog,
		History: history,
		Backup:  NewBackupService(cfg.StoreConfig, company, catalog, history),
	}
}
