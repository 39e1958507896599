package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quotedesk/internal/app/records"
	"github.com/jsamuelsen/quotedesk/internal/domain"
	"github.com/jsamuelsen/quotedesk/internal/platform/logging"
	"github.com/jsamuelsen/quotedesk/internal/platform/telemetry"
	"github.com/jsamuelsen/quotedesk/internal/ports"
)

// InvalidActivationCodeReason explains every rejected activation.
const InvalidActivationCodeReason = "invalid or unknown activation code"

// AccessGateConfig configures an AccessGate.
type AccessGateConfig struct {
	// Store and Validator are required.
	Store     ports.KeyValueStore
	Validator ports.CodeValidator

	// ValidityDays defaults to domain.DefaultAccessValidityDays.
	ValidityDays int

	// Now defaults to time.Now.
	Now func() time.Time

	Metrics *telemetry.DomainMetrics
	Logger  *slog.Logger
}

// AccessGate tracks the installation-wide activation grant.
type AccessGate struct {
	store        ports.KeyValueStore
	validator    ports.CodeValidator
	validityDays int
	now          func() time.Time
	metrics      *telemetry.DomainMetrics
	logger       *slog.Logger
}

// NewAccessGate creates an access gate. It panics without a store or validator.
func NewAccessGate(cfg AccessGateConfig) *AccessGate {
	if cfg.Store == nil || cfg.Validator == nil {
		panic("app: AccessGate requires a Store and a Validator")
	}

	g := &AccessGate{
		store:        cfg.Store,
		validator:    cfg.Validator,
		validityDays: cfg.ValidityDays,
		now:          cfg.Now,
		metrics:      cfg.Metrics,
		logger:       cfg.Logger,
	}

	if g.validityDays <= 0 {
		g.validityDays = domain.DefaultAccessValidityDays
	}

	if g.now == nil {
		g.now = time.Now
	}

	if g.logger == nil {
		g.logger = slog.Default()
	}

	g.logger = g.logger.With(slog.String("component", "app.AccessGate"))

	return g
}

// CheckStatus derives the gate state from the stored grant and the clock.
func (g *AccessGate) CheckStatus(ctx context.Context) (domain.AccessStatus, error) {
	grant, found, err := records.Read[domain.AccessGrant](ctx, g.store, records.GlobalNamespace, records.KeyAccess)
	if err != nil {
		return domain.AccessStatus{}, err
	}

	if !found {
		return domain.AccessStatus{State: domain.AccessNone}, nil
	}

	return grant.StatusAt(g.now()), nil
}

// Activate records a new grant for code when the validator accepts it,
// replacing any previous grant. A rejected code leaves the stored grant
// untouched and returns a domain.ForbiddenError.
func (g *AccessGate) Activate(ctx context.Context, code string) (domain.AccessGrant, error) {
	logger := logging.FromContextOr(ctx, g.logger)
	code = domain.NormalizeAccessCode(code)

	if code == "" || !g.validator.Valid(ctx, code) {
		g.metrics.Activation(ctx, false)
		logger.WarnContext(ctx, "activation rejected", slog.String(logging.ActivationCodeKey, code))

		return domain.AccessGrant{}, domain.NewForbiddenError("activate", InvalidActivationCodeReason)
	}

	grant := domain.NewAccessGrant(code, g.now(), g.validityDays)

	if err := records.Write(ctx, g.store, records.GlobalNamespace, records.KeyAccess, grant); err != nil {
		return domain.AccessGrant{}, err
	}

	g.metrics.Activation(ctx, true)
	logger.InfoContext(ctx, "access activated",
		slog.String(logging.ActivationCodeKey, code),
		slog.Time("expires_at", grant.ExpiresAt),
	)

	return grant, nil
}
