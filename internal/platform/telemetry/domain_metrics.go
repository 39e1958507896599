package telemetry

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome labels for DomainMetrics.
const (
	OutcomeCreated  = "created"
	OutcomeUpdated  = "updated"
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeOK       = "ok"
	OutcomeFailed   = "failed"
)

// DomainMetrics counts business events. Each event is recorded on the otel
// meter (exported over OTLP when telemetry is enabled) and on a Prometheus
// counter served at /-/metrics. A nil *DomainMetrics records nothing.
type DomainMetrics struct {
	quotesSaved    metric.Int64Counter
	catalogUpserts metric.Int64Counter
	activations    metric.Int64Counter
	imports        metric.Int64Counter

	promQuotesSaved    prometheus.Counter
	promCatalogUpserts *prometheus.CounterVec
	promActivations    *prometheus.CounterVec
	promImports        *prometheus.CounterVec
}

// NewDomainMetrics creates the counters and registers the Prometheus
// collectors with reg. Pass prometheus.DefaultRegisterer in production and a
// fresh registry in tests.
func NewDomainMetrics(reg prometheus.Registerer) (*DomainMetrics, error) {
	meter := otel.Meter(instrumentationName)

	m := &DomainMetrics{
		promQuotesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quotedesk",
			Name:      "quotes_saved_total",
			Help:      "Quotes saved to history.",
		}),
		promCatalogUpserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotedesk",
			Name:      "catalog_upserts_total",
			Help:      "Catalog upserts by outcome.",
		}, []string{"outcome"}),
		promActivations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotedesk",
			Name:      "activations_total",
			Help:      "Activation attempts by outcome.",
		}, []string{"outcome"}),
		promImports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotedesk",
			Name:      "backup_imports_total",
			Help:      "Backup imports by outcome.",
		}, []string{"outcome"}),
	}

	var err error

	if m.quotesSaved, err = meter.Int64Counter("quotedesk.quotes.saved",
		metric.WithDescription("Quotes saved to history")); err != nil {
		return nil, err
	}

	if m.catalogUpserts, err = meter.Int64Counter("quotedesk.catalog.upserts",
		metric.WithDescription("Catalog upserts by outcome")); err != nil {
		return nil, err
	}

	if m.activations, err = meter.Int64Counter("quotedesk.access.activations",
		metric.WithDescription("Activation attempts by outcome")); err != nil {
		return nil, err
	}

	if m.imports, err = meter.Int64Counter("quotedesk.backup.imports",
		metric.WithDescription("Backup imports by outcome")); err != nil {
		return nil, err
	}

	for _, c := range []prometheus.Collector{m.promQuotesSaved, m.promCatalogUpserts, m.promActivations, m.promImports} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func outcome(value string) metric.AddOption {
	return metric.WithAttributes(attribute.String("outcome", value))
}

// QuoteSaved records one quote added to history.
func (m *DomainMetrics) QuoteSaved(ctx context.Context) {
	if m == nil {
		return
	}

	m.quotesSaved.Add(ctx, 1)
	m.promQuotesSaved.Inc()
}

// CatalogUpserted records a catalog upsert that created or updated an entry.
func (m *DomainMetrics) CatalogUpserted(ctx context.Context, created bool) {
	if m == nil {
		return
	}

	result := OutcomeUpdated
	if created {
		result = OutcomeCreated
	}

	m.catalogUpserts.Add(ctx, 1, outcome(result))
	m.promCatalogUpserts.WithLabelValues(result).Inc()
}

// Activation records an activation attempt.
func (m *DomainMetrics) Activation(ctx context.Context, accepted bool) {
	if m == nil {
		return
	}

	result := OutcomeRejected
	if accepted {
		result = OutcomeAccepted
	}

	m.activations.Add(ctx, 1, outcome(result))
	m.promActivations.WithLabelValues(result).Inc()
}

// BackupImported records an import attempt.
func (m *DomainMetrics) BackupImported(ctx context.Context, ok bool) {
	if m == nil {
		return
	}

	result := OutcomeFailed
	if ok {
		result = OutcomeOK
	}

	m.imports.Add(ctx, 1, outcome(result))
	m.promImports.WithLabelValues(result).Inc()
}
