package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Disabled(t *testing.T) {
	p, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)

	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestDomainMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewDomainMetrics(reg)
	require.NoError(t, err)

	ctx := context.Background()
	m.QuoteSaved(ctx)
	m.QuoteSaved(ctx)
	m.CatalogUpserted(ctx, true)
	m.CatalogUpserted(ctx, false)
	m.CatalogUpserted(ctx, false)
	m.Activation(ctx, true)
	m.Activation(ctx, false)
	m.BackupImported(ctx, false)

	assert.InDelta(t, 2, testutil.ToFloat64(m.promQuotesSaved), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.promCatalogUpserts.WithLabelValues(OutcomeCreated)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.promCatalogUpserts.WithLabelValues(OutcomeUpdated)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.promActivations.WithLabelValues(OutcomeAccepted)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.promActivations.WithLabelValues(OutcomeRejected)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.promImports.WithLabelValues(OutcomeFailed)), 0)
}

func TestDomainMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewDomainMetrics(reg)
	require.NoError(t, err)

	_, err = NewDomainMetrics(reg)
	assert.Error(t, err)
}

func TestDomainMetrics_NilIsNoop(t *testing.T) {
	var m *DomainMetrics

	assert.NotPanics(t, func() {
		m.QuoteSaved(context.Background())
		m.CatalogUpserted(context.Background(), true)
		m.Activation(context.Background(), true)
		m.BackupImported(context.Background(), true)
	})
}

func TestMiddleware_PassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(TracingMiddleware("quotedesk"), Middleware())
	r.GET("/api/v1/quotes", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/quotes", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouteGroup(t *testing.T) {
	tests := []struct {
		route string
		want  string
	}{
		{"/api/v1/quotes/:id", "quotes"},
		{"/api/v1/catalog", "catalog"},
		{"/api/v1/access/activate", "access"},
		{"/-/ready", "probe"},
		{"", "unmatched"},
		{"/favicon.ico", "unmatched"},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			assert.Equal(t, tt.want, routeGroup(tt.route))
		})
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Middleware())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClampRate(t *testing.T) {
	assert.InDelta(t, 0, clampRate(-0.5), 0)
	assert.InDelta(t, 0.25, clampRate(0.25), 0)
	assert.InDelta(t, 1, clampRate(3), 0)
}
