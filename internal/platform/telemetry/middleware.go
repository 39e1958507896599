package telemetry

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jsamuelsen/quotedesk/internal/platform/telemetry"

const (
	// apiPrefix is stripped to find the resource group of a route.
	apiPrefix = "/api/v1/"

	// probePrefix marks the health and metrics routes.
	probePrefix = "/-/"

	// unmatchedRoute labels requests gin could not route, keeping raw paths
	// out of metric attributes.
	unmatchedRoute = "unmatched"
)

// httpMetrics holds the per-request instruments.
type httpMetrics struct {
	duration  metric.Float64Histogram
	total     metric.Int64Counter
	active    metric.Int64UpDownCounter
	bodyBytes metric.Int64Histogram
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	duration, errDuration := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	total, errTotal := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("HTTP requests served"),
	)
	active, errActive := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("HTTP requests in flight"),
	)
	bodyBytes, errBody := meter.Int64Histogram(
		"http.server.request.body.size",
		metric.WithDescription("Declared request body size; large values are backup imports and logos"),
		metric.WithUnit("By"),
	)

	if err := errors.Join(errDuration, errTotal, errActive, errBody); err != nil {
		return nil, err
	}

	return &httpMetrics{duration: duration, total: total, active: active, bodyBytes: bodyBytes}, nil
}

// routeAttrs labels a request by method, route template and resource group
// ("quotes", "catalog", "probe", ...).
func routeAttrs(c *gin.Context) []attribute.KeyValue {
	route := c.FullPath()
	if route == "" {
		route = unmatchedRoute
	}

	return []attribute.KeyValue{
		attribute.String("http.method", c.Request.Method),
		attribute.String("http.route", route),
		attribute.String("quotedesk.group", routeGroup(route)),
	}
}

// routeGroup returns the first path segment under /api/v1.
func routeGroup(route string) string {
	switch {
	case strings.HasPrefix(route, probePrefix):
		return "probe"
	case strings.HasPrefix(route, apiPrefix):
		group, _, _ := strings.Cut(strings.TrimPrefix(route, apiPrefix), "/")
		return group
	default:
		return unmatchedRoute
	}
}

// Middleware records request metrics and echoes the trace id in X-Trace-ID.
// Run it after TracingMiddleware so the span exists.
func Middleware() gin.HandlerFunc {
	m, err := newHTTPMetrics(otel.Meter(instrumentationName))
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		start := time.Now()
		attrs := routeAttrs(c)
		inFlight := metric.WithAttributes(attrs...)

		m.active.Add(ctx, 1, inFlight)
		defer m.active.Add(ctx, -1, inFlight)

		if c.Request.ContentLength > 0 {
			m.bodyBytes.Record(ctx, c.Request.ContentLength, inFlight)
		}

		c.Next()

		if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.HasTraceID() {
			c.Header("X-Trace-ID", sc.TraceID().String())
		}

		done := metric.WithAttributes(append(attrs, attribute.Int("http.status_code", c.Writer.Status()))...)
		m.duration.Record(ctx, time.Since(start).Seconds(), done)
		m.total.Add(ctx, 1, done)
	}
}

// TracingMiddleware starts a server span per request. Probe traffic from
// orchestrators is not traced.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName, otelgin.WithFilter(func(r *http.Request) bool {
		return !strings.HasPrefix(r.URL.Path, probePrefix)
	}))
}
