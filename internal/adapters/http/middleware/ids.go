package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quotedesk/internal/platform/logging"
)

const (
	// HeaderRequestID identifies one HTTP request.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID spans a whole wizard action, possibly several
	// requests (save the quote, then upsert each item into the catalog).
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin context key for the request ID.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin context key for the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

// maxIDLength caps inbound ids so a client cannot flood the logs.
const maxIDLength = 128

// tracedID describes one id header: where it lives and which request
// context setters receive it.
type tracedID struct {
	header string
	key    string
	attach []func(context.Context, string) context.Context
}

var (
	requestID = tracedID{
		header: HeaderRequestID,
		key:    ContextKeyRequestID,
		attach: []func(context.Context, string) context.Context{logging.WithRequestID, ContextWithRequestID},
	}
	correlationID = tracedID{
		header: HeaderCorrelationID,
		key:    ContextKeyCorrelationID,
		attach: []func(context.Context, string) context.Context{logging.WithCorrelationID, ContextWithCorrelationID},
	}
)

// RequestID adopts the inbound X-Request-ID or generates one. The id is
// echoed in the response, added to the context logger and kept on the request
// context for outbound ViaCEP calls.
func RequestID() gin.HandlerFunc {
	return requestID.middleware()
}

// CorrelationID propagates X-Correlation-ID the same way, starting a new one
// when the client sent none.
func CorrelationID() gin.HandlerFunc {
	return correlationID.middleware()
}

// GetRequestID returns the request ID set by RequestID.
func GetRequestID(c *gin.Context) string {
	return contextString(c, ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID set by CorrelationID.
func GetCorrelationID(c *gin.Context) string {
	return contextString(c, ContextKeyCorrelationID)
}

func (t tracedID) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(t.header)
		if !acceptableID(id) {
			id = uuid.NewString()
		}

		c.Set(t.key, id)
		c.Header(t.header, id)

		ctx := c.Request.Context()
		for _, attach := range t.attach {
			ctx = attach(ctx, id)
		}

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// acceptableID rejects empty, oversized and non-printable ids; they would end
// up verbatim in log lines and response headers.
func acceptableID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}

	for i := range len(id) {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}

	return true
}

func contextString(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}

	return ""
}
