package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextValues(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, RequestIDFromContext(ctx))
	assert.Empty(t, CorrelationIDFromContext(ctx))
	assert.Empty(t, UserFromContext(ctx))
	//nolint:staticcheck // nil context is handled on purpose
	assert.Empty(t, UserFromContext(nil))

	ctx = ContextWithRequestID(ctx, "request-123")
	ctx = ContextWithCorrelationID(ctx, "correlation-456")
	ctx = ContextWithUser(ctx, "device_owner_v1")

	assert.Equal(t, "request-123", RequestIDFromContext(ctx))
	assert.Equal(t, "correlation-456", CorrelationIDFromContext(ctx))
	assert.Equal(t, "device_owner_v1", UserFromContext(ctx))
}
