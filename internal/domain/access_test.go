package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessGrant_StatusAt(t *testing.T) {
	activated := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	grant := NewAccessGrant("VIP2024", activated, DefaultAccessValidityDays)

	tests := []struct {
		name     string
		now      time.Time
		wantType AccessState
		wantDays int
	}{
		{name: "just activated", now: activated, wantType: AccessValid, wantDays: 30},
		{name: "one minute later rounds up", now: activated.Add(time.Minute), wantType: AccessValid, wantDays: 30},
		{name: "one day later", now: activated.AddDate(0, 0, 1), wantType: AccessValid, wantDays: 29},
		{name: "last instant", now: grant.ExpiresAt, wantType: AccessValid, wantDays: 0},
		{name: "hour before expiry", now: grant.ExpiresAt.Add(-time.Hour), wantType: AccessValid, wantDays: 1},
		{name: "after expiry", now: grant.ExpiresAt.Add(time.Nanosecond), wantType: AccessExpired},
		{name: "31 days later", now: activated.AddDate(0, 0, 31), wantType: AccessExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := grant.StatusAt(tt.now)

			assert.Equal(t, tt.wantType, status.State)
			assert.Equal(t, tt.wantDays, status.DaysRemaining)
			require.NotNil(t, status.ExpiresAt)
			assert.True(t, status.ExpiresAt.Equal(grant.ExpiresAt))
			assert.Equal(t, tt.wantType == AccessValid, status.Allowed())
		})
	}
}

func TestNewAccessGrant_CalendarDays(t *testing.T) {
	activated := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)

	grant := NewAccessGrant("ABC1234", activated, 30)

	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), grant.ExpiresAt)
	assert.Equal(t, activated, grant.ActivatedAt)
}

func TestAccessGrant_JSONShape(t *testing.T) {
	grant := NewAccessGrant("ABC1234", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 30)

	data, err := json.Marshal(grant)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"code": "ABC1234",
		"activationDate": "2024-01-01T00:00:00Z",
		"expirationDate": "2024-01-31T00:00:00Z"
	}`, string(data))
}

func TestNormalizeAccessCode(t *testing.T) {
	assert.Equal(t, "VIP2024", NormalizeAccessCode("  vip2024\n"))
	assert.Equal(t, "PRO-XY99", NormalizeAccessCode("pro-xy99"))
	assert.Empty(t, NormalizeAccessCode("   "))
}
