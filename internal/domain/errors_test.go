package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrValidation, ErrForbidden, ErrUnavailable}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name        string
		entity      string
		id          string
		expectedMsg string
	}{
		{name: "with id", entity: EntityQuote, id: "q-1", expectedMsg: `quote "q-1" not found`},
		{name: "without id", entity: EntityCompany, expectedMsg: "company profile not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewNotFoundError(tt.entity, tt.id)

			assert.Equal(t, tt.expectedMsg, err.Error())
			require.ErrorIs(t, err, ErrNotFound)

			var notFound *NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, tt.entity, notFound.Entity)
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationErrorWithValue("unitPrice", "must be positive", "0")

	assert.Equal(t, "invalid unitPrice: must be positive", err.Error())
	assert.True(t, IsValidation(err))

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "0", ve.Value)

	assert.Equal(t, "validation failed: bad", NewValidationError("", "bad").Error())
}

func TestForbiddenError(t *testing.T) {
	err := NewForbiddenError("activate", "invalid or unknown activation code")

	assert.Equal(t, "activate: invalid or unknown activation code", err.Error())
	assert.True(t, IsForbidden(err))
	assert.Equal(t, "activate: forbidden", NewForbiddenError("activate", "").Error())
}

func TestUnavailableError(t *testing.T) {
	err := NewUnavailableError("viacep", "timeout")

	assert.Equal(t, "viacep unavailable: timeout", err.Error())
	assert.True(t, IsUnavailable(err))
	assert.False(t, IsNotFound(err))
}

func TestIsHelpers_SeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading history: %w", NewNotFoundError(EntityQuote, "x"))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.False(t, IsForbidden(wrapped))
	assert.False(t, IsUnavailable(wrapped))
}
