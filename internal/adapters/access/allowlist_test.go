package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen/quotedesk/internal/platform/config"
	"github.com/jsamuelsen/quotedesk/internal/ports"
)

var _ ports.CodeValidator = (*AllowList)(nil)

func TestAllowList_Valid(t *testing.T) {
	list := NewAllowList(config.DefaultAccessCodes)

	tests := []struct {
		code string
		want bool
	}{
		{code: "VIP2024", want: true},
		{code: "  vip2024 ", want: true},
		{code: "pro-xy99", want: true},
		{code: "TESTE10", want: true},
		{code: "VIP2025", want: false},
		{code: "", want: false},
		{code: "   ", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, list.Valid(context.Background(), tt.code))
		})
	}
}

func TestNewAllowList_NormalizesAndDeduplicates(t *testing.T) {
	list := NewAllowList([]string{"abc1234", "ABC1234 ", "", "  "})

	assert.Equal(t, 1, list.Len())
	assert.True(t, list.Valid(context.Background(), "Abc1234"))
}
