// Package access validates activation codes against a configured allow-list.
package access

import (
	"context"

	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// AllowList accepts exactly the codes it was built with, compared after
// normalization.
type AllowList struct {
	codes map[string]struct{}
}

// NewAllowList builds an allow-list. Blank codes are ignored.
func NewAllowList(codes []string) *AllowList {
	a := &AllowList{codes: make(map[string]struct{}, len(codes))}

	for _, c := range codes {
		if n := domain.NormalizeAccessCode(c); n != "" {
			a.codes[n] = struct{}{}
		}
	}

	return a
}

// Valid implements ports.CodeValidator.
func (a *AllowList) Valid(_ context.Context, code string) bool {
	_, ok := a.codes[domain.NormalizeAccessCode(code)]

	return ok
}

// Len reports how many distinct codes are accepted.
func (a *AllowList) Len() int { return len(a.codes) }
