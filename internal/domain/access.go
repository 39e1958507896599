package domain

import (
	"strings"
	"time"
)

// DefaultAccessValidityDays is how long an activation lasts.
const DefaultAccessValidityDays = 30

// AccessState is the state of the usage gate.
type AccessState string

const (
	// AccessNone means no grant was ever recorded.
	AccessNone AccessState = "none"

	// AccessValid means a grant exists and has not expired.
	AccessValid AccessState = "valid"

	// AccessExpired means the recorded grant is past its expiration.
	AccessExpired AccessState = "expired"
)

// AccessGrant records an activated code. There is a single grant per
// installation and reactivation replaces it.
type AccessGrant struct {
	Code        string    `json:"code"`
	ActivatedAt time.Time `json:"activationDate"`
	ExpiresAt   time.Time `json:"expirationDate"`
}

// accessDay is a fixed 24 hours, so a daylight saving change inside the
// validity window never stretches or shortens a grant.
const accessDay = 24 * time.Hour

// NewAccessGrant creates a grant for code starting at now.
func NewAccessGrant(code string, now time.Time, validityDays int) AccessGrant {
	return AccessGrant{
		Code:        code,
		ActivatedAt: now,
		ExpiresAt:   now.Add(time.Duration(validityDays) * accessDay),
	}
}

// AccessStatus is the derived view of the gate at a point in time.
type AccessStatus struct {
	State AccessState `json:"status"`

	// DaysRemaining is only meaningful when State is AccessValid.
	DaysRemaining int `json:"daysLeft,omitempty"`

	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Allowed reports whether the gate lets the user in.
func (s AccessStatus) Allowed() bool {
	return s.State == AccessValid
}

// StatusAt derives the gate state of g at now.
func (g AccessGrant) StatusAt(now time.Time) AccessStatus {
	expiresAt := g.ExpiresAt
	if now.After(expiresAt) {
		return AccessStatus{State: AccessExpired, ExpiresAt: &expiresAt}
	}

	return AccessStatus{
		State:         AccessValid,
		DaysRemaining: ceilDays(expiresAt.Sub(now)),
		ExpiresAt:     &expiresAt,
	}
}

func ceilDays(d time.Duration) int {
	days := int(d / accessDay)
	if d%accessDay != 0 {
		days++
	}

	return days
}

// NormalizeAccessCode trims and upper-cases a code as typed by the user.
func NormalizeAccessCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
