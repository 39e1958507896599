// Package ports defines the contracts the application layer depends on.
// Adapters implement them; app services never import an adapter package.
//
// Every method takes a context first and reports failures with the domain
// sentinel errors (domain.ErrNotFound, domain.ErrUnavailable).
package ports

import (
	"context"

	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// KeyValueStore is durable storage of opaque values under a namespace and key.
// Writes overwrite any previous value; the last write wins.
type KeyValueStore interface {
	// Get returns the stored value.
	// Returns domain.ErrNotFound if nothing was ever written under the key.
	Get(ctx context.Context, namespace, key string) ([]byte, error)

	// Put stores value, replacing any previous value.
	Put(ctx context.Context, namespace, key string, value []byte) error
}

// CodeValidator decides whether an activation code is currently accepted.
// Codes arrive already trimmed and upper-cased.
type CodeValidator interface {
	Valid(ctx context.Context, code string) bool
}

// AddressLookup resolves a postal code to a street address.
type AddressLookup interface {
	// Lookup resolves an 8 digit postal code.
	// Returns domain.ErrNotFound for unknown codes and domain.ErrUnavailable
	// when the remote service cannot be reached.
	Lookup(ctx context.Context, postalCode string) (domain.Address, error)
}
