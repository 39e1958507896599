package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quotedesk/internal/domain"
	"github.com/jsamuelsen/quotedesk/internal/platform/logging"
	"github.com/jsamuelsen/quotedesk/internal/ports"
)

// AddressService pre-fills client addresses from a postal code.
type AddressService struct {
	lookup ports.AddressLookup
	logger *slog.Logger
}

// NewAddressService creates an address service. It panics without a lookup.
func NewAddressService(lookup ports.AddressLookup, logger *slog.Logger) *AddressService {
	if lookup == nil {
		panic("app: AddressService requires an AddressLookup")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &AddressService{lookup: lookup, logger: logger.With(slog.String("component", "app.AddressService"))}
}

// Lookup resolves postalCode after stripping non-digits. Codes that are not
// exactly eight digits are rejected without a remote call.
func (s *AddressService) Lookup(ctx context.Context, postalCode string) (domain.Address, error) {
	digits := domain.NormalizePostalCode(postalCode)
	if len(digits) != domain.PostalCodeLength {
		return domain.Address{}, domain.NewValidationErrorWithValue("postalCode", "postal code must have 8 digits", postalCode)
	}

	return s.lookup.Lookup(ctx, digits)
}

// Prefill returns client with its postal code set as typed and, when the
// lookup succeeds, its address fields filled in. Lookup failures leave the
// address fields unchanged.
func (s *AddressService) Prefill(ctx context.Context, client domain.ClientInfo, postalCode string) domain.ClientInfo {
	client.PostalCode = postalCode

	addr, err := s.Lookup(ctx, postalCode)
	if err != nil {
		logging.FromContextOr(ctx, s.logger).DebugContext(ctx, "address prefill skipped",
			slog.String("postal_code", postalCode),
			slog.Any("error", err),
		)

		return client
	}

	return client.WithAddress(addr, postalCode)
}
