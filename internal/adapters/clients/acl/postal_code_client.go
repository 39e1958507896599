// Package acl adapts downstream services to the ports the application uses,
// keeping their payloads out of the domain.
package acl

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen/quotedesk/internal/adapters/clients"
	"github.com/jsamuelsen/quotedesk/internal/domain"
	"github.com/jsamuelsen/quotedesk/internal/platform/logging"
)

// PostalCodeClient implements ports.AddressLookup on top of ViaCEP.
type PostalCodeClient struct {
	client *clients.Client
	logger *slog.Logger
}

// NewPostalCodeClient wraps client, whose base URL must point at ViaCEP.
// It panics if client is nil.
func NewPostalCodeClient(client *clients.Client, logger *slog.Logger) *PostalCodeClient {
	if client == nil {
		panic("PostalCodeClient: client is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostalCodeClient{client: client, logger: logger}
}

// Lookup resolves an 8 digit postal code. Unknown or malformed codes return
// domain.ErrNotFound; transport failures return domain.ErrUnavailable.
func (c *PostalCodeClient) Lookup(ctx context.Context, postalCode string) (domain.Address, error) {
	digits := domain.NormalizePostalCode(postalCode)
	if len(digits) != domain.PostalCodeLength {
		return domain.Address{}, domain.NewNotFoundError(domain.EntityPostalCode, postalCode)
	}

	path := "/ws/" + digits + "/json/"
	logger := logging.FromContextOr(ctx, c.logger)
	logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))

	resp, err := c.client.Get(ctx, path)
	if err != nil {
		return domain.Address{}, MapHTTPError(nil, err, c.client.ServiceName(), domain.EntityPostalCode, digits)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()

		return domain.Address{}, MapHTTPError(resp, nil, c.client.ServiceName(), domain.EntityPostalCode, digits)
	}

	body, err := DecodeResponse[viaCEPResponse](resp.Body)
	if err != nil {
		return domain.Address{}, domain.NewUnavailableError(c.client.ServiceName(), err.Error())
	}

	logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("path", path),
		slog.String("city", body.Localidade),
		slog.String("state", body.UF),
	)

	return translateAddress(body, digits)
}

// Name implements ports.HealthChecker.
func (c *PostalCodeClient) Name() string {
	return "downstream." + c.client.ServiceName()
}

// Check implements ports.HealthChecker. It reports unhealthy while the
// circuit breaker is open and never calls the remote service.
func (c *PostalCodeClient) Check(context.Context) error {
	if c.client.CircuitState() == clients.StateOpen {
		return errors.New("circuit breaker open")
	}

	return nil
}
