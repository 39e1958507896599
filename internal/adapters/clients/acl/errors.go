package acl

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jsamuelsen/quotedesk/internal/adapters/clients"
	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// MapHTTPError translates a failed downstream call into a domain error.
// clientErr is the error returned by clients.Client, if any; otherwise resp
// is a non-2xx response. entity and id describe what was being looked up.
func MapHTTPError(resp *http.Response, clientErr error, service, entity, id string) error {
	if clientErr != nil {
		return mapClientError(clientErr, service)
	}

	if resp == nil {
		return domain.NewUnavailableError(service, "no response received")
	}

	switch status := resp.StatusCode; {
	case status >= http.StatusOK && status < http.StatusMultipleChoices:
		return nil
	case status == http.StatusNotFound, status == http.StatusBadRequest:
		return domain.NewNotFoundError(entity, id)
	case status == http.StatusTooManyRequests:
		return domain.NewUnavailableError(service, "rate limit exceeded")
	default:
		return domain.NewUnavailableError(service, fmt.Sprintf("unexpected status %d", status))
	}
}

func mapClientError(err error, service string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(service, "circuit breaker open")
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(service, "max retries exceeded")
	default:
		return domain.NewUnavailableError(service, err.Error())
	}
}
