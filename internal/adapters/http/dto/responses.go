package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// AccessStatusResponse is returned by GET /access and POST /access/activate.
type AccessStatusResponse struct {
	Status    domain.AccessState `json:"status"`
	Allowed   bool               `json:"allowed"`
	DaysLeft  int                `json:"daysLeft,omitempty"`
	ExpiresAt *time.Time         `json:"expiresAt,omitempty"`
}

// NewAccessStatusResponse converts a derived gate status.
func NewAccessStatusResponse(s domain.AccessStatus) AccessStatusResponse {
	return AccessStatusResponse{
		Status:    s.State,
		Allowed:   s.Allowed(),
		DaysLeft:  s.DaysRemaining,
		ExpiresAt: s.ExpiresAt,
	}
}

// SavedQuoteResponse is a history record with its derived amounts.
// TotalValue is the value frozen at save time; Subtotal is derived from the
// items on every read.
type SavedQuoteResponse struct {
	domain.SavedQuote

	Subtotal    decimal.Decimal `json:"subtotal"`
	PDFFilename string          `json:"pdfFilename"`
}

// NewSavedQuoteResponse wraps a history record.
func NewSavedQuoteResponse(q domain.SavedQuote) SavedQuoteResponse {
	return SavedQuoteResponse{
		SavedQuote:  q,
		Subtotal:    q.Subtotal(),
		PDFFilename: q.PDFFilename(),
	}
}

// CatalogResponse is returned by GET and PUT /catalog.
type CatalogResponse struct {
	Entries []domain.CatalogEntry `json:"entries"`
}

// NewCatalogResponse never returns a null list.
func NewCatalogResponse(entries []domain.CatalogEntry) CatalogResponse {
	if entries == nil {
		entries = []domain.CatalogEntry{}
	}

	return CatalogResponse{Entries: entries}
}

// CatalogUpsertResponse is returned by POST /catalog/items.
type CatalogUpsertResponse struct {
	Entry domain.CatalogEntry `json:"entry"`
}

// AddressResponse is returned by GET /address/:postalCode.
type AddressResponse struct {
	PostalCode string `json:"postalCode"`
	domain.Address
}

// ImportResponse is returned by POST /backup.
type ImportResponse struct {
	Imported bool `json:"imported"`
}
