package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jsamuelsen/quotedesk/internal/domain"
)

// ActivateRequest is the body of POST /access/activate. An empty code is
// passed through so the gate can reject it like any other invalid code.
type ActivateRequest struct {
	Code string `json:"code" validate:"max=64"`
}

// CompanyRequest is the body of PUT /company.
type CompanyRequest struct {
	Name    string `json:"name"    validate:"max=200"`
	TaxID   string `json:"taxId"   validate:"max=32"`
	Address string `json:"address" validate:"max=300"`
	City    string `json:"city"    validate:"max=120"`
	Region  string `json:"region"  validate:"max=120"`
	Phone   string `json:"phone"   validate:"max=40"`
	Logo    string `json:"logo"`
}

// ToDomain converts the request to a company profile.
func (r CompanyRequest) ToDomain() domain.CompanyProfile {
	return domain.CompanyProfile{
		Name:    strings.TrimSpace(r.Name),
		TaxID:   r.TaxID,
		Address: r.Address,
		City:    r.City,
		Region:  r.Region,
		Phone:   r.Phone,
		Logo:    r.Logo,
	}
}

// CatalogEntryRequest is one element of the PUT /catalog body.
type CatalogEntryRequest struct {
	ID          string          `json:"id"          validate:"max=64"`
	Code        string          `json:"code"        validate:"max=64"`
	Description string          `json:"description" validate:"required,notempty,max=500"`
	UnitPrice   decimal.Decimal `json:"unitPrice"   validate:"gte=0"`
}

// CatalogReplaceRequest is the body of PUT /catalog.
type CatalogReplaceRequest struct {
	Entries []CatalogEntryRequest `json:"entries" validate:"dive"`
}

// ToDomain converts the entries, assigning ids to entries without one.
func (r CatalogReplaceRequest) ToDomain(newID func() string) []domain.CatalogEntry {
	entries := make([]domain.CatalogEntry, 0, len(r.Entries))
	for _, e := range r.Entries {
		id := e.ID
		if id == "" {
			id = newID()
		}

		entries = append(entries, domain.CatalogEntry{
			ID:          id,
			Code:        e.Code,
			Description: e.Description,
			UnitPrice:   e.UnitPrice,
		})
	}

	return entries
}

// LineItemRequest is a product or service row. It is the body of
// POST /catalog/items and an element of QuoteRequest.Items.
type LineItemRequest struct {
	ID          string          `json:"id"          validate:"max=64"`
	Code        string          `json:"code"        validate:"max=64"`
	Description string          `json:"description" validate:"max=500"`
	Quantity    decimal.Decimal `json:"quantity"    validate:"gte=0"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// ToDomain converts the row, assigning an id when it has none.
func (r LineItemRequest) ToDomain(newID func() string) domain.LineItem {
	id := r.ID
	if id == "" && newID != nil {
		id = newID()
	}

	return domain.LineItem{
		ID:          id,
		Code:        r.Code,
		Description: strings.TrimSpace(r.Description),
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
	}
}

// ClientRequest is the client block of a quote.
type ClientRequest struct {
	Name         string `json:"name"         validate:"max=200"`
	Address      string `json:"address"      validate:"max=300"`
	Neighborhood string `json:"neighborhood" validate:"max=120"`
	City         string `json:"city"         validate:"max=120"`
	State        string `json:"state"        validate:"max=60"`
	PostalCode   string `json:"postalCode"   validate:"max=16"`
	Phone        string `json:"phone"        validate:"max=40"`
	Mobile       string `json:"mobile"       validate:"max=40"`
	Email        string `json:"email"        validate:"omitempty,email"`
	TaxID        string `json:"taxId"        validate:"max=32"`
	SecondaryID  string `json:"secondaryId"  validate:"max=32"`
}

// ToDomain converts the client block.
func (r ClientRequest) ToDomain() domain.ClientInfo {
	return domain.ClientInfo(r)
}

// QuoteRequest is the body of POST /quotes.
type QuoteRequest struct {
	Number       string            `json:"number"       validate:"max=32"`
	Date         string            `json:"date"         validate:"max=32"`
	CreatedBy    string            `json:"createdBy"    validate:"max=120"`
	Company      CompanyRequest    `json:"company"`
	Client       ClientRequest     `json:"client"`
	Items        []LineItemRequest `json:"items"        validate:"dive"`
	Observations string            `json:"observations" validate:"max=4000"`
	Discount     *decimal.Decimal  `json:"discount"     validate:"omitempty,gte=0"`
}

// ToDomain converts the request to a quote, assigning ids to unnamed items.
func (r QuoteRequest) ToDomain(newID func() string) domain.Quote {
	items := make([]domain.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, item.ToDomain(newID))
	}

	return domain.Quote{
		Number:       r.Number,
		Date:         r.Date,
		CreatedBy:    r.CreatedBy,
		Company:      r.Company.ToDomain(),
		Client:       r.Client.ToDomain(),
		Items:        items,
		Observations: r.Observations,
		Discount:     r.Discount,
	}
}

// CatalogLookupRequest is the query of GET /catalog/lookup.
type CatalogLookupRequest struct {
	Description string `form:"description" json:"description" validate:"required,notempty"`
}

// PrefillRequest is the body of POST /address/prefill: the client form as
// typed so far and the postal code just entered.
type PrefillRequest struct {
	Client     ClientRequest `json:"client"`
	PostalCode string        `json:"postalCode" validate:"required,max=16"`
}
