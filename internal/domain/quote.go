// Package domain contains core business entities and rules.
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CompanyProfile is the issuing business printed on every quote.
// One profile exists per user and it is always replaced wholesale.
type CompanyProfile struct {
	Name    string `json:"name"`
	TaxID   string `json:"taxId"`
	Address string `json:"address"`
	City    string `json:"city"`
	Region  string `json:"region"`
	Phone   string `json:"phone"`

	// Logo is an embedded image (data URL). Callers compress it before storing.
	Logo string `json:"logo,omitempty"`
}

// ClientInfo identifies the customer of a single quote.
// It is never persisted on its own, only as part of a Quote.
type ClientInfo struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Phone        string `json:"phone"`
	Mobile       string `json:"mobile"`
	Email        string `json:"email"`
	TaxID        string `json:"taxId"`
	SecondaryID  string `json:"secondaryId,omitempty"`
}

// LineItem is one product or service row of a quote.
type LineItem struct {
	ID          string          `json:"id"`
	Code        string          `json:"code,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Total returns quantity times unit price. It is always derived, never stored.
func (i LineItem) Total() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// QuoteDateLayout formats Quote.Date as day/month/year.
const QuoteDateLayout = "02/01/2006"

// Quote is a document offered to a client.
// Number is a display identifier and is not guaranteed to be unique.
type Quote struct {
	Number       string         `json:"number"`
	Date         string         `json:"date"`
	CreatedBy    string         `json:"createdBy"`
	Company      CompanyProfile `json:"company"`
	Client       ClientInfo     `json:"client"`
	Items        []LineItem     `json:"items"`
	Observations string         `json:"observations"`

	// Discount is a flat currency amount. A nil discount counts as zero.
	Discount *decimal.Decimal `json:"discount,omitempty"`
}

// Subtotal sums the line totals.
func (q Quote) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range q.Items {
		sum = sum.Add(item.Total())
	}

	return sum
}

// DiscountOrZero returns the discount, treating an absent one as zero.
func (q Quote) DiscountOrZero() decimal.Decimal {
	if q.Discount == nil {
		return decimal.Zero
	}

	return *q.Discount
}

// Total is the subtotal minus the discount.
func (q Quote) Total() decimal.Decimal {
	return q.Subtotal().Sub(q.DiscountOrZero())
}

// PDFFilename is the file name handed to the external PDF renderer.
func (q Quote) PDFFilename() string {
	return "Orcamento_" + q.Number + ".pdf"
}

// Validate checks the rules a quote must satisfy before it enters history.
func (q Quote) Validate() error {
	if len(q.Items) == 0 {
		return NewValidationError("items", "add at least one item")
	}

	return nil
}

// SavedQuote is a quote frozen into the history list.
// It is created once at save time and never mutated afterwards.
type SavedQuote struct {
	Quote

	ID string `json:"id"`

	// SavedAt is the save time in Unix milliseconds.
	SavedAt int64 `json:"savedAt"`

	// TotalValue is computed once at save time and never recomputed on read.
	TotalValue decimal.Decimal `json:"totalValue"`
}

// NewSavedQuote freezes q with the given id and timestamp.
func NewSavedQuote(q Quote, id string, savedAt int64) SavedQuote {
	return SavedQuote{
		Quote:      q,
		ID:         id,
		SavedAt:    savedAt,
		TotalValue: q.Total(),
	}
}

// Address is the result of a postal code lookup.
type Address struct {
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// WithAddress returns a copy of c with the address fields replaced by addr
// and the postal code set to postalCode.
func (c ClientInfo) WithAddress(addr Address, postalCode string) ClientInfo {
	c.Address = addr.Street
	c.Neighborhood = addr.Neighborhood
	c.City = addr.City
	c.State = addr.State
	c.PostalCode = postalCode

	return c
}

// PostalCodeLength is the number of digits in a Brazilian CEP.
const PostalCodeLength = 8

// NormalizePostalCode strips everything but digits.
func NormalizePostalCode(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
