package domain

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// CatalogEntry is a reusable product or service a user can recall while
// building a quote.
type CatalogEntry struct {
	ID          string          `json:"id"`
	Code        string          `json:"code,omitempty"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Matches reports whether the entry and item describe the same catalog item:
// equal non-empty codes, or descriptions equal ignoring case.
func (e CatalogEntry) Matches(item LineItem) bool {
	if item.Code != "" && e.Code == item.Code {
		return true
	}

	return strings.EqualFold(e.Description, item.Description)
}

// ValidateCatalogCandidate applies the add-item guard: a description and a
// positive unit price are required.
func ValidateCatalogCandidate(item LineItem) error {
	if strings.TrimSpace(item.Description) == "" {
		return NewValidationError("description", "description is required")
	}

	if !item.UnitPrice.IsPositive() {
		return NewValidationErrorWithValue("unitPrice", "unit price must be greater than zero", item.UnitPrice.String())
	}

	return nil
}

// MergeCatalog reconciles candidate into entries and returns a new slice.
//
// The first matching entry takes the candidate's unit price, and its code when
// it has none. Without a match the candidate is appended, using newID when the
// candidate carries no id or one already taken by another entry. The returned entry is the one that was updated or
// appended; created reports which.
func MergeCatalog(entries []CatalogEntry, candidate LineItem, newID func() string) (merged []CatalogEntry, entry CatalogEntry, created bool) {
	merged = make([]CatalogEntry, len(entries), len(entries)+1)
	copy(merged, entries)

	for i := range merged {
		if !merged[i].Matches(candidate) {
			continue
		}

		merged[i].UnitPrice = candidate.UnitPrice
		if merged[i].Code == "" {
			merged[i].Code = candidate.Code
		}

		return merged, merged[i], false
	}

	id := candidate.ID
	if id == "" || slices.ContainsFunc(merged, func(e CatalogEntry) bool { return e.ID == id }) {
		id = newID()
	}

	entry = CatalogEntry{
		ID:          id,
		Code:        candidate.Code,
		Description: candidate.Description,
		UnitPrice:   candidate.UnitPrice,
	}

	return append(merged, entry), entry, true
}

// RemoveCatalogEntry returns entries without the one with the given id.
// removed is false when no entry had that id.
func RemoveCatalogEntry(entries []CatalogEntry, id string) (kept []CatalogEntry, removed bool) {
	kept = make([]CatalogEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID == id {
			removed = true
			continue
		}

		kept = append(kept, e)
	}

	return kept, removed
}

// FindByDescription returns the first entry whose description equals
// description ignoring case.
func FindByDescription(entries []CatalogEntry, description string) (CatalogEntry, bool) {
	for _, e := range entries {
		if strings.EqualFold(e.Description, description) {
			return e, true
		}
	}

	return CatalogEntry{}, false
}
