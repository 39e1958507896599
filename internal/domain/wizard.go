package domain

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// WizardStep is a position in the quote wizard.
type WizardStep int

// Steps are visited in order; Back and Next move by one.
const (
	StepCompany WizardStep = iota + 1
	StepClient
	StepItems
	StepPreview
)

func (s WizardStep) String() string {
	switch s {
	case StepCompany:
		return "company"
	case StepClient:
		return "client"
	case StepItems:
		return "items"
	case StepPreview:
		return "preview"
	default:
		return "step(" + strconv.Itoa(int(s)) + ")"
	}
}

const (
	minQuoteNumber = 1000
	maxQuoteNumber = 9999
)

// NewQuoteNumber returns a four digit display number. r may be nil to use
// the global source.
func NewQuoteNumber(r *rand.Rand) string {
	span := maxQuoteNumber - minQuoteNumber + 1

	var n int
	if r == nil {
		n = rand.IntN(span) //nolint:gosec // display number, not a secret
	} else {
		n = r.IntN(span)
	}

	return strconv.Itoa(minQuoteNumber + n)
}

// Wizard holds a draft quote while the user walks through the steps.
// It performs no I/O; the caller persists the draft when NeedsSave reports true.
type Wizard struct {
	step         WizardStep
	number       string
	company      CompanyProfile
	client       ClientInfo
	items        []LineItem
	discount     *decimal.Decimal
	observations string
	createdBy    string

	// armed is set when the user leaves the items step.
	armed   bool
	savedID string
}

// NewWizard starts an empty draft at the company step.
func NewWizard(number string) *Wizard {
	return &Wizard{step: StepCompany, number: number}
}

// Reopen loads saved into a fresh draft at the preview step. The draft gets
// number and is not linked to the history record, so saving it again creates
// a new record.
func Reopen(saved SavedQuote, number string) *Wizard {
	items := make([]LineItem, len(saved.Items))
	copy(items, saved.Items)

	w := &Wizard{
		step:         StepPreview,
		number:       number,
		company:      saved.Company,
		client:       saved.Client,
		items:        items,
		observations: saved.Observations,
		createdBy:    saved.CreatedBy,
	}
	if saved.Discount != nil {
		d := *saved.Discount
		w.discount = &d
	}

	return w
}

// Step returns the current step.
func (w *Wizard) Step() WizardStep { return w.step }

// Number returns the draft's display number.
func (w *Wizard) Number() string { return w.number }

// Items returns a copy of the draft's line items.
func (w *Wizard) Items() []LineItem {
	out := make([]LineItem, len(w.items))
	copy(out, w.items)

	return out
}

// SetCompany replaces the company snapshot printed on the quote.
func (w *Wizard) SetCompany(c CompanyProfile) { w.company = c }

// SetClient replaces the client data.
func (w *Wizard) SetClient(c ClientInfo) { w.client = c }

// SetCreatedBy records the seller's name.
func (w *Wizard) SetCreatedBy(name string) { w.createdBy = name }

// SetObservations sets free text printed below the items.
func (w *Wizard) SetObservations(text string) { w.observations = text }

// SetDiscount sets a flat discount; nil clears it.
func (w *Wizard) SetDiscount(d *decimal.Decimal) { w.discount = d }

// AddItem appends item after applying the add-item guard. A missing id is
// filled with newID.
func (w *Wizard) AddItem(item LineItem, newID func() string) (LineItem, error) {
	if err := ValidateCatalogCandidate(item); err != nil {
		return LineItem{}, err
	}

	if !item.Quantity.IsPositive() {
		return LineItem{}, NewValidationErrorWithValue("quantity", "quantity must be greater than zero", item.Quantity.String())
	}

	if item.ID == "" {
		item.ID = newID()
	}

	w.items = append(w.items, item)

	return item, nil
}

// RemoveItem drops the line item with id. It reports whether one was removed.
func (w *Wizard) RemoveItem(id string) bool {
	for i, item := range w.items {
		if item.ID == id {
			w.items = append(w.items[:i], w.items[i+1:]...)
			return true
		}
	}

	return false
}

// Next validates the current step and advances. At the preview step it is a no-op.
func (w *Wizard) Next() error {
	switch w.step {
	case StepClient:
		if strings.TrimSpace(w.client.Name) == "" {
			return NewValidationError("client.name", "client name is required")
		}

		if strings.TrimSpace(w.client.Mobile) == "" {
			return NewValidationError("client.mobile", "client mobile is required")
		}
	case StepItems:
		if len(w.items) == 0 {
			return NewValidationError("items", "add at least one item")
		}

		w.armed = true
	case StepPreview:
		return nil
	}

	w.step++

	return nil
}

// Back moves one step back. At the company step it is a no-op.
func (w *Wizard) Back() {
	if w.step > StepCompany {
		w.step--
	}
}

// NeedsSave reports whether the draft reached the preview from the items step
// and has not been saved yet.
func (w *Wizard) NeedsSave() bool {
	return w.step == StepPreview && w.armed && w.savedID == ""
}

// MarkSaved links the draft to its history record so it is never saved twice.
func (w *Wizard) MarkSaved(id string) {
	w.savedID = id
}

// SavedID returns the history id once saved.
func (w *Wizard) SavedID() string { return w.savedID }

// Quote snapshots the draft dated date.
func (w *Wizard) Quote(date string) Quote {
	q := Quote{
		Number:       w.number,
		Date:         date,
		CreatedBy:    w.createdBy,
		Company:      w.company,
		Client:       w.client,
		Items:        w.Items(),
		Observations: w.observations,
	}
	if w.discount != nil {
		d := *w.discount
		q.Discount = &d
	}

	return q
}

// PDFFilename is the file name the renderer should use for this draft.
func (w *Wizard) PDFFilename() string {
	return Quote{Number: w.number}.PDFFilename()
}
