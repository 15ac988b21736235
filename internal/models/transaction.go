package models

import (
	"maps"
	"slices"

	"github.com/mmynk/budgetwise/internal/cycle"
)

// Payers maps a person ID to that person's percentage (0-100) of a
// transaction.
type Payers map[string]float64

// Share returns the percentage for personID, or 0 when the person is not a
// payer.
func (p Payers) Share(personID string) float64 {
	return p[personID]
}

// Total returns the sum of all percentages. It is not required to be 100
// for the summary math.
func (p Payers) Total() float64 {
	var total float64
	for _, pct := range p {
		total += pct
	}
	return total
}

// IDs returns the payer IDs in sorted order.
func (p Payers) IDs() []string {
	return slices.Sorted(maps.Keys(p))
}

// Transaction is a recurring income (positive amount) or expense (negative
// amount).
type Transaction struct {
	ID string `json:"id"`

	// CategoryID references a Category. An empty or dangling reference puts
	// the transaction in the unknown bucket of the summary.
	CategoryID string `json:"category_id"`

	Name string `json:"name" validate:"notblank,min=3,max=25"`

	// Amount is the signed amount paid once per BillingCycle.
	Amount Money `json:"amount"`

	// PaymentMethodID references a PaymentMethod. Descriptive only.
	PaymentMethodID string `json:"payment_method_id"`

	BillingCycle cycle.Cycle `json:"billing_cycle"`

	Payers Payers `json:"payers" validate:"min=1,dive,keys,required,endkeys,gte=0,lte=100"`
}

// Validate checks the transaction as the editing layer does: name, a
// nonzero amount, a valid billing cycle and payer shares adding up to 100.
func (t Transaction) Validate() error {
	return check("transaction", t)
}

// Clone returns a copy that does not share the Payers map.
func (t Transaction) Clone() Transaction {
	t.Payers = maps.Clone(t.Payers)
	return t
}
