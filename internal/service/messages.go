package service

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/budgetwise/internal/calculator"
	"github.com/mmynk/budgetwise/internal/cycle"
	"github.com/mmynk/budgetwise/internal/export"
	"github.com/mmynk/budgetwise/internal/models"
)

type SavePersonRequest struct {
	Mode   models.Mode   `json:"mode"`
	Person models.Person `json:"person"`
}

type SavePersonResponse struct {
	Person models.Person `json:"person"`
}

type SavePaymentMethodRequest struct {
	Mode          models.Mode          `json:"mode"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

type SavePaymentMethodResponse struct {
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

type SaveCategoryRequest struct {
	Mode     models.Mode     `json:"mode"`
	Category models.Category `json:"category"`
}

type SaveCategoryResponse struct {
	Category models.Category `json:"category"`
}

type SaveTransactionRequest struct {
	Mode        models.Mode        `json:"mode"`
	Transaction models.Transaction `json:"transaction"`
}

type SaveTransactionResponse struct {
	Transaction models.Transaction `json:"transaction"`
}

type DeleteRequest struct {
	Kind models.Kind `json:"kind"`
	ID   string      `json:"id"`
}

type DeleteResponse struct{}

type ExportRequest struct{}

type ExportResponse struct {
	Document *export.Document `json:"document"`
}

type ImportRequest struct {
	Document export.Document `json:"document"`
}

// ImportResponse reports how many entities of each kind were loaded.
type ImportResponse struct {
	People         int `json:"people"`
	PaymentMethods int `json:"payment_methods"`
	Categories     int `json:"categories"`
	Transactions   int `json:"transactions"`
}

type ComputeSummaryRequest struct {
	Cycle    cycle.Cycle `json:"cycle"`
	PersonID string      `json:"person_id,omitempty"`
}

type ComputeSummaryResponse struct {
	Summary *calculator.Summary `json:"summary"`
	// Cached is set when the summary was served from the cache.
	Cached bool `json:"cached"`
}

type AmountForRequest struct {
	TransactionID string      `json:"transaction_id"`
	Cycle         cycle.Cycle `json:"cycle"`
	PersonID      string      `json:"person_id,omitempty"`
}

type AmountForResponse struct {
	// Amount is the attributed amount, rounded up to the cent.
	Amount models.Money `json:"amount"`
	// Normalized is the whole transaction scaled to the cycle, unrounded.
	Normalized decimal.Decimal `json:"normalized"`
}

type ComputeBalancesRequest struct {
	Cycle cycle.Cycle `json:"cycle"`
}

type ComputeBalancesResponse struct {
	Balances  []calculator.Balance  `json:"balances"`
	Transfers []calculator.Transfer `json:"transfers"`
	Skipped   []calculator.Skipped  `json:"skipped,omitempty"`
}

func (r ComputeSummaryRequest) LogAttrs() []any {
	return []any{"cycle", r.Cycle.String(), "person_id", r.PersonID}
}

func (r ComputeSummaryResponse) LogAttrs() []any {
	if r.Summary == nil {
		return []any{"cached", r.Cached}
	}
	return []any{"cached", r.Cached, "skipped", len(r.Summary.Skipped)}
}

func (r AmountForRequest) LogAttrs() []any {
	return []any{"transaction_id", r.TransactionID, "cycle", r.Cycle.String(), "person_id", r.PersonID}
}

func (r ComputeBalancesRequest) LogAttrs() []any {
	return []any{"cycle", r.Cycle.String()}
}

func (r DeleteRequest) LogAttrs() []any {
	return []any{"kind", r.Kind, "id", r.ID}
}
