package calculator

import (
	"github.com/mmynk/budgetwise/internal/models"
)

// ExcludeFunc reports whether a transaction, given its attributed amount,
// should be left out of a subtotal.
type ExcludeFunc func(tx *models.Transaction, attributed models.Money) bool

// ExcludeNonIncome keeps only transactions with a positive attributed amount.
func ExcludeNonIncome(_ *models.Transaction, attributed models.Money) bool {
	return attributed.Sign() <= 0
}

// ExcludeNonExpense keeps only transactions with a negative attributed amount.
func ExcludeNonExpense(_ *models.Transaction, attributed models.Money) bool {
	return attributed.Sign() >= 0
}

// Skipped is a transaction left out of a summary because its billing cycle
// is invalid.
type Skipped struct {
	TransactionID string `json:"transaction_id"`
	Name          string `json:"name"`
	Reason        string `json:"reason"`
}

// Subtotals sums AmountFor per category ID.
//
// The keys are every category in b plus every category ID referenced by a
// transaction, so empty categories appear with a zero subtotal and dangling
// references (including the empty ID) appear under their own key. Callers
// tell known and unknown keys apart with models.Index.
//
// Transactions with an invalid billing cycle contribute nothing and are
// returned in skipped. A nil exclude keeps every transaction.
func Subtotals(b *models.Budget, targetDays int, personID string, exclude ExcludeFunc) (sums map[string]models.Money, skipped []Skipped) {
	sums = make(map[string]models.Money, len(b.Categories))
	for _, c := range b.Categories {
		sums[c.ID] = models.Money{}
	}

	for i := range b.Transactions {
		tx := &b.Transactions[i]
		sum := sums[tx.CategoryID]

		amount, err := AmountFor(tx, targetDays, personID)
		if err != nil {
			sums[tx.CategoryID] = sum
			skipped = append(skipped, Skipped{TransactionID: tx.ID, Name: tx.Name, Reason: err.Error()})
			continue
		}
		if exclude != nil && exclude(tx, amount) {
			sums[tx.CategoryID] = sum
			continue
		}
		sums[tx.CategoryID] = sum.Add(amount)
	}
	return sums, skipped
}
