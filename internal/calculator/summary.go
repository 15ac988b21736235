package calculator

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/mmynk/budgetwise/internal/cycle"
	"github.com/mmynk/budgetwise/internal/models"
)

// Request selects the reporting cycle and an optional payer.
type Request struct {
	Cycle cycle.Cycle

	// PersonID limits every amount to this person's payer share.
	// Empty means whole transactions.
	PersonID string
}

// CumulativeRow is one category of the cumulative view.
type CumulativeRow struct {
	CategoryID      string       `json:"category_id"`
	Unknown         bool         `json:"unknown"`
	Subtotal        models.Money `json:"subtotal"`
	CumulativeTotal models.Money `json:"cumulative_total"`
}

// BreakdownRow is one category of the income or expense view.
type BreakdownRow struct {
	CategoryID string       `json:"category_id"`
	Unknown    bool         `json:"unknown"`
	Subtotal   models.Money `json:"subtotal"`

	// Percent is |Subtotal| as a percentage of the view's total.
	Percent float64 `json:"percent"`
}

// Summary is the result of BuildSummary.
type Summary struct {
	Cycle      cycle.Cycle `json:"cycle"`
	TargetDays int         `json:"target_days"`
	PersonID   string      `json:"person_id,omitempty"`

	// Cumulative is sorted by subtotal, largest first, with a running total.
	Cumulative []CumulativeRow `json:"cumulative"`

	// Income is sorted by subtotal, largest first.
	Income []BreakdownRow `json:"income"`

	// Expense is sorted by subtotal ascending, so the largest expense comes
	// first and the smallest last.
	Expense []BreakdownRow `json:"expense"`

	TotalIncome  models.Money `json:"total_income"`
	TotalExpense models.Money `json:"total_expense"`

	// Skipped lists transactions left out for an invalid billing cycle.
	Skipped []Skipped `json:"skipped,omitempty"`
}

// BuildSummary computes the cumulative, income and expense views of b for
// the requested cycle.
//
// Each view is aggregated separately because income and expense exclusion
// is decided on the attributed amount, which depends on the cycle and the
// person. Zero subtotals are left out of every view. Transactions in a
// missing category are pooled into one unknown row placed last.
//
// An invalid reporting cycle fails the call. An invalid transaction cycle
// only removes that transaction and lists it in Summary.Skipped.
func BuildSummary(b *models.Budget, req Request) (*Summary, error) {
	targetDays, err := req.Cycle.Days()
	if err != nil {
		return nil, fmt.Errorf("report cycle: %w", err)
	}

	ix := models.NewIndex(b)
	all, skipped := Subtotals(b, targetDays, req.PersonID, nil)
	income, _ := Subtotals(b, targetDays, req.PersonID, ExcludeNonIncome)
	expense, _ := Subtotals(b, targetDays, req.PersonID, ExcludeNonExpense)

	s := &Summary{
		Cycle:      req.Cycle,
		TargetDays: targetDays,
		PersonID:   req.PersonID,
		Skipped:    skipped,
	}
	s.TotalIncome, s.TotalExpense = totals(b, targetDays, req.PersonID)
	s.Cumulative = cumulativeRows(ix, all)
	s.Income = breakdownRows(ix, income, s.TotalIncome, descending)
	s.Expense = breakdownRows(ix, expense, s.TotalExpense, ascending)
	return s, nil
}

func totals(b *models.Budget, targetDays int, personID string) (income, expense models.Money) {
	for i := range b.Transactions {
		amount, err := AmountFor(&b.Transactions[i], targetDays, personID)
		if err != nil {
			continue
		}
		switch amount.Sign() {
		case 1:
			income = income.Add(amount)
		case -1:
			expense = expense.Add(amount)
		}
	}
	return income, expense
}

type entry struct {
	id     string
	name   string
	amount models.Money
}

type order int

const (
	descending order = iota
	ascending
)

// split separates subtotals of existing categories, sorted, from the pooled
// subtotal of missing ones.
func split(ix *models.Index, sums map[string]models.Money, o order) (known []entry, unknown models.Money) {
	for id, amount := range sums {
		c, ok := ix.Category(id)
		if !ok {
			unknown = unknown.Add(amount)
			continue
		}
		known = append(known, entry{id: id, name: c.Name, amount: amount})
	}

	slices.SortFunc(known, func(a, b entry) int {
		byAmount := cmp.Compare(a.amount.Cents, b.amount.Cents)
		if o == descending {
			byAmount = -byAmount
		}
		return cmp.Or(byAmount, cmp.Compare(a.name, b.name), cmp.Compare(a.id, b.id))
	})
	return known, unknown
}

func cumulativeRows(ix *models.Index, sums map[string]models.Money) []CumulativeRow {
	known, unknown := split(ix, sums, descending)

	rows := make([]CumulativeRow, 0, len(known)+1)
	var running models.Money
	for _, e := range known {
		if e.amount.IsZero() {
			continue
		}
		running = running.Add(e.amount)
		rows = append(rows, CumulativeRow{CategoryID: e.id, Subtotal: e.amount, CumulativeTotal: running})
	}
	if !unknown.IsZero() {
		rows = append(rows, CumulativeRow{Unknown: true, Subtotal: unknown, CumulativeTotal: running.Add(unknown)})
	}
	return rows
}

func breakdownRows(ix *models.Index, sums map[string]models.Money, total models.Money, o order) []BreakdownRow {
	known, unknown := split(ix, sums, o)

	denominator := math.Abs(total.Float64())
	if denominator == 0 {
		denominator = 1
	}
	percent := func(m models.Money) float64 {
		return math.Abs(m.Float64()) / denominator * 100
	}

	rows := make([]BreakdownRow, 0, len(known)+1)
	for _, e := range known {
		if e.amount.IsZero() {
			continue
		}
		rows = append(rows, BreakdownRow{CategoryID: e.id, Subtotal: e.amount, Percent: percent(e.amount)})
	}
	if !unknown.IsZero() {
		rows = append(rows, BreakdownRow{Unknown: true, Subtotal: unknown, Percent: percent(unknown)})
	}
	return rows
}
