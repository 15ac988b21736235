// Package calculator turns a budget snapshot into per-category summaries.
//
// Every function here is pure: it reads the snapshot it is given and keeps
// no state, so callers may run it concurrently over snapshots they own.
package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/budgetwise/internal/cycle"
	"github.com/mmynk/budgetwise/internal/models"
)

var hundred = decimal.NewFromInt(100)

// NormalizedAmount rescales the transaction amount from its billing cycle to
// a cycle of targetDays:
//
//	normalized = amount × targetDays / cycleDays
//
// The rescaling is linear. $100 every 2 weeks over 30 days is 100 × 30 / 14.
// A transaction with an invalid billing cycle, or a targetDays below one,
// returns an error wrapping cycle.ErrInvalidCycle.
func NormalizedAmount(tx *models.Transaction, targetDays int) (decimal.Decimal, error) {
	days, err := cycleDays(tx, targetDays)
	if err != nil {
		return decimal.Zero, err
	}
	return tx.Amount.Decimal().
		Mul(decimal.NewFromInt(int64(targetDays))).
		Div(decimal.NewFromInt(int64(days))), nil
}

// AmountFor computes the attributed amount of a transaction over targetDays:
//
//	amountFor = ceil(normalized × share × 100) / 100
//
// where share is the person's payer percentage / 100, or 1 when personID is
// empty. A person who is not a payer gets 0. Rounding is a ceiling to the
// cent, which moves expenses toward zero (-617.285 becomes -617.28).
func AmountFor(tx *models.Transaction, targetDays int, personID string) (models.Money, error) {
	days, err := cycleDays(tx, targetDays)
	if err != nil {
		return models.Money{}, err
	}

	pct := hundred
	if personID != "" {
		pct = decimal.NewFromFloat(tx.Payers.Share(personID))
	}

	// cents × targetDays × pct / (days × 100), divided once.
	cents := decimal.NewFromInt(tx.Amount.Cents).
		Mul(decimal.NewFromInt(int64(targetDays))).
		Mul(pct).
		Div(decimal.NewFromInt(int64(days)).Mul(hundred)).
		Ceil()
	return models.Cents(cents.IntPart()), nil
}

func cycleDays(tx *models.Transaction, targetDays int) (int, error) {
	if targetDays < 1 {
		return 0, fmt.Errorf("%w: target of %d days", cycle.ErrInvalidCycle, targetDays)
	}
	days, err := tx.BillingCycle.Days()
	if err != nil {
		return 0, fmt.Errorf("transaction %q: %w", tx.Name, err)
	}
	return days, nil
}
