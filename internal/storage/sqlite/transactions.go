package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/budgetwise/internal/cycle"
	"github.com/mmynk/budgetwise/internal/models"
)

// CreateTransaction persists a new transaction and its payers.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	assignID(&t.ID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertTransaction(ctx, tx, t); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateTransaction replaces a transaction and its whole payer set.
func (s *SQLiteStore) UpdateTransaction(ctx context.Context, t *models.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE transactions
		 SET category_id = ?, name = ?, amount_cents = ?, payment_method_id = ?, cycle_count = ?, cycle_unit = ?
		 WHERE id = ?`,
		t.CategoryID, t.Name, t.Amount.Cents, t.PaymentMethodID, t.BillingCycle.Count, string(t.BillingCycle.Unit),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if err := expectRow(res, models.KindTransaction, t.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM transaction_payers WHERE transaction_id = ?", t.ID); err != nil {
		return fmt.Errorf("failed to clear payers: %w", err)
	}
	if err := insertPayers(ctx, tx, t); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertTransaction(ctx context.Context, db execer, t *models.Transaction) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO transactions (id, category_id, name, amount_cents, payment_method_id, cycle_count, cycle_unit)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.CategoryID, t.Name, t.Amount.Cents, t.PaymentMethodID, t.BillingCycle.Count, string(t.BillingCycle.Unit),
	)
	if err != nil {
		return insertErr(models.KindTransaction, t.ID, err)
	}
	return insertPayers(ctx, db, t)
}

func insertPayers(ctx context.Context, db execer, t *models.Transaction) error {
	for _, personID := range t.Payers.IDs() {
		_, err := db.ExecContext(ctx,
			"INSERT INTO transaction_payers (transaction_id, person_id, percent) VALUES (?, ?, ?)",
			t.ID, personID, t.Payers[personID],
		)
		if err != nil {
			return fmt.Errorf("failed to insert payer: %w", err)
		}
	}
	return nil
}

func listTransactions(ctx context.Context, tx *sql.Tx) ([]models.Transaction, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, category_id, name, amount_cents, payment_method_id, cycle_count, cycle_unit
		 FROM transactions ORDER BY rowid`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	byID := make(map[string]int)
	for rows.Next() {
		var (
			t    models.Transaction
			unit string
		)
		if err := rows.Scan(&t.ID, &t.CategoryID, &t.Name, &t.Amount.Cents, &t.PaymentMethodID,
			&t.BillingCycle.Count, &unit); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.BillingCycle.Unit = cycle.Unit(unit)
		t.Payers = models.Payers{}
		byID[t.ID] = len(transactions)
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	rows.Close()

	payerRows, err := tx.QueryContext(ctx, "SELECT transaction_id, person_id, percent FROM transaction_payers")
	if err != nil {
		return nil, fmt.Errorf("failed to get payers: %w", err)
	}
	defer payerRows.Close()

	for payerRows.Next() {
		var (
			transactionID, personID string
			percent                 float64
		)
		if err := payerRows.Scan(&transactionID, &personID, &percent); err != nil {
			return nil, fmt.Errorf("failed to scan payer: %w", err)
		}
		if i, ok := byID[transactionID]; ok {
			transactions[i].Payers[personID] = percent
		}
	}
	if err := payerRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payers: %w", err)
	}
	return transactions, nil
}
