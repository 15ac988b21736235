// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/budgetwise/internal/models"
	"github.com/mmynk/budgetwise/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	if err := Migrate(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var tables = map[models.Kind]string{
	models.KindPerson:        "people",
	models.KindPaymentMethod: "payment_methods",
	models.KindCategory:      "categories",
	models.KindTransaction:   "transactions",
}

// Delete removes one row. Payers go with their transaction; nothing else
// cascades.
func (s *SQLiteStore) Delete(ctx context.Context, kind models.Kind, id string) error {
	table, ok := tables[kind]
	if !ok {
		return fmt.Errorf("unknown entity kind %q", kind)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if kind == models.KindTransaction {
		if _, err := tx.ExecContext(ctx, "DELETE FROM transaction_payers WHERE transaction_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete payers: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	if err := expectRow(res, kind, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Snapshot reads all four collections inside one SQL transaction so that
// concurrent writes are either fully visible or not at all.
func (s *SQLiteStore) Snapshot(ctx context.Context) (*models.Budget, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	b := &models.Budget{}
	if b.People, err = listPeople(ctx, tx); err != nil {
		return nil, err
	}
	if b.PaymentMethods, err = listPaymentMethods(ctx, tx); err != nil {
		return nil, err
	}
	if b.Categories, err = listCategories(ctx, tx); err != nil {
		return nil, err
	}
	if b.Transactions, err = listTransactions(ctx, tx); err != nil {
		return nil, err
	}
	return b, nil
}

// Replace deletes every row and inserts the content of b in one transaction.
func (s *SQLiteStore) Replace(ctx context.Context, b *models.Budget) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"transaction_payers", "transactions", "categories", "payment_methods", "people"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i := range b.People {
		if err := insertPerson(ctx, tx, &b.People[i]); err != nil {
			return err
		}
	}
	for i := range b.PaymentMethods {
		if err := insertPaymentMethod(ctx, tx, &b.PaymentMethods[i]); err != nil {
			return err
		}
	}
	for i := range b.Categories {
		if err := insertCategory(ctx, tx, &b.Categories[i]); err != nil {
			return err
		}
	}
	for i := range b.Transactions {
		if err := insertTransaction(ctx, tx, &b.Transactions[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func assignID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}

// insertErr turns a primary key violation into storage.ErrConflict.
func insertErr(kind models.Kind, id string, err error) error {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT:
			return fmt.Errorf("%s %s: %w", kind, id, storage.ErrConflict)
		}
	}
	return fmt.Errorf("failed to insert %s: %w", kind, err)
}

// expectRow returns storage.ErrNotFound when res touched no row.
func expectRow(res sql.Result, kind models.Kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
