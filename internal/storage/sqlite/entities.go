package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/budgetwise/internal/models"
)

// CreatePerson persists a new person to the database.
func (s *SQLiteStore) CreatePerson(ctx context.Context, p *models.Person) error {
	assignID(&p.ID)
	return insertPerson(ctx, s.db, p)
}

// UpdatePerson renames a person.
func (s *SQLiteStore) UpdatePerson(ctx context.Context, p *models.Person) error {
	res, err := s.db.ExecContext(ctx, "UPDATE people SET name = ? WHERE id = ?", p.Name, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}
	return expectRow(res, models.KindPerson, p.ID)
}

// CreatePaymentMethod persists a new payment method to the database.
func (s *SQLiteStore) CreatePaymentMethod(ctx context.Context, pm *models.PaymentMethod) error {
	assignID(&pm.ID)
	return insertPaymentMethod(ctx, s.db, pm)
}

func (s *SQLiteStore) UpdatePaymentMethod(ctx context.Context, pm *models.PaymentMethod) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE payment_methods SET name = ?, owner_id = ? WHERE id = ?",
		pm.Name, pm.OwnerID, pm.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment method: %w", err)
	}
	return expectRow(res, models.KindPaymentMethod, pm.ID)
}

// CreateCategory persists a new category to the database.
func (s *SQLiteStore) CreateCategory(ctx context.Context, c *models.Category) error {
	assignID(&c.ID)
	return insertCategory(ctx, s.db, c)
}

func (s *SQLiteStore) UpdateCategory(ctx context.Context, c *models.Category) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE categories SET name = ?, icon = ?, color = ? WHERE id = ?",
		c.Name, c.Icon, c.Color, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return expectRow(res, models.KindCategory, c.ID)
}

func insertPerson(ctx context.Context, db execer, p *models.Person) error {
	_, err := db.ExecContext(ctx, "INSERT INTO people (id, name) VALUES (?, ?)", p.ID, p.Name)
	if err != nil {
		return insertErr(models.KindPerson, p.ID, err)
	}
	return nil
}

func insertPaymentMethod(ctx context.Context, db execer, pm *models.PaymentMethod) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO payment_methods (id, name, owner_id) VALUES (?, ?, ?)",
		pm.ID, pm.Name, pm.OwnerID,
	)
	if err != nil {
		return insertErr(models.KindPaymentMethod, pm.ID, err)
	}
	return nil
}

func insertCategory(ctx context.Context, db execer, c *models.Category) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO categories (id, name, icon, color) VALUES (?, ?, ?, ?)",
		c.ID, c.Name, c.Icon, c.Color,
	)
	if err != nil {
		return insertErr(models.KindCategory, c.ID, err)
	}
	return nil
}

func listPeople(ctx context.Context, tx *sql.Tx) ([]models.Person, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id, name FROM people ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to get people: %w", err)
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}
	return people, nil
}

func listPaymentMethods(ctx context.Context, tx *sql.Tx) ([]models.PaymentMethod, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id, name, owner_id FROM payment_methods ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to get payment methods: %w", err)
	}
	defer rows.Close()

	var methods []models.PaymentMethod
	for rows.Next() {
		var pm models.PaymentMethod
		if err := rows.Scan(&pm.ID, &pm.Name, &pm.OwnerID); err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		methods = append(methods, pm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment methods: %w", err)
	}
	return methods, nil
}

func listCategories(ctx context.Context, tx *sql.Tx) ([]models.Category, error) {
	rows, err := tx.QueryContext(ctx, "SELECT id, name, icon, color FROM categories ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}
