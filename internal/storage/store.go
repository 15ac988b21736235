// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/budgetwise/internal/models"
)

var (
	// ErrNotFound is returned when updating or deleting an unknown ID.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when creating an entity whose ID is taken.
	ErrConflict = errors.New("already exists")
)

// Store defines the entity store: four collections keyed by ID.
//
// Writes are serialized with respect to Snapshot, so a snapshot never
// observes a half-applied change. Deletes never cascade; references held by
// other entities are left dangling.
type Store interface {
	// Create* persist a new entity. An empty ID is filled with a new UUID.
	CreatePerson(ctx context.Context, p *models.Person) error
	CreatePaymentMethod(ctx context.Context, pm *models.PaymentMethod) error
	CreateCategory(ctx context.Context, c *models.Category) error
	CreateTransaction(ctx context.Context, t *models.Transaction) error

	// Update* replace an existing entity. Returns ErrNotFound for an unknown ID.
	UpdatePerson(ctx context.Context, p *models.Person) error
	UpdatePaymentMethod(ctx context.Context, pm *models.PaymentMethod) error
	UpdateCategory(ctx context.Context, c *models.Category) error
	UpdateTransaction(ctx context.Context, t *models.Transaction) error

	// Delete removes one entity of the given kind. Returns ErrNotFound for
	// an unknown ID.
	Delete(ctx context.Context, kind models.Kind, id string) error

	// Snapshot returns a consistent deep copy of all four collections.
	Snapshot(ctx context.Context) (*models.Budget, error)

	// Replace swaps the whole content of the store for b in one step.
	Replace(ctx context.Context, b *models.Budget) error

	// Close releases any resources held by the store.
	Close() error
}
