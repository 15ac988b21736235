// Package memory is an in-process implementation of storage.Store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/mmynk/budgetwise/internal/models"
	"github.com/mmynk/budgetwise/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps the four collections in maps with their insertion order.
// A read-write mutex serializes writes against snapshots.
type Store struct {
	mu             sync.RWMutex
	people         collection[models.Person]
	paymentMethods collection[models.PaymentMethod]
	categories     collection[models.Category]
	transactions   collection[models.Transaction]
}

// New returns an empty store.
func New() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.people = newCollection[models.Person]("person", nil)
	s.paymentMethods = newCollection[models.PaymentMethod]("payment method", nil)
	s.categories = newCollection[models.Category]("category", nil)
	s.transactions = newCollection("transaction", models.Transaction.Clone)
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) CreatePerson(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	assignID(&p.ID)
	return s.people.create(p.ID, *p)
}

func (s *Store) CreatePaymentMethod(_ context.Context, pm *models.PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	assignID(&pm.ID)
	return s.paymentMethods.create(pm.ID, *pm)
}

func (s *Store) CreateCategory(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	assignID(&c.ID)
	return s.categories.create(c.ID, *c)
}

func (s *Store) CreateTransaction(_ context.Context, t *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	assignID(&t.ID)
	return s.transactions.create(t.ID, *t)
}

func (s *Store) UpdatePerson(_ context.Context, p *models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.people.update(p.ID, *p)
}

func (s *Store) UpdatePaymentMethod(_ context.Context, pm *models.PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paymentMethods.update(pm.ID, *pm)
}

func (s *Store) UpdateCategory(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.update(c.ID, *c)
}

func (s *Store) UpdateTransaction(_ context.Context, t *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactions.update(t.ID, *t)
}

// Delete removes one entity. References to it are left in place.
func (s *Store) Delete(_ context.Context, kind models.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch kind {
	case models.KindPerson:
		return s.people.delete(id)
	case models.KindPaymentMethod:
		return s.paymentMethods.delete(id)
	case models.KindCategory:
		return s.categories.delete(id)
	case models.KindTransaction:
		return s.transactions.delete(id)
	default:
		return fmt.Errorf("unknown entity kind %q", kind)
	}
}

func (s *Store) Snapshot(_ context.Context) (*models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return &models.Budget{
		People:         s.people.list(),
		PaymentMethods: s.paymentMethods.list(),
		Categories:     s.categories.list(),
		Transactions:   s.transactions.list(),
	}, nil
}

// Replace loads b into an empty store. On a duplicate ID the previous
// content is kept.
func (s *Store) Replace(_ context.Context, b *models.Budget) error {
	next := New()
	for _, p := range b.People {
		if err := next.people.create(p.ID, p); err != nil {
			return err
		}
	}
	for _, pm := range b.PaymentMethods {
		if err := next.paymentMethods.create(pm.ID, pm); err != nil {
			return err
		}
	}
	for _, c := range b.Categories {
		if err := next.categories.create(c.ID, c); err != nil {
			return err
		}
	}
	for _, t := range b.Transactions {
		if err := next.transactions.create(t.ID, t); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.people = next.people
	s.paymentMethods = next.paymentMethods
	s.categories = next.categories
	s.transactions = next.transactions
	return nil
}

func assignID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}

// collection is a map plus the order in which keys were added.
type collection[T any] struct {
	name  string
	items map[string]T
	order []string
	clone func(T) T
}

func newCollection[T any](name string, clone func(T) T) collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return collection[T]{name: name, items: make(map[string]T), clone: clone}
}

func (c *collection[T]) create(id string, v T) error {
	if _, exists := c.items[id]; exists {
		return fmt.Errorf("%s %s: %w", c.name, id, storage.ErrConflict)
	}
	c.items[id] = c.clone(v)
	c.order = append(c.order, id)
	return nil
}

func (c *collection[T]) update(id string, v T) error {
	if _, exists := c.items[id]; !exists {
		return fmt.Errorf("%s %s: %w", c.name, id, storage.ErrNotFound)
	}
	c.items[id] = c.clone(v)
	return nil
}

func (c *collection[T]) delete(id string) error {
	if _, exists := c.items[id]; !exists {
		return fmt.Errorf("%s %s: %w", c.name, id, storage.ErrNotFound)
	}
	delete(c.items, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *collection[T]) list() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.clone(c.items[id]))
	}
	return out
}
