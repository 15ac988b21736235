// Package events announces changes to the entity store so that derived
// views, such as cached summaries, can be recomputed.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/budgetwise/internal/models"
)

// Op is the kind of change.
type Op string

const (
	OpCreate  Op = "create"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
	OpReplace Op = "replace" // whole snapshot replaced by an import
)

// Change describes one successful write. Entity and ID are empty for
// OpReplace.
type Change struct {
	Entity models.Kind `json:"entity,omitempty"`
	Op     Op          `json:"op"`
	ID     string      `json:"id,omitempty"`
	At     time.Time   `json:"at"`
}

// Publisher receives changes after they are committed.
type Publisher interface {
	Publish(ctx context.Context, c Change) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, c Change) error

func (f PublisherFunc) Publish(ctx context.Context, c Change) error {
	return f(ctx, c)
}

// Fanout publishes to every publisher, even when an earlier one fails.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, c Change) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards every change.
type Nop struct{}

func (Nop) Publish(context.Context, Change) error { return nil }
