package models

import (
	"errors"
	"fmt"
)

// ErrInvalidMode is returned for a Mode that does not match its kind.
var ErrInvalidMode = errors.New("invalid mode")

// ModeKind tells a save operation whether to add or change an entity.
type ModeKind string

const (
	ModeCreate ModeKind = "create"
	ModeEdit   ModeKind = "edit"
)

// Mode selects between creating a new entity and editing the entity ID.
type Mode struct {
	Kind ModeKind `json:"kind"`
	ID   string   `json:"id,omitempty"`
}

// Create returns the mode for adding a new entity.
func Create() Mode {
	return Mode{Kind: ModeCreate}
}

// Edit returns the mode for changing the entity with the given ID.
func Edit(id string) Mode {
	return Mode{Kind: ModeEdit, ID: id}
}

// IsEdit reports whether m edits an existing entity.
func (m Mode) IsEdit() bool {
	return m.Kind == ModeEdit
}

// Validate rejects unknown kinds, edits without an ID and creates with one.
func (m Mode) Validate() error {
	switch m.Kind {
	case ModeCreate:
		if m.ID != "" {
			return fmt.Errorf("%w: create does not take an id", ErrInvalidMode)
		}
	case ModeEdit:
		if m.ID == "" {
			return fmt.Errorf("%w: edit requires an id", ErrInvalidMode)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidMode, string(m.Kind))
	}
	return nil
}

// Kind names one of the four entity collections.
type Kind string

const (
	KindPerson        Kind = "person"
	KindPaymentMethod Kind = "payment_method"
	KindCategory      Kind = "category"
	KindTransaction   Kind = "transaction"
)

// Valid reports whether k is a known entity kind.
func (k Kind) Valid() bool {
	switch k {
	case KindPerson, KindPaymentMethod, KindCategory, KindTransaction:
		return true
	}
	return false
}
