package models

import "strings"

// UnknownCategoryName labels the bucket of transactions whose category is
// missing.
const UnknownCategoryName = "Unknown"

// Budget is a snapshot of the four entity collections. Order within a
// collection carries no meaning for the summary.
type Budget struct {
	People         []Person        `json:"people"`
	PaymentMethods []PaymentMethod `json:"payment_methods"`
	Categories     []Category      `json:"categories"`
	Transactions   []Transaction   `json:"transactions"`
}

// Clone returns a deep copy of b.
func (b *Budget) Clone() *Budget {
	out := &Budget{
		People:         append([]Person(nil), b.People...),
		PaymentMethods: append([]PaymentMethod(nil), b.PaymentMethods...),
		Categories:     append([]Category(nil), b.Categories...),
		Transactions:   make([]Transaction, len(b.Transactions)),
	}
	for i, t := range b.Transactions {
		out.Transactions[i] = t.Clone()
	}
	return out
}

// Index resolves references within one Budget snapshot. Every lookup
// returns (value, false) for a dangling or empty ID instead of an error.
type Index struct {
	peopleInOrder  []Person
	people         map[string]Person
	paymentMethods map[string]PaymentMethod
	categories     map[string]Category
	transactions   map[string]Transaction
}

// NewIndex builds the lookup tables for b.
func NewIndex(b *Budget) *Index {
	return &Index{
		peopleInOrder:  b.People,
		people:         byID(b.People, func(p Person) string { return p.ID }),
		paymentMethods: byID(b.PaymentMethods, func(pm PaymentMethod) string { return pm.ID }),
		categories:     byID(b.Categories, func(c Category) string { return c.ID }),
		transactions:   byID(b.Transactions, func(t Transaction) string { return t.ID }),
	}
}

func byID[T any](items []T, id func(T) string) map[string]T {
	m := make(map[string]T, len(items))
	for _, item := range items {
		m[id(item)] = item
	}
	return m
}

func resolve[T any](m map[string]T, id string) (T, bool) {
	if id == "" {
		var zero T
		return zero, false
	}
	v, ok := m[id]
	return v, ok
}

func (ix *Index) Person(id string) (Person, bool) {
	return resolve(ix.people, id)
}

func (ix *Index) PaymentMethod(id string) (PaymentMethod, bool) {
	return resolve(ix.paymentMethods, id)
}

func (ix *Index) Category(id string) (Category, bool) {
	return resolve(ix.categories, id)
}

func (ix *Index) Transaction(id string) (Transaction, bool) {
	return resolve(ix.transactions, id)
}

// CategoryName returns the category's name or UnknownCategoryName.
func (ix *Index) CategoryName(id string) string {
	if c, ok := ix.Category(id); ok {
		return c.Name
	}
	return UnknownCategoryName
}

// Owner resolves the owner of a payment method.
func (ix *Index) Owner(pm PaymentMethod) (Person, bool) {
	return ix.Person(pm.OwnerID)
}

// LookupPerson finds a person by ID, then by case-insensitive name. When
// several people share the name, the first in snapshot order wins.
func (ix *Index) LookupPerson(key string) (Person, bool) {
	if p, ok := ix.Person(key); ok {
		return p, true
	}
	for _, p := range ix.peopleInOrder {
		if strings.EqualFold(p.Name, key) {
			return p, true
		}
	}
	return Person{}, false
}
