// Package export reads and writes whole budget snapshots.
//
// The document layout is the one used by the browser app's export files:
// top-level people, paymentMethods, categories and transactions arrays,
// entities keyed by "uuid", billing cycles as [count, unit] pairs and payers
// as a person ID to percentage map.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/budgetwise/internal/cycle"
	"github.com/mmynk/budgetwise/internal/models"
)

// ErrMalformed is returned for documents that cannot be loaded into a store.
var ErrMalformed = errors.New("malformed budget document")

// Format is a document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return "", fmt.Errorf("unknown format %q: must be json or yaml", s)
}

// FormatFromPath picks YAML for .yaml and .yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

type Document struct {
	People         []Person        `json:"people" yaml:"people"`
	PaymentMethods []PaymentMethod `json:"paymentMethods" yaml:"paymentMethods"`
	Categories     []Category      `json:"categories" yaml:"categories"`
	Transactions   []Transaction   `json:"transactions" yaml:"transactions"`
}

type Person struct {
	UUID string `json:"uuid" yaml:"uuid"`
	Name string `json:"name" yaml:"name"`
}

type PaymentMethod struct {
	UUID      string `json:"uuid" yaml:"uuid"`
	Name      string `json:"name" yaml:"name"`
	OwnerUUID string `json:"owner_uuid" yaml:"owner_uuid"`
}

type Category struct {
	UUID  string `json:"uuid" yaml:"uuid"`
	Icon  string `json:"icon" yaml:"icon"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

type Transaction struct {
	UUID              string        `json:"uuid" yaml:"uuid"`
	CategoryUUID      string        `json:"category_uuid" yaml:"category_uuid"`
	Name              string        `json:"name" yaml:"name"`
	Amount            models.Money  `json:"amount" yaml:"amount"`
	PaymentMethodUUID string        `json:"payment_method_uuid" yaml:"payment_method_uuid"`
	BillingCycle      cycle.Cycle   `json:"billing_cycle" yaml:"billing_cycle"`
	Payers            models.Payers `json:"payers" yaml:"payers"`
}

// FromBudget converts a snapshot into its document form.
func FromBudget(b *models.Budget) *Document {
	d := &Document{
		People:         make([]Person, 0, len(b.People)),
		PaymentMethods: make([]PaymentMethod, 0, len(b.PaymentMethods)),
		Categories:     make([]Category, 0, len(b.Categories)),
		Transactions:   make([]Transaction, 0, len(b.Transactions)),
	}
	for _, p := range b.People {
		d.People = append(d.People, Person{UUID: p.ID, Name: p.Name})
	}
	for _, pm := range b.PaymentMethods {
		d.PaymentMethods = append(d.PaymentMethods, PaymentMethod{UUID: pm.ID, Name: pm.Name, OwnerUUID: pm.OwnerID})
	}
	for _, c := range b.Categories {
		d.Categories = append(d.Categories, Category{UUID: c.ID, Icon: c.Icon, Name: c.Name, Color: c.Color})
	}
	for _, t := range b.Transactions {
		t = t.Clone()
		if t.Payers == nil {
			t.Payers = models.Payers{}
		}
		d.Transactions = append(d.Transactions, Transaction{
			UUID:              t.ID,
			CategoryUUID:      t.CategoryID,
			Name:              t.Name,
			Amount:            t.Amount,
			PaymentMethodUUID: t.PaymentMethodID,
			BillingCycle:      t.BillingCycle,
			Payers:            t.Payers,
		})
	}
	return d
}

// Budget converts the document back into a snapshot. Only problems that
// would stop a store from loading it are reported: empty or duplicate IDs.
// Everything else, including invalid billing cycles and payer shares that
// do not add up to 100, is kept as-is.
func (d *Document) Budget() (*models.Budget, error) {
	var problems []string
	seen := map[string]map[string]bool{}
	checkID := func(collection, id string, i int) {
		if id == "" {
			problems = append(problems, fmt.Sprintf("%s[%d]: missing uuid", collection, i))
			return
		}
		if seen[collection] == nil {
			seen[collection] = map[string]bool{}
		}
		if seen[collection][id] {
			problems = append(problems, fmt.Sprintf("%s[%d]: duplicate uuid %s", collection, i, id))
		}
		seen[collection][id] = true
	}

	b := &models.Budget{}
	for i, p := range d.People {
		checkID("people", p.UUID, i)
		b.People = append(b.People, models.Person{ID: p.UUID, Name: p.Name})
	}
	for i, pm := range d.PaymentMethods {
		checkID("paymentMethods", pm.UUID, i)
		b.PaymentMethods = append(b.PaymentMethods, models.PaymentMethod{ID: pm.UUID, Name: pm.Name, OwnerID: pm.OwnerUUID})
	}
	for i, c := range d.Categories {
		checkID("categories", c.UUID, i)
		b.Categories = append(b.Categories, models.Category{ID: c.UUID, Name: c.Name, Icon: c.Icon, Color: c.Color})
	}
	for i, t := range d.Transactions {
		checkID("transactions", t.UUID, i)
		b.Transactions = append(b.Transactions, models.Transaction{
			ID:              t.UUID,
			CategoryID:      t.CategoryUUID,
			Name:            t.Name,
			Amount:          t.Amount,
			PaymentMethodID: t.PaymentMethodUUID,
			BillingCycle:    t.BillingCycle,
			Payers:          t.Payers,
		}.Clone())
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w:\n- %s", ErrMalformed, strings.Join(problems, "\n- "))
	}
	return b, nil
}

// Encode writes b to w in the given format.
func Encode(w io.Writer, b *models.Budget, f Format) error {
	doc := FromBudget(b)
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// Decode reads a document from r and converts it into a snapshot.
func Decode(r io.Reader, f Format) (*models.Budget, error) {
	var doc Document
	switch f {
	case JSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	case YAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
	return doc.Budget()
}
