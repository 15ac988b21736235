// Package cycle converts billing cycles into day counts.
//
// The day lengths are a fixed approximation (a month is 30 days, a year 365)
// and every stored total depends on them, so they must never be made
// calendar-accurate.
package cycle

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unit is the unit of a billing cycle.
type Unit string

const (
	Day   Unit = "day"
	Week  Unit = "week"
	Month Unit = "month"
	Year  Unit = "year"
)

// ErrInvalidCycle is returned for a cycle with a count below one, an
// unrecognized unit, or a day count that does not fit in an int.
var ErrInvalidCycle = errors.New("invalid billing cycle")

var dayLengths = map[Unit]int{
	Day:   1,
	Week:  7,
	Month: 30,
	Year:  365,
}

// Units lists the valid units from shortest to longest.
func Units() []Unit {
	return []Unit{Day, Week, Month, Year}
}

// Days returns the number of days in one unit.
func (u Unit) Days() (int, error) {
	days, ok := dayLengths[u]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidCycle, string(u))
	}
	return days, nil
}

// Valid reports whether u is one of the four known units.
func (u Unit) Valid() bool {
	_, ok := dayLengths[u]
	return ok
}

// ParseUnit accepts a unit name in any case, singular or plural.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s"))
	if !u.Valid() {
		return "", fmt.Errorf("%w: unknown unit %q", ErrInvalidCycle, s)
	}
	return u, nil
}

// Cycle is a recurrence period of Count units.
type Cycle struct {
	Count int
	Unit  Unit
}

// New returns a cycle of count units. It is not validated.
func New(count int, unit Unit) Cycle {
	return Cycle{Count: count, Unit: unit}
}

// Days returns Count times the unit's day length.
func (c Cycle) Days() (int, error) {
	if c.Count < 1 {
		return 0, fmt.Errorf("%w: count %d must be at least 1", ErrInvalidCycle, c.Count)
	}
	days, err := c.Unit.Days()
	if err != nil {
		return 0, err
	}
	if c.Count > math.MaxInt/days {
		return 0, fmt.Errorf("%w: %d %ss is too long", ErrInvalidCycle, c.Count, c.Unit)
	}
	return c.Count * days, nil
}

// Validate returns ErrInvalidCycle (wrapped) when Days would fail.
func (c Cycle) Validate() error {
	_, err := c.Days()
	return err
}

func (c Cycle) String() string {
	if c.Count == 1 {
		return fmt.Sprintf("1 %s", c.Unit)
	}
	return fmt.Sprintf("%d %ss", c.Count, c.Unit)
}

// MarshalJSON encodes the cycle as a [count, unit] tuple.
func (c Cycle) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Count, string(c.Unit)})
}

// UnmarshalJSON decodes a [count, unit] tuple. Unknown units are kept as-is
// so that the cycle can be reported as invalid later instead of failing the
// whole document.
func (c *Cycle) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("billing cycle must be a [count, unit] pair: %w", err)
	}
	if len(parts) != 2 {
		return fmt.Errorf("billing cycle must be a [count, unit] pair, got %d elements", len(parts))
	}
	var count int
	if err := json.Unmarshal(parts[0], &count); err != nil {
		return fmt.Errorf("billing cycle count: %w", err)
	}
	var unit string
	if err := json.Unmarshal(parts[1], &unit); err != nil {
		return fmt.Errorf("billing cycle unit: %w", err)
	}
	c.Count = count
	c.Unit = Unit(unit)
	return nil
}

// MarshalYAML encodes the cycle as a [count, unit] sequence.
func (c Cycle) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	node.Content = []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(c.Count)},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(c.Unit)},
	}
	return node, nil
}

// UnmarshalYAML decodes a [count, unit] sequence.
func (c *Cycle) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: billing cycle must be a [count, unit] pair", node.Line)
	}
	var count int
	if err := node.Content[0].Decode(&count); err != nil {
		return fmt.Errorf("billing cycle count: %w", err)
	}
	var unit string
	if err := node.Content[1].Decode(&unit); err != nil {
		return fmt.Errorf("billing cycle unit: %w", err)
	}
	c.Count = count
	c.Unit = Unit(unit)
	return nil
}
