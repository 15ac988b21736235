package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidAmount is returned for amounts that are not finite numbers.
var ErrInvalidAmount = errors.New("invalid amount")

var half = decimal.NewFromFloat(0.5)

// Money is an amount with cent precision. Positive values are income and
// negative values are expenses.
type Money struct {
	Cents int64
}

// Cents returns the amount of c cents.
func Cents(c int64) Money {
	return Money{Cents: c}
}

// NewMoney rounds raw to the nearest cent, with halves rounded up
// (12.345 -> 12.35, -0.125 -> -0.12).
func NewMoney(raw float64) (Money, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return Money{}, fmt.Errorf("%w: %v", ErrInvalidAmount, raw)
	}
	return roundCents(decimal.NewFromFloat(raw)), nil
}

// MustMoney is NewMoney for constants. It panics on NaN or infinity.
func MustMoney(raw float64) Money {
	m, err := NewMoney(raw)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseMoney parses a decimal string such as "12.34", "-5" or "12,34" and
// rounds it like NewMoney.
func ParseMoney(s string) (Money, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return Money{}, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return roundCents(d), nil
}

func roundCents(d decimal.Decimal) Money {
	return Money{Cents: d.Shift(2).Add(half).Floor().IntPart()}
}

// Decimal returns the exact amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// Float64 returns the amount in currency units for display and percentages.
func (m Money) Float64() float64 {
	return float64(m.Cents) / 100
}

func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

func (m Money) IsZero() bool {
	return m.Cents == 0
}

// Sign returns -1, 0 or +1.
func (m Money) Sign() int {
	switch {
	case m.Cents < 0:
		return -1
	case m.Cents > 0:
		return 1
	default:
		return 0
	}
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON writes the amount as a plain number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a number or a numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Money) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: m.String()}, nil
}

func (m *Money) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w: not a number", node.Line, ErrInvalidAmount)
	}
	parsed, err := ParseMoney(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*m = parsed
	return nil
}
