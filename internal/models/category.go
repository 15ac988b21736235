package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultCategoryColor is used when a category has no color.
const DefaultCategoryColor = "#FFFFFF"

// DefaultAccent is the blend amount used for category row tints.
const DefaultAccent = 0.05

// Category groups transactions in the summary.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name" validate:"notblank,min=3,max=12"`

	// Icon is a presentation-only icon class name (e.g. "bi-house").
	Icon string `json:"icon"`

	// Color is a #RRGGBB string. Presentation only.
	Color string `json:"color" validate:"omitempty,rgbhex"`
}

// Validate checks the editable fields of the category.
func (c Category) Validate() error {
	return check("category", c)
}

// ColorOrDefault returns Color, or DefaultCategoryColor when it is empty.
func (c Category) ColorOrDefault() string {
	if c.Color == "" {
		return DefaultCategoryColor
	}
	return c.Color
}

// AccentColor blends white toward the category color by amount (0..1).
// A malformed color yields white.
func (c Category) AccentColor(amount float64) string {
	rgb, err := parseHexColor(c.ColorOrDefault())
	if err != nil {
		return DefaultCategoryColor
	}
	amount = math.Max(0, math.Min(1, amount))
	var out [3]int
	for i, v := range rgb {
		out[i] = int(math.Round(255 + (float64(v)-255)*amount))
	}
	return fmt.Sprintf("#%02X%02X%02X", out[0], out[1], out[2])
}

func parseHexColor(s string) ([3]int, error) {
	var rgb [3]int
	if !isHexColor(s) {
		return rgb, fmt.Errorf("invalid color %q", s)
	}
	for i := range rgb {
		v, err := strconv.ParseUint(s[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return rgb, fmt.Errorf("invalid color %q: %w", s, err)
		}
		rgb[i] = int(v)
	}
	return rgb, nil
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	return strings.Trim(strings.ToLower(s[1:]), "0123456789abcdef") == ""
}
