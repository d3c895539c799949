// Package estimate turns built area, finish tier and material preferences
// into an itemized construction budget.
package estimate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/sienna/internal/textmatch"

	"github.com/shopspring/decimal"
)

// Input validation errors. The engine itself assumes a validated Request.
var (
	ErrNegativeArea = errors.New("area must not be negative")
	ErrUnknownTier  = errors.New("unknown finish tier")
)

// Tier is the finish quality level.
type Tier string

// Finish tiers.
const (
	Basic  Tier = "basic"
	Medium Tier = "medium"
	Luxury Tier = "luxury"
)

// Tiers lists every tier in ascending quality order.
var Tiers = []Tier{Basic, Medium, Luxury}

// Label returns the display name used by the wizard and reports.
func (t Tier) Label() string {
	switch t {
	case Basic:
		return "Básico"
	case Medium:
		return "Medio"
	case Luxury:
		return "Lujo"
	default:
		return string(t)
	}
}

// Valid reports whether t is one of the three known tiers.
func (t Tier) Valid() bool {
	return t == Basic || t == Medium || t == Luxury
}

// ParseTier accepts English and Spanish tier names, ignoring case and accents.
func ParseTier(s string) (Tier, error) {
	switch textmatch.Fold(strings.TrimSpace(s)) {
	case "basic", "basico":
		return Basic, nil
	case "medium", "medio":
		return Medium, nil
	case "luxury", "lujo":
		return Luxury, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

// Request is the engine input.
type Request struct {
	Area        decimal.Decimal `json:"area"`
	Tier        Tier            `json:"tier"`
	Preferences string          `json:"preferences,omitempty"`
}

// Validate rejects input the engine is not defined for.
func (r Request) Validate() error {
	if r.Area.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeArea, r.Area)
	}
	if !r.Tier.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownTier, r.Tier)
	}
	return nil
}

// ParseArea parses a user-entered area such as "120", "120.5" or "120,5".
func ParseArea(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimSuffix(s, "m²"), "m2")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	area, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing area %q: %w", s, err)
	}
	if area.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNegativeArea, area)
	}
	return area, nil
}
