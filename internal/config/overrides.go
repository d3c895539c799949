package config

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceOverrides converts the configured overrides into exact decimal
// prices keyed by catalog key. Entries without a unit_price are skipped.
func (c CatalogConfig) PriceOverrides() (map[string]decimal.Decimal, error) {
	if len(c.Overrides) == 0 {
		return nil, nil
	}
	out := make(map[string]decimal.Decimal, len(c.Overrides))
	for key, o := range c.Overrides {
		if o.UnitPrice == nil {
			continue
		}
		if *o.UnitPrice < 0 {
			return nil, fmt.Errorf("price override for %s is negative: %v", key, *o.UnitPrice)
		}
		out[key] = decimal.NewFromFloat(*o.UnitPrice)
	}
	return out, nil
}
