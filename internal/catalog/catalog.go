// Package catalog loads and indexes the unit-price list used by the
// estimation engine.
package catalog

import (
	"github.com/shopspring/decimal"
)

// Placeholder values returned by Lookup for keys the catalog does not hold.
const (
	MissingDescription = "ITEM NOT FOUND"
	MissingUnit        = "unit"
)

// Entry is one priced catalog record. Entries are created at load time and
// never mutated.
type Entry struct {
	Key         string          `json:"key"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unit_price"`

	// PriceUnavailable is set when the price field did not parse as a
	// number. UnitPrice is zero in that case.
	PriceUnavailable bool `json:"price_unavailable,omitempty"`
}

// Catalog maps entry keys to entries. It is read-only after construction and
// safe for concurrent readers.
type Catalog struct {
	entries map[string]Entry
	order   []string
}

// New builds a catalog from parsed entries. A duplicate key replaces the
// earlier entry; the key keeps the position where it was first seen.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: make(map[string]Entry, len(entries)),
		order:   make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		if _, seen := c.entries[e.Key]; !seen {
			c.order = append(c.order, e.Key)
		}
		c.entries[e.Key] = e
	}
	return c
}

// Lookup returns the entry for key. Unknown keys yield a zero-priced
// placeholder that echoes the key back, so a single bad key degrades one
// budget line instead of aborting the estimate.
func (c *Catalog) Lookup(key string) Entry {
	if c != nil {
		if e, ok := c.entries[key]; ok {
			return e
		}
	}
	return Entry{
		Key:         key,
		Description: MissingDescription,
		Unit:        MissingUnit,
		UnitPrice:   decimal.Zero,
	}
}

// Has reports whether key is present.
func (c *Catalog) Has(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c.entries[key]
	return ok
}

// Len returns the number of distinct keys.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns a copy of all entries in first-seen key order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.entries[k])
	}
	return out
}

// WithOverrides returns a new catalog whose unit prices are replaced for the
// given keys. Keys not in the catalog are ignored; c itself is unchanged.
func (c *Catalog) WithOverrides(prices map[string]decimal.Decimal) *Catalog {
	entries := c.Entries()
	for i, e := range entries {
		p, ok := prices[e.Key]
		if !ok {
			continue
		}
		e.UnitPrice = p
		e.PriceUnavailable = false
		entries[i] = e
	}
	return New(entries)
}

// Unpriced returns the entries whose price field failed to parse.
func (c *Catalog) Unpriced() []Entry {
	var out []Entry
	for _, e := range c.Entries() {
		if e.PriceUnavailable {
			out = append(out, e)
		}
	}
	return out
}
