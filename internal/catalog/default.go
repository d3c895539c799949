package catalog

import (
	_ "embed"
)

//go:embed data/sienna_prices.csv
var defaultCSV string

// DefaultCSV returns the raw text of the bundled price list.
func DefaultCSV() string {
	return defaultCSV
}

// Default parses the bundled price list into a fresh catalog.
func Default() (*Catalog, LoadStats) {
	entries, stats := ParseWithStats(defaultCSV)
	return New(entries), stats
}
