package estimate

import (
	"fmt"

	"github.com/theirongolddev/sienna/internal/catalog"

	"github.com/shopspring/decimal"
)

// LineItem is one priced row of a budget.
type LineItem struct {
	Category    Category        `json:"category"`
	Subcategory string          `json:"subcategory"`
	CatalogKey  string          `json:"catalog_key"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
	Choice      Choice          `json:"choice"`

	CatalogMiss      bool `json:"catalog_miss,omitempty"`
	PriceUnavailable bool `json:"price_unavailable,omitempty"`
}

// Degraded reports whether the line is priced at zero because of a catalog
// problem rather than a zero quantity.
func (li LineItem) Degraded() bool {
	return li.CatalogMiss || li.PriceUnavailable
}

// Estimator runs the assembly rules against one catalog. It holds no
// mutable state; one Estimator may serve concurrent callers.
type Estimator struct {
	catalog *catalog.Catalog
	rules   []Rule
}

// New returns an Estimator over cat using the default assembly rules.
func New(cat *catalog.Catalog) *Estimator {
	return &Estimator{catalog: cat, rules: DefaultRules()}
}

// Catalog returns the catalog the estimator prices against.
func (e *Estimator) Catalog() *catalog.Catalog {
	return e.catalog
}

// Items evaluates every rule in order and returns one line item per rule.
// req must already be valid.
func (e *Estimator) Items(req Request) []LineItem {
	items := make([]LineItem, 0, len(e.rules))
	for _, rule := range e.rules {
		items = append(items, e.price(rule, req))
	}
	return items
}

// Estimate validates req, runs the rules and aggregates the result.
func (e *Estimator) Estimate(req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid estimate request: %w", err)
	}

	result := Aggregate(req.Area, e.Items(req))
	result.Tier = req.Tier
	result.Preferences = req.Preferences
	return result, nil
}

func (e *Estimator) price(rule Rule, req Request) LineItem {
	choice := rule.Key.Select(req)
	miss := !e.catalog.Has(choice.Key)
	entry := e.catalog.Lookup(choice.Key)

	unitPrice := entry.UnitPrice
	if entry.PriceUnavailable {
		unitPrice = decimal.Zero
	}

	qty := rule.Quantity(req.Area)

	desc := entry.Description
	if choice.Reason == ReasonKeyword && !miss {
		desc = fmt.Sprintf("%s (preferencia: %s)", desc, choice.Keyword)
	}

	return LineItem{
		Category:         rule.Category,
		Subcategory:      rule.Subcategory,
		CatalogKey:       choice.Key,
		Description:      desc,
		Unit:             entry.Unit,
		Quantity:         qty,
		UnitPrice:        unitPrice,
		Amount:           qty.Mul(unitPrice),
		Choice:           choice,
		CatalogMiss:      miss,
		PriceUnavailable: entry.PriceUnavailable,
	}
}
