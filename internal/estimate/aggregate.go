package estimate

import (
	"sort"

	"github.com/shopspring/decimal"
)

var (
	markupRate   = decimal.RequireFromString("0.25")
	markupFactor = decimal.NewFromInt(1).Add(markupRate)
)

// MarkupRate returns the fixed indirect-cost-and-profit rate applied to
// direct cost.
func MarkupRate() decimal.Decimal {
	return markupRate
}

// Subtotals holds the direct cost of each category.
type Subtotals struct {
	Preliminaries decimal.Decimal `json:"preliminaries"`
	Foundation    decimal.Decimal `json:"foundation"`
	Structure     decimal.Decimal `json:"structure"`
	Finishes      decimal.Decimal `json:"finishes"`
	Installations decimal.Decimal `json:"installations"`
}

// Of returns the subtotal for c, zero for an unknown category.
func (s Subtotals) Of(c Category) decimal.Decimal {
	if p := s.field(c); p != nil {
		return *p
	}
	return decimal.Zero
}

// Sum adds the five subtotals.
func (s Subtotals) Sum() decimal.Decimal {
	return s.Preliminaries.
		Add(s.Foundation).
		Add(s.Structure).
		Add(s.Finishes).
		Add(s.Installations)
}

func (s *Subtotals) field(c Category) *decimal.Decimal {
	switch c {
	case Preliminaries:
		return &s.Preliminaries
	case Foundation:
		return &s.Foundation
	case Structure:
		return &s.Structure
	case Finishes:
		return &s.Finishes
	case Installations:
		return &s.Installations
	}
	return nil
}

// Result is a complete budget. It is a value; nothing retains or mutates it
// after Aggregate returns.
type Result struct {
	Area        decimal.Decimal `json:"area"`
	Tier        Tier            `json:"tier,omitempty"`
	Preferences string          `json:"preferences,omitempty"`

	Items     []LineItem `json:"items"`
	Subtotals Subtotals  `json:"subtotals"`

	DirectCost decimal.Decimal `json:"direct_cost"`
	Markup     decimal.Decimal `json:"markup"`
	Total      decimal.Decimal `json:"total"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
}

// Aggregate folds line items into category subtotals, applies the markup and
// computes the cost per square meter. Item order is preserved.
func Aggregate(area decimal.Decimal, items []LineItem) Result {
	var sub Subtotals
	for _, it := range items {
		if p := sub.field(it.Category); p != nil {
			*p = p.Add(it.Amount)
		}
	}

	direct := sub.Sum()
	total := direct.Mul(markupFactor)

	unit := total
	if !area.IsZero() {
		unit = total.Div(area)
	}

	return Result{
		Area:       area,
		Items:      items,
		Subtotals:  sub,
		DirectCost: direct,
		Markup:     total.Sub(direct),
		Total:      total,
		UnitCost:   unit,
	}
}

// DirectCostFromTotal divides the markup back out of a total.
func DirectCostFromTotal(total decimal.Decimal) decimal.Decimal {
	return total.Div(markupFactor)
}

// Degraded returns the line items priced at zero because of catalog
// problems.
func (r Result) Degraded() []LineItem {
	var out []LineItem
	for _, it := range r.Items {
		if it.Degraded() {
			out = append(out, it)
		}
	}
	return out
}

// SubcategoryAmount is one second-level row of a breakdown.
type SubcategoryAmount struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryBreakdown groups a category's amount by subcategory.
type CategoryBreakdown struct {
	Category      Category            `json:"category"`
	Amount        decimal.Decimal     `json:"amount"`
	Subcategories []SubcategoryAmount `json:"subcategories"`
}

// Breakdown aggregates amounts by category and subcategory. Categories come
// in report order, subcategories sorted by name.
func (r Result) Breakdown() []CategoryBreakdown {
	byCat := make(map[Category]map[string]decimal.Decimal)
	for _, it := range r.Items {
		subs, ok := byCat[it.Category]
		if !ok {
			subs = make(map[string]decimal.Decimal)
			byCat[it.Category] = subs
		}
		subs[it.Subcategory] = subs[it.Subcategory].Add(it.Amount)
	}

	out := make([]CategoryBreakdown, 0, len(byCat))
	for cat, subs := range byCat {
		cb := CategoryBreakdown{Category: cat, Amount: decimal.Zero}
		for name, amt := range subs {
			cb.Subcategories = append(cb.Subcategories, SubcategoryAmount{Name: name, Amount: amt})
			cb.Amount = cb.Amount.Add(amt)
		}
		sort.Slice(cb.Subcategories, func(i, j int) bool {
			return cb.Subcategories[i].Name < cb.Subcategories[j].Name
		})
		out = append(out, cb)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := categoryRank(out[i].Category), categoryRank(out[j].Category)
		if ri != rj {
			return ri < rj
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// categoryRank orders categories as in Categories; unknown ones sort last
// by name.
func categoryRank(c Category) int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}
	return len(Categories)
}
