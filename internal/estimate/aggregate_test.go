package estimate

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAggregate_UnitCost(t *testing.T) {
	items := []LineItem{
		{Category: Structure, Subcategory: "Walls", Amount: d("800")},
		{Category: Finishes, Subcategory: "Paint", Amount: d("200")},
	}
	res := Aggregate(d("10"), items)

	if !res.DirectCost.Equal(d("1000")) {
		t.Errorf("DirectCost = %s, want 1000", res.DirectCost)
	}
	if !res.Total.Equal(d("1250")) {
		t.Errorf("Total = %s, want 1250", res.Total)
	}
	if !res.UnitCost.Equal(d("125")) {
		t.Errorf("UnitCost = %s, want 125", res.UnitCost)
	}
	if !res.Subtotals.Of(Foundation).IsZero() {
		t.Errorf("Foundation subtotal = %s, want 0", res.Subtotals.Of(Foundation))
	}
}

func TestAggregate_ZeroAreaUnitCostIsTotal(t *testing.T) {
	res := Aggregate(decimal.Zero, []LineItem{{Category: Preliminaries, Amount: d("40")}})
	if !res.UnitCost.Equal(res.Total) {
		t.Errorf("UnitCost = %s, want Total %s", res.UnitCost, res.Total)
	}
}

func TestMarkupRate(t *testing.T) {
	if !MarkupRate().Equal(d("0.25")) {
		t.Errorf("MarkupRate() = %s, want 0.25", MarkupRate())
	}
	if !markupFactor.Equal(d("1").Add(MarkupRate())) {
		t.Errorf("markupFactor = %s, want 1 + MarkupRate()", markupFactor)
	}
}

func TestBreakdown_ReportOrder(t *testing.T) {
	res := Aggregate(d("1"), []LineItem{
		{Category: Structure, Subcategory: "Walls", Amount: d("10")},
		{Category: Finishes, Subcategory: "Paint", Amount: d("3")},
		{Category: Finishes, Subcategory: "Flooring", Amount: d("4")},
		{Category: Finishes, Subcategory: "Paint", Amount: d("1")},
	})

	bd := res.Breakdown()
	if len(bd) != 2 {
		t.Fatalf("len(Breakdown) = %d, want 2", len(bd))
	}
	if bd[0].Category != Structure || bd[1].Category != Finishes {
		t.Fatalf("categories = %s, %s; want Structure, Finishes", bd[0].Category, bd[1].Category)
	}
	fin := bd[1]
	if !fin.Amount.Equal(d("8")) {
		t.Errorf("Finishes amount = %s, want 8", fin.Amount)
	}
	if len(fin.Subcategories) != 2 || fin.Subcategories[0].Name != "Flooring" {
		t.Fatalf("Finishes subcategories = %+v", fin.Subcategories)
	}
	if !fin.Subcategories[1].Amount.Equal(d("4")) {
		t.Errorf("Paint amount = %s, want 4", fin.Subcategories[1].Amount)
	}
}

func TestParseTier(t *testing.T) {
	tests := []struct {
		in   string
		want Tier
	}{
		{"basic", Basic},
		{"Básico", Basic},
		{" MEDIO ", Medium},
		{"luxury", Luxury},
		{"Lujo", Luxury},
	}
	for _, tt := range tests {
		got, err := ParseTier(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseTier(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseTier("premium"); err == nil {
		t.Error("ParseTier(premium) returned nil error")
	}
}

func TestParseArea(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"120", "120"},
		{"120,5", "120.5"},
		{"85 m2", "85"},
		{"64.25m²", "64.25"},
	}
	for _, tt := range tests {
		got, err := ParseArea(tt.in)
		if err != nil {
			t.Errorf("ParseArea(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(d(tt.want)) {
			t.Errorf("ParseArea(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "abc", "-3"} {
		if _, err := ParseArea(bad); err == nil {
			t.Errorf("ParseArea(%q) returned nil error", bad)
		}
	}
}

func TestBreakdown_AllCategoriesInReportOrder(t *testing.T) {
	var items []LineItem
	for i := len(Categories) - 1; i >= 0; i-- {
		items = append(items, LineItem{Category: Categories[i], Subcategory: "x", Amount: d("1")})
	}
	bd := Aggregate(d("1"), items).Breakdown()
	if len(bd) != len(Categories) {
		t.Fatalf("len(Breakdown) = %d, want %d", len(bd), len(Categories))
	}
	for i, cb := range bd {
		if cb.Category != Categories[i] {
			t.Errorf("Breakdown[%d] = %s, want %s", i, cb.Category, Categories[i])
		}
	}
}
