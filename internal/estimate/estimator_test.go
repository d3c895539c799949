package estimate

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/theirongolddev/sienna/internal/catalog"

	"github.com/shopspring/decimal"
)

func defaultEstimator(t *testing.T) *Estimator {
	t.Helper()
	cat, stats := catalog.Default()
	if stats.Dropped != 0 {
		t.Fatalf("bundled catalog dropped %d rows", stats.Dropped)
	}
	return New(cat)
}

func req(area int64, tier Tier, prefs string) Request {
	return Request{Area: decimal.NewFromInt(area), Tier: tier, Preferences: prefs}
}

func itemFor(t *testing.T, items []LineItem, sub string) LineItem {
	t.Helper()
	for _, it := range items {
		if it.Subcategory == sub {
			return it
		}
	}
	t.Fatalf("no line item for subcategory %q", sub)
	return LineItem{}
}

func TestEstimate_Deterministic(t *testing.T) {
	e := defaultEstimator(t)
	r := req(137, Medium, "piso de mármol, muros de block")

	first, err := e.Estimate(r)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	second, err := e.Estimate(r)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if !bytes.Equal(a, b) {
		t.Errorf("repeated estimates differ:\n%s\n%s", a, b)
	}
}

func TestEstimate_SubtotalsMatchItems(t *testing.T) {
	e := defaultEstimator(t)
	res, err := e.Estimate(req(85, Luxury, "losa maciza"))
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	for _, c := range Categories {
		sum := decimal.Zero
		for _, it := range res.Items {
			if it.Category == c {
				sum = sum.Add(it.Amount)
			}
		}
		if !sum.Equal(res.Subtotals.Of(c)) {
			t.Errorf("%s subtotal = %s, want %s", c, res.Subtotals.Of(c), sum)
		}
	}
	if !res.DirectCost.Equal(res.Subtotals.Sum()) {
		t.Errorf("DirectCost = %s, want %s", res.DirectCost, res.Subtotals.Sum())
	}
}

func TestEstimate_TotalIsDirectPlusMarkup(t *testing.T) {
	e := defaultEstimator(t)
	for _, area := range []int64{1, 37, 100, 250} {
		res, err := e.Estimate(req(area, Medium, ""))
		if err != nil {
			t.Fatalf("Estimate(%d): %v", area, err)
		}
		want := res.DirectCost.Mul(decimal.RequireFromString("1.25"))
		if !res.Total.Equal(want) {
			t.Errorf("area %d: Total = %s, want %s", area, res.Total, want)
		}
		if !res.Markup.Equal(res.Total.Sub(res.DirectCost)) {
			t.Errorf("area %d: Markup = %s, want %s", area, res.Markup, res.Total.Sub(res.DirectCost))
		}
		if !DirectCostFromTotal(res.Total).Equal(res.DirectCost) {
			t.Errorf("area %d: DirectCostFromTotal = %s, want %s", area, DirectCostFromTotal(res.Total), res.DirectCost)
		}
	}
}

func TestEstimate_ZeroArea(t *testing.T) {
	e := defaultEstimator(t)
	res, err := e.Estimate(req(0, Basic, ""))
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if len(res.Items) != len(DefaultRules()) {
		t.Fatalf("len(Items) = %d, want %d", len(res.Items), len(DefaultRules()))
	}
	for _, it := range res.Items {
		if !it.Quantity.IsZero() || !it.Amount.IsZero() {
			t.Errorf("%s: quantity %s amount %s, want zero", it.Subcategory, it.Quantity, it.Amount)
		}
	}
	if !res.Total.IsZero() {
		t.Errorf("Total = %s, want 0", res.Total)
	}
	if !res.UnitCost.IsZero() {
		t.Errorf("UnitCost = %s, want 0", res.UnitCost)
	}
}

func TestEstimate_UnknownKeyPricedAtZero(t *testing.T) {
	var entries []catalog.Entry
	full, _ := catalog.Default()
	for _, en := range full.Entries() {
		if en.Key != KeyPaint {
			entries = append(entries, en)
		}
	}
	e := New(catalog.New(entries))

	res, err := e.Estimate(req(50, Medium, ""))
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	paint := itemFor(t, res.Items, "Paint")
	if !paint.CatalogMiss {
		t.Error("paint line CatalogMiss = false, want true")
	}
	if !paint.UnitPrice.IsZero() || !paint.Amount.IsZero() {
		t.Errorf("paint unit price %s amount %s, want zero", paint.UnitPrice, paint.Amount)
	}
	if paint.Description != catalog.MissingDescription {
		t.Errorf("paint description = %q, want %q", paint.Description, catalog.MissingDescription)
	}
	if got := len(res.Degraded()); got != 1 {
		t.Errorf("len(Degraded()) = %d, want 1", got)
	}
}

func TestEstimate_UnpricedEntryFlagged(t *testing.T) {
	cat := catalog.New([]catalog.Entry{
		{Key: KeyPaint, Description: "Pintura", Unit: "m2", PriceUnavailable: true},
	})
	items := New(cat).Items(req(10, Medium, ""))
	paint := itemFor(t, items, "Paint")
	if !paint.PriceUnavailable || paint.CatalogMiss {
		t.Errorf("paint flags = unavailable %v miss %v, want true false", paint.PriceUnavailable, paint.CatalogMiss)
	}
	if !paint.Amount.IsZero() {
		t.Errorf("paint amount = %s, want 0", paint.Amount)
	}
}

func TestEstimate_MarbleKeywordEveryTier(t *testing.T) {
	e := defaultEstimator(t)
	for _, tier := range Tiers {
		items := e.Items(req(100, tier, "I want marble floors"))
		floor := itemFor(t, items, "Flooring")
		if floor.CatalogKey != KeyFloorMarble {
			t.Errorf("%s: floor key = %s, want %s", tier, floor.CatalogKey, KeyFloorMarble)
		}
		if floor.Choice.Reason != ReasonKeyword || floor.Choice.Keyword != "marble" {
			t.Errorf("%s: floor choice = %+v, want keyword marble", tier, floor.Choice)
		}
	}
}

func TestEstimate_AccentFoldedKeyword(t *testing.T) {
	e := defaultEstimator(t)
	floor := itemFor(t, e.Items(req(100, Basic, "Piso de MÁRMOL")), "Flooring")
	if floor.CatalogKey != KeyFloorMarble {
		t.Errorf("floor key = %s, want %s", floor.CatalogKey, KeyFloorMarble)
	}
}

func TestEstimate_BlockKeywordEveryTier(t *testing.T) {
	e := defaultEstimator(t)
	for _, tier := range Tiers {
		wall := itemFor(t, e.Items(req(100, tier, "muros de block")), "Walls")
		if wall.CatalogKey != KeyWallBlock {
			t.Errorf("%s: wall key = %s, want %s", tier, wall.CatalogKey, KeyWallBlock)
		}
	}
}

func TestEstimate_TierFallbacks(t *testing.T) {
	e := defaultEstimator(t)

	lux := e.Items(req(100, Luxury, ""))
	if k := itemFor(t, lux, "Flooring").CatalogKey; k != KeyFloorMarble {
		t.Errorf("luxury floor key = %s, want %s", k, KeyFloorMarble)
	}
	if k := itemFor(t, lux, "Wall plaster").CatalogKey; k != KeyPlasterGypsum {
		t.Errorf("luxury plaster key = %s, want %s", k, KeyPlasterGypsum)
	}

	basic := e.Items(req(100, Basic, ""))
	wall := itemFor(t, basic, "Walls")
	if wall.CatalogKey != KeyWallBlock || wall.Choice.Reason != ReasonTier {
		t.Errorf("basic wall = %s (%s), want %s (tier)", wall.CatalogKey, wall.Choice.Reason, KeyWallBlock)
	}

	med := e.Items(req(100, Medium, ""))
	if k := itemFor(t, med, "Walls").CatalogKey; k != KeyWallBrick {
		t.Errorf("medium wall key = %s, want %s", k, KeyWallBrick)
	}
	if k := itemFor(t, med, "Flooring").CatalogKey; k != KeyFloorCeramic {
		t.Errorf("medium floor key = %s, want %s", k, KeyFloorCeramic)
	}
}

func TestEstimate_ReferenceQuantities(t *testing.T) {
	e := defaultEstimator(t)
	items := e.Items(req(100, Medium, ""))

	tests := []struct {
		sub  string
		want int64
	}{
		{"Walls", 220},
		{"Electrical", 34},
		{"Hydraulic", 10},
		{"Wall plaster", 320},
		{"Excavation", 40},
	}
	for _, tt := range tests {
		got := itemFor(t, items, tt.sub).Quantity
		if !got.Equal(decimal.NewFromInt(tt.want)) {
			t.Errorf("%s quantity = %s, want %d", tt.sub, got, tt.want)
		}
	}

	wall := itemFor(t, items, "Walls")
	if want := decimal.RequireFromString("102130.60"); !wall.Amount.Equal(want) {
		t.Errorf("wall amount = %s, want %s", wall.Amount, want)
	}
}

func TestEstimate_KeywordAnnotation(t *testing.T) {
	e := defaultEstimator(t)
	floor := itemFor(t, e.Items(req(10, Medium, "laminado")), "Flooring")
	want := "Piso Laminado de Ingeniería (preferencia: laminado)"
	if floor.Description != want {
		t.Errorf("floor description = %q, want %q", floor.Description, want)
	}
}

func TestEstimate_InvalidRequest(t *testing.T) {
	e := defaultEstimator(t)

	_, err := e.Estimate(req(-5, Medium, ""))
	if !errors.Is(err, ErrNegativeArea) {
		t.Errorf("negative area err = %v, want ErrNegativeArea", err)
	}
	_, err = e.Estimate(req(10, Tier("premium"), ""))
	if !errors.Is(err, ErrUnknownTier) {
		t.Errorf("unknown tier err = %v, want ErrUnknownTier", err)
	}
}
