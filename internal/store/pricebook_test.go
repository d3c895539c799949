package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/sienna/internal/catalog"

	"github.com/shopspring/decimal"
)

func openTemp(t *testing.T) *PriceBook {
	t.Helper()
	pb, err := Open(filepath.Join(t.TempDir(), "nested", "prices.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = pb.Close() })
	return pb
}

func TestPriceBook_EmptyBook(t *testing.T) {
	pb := openTemp(t)
	if _, err := pb.Catalog(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Catalog() err = %v, want ErrEmpty", err)
	}
	if _, err := pb.LastImport(); !errors.Is(err, ErrEmpty) {
		t.Errorf("LastImport() err = %v, want ErrEmpty", err)
	}
}

func TestPriceBook_ImportRoundTrip(t *testing.T) {
	pb := openTemp(t)
	cat, _ := catalog.Default()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	if err := pb.Import(cat.Entries(), "bundled", now); err != nil {
		t.Fatalf("Import: %v", err)
	}

	got, err := pb.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	want := cat.Entries()
	if len(got) != len(want) {
		t.Fatalf("len(Entries) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Key != want[i].Key || !got[i].UnitPrice.Equal(want[i].UnitPrice) || got[i].Description != want[i].Description {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	info, err := pb.LastImport()
	if err != nil {
		t.Fatalf("LastImport: %v", err)
	}
	if info.Source != "bundled" || info.Entries != len(want) || !info.ImportedAt.Equal(now) {
		t.Errorf("LastImport = %+v", info)
	}
}

func TestPriceBook_ImportReplaces(t *testing.T) {
	pb := openTemp(t)
	now := time.Now()

	first := []catalog.Entry{
		{Key: "A", Description: "a", Unit: "m2", UnitPrice: decimal.RequireFromString("1.10")},
		{Key: "B", Description: "b", Unit: "m2", UnitPrice: decimal.RequireFromString("2")},
	}
	if err := pb.Import(first, "one.csv", now); err != nil {
		t.Fatalf("Import: %v", err)
	}

	second := []catalog.Entry{
		{Key: "C", Description: "c", Unit: "pza", PriceUnavailable: true},
		{Key: "D", Description: "old", Unit: "m2", UnitPrice: decimal.RequireFromString("4")},
		{Key: "D", Description: "new", Unit: "m2", UnitPrice: decimal.RequireFromString("5")},
	}
	if err := pb.Import(second, "two.csv", now); err != nil {
		t.Fatalf("Import: %v", err)
	}

	cat, err := pb.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if cat.Has("A") {
		t.Error("old entry A survived re-import")
	}
	if cat.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cat.Len())
	}
	if d := cat.Lookup("D"); d.Description != "new" || !d.UnitPrice.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Lookup(D) = %+v, want last write", d)
	}
	if !cat.Lookup("C").PriceUnavailable {
		t.Error("Lookup(C).PriceUnavailable = false, want true")
	}
	if keys := cat.Entries(); keys[0].Key != "C" || keys[1].Key != "D" {
		t.Errorf("entry order = %s, %s; want C, D", keys[0].Key, keys[1].Key)
	}
}
