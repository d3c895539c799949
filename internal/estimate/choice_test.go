package estimate

import "testing"

func TestDecisionTables(t *testing.T) {
	tests := []struct {
		name    string
		table   Table
		tier    Tier
		prefs   string
		key     string
		reason  Reason
		keyword string
	}{
		{"wall block", WallTable, Medium, "muros de block", KeyWallBlock, ReasonKeyword, "block"},
		{"wall bloque", WallTable, Luxury, "Bloque de concreto", KeyWallBlock, ReasonKeyword, "bloque"},
		{"wall thermal", WallTable, Medium, "thermal walls", KeyWallThermalBlock, ReasonKeyword, "thermal"},
		{"wall termico accent", WallTable, Luxury, "muro TÉRMICO", KeyWallThermalBlock, ReasonKeyword, "termico"},
		{"wall hebel", WallTable, Basic, "hebel", KeyWallThermalBlock, ReasonKeyword, "hebel"},
		{"wall basic tier", WallTable, Basic, "", KeyWallBlock, ReasonTier, ""},
		{"wall default", WallTable, Medium, "", KeyWallBrick, ReasonDefault, ""},
		{"wall block before thermal", WallTable, Medium, "thermal block", KeyWallBlock, ReasonKeyword, "block"},

		{"slab solid", SlabTable, Medium, "solid slab please", KeySlabSolid, ReasonKeyword, "solid slab"},
		{"slab losa maciza", SlabTable, Basic, "Losa Maciza", KeySlabSolid, ReasonKeyword, "losa maciza"},
		{"slab default", SlabTable, Luxury, "", KeySlabJoist, ReasonDefault, ""},

		{"floor marble", FloorTable, Basic, "marble", KeyFloorMarble, ReasonKeyword, "marble"},
		{"floor piedra", FloorTable, Medium, "piso de piedra", KeyFloorMarble, ReasonKeyword, "piedra"},
		{"floor laminate", FloorTable, Medium, "laminate floors", KeyFloorLaminate, ReasonKeyword, "laminate"},
		{"floor madera", FloorTable, Luxury, "madera", KeyFloorLaminate, ReasonKeyword, "madera"},
		{"floor luxury tier", FloorTable, Luxury, "", KeyFloorMarble, ReasonTier, ""},
		{"floor default", FloorTable, Medium, "", KeyFloorCeramic, ReasonDefault, ""},
		{"floor marble before laminate", FloorTable, Medium, "marble laminate", KeyFloorMarble, ReasonKeyword, "marble"},
		{"floor keyword before tier", FloorTable, Luxury, "laminado", KeyFloorLaminate, ReasonKeyword, "laminado"},

		{"plaster gypsum medium", PlasterTable, Medium, "gypsum", KeyPlasterGypsum, ReasonKeyword, "gypsum"},
		{"plaster yeso basic", PlasterTable, Basic, "acabado de yeso", KeyPlasterGypsum, ReasonKeyword, "yeso"},
		{"plaster luxury tier", PlasterTable, Luxury, "", KeyPlasterGypsum, ReasonTier, ""},
		{"plaster default", PlasterTable, Medium, "", KeyPlasterCement, ReasonDefault, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.table.Select(Request{Tier: tt.tier, Preferences: tt.prefs})
			if got.Key != tt.key {
				t.Errorf("Key = %s, want %s", got.Key, tt.key)
			}
			if got.Reason != tt.reason {
				t.Errorf("Reason = %s, want %s", got.Reason, tt.reason)
			}
			if got.Keyword != tt.keyword {
				t.Errorf("Keyword = %q, want %q", got.Keyword, tt.keyword)
			}
		})
	}
}

func TestFixedSelector(t *testing.T) {
	got := Fixed(KeyPaint).Select(Request{Tier: Luxury, Preferences: "marble"})
	if got.Key != KeyPaint || got.Reason != ReasonFixed {
		t.Errorf("Fixed.Select = %+v, want %s fixed", got, KeyPaint)
	}
}
