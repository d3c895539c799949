package intake

import (
	"testing"

	"github.com/theirongolddev/sienna/internal/estimate"

	"github.com/shopspring/decimal"
)

func TestParse_FullDescription(t *testing.T) {
	in := Parse("Casa residencial de 120 m2, acabados de lujo con piso de Mármol")

	if !in.AreaFound || !in.Area.Equal(decimal.NewFromInt(120)) {
		t.Errorf("Area = %s (found %v), want 120", in.Area, in.AreaFound)
	}
	if !in.TierFound || in.Tier != estimate.Luxury {
		t.Errorf("Tier = %q (found %v), want luxury", in.Tier, in.TierFound)
	}
	if in.Context != "residencial" {
		t.Errorf("Context = %q, want residencial", in.Context)
	}
	if len(in.Materials) != 1 || in.Materials[0] != "marmol" {
		t.Errorf("Materials = %v, want [marmol]", in.Materials)
	}
}

func TestParse_AreaFormats(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"85.5 m²", "85.5"},
		{"unos 200 metros cuadrados", "200"},
		{"64,25m2", "64.25"},
		{"300 sqm office", "300"},
	}
	for _, tt := range tests {
		in := Parse(tt.text)
		if !in.AreaFound || !in.Area.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("Parse(%q).Area = %s (found %v), want %s", tt.text, in.Area, in.AreaFound, tt.want)
		}
	}
}

func TestParse_Nothing(t *testing.T) {
	in := Parse("hola")
	if in.AreaFound || in.TierFound || in.Context != "" || len(in.Materials) != 0 {
		t.Errorf("Parse(hola) = %+v, want empty inference", in)
	}
	if in.Preferences != "hola" {
		t.Errorf("Preferences = %q, want hola", in.Preferences)
	}
}

func TestParse_PublicWorksContext(t *testing.T) {
	in := Parse("Licitación del gobierno estatal, nivel básico")
	if in.Context != "publica" {
		t.Errorf("Context = %q, want publica", in.Context)
	}
	if in.Tier != estimate.Basic {
		t.Errorf("Tier = %q, want basic", in.Tier)
	}
}

func TestInference_RequestFallbackTier(t *testing.T) {
	req := Parse("50 m2 con block").Request(estimate.Medium)
	if req.Tier != estimate.Medium {
		t.Errorf("Tier = %q, want medium", req.Tier)
	}
	if err := req.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
