package estimate

import (
	"github.com/shopspring/decimal"
)

// Category is a top-level budget heading.
type Category string

// Budget categories, in report order.
const (
	Preliminaries Category = "Preliminaries"
	Foundation    Category = "Foundation"
	Structure     Category = "Structure"
	Finishes      Category = "Finishes"
	Installations Category = "Installations"
)

// Categories lists every category in report order.
var Categories = []Category{Preliminaries, Foundation, Structure, Finishes, Installations}

// Label returns the Spanish heading used in exported budgets.
func (c Category) Label() string {
	switch c {
	case Preliminaries:
		return "Preliminares"
	case Foundation:
		return "Cimentación"
	case Structure:
		return "Estructura"
	case Finishes:
		return "Acabados"
	case Installations:
		return "Instalaciones"
	default:
		return string(c)
	}
}

// Catalog keys referenced by the default rules.
const (
	KeySiteClearing       = "UEC.ED.10.100.1010"
	KeyLayout             = "UEC.ED.12.100.1010"
	KeyExcavation         = "UEC.ED.12.105.1010"
	KeyLeanConcrete       = "UEC.ED.16.100.1010.1"
	KeyFoundationConcrete = "UEC.ED.16.115.1005.1"
	KeyWallBrick          = "UEC.ED.30.135.1050"
	KeyWallBlock          = "UEC.ED.30.150.1010.1"
	KeyWallThermalBlock   = "UEC.ED.30.150.1010.2"
	KeySlabJoist          = "UEC.ED.20.135.1010.1"
	KeySlabSolid          = "UEC.ED.20.135.1010.2"
	KeyPlasterCement      = "UEC.ED.30.205.1110"
	KeyPlasterGypsum      = "UEC.ED.30.205.1120"
	KeyFloorCeramic       = "UEC.ED.78.110.1010"
	KeyFloorMarble        = "UEC.ED.78.110.1020"
	KeyFloorLaminate      = "UEC.ED.78.110.1030"
	KeyPaint              = "UEC.ED.78.145.1010"
	KeyHydraulicOutlet    = "UEC.ED.38.100.1010"
	KeyElectricalOutlet   = "UEC.ED.46.102.1010"
	KeySidewalk           = "UEC.UB.10.105.1005.1"
)

// QuantityFunc computes a rule quantity from the built area.
type QuantityFunc func(area decimal.Decimal) decimal.Decimal

// PerArea is a take-off ratio: coef units per square meter of built area.
func PerArea(coef string) QuantityFunc {
	c := decimal.RequireFromString(coef)
	return func(area decimal.Decimal) decimal.Decimal {
		return area.Mul(c)
	}
}

// OnePer counts whole units, one per every started `every` square meters.
func OnePer(every int64) QuantityFunc {
	d := decimal.NewFromInt(every)
	return func(area decimal.Decimal) decimal.Decimal {
		return area.Div(d).Ceil()
	}
}

// Rule is one assembly: a catalog key selector and a quantity take-off.
type Rule struct {
	Category    Category
	Subcategory string
	Key         Selector
	Quantity    QuantityFunc
}

// Decision tables for the assemblies whose material depends on preferences.
var (
	WallTable = Table{
		Options: []Option{
			{When: Keywords("block", "bloque"), Key: KeyWallBlock},
			{When: Keywords("thermal", "termico", "termoaislante", "hebel"), Key: KeyWallThermalBlock},
			{When: TierIs(Basic), Key: KeyWallBlock},
		},
		Default: KeyWallBrick,
	}

	SlabTable = Table{
		Options: []Option{
			{When: Keywords("solid slab", "solid concrete", "losa maciza", "maciza"), Key: KeySlabSolid},
		},
		Default: KeySlabJoist,
	}

	FloorTable = Table{
		Options: []Option{
			{When: Keywords("marble", "marmol", "stone", "piedra", "travertin"), Key: KeyFloorMarble},
			{When: Keywords("laminate", "laminado", "engineered", "wood", "madera"), Key: KeyFloorLaminate},
			{When: TierIs(Luxury), Key: KeyFloorMarble},
		},
		Default: KeyFloorCeramic,
	}

	PlasterTable = Table{
		Options: []Option{
			{When: AnyOf(Keywords("gypsum", "yeso", "plaster finish"), TierIs(Luxury)), Key: KeyPlasterGypsum},
		},
		Default: KeyPlasterCement,
	}
)

// DefaultRules returns the assembly rules in evaluation order. The ratios
// are quantity take-off approximations per square meter of built area.
func DefaultRules() []Rule {
	return []Rule{
		{Preliminaries, "Site clearing", Fixed(KeySiteClearing), PerArea("1.0")},
		{Preliminaries, "Layout and leveling", Fixed(KeyLayout), PerArea("1.0")},

		{Foundation, "Excavation", Fixed(KeyExcavation), PerArea("0.4")},
		{Foundation, "Lean concrete base", Fixed(KeyLeanConcrete), PerArea("0.25")},
		{Foundation, "Foundation concrete", Fixed(KeyFoundationConcrete), PerArea("0.1")},

		{Structure, "Walls", WallTable, PerArea("2.2")},
		{Structure, "Slabs", SlabTable, PerArea("1.0")},

		// Plaster and paint cover the wall surface (2.2) plus the ceiling (1.0).
		{Finishes, "Wall plaster", PlasterTable, PerArea("3.2")},
		{Finishes, "Paint", Fixed(KeyPaint), PerArea("3.2")},
		{Finishes, "Flooring", FloorTable, PerArea("1.0")},
		{Finishes, "Exterior works", Fixed(KeySidewalk), PerArea("0.1")},

		{Installations, "Hydraulic", Fixed(KeyHydraulicOutlet), OnePer(10)},
		{Installations, "Electrical", Fixed(KeyElectricalOutlet), OnePer(3)},
	}
}
