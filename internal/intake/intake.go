// Package intake infers an estimate request and project context from a free
// text project description.
package intake

import (
	"regexp"
	"strings"

	"github.com/theirongolddev/sienna/internal/estimate"
	"github.com/theirongolddev/sienna/internal/textmatch"

	"github.com/shopspring/decimal"
)

var areaPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:m2|m²|mts2|mt2|metros|sqm)`)

// Inference is what could be read out of a description. Fields that were
// not found keep their zero value and the matching Found flag is false.
type Inference struct {
	Area      decimal.Decimal `json:"area"`
	AreaFound bool            `json:"area_found"`

	Tier      estimate.Tier `json:"tier"`
	TierFound bool          `json:"tier_found"`

	// Context is the project type keyword, e.g. "residencial".
	Context string `json:"context,omitempty"`

	Materials   []string `json:"materials,omitempty"`
	Preferences string   `json:"preferences,omitempty"`
}

// Request builds an estimate request, using fallback for a missing tier.
func (in Inference) Request(fallback estimate.Tier) estimate.Request {
	tier := fallback
	if in.TierFound {
		tier = in.Tier
	}
	return estimate.Request{Area: in.Area, Tier: tier, Preferences: in.Preferences}
}

type keywordGroup[T any] struct {
	value    T
	keywords []string
}

var tierGroups = []keywordGroup[estimate.Tier]{
	{estimate.Luxury, []string{"lujo", "luxury", "premium", "alta gama", "residencial plus"}},
	{estimate.Basic, []string{"basico", "basic", "economico", "interes social", "austero"}},
	{estimate.Medium, []string{"medio", "medium", "estandar", "standard"}},
}

var contextGroups = []keywordGroup[string]{
	{"publica", []string{"obra publica", "publica", "gobierno", "licitacion", "municipio"}},
	{"remodelacion", []string{"remodelacion", "remodelar", "renovacion"}},
	{"interior", []string{"interior", "interiorismo"}},
	{"comercial", []string{"comercial", "local", "tienda", "restaurante"}},
	{"oficina", []string{"oficina", "corporativo"}},
	{"residencial", []string{"residencial", "casa", "vivienda", "departamento"}},
}

var materialKeywords = []string{
	"marmol", "marble", "piedra", "travertino",
	"laminado", "madera", "wood",
	"block", "bloque", "tabique", "ladrillo", "hebel", "termico",
	"losa maciza", "yeso", "gypsum", "ceramica",
}

// Parse reads area, finish tier, project context and material mentions out
// of text. It never fails; unknown text yields an empty Inference.
func Parse(text string) Inference {
	text = strings.TrimSpace(text)
	folded := textmatch.Fold(text)
	in := Inference{Preferences: text}

	if m := areaPattern.FindStringSubmatch(folded); m != nil {
		if area, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ".")); err == nil {
			in.Area, in.AreaFound = area, true
		}
	}

	for _, g := range tierGroups {
		if textmatch.ContainsAny(folded, g.keywords...) {
			in.Tier, in.TierFound = g.value, true
			break
		}
	}

	for _, g := range contextGroups {
		if textmatch.ContainsAny(folded, g.keywords...) {
			in.Context = g.value
			break
		}
	}

	for _, kw := range materialKeywords {
		if strings.Contains(folded, kw) {
			in.Materials = append(in.Materials, kw)
		}
	}
	return in
}
