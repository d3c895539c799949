package estimate

import (
	"github.com/theirongolddev/sienna/internal/textmatch"
)

// Reason records how a rule arrived at its catalog key.
type Reason string

// Selection reasons.
const (
	ReasonFixed   Reason = "fixed"   // rule always uses one key
	ReasonKeyword Reason = "keyword" // preference text matched a material keyword
	ReasonTier    Reason = "tier"    // finish tier fallback
	ReasonDefault Reason = "default" // nothing matched
)

// Choice is the tagged result of evaluating a Selector.
type Choice struct {
	Key     string `json:"key"`
	Reason  Reason `json:"reason"`
	Keyword string `json:"keyword,omitempty"` // set for ReasonKeyword
}

// Selector picks the catalog key for one assembly.
type Selector interface {
	Select(req Request) Choice
}

// Fixed is a Selector that always returns the same key.
type Fixed string

// Select implements Selector.
func (f Fixed) Select(Request) Choice {
	return Choice{Key: string(f), Reason: ReasonFixed}
}

// Predicate tests a request. On a match it returns the reason and, for
// keyword tests, the keyword that hit.
type Predicate func(req Request) (Reason, string, bool)

// Keywords matches when the preference text contains any keyword. Earlier
// keywords are reported first.
func Keywords(keywords ...string) Predicate {
	return func(req Request) (Reason, string, bool) {
		kw, ok := textmatch.FirstMatch(req.Preferences, keywords...)
		return ReasonKeyword, kw, ok
	}
}

// TierIs matches when the request tier is one of tiers.
func TierIs(tiers ...Tier) Predicate {
	return func(req Request) (Reason, string, bool) {
		for _, t := range tiers {
			if req.Tier == t {
				return ReasonTier, "", true
			}
		}
		return ReasonTier, "", false
	}
}

// AnyOf matches when any predicate does; the first hit supplies the reason.
func AnyOf(preds ...Predicate) Predicate {
	return func(req Request) (Reason, string, bool) {
		for _, p := range preds {
			if reason, kw, ok := p(req); ok {
				return reason, kw, true
			}
		}
		return "", "", false
	}
}

// Option is one row of a decision table.
type Option struct {
	When Predicate
	Key  string
}

// Table is an ordered decision table with a default key. Rows are evaluated
// top to bottom and the first match wins.
type Table struct {
	Options []Option
	Default string
}

// Select implements Selector.
func (t Table) Select(req Request) Choice {
	for _, opt := range t.Options {
		if reason, kw, ok := opt.When(req); ok {
			return Choice{Key: opt.Key, Reason: reason, Keyword: kw}
		}
	}
	return Choice{Key: t.Default, Reason: ReasonDefault}
}
