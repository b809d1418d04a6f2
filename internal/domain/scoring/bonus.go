// Package scoring recomputes DMSt free and task scores from flight
// geometry and the handicap index, and compares them against the points
// reported by the API.
package scoring

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind identifies the shape of a contest score or declared task.
// The set is closed; anything else normalizes to KindUnknown.
type Kind string

// Known task kinds, including the short aliases the API emits.
const (
	KindTR          Kind = "TR"
	KindTriangle    Kind = "TRIANGLE"
	KindDeclaration Kind = "DECLARATION"
	KindOR          Kind = "OR"
	KindOutReturn   Kind = "OUT_RETURN"
	KindGL          Kind = "GL"
	KindOut         Kind = "OUT"
	KindGoal        Kind = "GOAL"
	KindRT          Kind = "RT"
	KindRectangle   Kind = "RECTANGLE"
	KindMTR         Kind = "MTR"
	KindFR          Kind = "FR"
	KindFR4         Kind = "FR4"
	KindSP          Kind = "SP"
	KindSpeed       Kind = "SPEED"
	KindUnknown     Kind = ""
)

// KindOf normalizes a raw kind tag case-insensitively. Empty or
// unrecognized tags map to KindUnknown, never an error.
func KindOf(s string) Kind {
	switch k := Kind(strings.ToUpper(strings.TrimSpace(s))); k {
	case KindTR, KindTriangle, KindDeclaration, KindOR, KindOutReturn,
		KindGL, KindOut, KindGoal, KindRT, KindRectangle, KindMTR,
		KindFR, KindFR4, KindSP, KindSpeed:
		return k
	default:
		return KindUnknown
	}
}

// BonusTable maps a task kind to its DMSt shape bonus fraction.
type BonusTable map[Kind]decimal.Decimal

// DefaultBonusTable returns the DMSt shape bonuses by contest/task kind.
func DefaultBonusTable() BonusTable {
	return BonusTable{
		KindTR:          decimal.RequireFromString("0.40"),
		KindTriangle:    decimal.RequireFromString("0.40"),
		KindDeclaration: decimal.RequireFromString("0.30"),
		KindOR:          decimal.RequireFromString("0.30"),
		KindOutReturn:   decimal.RequireFromString("0.30"),
		KindGL:          decimal.RequireFromString("0.30"),
		KindOut:         decimal.RequireFromString("0.30"),
		KindGoal:        decimal.RequireFromString("0.30"),
		KindRT:          decimal.RequireFromString("0.40"),
		KindRectangle:   decimal.RequireFromString("0.40"),
		KindMTR:         decimal.RequireFromString("0.20"),
		KindFR:          decimal.Zero,
		KindFR4:         decimal.Zero,
		KindSP:          decimal.Zero,
		KindSpeed:       decimal.Zero,
	}
}

// Bonus looks up the fraction for a raw kind tag, case-insensitively.
// Unknown or absent kinds get zero bonus.
func (t BonusTable) Bonus(kind string) decimal.Decimal {
	if b, ok := t[KindOf(kind)]; ok {
		return b
	}
	return decimal.Zero
}

// Override replaces table entries from a kind -> decimal-string map.
// Unknown kind tags and unparseable values are rejected.
func (t BonusTable) Override(entries map[string]string) error {
	for kind, val := range entries {
		k := KindOf(kind)
		if k == KindUnknown {
			return fmt.Errorf("unknown task kind %q", kind)
		}
		b, err := decimal.NewFromString(val)
		if err != nil {
			return fmt.Errorf("bonus for %q: %w", kind, err)
		}
		t[k] = b
	}
	return nil
}
