package scoring

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/ryanwoodie/dmst-verify/internal/domain/model"
)

// Contest names the recomputation reads from a flight record.
const (
	// auContest carries the DMSt-relevant geometry and points.
	auContest = "au"
	// declarationContest carries the API's points for the declared task.
	declarationContest = "declaration"
)

// Provenance notes for the task score.
const (
	// NoteActual marks a task score recomputed from the declared task record.
	NoteActual = "actual"
	// NoteFromAUDistance marks a task score recomputed from the au contest
	// distance because no task record was present.
	NoteFromAUDistance = "from au distance"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Comparison holds the recomputed and reported scores for one flight.
// A nil expected or actual value means "not applicable / not reported";
// comparisons with a nil side match vacuously.
type Comparison struct {
	FlightID     int64
	Index        int
	FreeExpected *decimal.Decimal
	FreeActual   *decimal.Decimal
	TaskExpected *decimal.Decimal
	TaskActual   *decimal.Decimal
	TaskNote     string
}

// FreeMatches reports whether the free scores agree within tol.
func (c Comparison) FreeMatches(tol decimal.Decimal) bool {
	return withinTolerance(c.FreeExpected, c.FreeActual, tol)
}

// TaskMatches reports whether the task scores agree within tol.
func (c Comparison) TaskMatches(tol decimal.Decimal) bool {
	return withinTolerance(c.TaskExpected, c.TaskActual, tol)
}

// withinTolerance compares by absolute difference. A difference exactly
// equal to tol still matches.
func withinTolerance(expected, actual *decimal.Decimal, tol decimal.Decimal) bool {
	if expected == nil || actual == nil {
		return true
	}
	return expected.Sub(*actual).Abs().LessThanOrEqual(tol)
}

// Verifier recomputes DMSt scores for flight records.
type Verifier struct {
	bonuses       BonusTable
	achievedBonus decimal.Decimal
}

// NewVerifier creates a verifier with the default DMSt rule set.
func NewVerifier(opts ...Option) *Verifier {
	v := &Verifier{
		bonuses:       DefaultBonusTable(),
		achievedBonus: decimal.RequireFromString("0.30"),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify recomputes the free and task scores for one record and pairs
// them with the points the API reported. ok is false when the record is
// out of scope for the check: no or zero handicap index, or no au
// contest entry. Skipped records never reach the reporter.
func (v *Verifier) Verify(rec *model.FlightRecord) (Comparison, bool) {
	if rec.DMStIndex == 0 {
		return Comparison{}, false
	}
	au := rec.ContestNamed(auContest)
	if au == nil {
		return Comparison{}, false
	}
	factor := decimal.NewFromInt(int64(rec.DMStIndex)).Div(hundred)

	cmp := Comparison{FlightID: rec.ID, Index: rec.DMStIndex}

	if au.Score != nil {
		if dist, ok := nonzero(au.Score.Distance); ok {
			free := dist.Mul(one.Add(v.bonuses.Bonus(au.Score.Name))).Div(factor)
			cmp.FreeExpected = &free
		}
	}
	if pts, ok := number(au.Points); ok {
		cmp.FreeActual = &pts
	}

	// Task score: ordered rules, first applicable wins, then the
	// declared-false override.
	for _, rule := range taskRules {
		if expected, note, ok := rule(v, rec, au, factor); ok {
			cmp.TaskExpected = &expected
			cmp.TaskNote = note
			break
		}
	}
	// Declared-false override: an explicit declared=false on the au score
	// invalidates any task score once a free score exists, even when task
	// data is present. This outranks both rules above.
	if au.Score.DeclaredFalse() && cmp.FreeExpected != nil {
		cmp.TaskExpected = nil
		cmp.TaskNote = ""
	}

	if decl := rec.ContestNamed(declarationContest); decl != nil {
		if pts, ok := number(decl.Points); ok {
			cmp.TaskActual = &pts
		}
	}

	return cmp, true
}

// taskRule produces a candidate task score; ok is false when the rule
// does not apply to the record.
type taskRule func(v *Verifier, rec *model.FlightRecord, au *model.Contest, factor decimal.Decimal) (expected decimal.Decimal, note string, ok bool)

// taskRules are evaluated in order; declaredTaskRule outranks
// declaredDistanceRule.
var taskRules = []taskRule{declaredTaskRule, declaredDistanceRule}

// declaredTaskRule scores the declared task record when one exists with a
// nonzero distance. The achieved bonus applies only when the flight
// actually achieved the task.
func declaredTaskRule(v *Verifier, rec *model.FlightRecord, _ *model.Contest, factor decimal.Decimal) (decimal.Decimal, string, bool) {
	if rec.Task == nil {
		return decimal.Decimal{}, "", false
	}
	dist, ok := nonzero(rec.Task.Distance)
	if !ok {
		return decimal.Decimal{}, "", false
	}
	multiplier := one.Add(v.bonuses.Bonus(rec.Task.Kind))
	if rec.Achieved() {
		multiplier = multiplier.Add(v.achievedBonus)
	}
	return dist.Mul(multiplier).Div(factor), NoteActual, true
}

// declaredDistanceRule falls back to the au contest distance when no task
// record exists but the au score is marked declared. A declaration in
// this rule set implies achievement, so the achieved bonus always applies.
func declaredDistanceRule(v *Verifier, _ *model.FlightRecord, au *model.Contest, factor decimal.Decimal) (decimal.Decimal, string, bool) {
	if !au.Score.DeclaredTrue() {
		return decimal.Decimal{}, "", false
	}
	dist, ok := nonzero(au.Score.Distance)
	if !ok {
		return decimal.Decimal{}, "", false
	}
	multiplier := one.Add(v.bonuses.Bonus(au.Score.Name)).Add(v.achievedBonus)
	return dist.Mul(multiplier).Div(factor), NoteFromAUDistance, true
}

// number converts a raw JSON number to a decimal. ok is false when the
// field was absent or unparseable.
func number(n json.Number) (decimal.Decimal, bool) {
	if n == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// nonzero is number restricted to nonzero values. Distances of zero are
// treated as absent, mirroring the API's use of 0 for "no geometry".
func nonzero(n json.Number) (decimal.Decimal, bool) {
	d, ok := number(n)
	if !ok || d.IsZero() {
		return decimal.Decimal{}, false
	}
	return d, true
}
