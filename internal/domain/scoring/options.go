package scoring

import "github.com/shopspring/decimal"

// Option applies a configuration option to the Verifier.
type Option func(*Verifier)

// WithBonusTable replaces the shape bonus table.
func WithBonusTable(table BonusTable) Option {
	return func(v *Verifier) {
		if table != nil {
			v.bonuses = table
		}
	}
}

// WithAchievedBonus sets the bonus fraction awarded for an achieved
// declared task.
func WithAchievedBonus(bonus decimal.Decimal) Option {
	return func(v *Verifier) {
		if !bonus.IsNegative() {
			v.achievedBonus = bonus
		}
	}
}
