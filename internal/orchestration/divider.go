package orchestration

import "github.com/agbru/infinite/internal/bigint"

// Divider computes a quotient in one particular way.
type Divider interface {
	Name() string
	Divide(x, y bigint.Int) bigint.Quotient
}

// StrategyDivider divides with a fixed bigint strategy.
type StrategyDivider struct {
	Strategy bigint.Strategy
}

// Name returns the strategy name.
func (d StrategyDivider) Name() string { return d.Strategy.String() }

// Divide returns x ÷ y computed with the strategy.
func (d StrategyDivider) Divide(x, y bigint.Int) bigint.Quotient { return x.DivideWith(y, d.Strategy) }

// DividersFor wraps each strategy in a StrategyDivider. An empty list selects
// every concrete strategy.
func DividersFor(strategies []bigint.Strategy) []Divider {
	if len(strategies) == 0 {
		strategies = bigint.Strategies
	}
	dividers := make([]Divider, len(strategies))
	for i, s := range strategies {
		dividers[i] = StrategyDivider{Strategy: s}
	}
	return dividers
}
