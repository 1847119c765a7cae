package engine

import (
	sig "github.com/Jemujilmo/Gamma-Goblin/internal/signal"
)

// qualify applies the quality gate and returns the emit-eligible side, if
// any. Buy takes precedence when both sides somehow qualify, matching the
// evaluation order of the condition set.
func (e *Engine) qualify(c sig.Candidate) (sig.Side, bool) {
	if e.eligible(c, sig.Buy) {
		return sig.Buy, true
	}
	if e.eligible(c, sig.Sell) {
		return sig.Sell, true
	}
	return "", false
}

// eligible is the absolute/relative threshold test. A momentum override
// qualifies its side without the minimum-score and margin tests, but never
// resurrects a hard-vetoed side.
func (e *Engine) eligible(c sig.Candidate, side sig.Side) bool {
	if c.Vetoed(side) {
		return false
	}
	if c.Override(side) {
		return true
	}
	s := c.Side(side).Score
	return s >= e.scoring.MinScore && c.Margin(side) >= e.scoring.ScoreMargin
}
