// Package signal standardizes the records shared between the scoring, gating,
// and backtesting layers.
package signal

import (
	"fmt"
	"time"
)

// Side enumerates signal directions.
type Side string

const (
	// Buy indicates a long bias signal.
	Buy Side = "BUY"
	// Sell indicates a short bias signal.
	Sell Side = "SELL"
)

// Opposite returns the mirrored side.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// Identifiers for the mirrored condition set. Emitted labels count these.
const (
	CondStructuralTrend = "structural_trend"
	CondExecutionTrend  = "execution_trend"
	CondEntryPullback   = "entry_pullback"
	CondRSIMomentum     = "rsi_momentum"
	CondMACDShift       = "macd_shift"
	CondVolume          = "volume"
	CondStructuralMACD  = "structural_macd"
	CondGamma           = "gamma"

	// Identifiers used by the bias classifier strategy.
	CondEMATrend  = "ema_trend"
	CondRSIRegime = "rsi_regime"
)

// NumConditions is the size of the mirrored condition set per side.
const NumConditions = 8

// SideScore holds one side's clamped score and its satisfied conditions.
type SideScore struct {
	Score      float64  `json:"score"`
	Conditions []string `json:"conditions"`
}

// ScorePair carries both directional scores for a bar.
type ScorePair struct {
	Buy  SideScore `json:"buy"`
	Sell SideScore `json:"sell"`
}

// Side returns the score for the requested direction.
func (p ScorePair) Side(s Side) SideScore {
	if s == Buy {
		return p.Buy
	}
	return p.Sell
}

// Margin returns the requested side's score minus its opposite.
func (p ScorePair) Margin(s Side) float64 {
	return p.Side(s).Score - p.Side(s.Opposite()).Score
}

// Candidate is a strategy's raw verdict for one bar, before gating and
// cooldown. Veto flags survive so the gate can distinguish a hard-zeroed side
// from a side that merely scored zero.
type Candidate struct {
	ScorePair
	Gamma        int
	OverrideBuy  bool
	OverrideSell bool
	VetoBuy      bool
	VetoSell     bool
}

// Override reports whether a momentum override is active for the side.
func (c Candidate) Override(s Side) bool {
	if s == Buy {
		return c.OverrideBuy
	}
	return c.OverrideSell
}

// Vetoed reports whether the side was hard-zeroed by the circuit breaker.
func (c Candidate) Vetoed(s Side) bool {
	if s == Buy {
		return c.VetoBuy
	}
	return c.VetoSell
}

// Signal is the immutable emitted record. Created only by the engine's
// emitter; serialized as-is at the system boundary.
type Signal struct {
	Ticker        string    `json:"ticker"`
	Timeframe     string    `json:"timeframe"`
	Ts            time.Time `json:"timestamp"`
	Side          Side      `json:"side"`
	Price         float64   `json:"price"`
	Score         float64   `json:"score"`
	Margin        float64   `json:"margin"`
	Conditions    []string  `json:"conditions"`
	ConditionsMet int       `json:"conditions_met"`
	Gamma         int       `json:"gamma"`
	Override      bool      `json:"override,omitempty"`
	Regime        string    `json:"volatility_regime,omitempty"`
	Label         string    `json:"label"`
}

// Label renders the display string attached to an emitted signal.
func Label(side Side, met, gamma int) string {
	return fmt.Sprintf("%s (%d/%d conditions) [γ=%d]", side, met, NumConditions, gamma)
}
