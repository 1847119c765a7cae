package strategy

import (
	"math"

	"github.com/Jemujilmo/Gamma-Goblin/internal/config"
	"github.com/Jemujilmo/Gamma-Goblin/internal/market"
	sig "github.com/Jemujilmo/Gamma-Goblin/internal/signal"
)

// Verdict carries the penalty deltas and hard vetoes a breaker applies to a
// raw score pair before the quality gate sees it.
type Verdict struct {
	PenaltyBuy  float64
	PenaltySell float64
	VetoBuy     bool
	VetoSell    bool
}

// Breaker holds the circuit-breaker thresholds. It runs after raw scoring:
// penalties reduce, vetoes hard-zero; neither can ever raise a score.
type Breaker struct {
	cfg config.Scoring
}

// NewBreaker builds a breaker from the scoring thresholds.
func NewBreaker(cfg config.Scoring) Breaker {
	return Breaker{cfg: cfg}
}

// Assess inspects the execution bar. Momentum overrides lift only the
// extreme-RSI guard; the trend-alignment and breakout-extremity vetoes apply
// to overrides too.
func (b Breaker) Assess(bar market.Bar, overrideBuy, overrideSell bool) Verdict {
	var v Verdict

	// Indecisive tape: flat MACD histogram penalizes both sides.
	if math.Abs(bar.MACDHist) < b.cfg.MACDMinHistogram {
		v.PenaltyBuy += b.cfg.WeakMomentumPenalty
		v.PenaltySell += b.cfg.WeakMomentumPenalty
	}

	// Breakout extremity: no buying into a fading recent high, no selling
	// into a fading recent low. A close already past the level counts as at
	// the level, so a stalling breakout bar is vetoed too.
	if bar.RangeHigh > 0 {
		distFromHigh := (bar.RangeHigh - bar.Close) / bar.Close * 100
		if distFromHigh < b.cfg.ResistanceProximity && bar.MACDHist < b.cfg.MACDWeakness {
			v.VetoBuy = true
		}
	}
	if bar.RangeLow > 0 {
		distFromLow := (bar.Close - bar.RangeLow) / bar.Close * 100
		if distFromLow < b.cfg.ResistanceProximity && bar.MACDHist > -b.cfg.MACDWeakness {
			v.VetoSell = true
		}
	}

	// Extreme RSI guard, lifted by an active override for that side.
	if bar.RSI > b.cfg.RSIOverbought && !overrideBuy {
		v.VetoBuy = true
	}
	if bar.RSI < b.cfg.RSIOversold && !overrideSell {
		v.VetoSell = true
	}

	// Mandatory trend alignment: a side against VWAP is hard-zeroed.
	if bar.Close <= bar.VWAP {
		v.VetoBuy = true
	}
	if bar.Close >= bar.VWAP {
		v.VetoSell = true
	}

	return v
}

// Apply folds a verdict into a raw pair, clamping each side to [0,100].
func Apply(raw sig.ScorePair, v Verdict) sig.ScorePair {
	raw.Buy.Score = clampScore(raw.Buy.Score - v.PenaltyBuy)
	raw.Sell.Score = clampScore(raw.Sell.Score - v.PenaltySell)
	if v.VetoBuy {
		raw.Buy.Score = 0
	}
	if v.VetoSell {
		raw.Sell.Score = 0
	}
	return raw
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
