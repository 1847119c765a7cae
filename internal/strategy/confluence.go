package strategy

import (
	"github.com/Jemujilmo/Gamma-Goblin/internal/config"
	"github.com/Jemujilmo/Gamma-Goblin/internal/market"
	sig "github.com/Jemujilmo/Gamma-Goblin/internal/signal"
)

// Point weights for the mirrored condition set; fully satisfied sides sum to 100.
var conditionWeights = map[string]float64{
	sig.CondStructuralTrend: 15,
	sig.CondExecutionTrend:  15,
	sig.CondEntryPullback:   10,
	sig.CondRSIMomentum:     15,
	sig.CondMACDShift:       15,
	sig.CondVolume:          10,
	sig.CondStructuralMACD:  10,
	sig.CondGamma:           10,
}

const (
	// Entry-timeframe proximity bands for the pullback/rejection condition,
	// in percent of the reference level.
	pullbackVWAPPct = 0.3
	pullbackEMAPct  = 0.2

	// rsiDriftTolerance allows the entry RSI to trail the execution RSI by a
	// few points and still count as rising (falling, mirrored).
	rsiDriftTolerance = 5

	// macdAccelFactor marks a histogram bar growing 1.5x in its own
	// territory as a momentum override even without a zero-line cross.
	macdAccelFactor = 1.5
)

// Confluence is the multi-timeframe scorer: eight mirrored weighted
// conditions, momentum overrides on crossovers, and a circuit breaker applied
// before the pair is handed to the gate.
type Confluence struct {
	cfg     config.Scoring
	gamma   GammaScorer
	breaker Breaker
}

// NewConfluence builds the scorer from the scoring thresholds and gamma weights.
func NewConfluence(scoring config.Scoring, gamma config.Gamma) *Confluence {
	return &Confluence{
		cfg:     scoring,
		gamma:   NewGammaScorer(gamma),
		breaker: NewBreaker(scoring),
	}
}

func (s *Confluence) Name() string { return "Confluence" }

// Evaluate scores one aligned view for both sides.
func (s *Confluence) Evaluate(v market.View) sig.Candidate {
	bar := v.Bar()
	entry := v.EntrySeries()
	structural := v.StructuralSeries()
	entryBar := market.Last(entry)
	structBar := market.Last(structural)
	prevBar, hasPrev := market.Prev(v.Execution)
	prevEntry, hasPrevEntry := market.Prev(entry)

	gamma := s.gamma.Score(v.Execution)

	var buy, sell []string
	mark := func(list *[]string, id string) { *list = append(*list, id) }

	// 1. Structural-timeframe trend alignment.
	if structBar.Close > structBar.VWAP {
		mark(&buy, sig.CondStructuralTrend)
	} else if structBar.Close < structBar.VWAP {
		mark(&sell, sig.CondStructuralTrend)
	}

	// 2. Execution-timeframe trend alignment.
	if bar.Close > bar.VWAP {
		mark(&buy, sig.CondExecutionTrend)
	} else if bar.Close < bar.VWAP {
		mark(&sell, sig.CondExecutionTrend)
	}

	// 3. Entry pullback (buy) / failed reclaim (sell): price holding within a
	// tight band on its side of VWAP or the fast EMA.
	if within(entryBar.Close, entryBar.VWAP, pullbackVWAPPct) || within(entryBar.Close, bar.EMAFast, pullbackEMAPct) {
		mark(&buy, sig.CondEntryPullback)
	} else if within(entryBar.VWAP, entryBar.Close, pullbackVWAPPct) || within(bar.EMAFast, entryBar.Close, pullbackEMAPct) {
		mark(&sell, sig.CondEntryPullback)
	}

	// 4. RSI momentum regime: inside the band and moving with the trade.
	if entryBar.RSI >= s.cfg.RSIBuyLow && entryBar.RSI <= s.cfg.RSIBuyHigh && entryBar.RSI > bar.RSI-rsiDriftTolerance {
		mark(&buy, sig.CondRSIMomentum)
	}
	if entryBar.RSI >= s.cfg.RSISellLow && entryBar.RSI <= s.cfg.RSISellHigh && entryBar.RSI < bar.RSI+rsiDriftTolerance {
		mark(&sell, sig.CondRSIMomentum)
	}

	// 5. Entry-timeframe MACD histogram shift.
	if hasPrevEntry {
		if entryBar.MACDHist > prevEntry.MACDHist && entryBar.MACDHist > 0 {
			mark(&buy, sig.CondMACDShift)
		} else if entryBar.MACDHist < prevEntry.MACDHist && entryBar.MACDHist < 0 {
			mark(&sell, sig.CondMACDShift)
		}
	}

	// 6. Volume confirmation backs either side.
	if entryBar.AvgVolume > 0 && entryBar.Volume >= s.cfg.VolumeThreshold*entryBar.AvgVolume {
		mark(&buy, sig.CondVolume)
		mark(&sell, sig.CondVolume)
	}

	// 7. Structural MACD polarity agreement.
	if structBar.MACDHist > 0 {
		mark(&buy, sig.CondStructuralMACD)
	} else if structBar.MACDHist < 0 {
		mark(&sell, sig.CondStructuralMACD)
	}

	// 8. Elevated conviction backs either side.
	if float64(gamma) >= s.cfg.GammaElevated {
		mark(&buy, sig.CondGamma)
		mark(&sell, sig.CondGamma)
	}

	overrideBuy, overrideSell := s.overrides(bar, prevBar, hasPrev)

	raw := sig.ScorePair{
		Buy:  sig.SideScore{Score: weigh(buy), Conditions: buy},
		Sell: sig.SideScore{Score: weigh(sell), Conditions: sell},
	}

	verdict := s.breaker.Assess(bar, overrideBuy, overrideSell)
	return sig.Candidate{
		ScorePair:    Apply(raw, verdict),
		Gamma:        gamma,
		OverrideBuy:  overrideBuy,
		OverrideSell: overrideSell,
		VetoBuy:      verdict.VetoBuy,
		VetoSell:     verdict.VetoSell,
	}
}

// overrides detects the momentum events that qualify a side regardless of
// point total: an EMA crossover confirmed by MACD and VWAP, a MACD zero-line
// cross, or a histogram bar accelerating in its own territory.
func (s *Confluence) overrides(bar, prev market.Bar, hasPrev bool) (overrideBuy, overrideSell bool) {
	if !hasPrev {
		return false, false
	}

	goldenCross := prev.EMAFast <= prev.EMASlow && bar.EMAFast > bar.EMASlow
	deathCross := prev.EMAFast >= prev.EMASlow && bar.EMAFast < bar.EMASlow

	if goldenCross && bar.MACDHist > 0 && bar.Close > bar.VWAP {
		overrideBuy = true
	}
	if deathCross && bar.MACDHist < 0 && bar.Close < bar.VWAP {
		overrideSell = true
	}

	if prev.MACDHist < 0 && bar.MACDHist > 0 {
		overrideBuy = true
	} else if prev.MACDHist > 0 && bar.MACDHist > prev.MACDHist*macdAccelFactor {
		overrideBuy = true
	}
	if prev.MACDHist > 0 && bar.MACDHist < 0 {
		overrideSell = true
	} else if prev.MACDHist < 0 && bar.MACDHist < prev.MACDHist*macdAccelFactor {
		overrideSell = true
	}
	return overrideBuy, overrideSell
}

// within reports whether value sits at most pct percent above the reference.
func within(value, reference, pct float64) bool {
	if reference <= 0 {
		return false
	}
	dist := (value - reference) / reference * 100
	return dist > 0 && dist < pct
}

func weigh(conditions []string) float64 {
	var total float64
	for _, id := range conditions {
		total += conditionWeights[id]
	}
	return total
}
