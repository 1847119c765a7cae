package strategy

import (
	"testing"

	"github.com/Jemujilmo/Gamma-Goblin/internal/config"
	sig "github.com/Jemujilmo/Gamma-Goblin/internal/signal"
)

func newBreaker() Breaker {
	return NewBreaker(config.Default().Scoring)
}

func TestBreakerWeakMomentumPenalizesBothSides(t *testing.T) {
	bar := testBar(35)
	bar.MACDHist = 0.10

	v := newBreaker().Assess(bar, false, false)
	if v.PenaltyBuy != 30 || v.PenaltySell != 30 {
		t.Fatalf("penalties = %.1f/%.1f, want 30/30", v.PenaltyBuy, v.PenaltySell)
	}
}

func TestBreakerBreakoutExtremityVeto(t *testing.T) {
	bar := testBar(35)
	bar.Close = 101.8
	bar.RangeHigh = 102 // 0.11% away
	bar.MACDHist = 0.02 // fading under the weakness floor

	v := newBreaker().Assess(bar, false, false)
	if !v.VetoBuy {
		t.Fatalf("expected buy veto at a fading range high")
	}

	// Strong momentum into the same level is allowed.
	bar.MACDHist = 0.30
	v = newBreaker().Assess(bar, false, false)
	if v.VetoBuy {
		t.Fatalf("strong breakout should not be vetoed")
	}
}

// A close already through the range high with fading momentum is still a
// fading breakout; the veto covers it the same as a close just under it.
func TestBreakerExtremityVetoAboveRangeHigh(t *testing.T) {
	bar := testBar(35)
	bar.Close = 102.25
	bar.RangeHigh = 102
	bar.MACDHist = 0.02

	v := newBreaker().Assess(bar, false, false)
	if !v.VetoBuy {
		t.Fatalf("expected buy veto on a fading close above the range high")
	}

	bar.MACDHist = 0.30
	if v := newBreaker().Assess(bar, false, false); v.VetoBuy {
		t.Fatalf("strong momentum through the level should not be vetoed")
	}
}

func TestBreakerExtremityVetoBelowRangeLow(t *testing.T) {
	bar := testBar(35)
	bar.Close = 97.8
	bar.RangeLow = 98
	bar.MACDHist = -0.02

	v := newBreaker().Assess(bar, false, false)
	if !v.VetoSell {
		t.Fatalf("expected sell veto on a fading close below the range low")
	}
}

func TestBreakerExtremityVetoSellAtRangeLow(t *testing.T) {
	bar := testBar(35)
	bar.Close = 98.2
	bar.RangeLow = 98 // 0.20% away
	bar.MACDHist = -0.02

	v := newBreaker().Assess(bar, false, false)
	if !v.VetoSell {
		t.Fatalf("expected sell veto at a fading range low")
	}
}

func TestBreakerExtremeRSIGuardLiftedByOverride(t *testing.T) {
	bar := testBar(35)
	bar.RSI = 75

	if v := newBreaker().Assess(bar, false, false); !v.VetoBuy {
		t.Fatalf("expected overbought veto without override")
	}
	if v := newBreaker().Assess(bar, true, false); v.VetoBuy {
		t.Fatalf("override should lift the overbought guard")
	}

	bar.RSI = 20
	bar.Close = 99.5 // below VWAP so only the RSI path vetoes sell
	if v := newBreaker().Assess(bar, false, false); !v.VetoSell {
		t.Fatalf("expected oversold veto without override")
	}
	if v := newBreaker().Assess(bar, false, true); v.VetoSell {
		t.Fatalf("override should lift the oversold guard")
	}
}

func TestBreakerTrendAlignmentAppliesToOverrides(t *testing.T) {
	bar := testBar(35)
	bar.Close = 99.5 // below VWAP

	v := newBreaker().Assess(bar, true, false)
	if !v.VetoBuy {
		t.Fatalf("trend-alignment veto must hold even with an override")
	}
}

// Apply never raises a score: penalties subtract, vetoes zero, both clamp.
func TestApplyIsMonotone(t *testing.T) {
	raw := sig.ScorePair{
		Buy:  sig.SideScore{Score: 70},
		Sell: sig.SideScore{Score: 40},
	}
	verdicts := []Verdict{
		{},
		{PenaltyBuy: 30},
		{PenaltyBuy: 90, PenaltySell: 90},
		{VetoBuy: true},
		{PenaltyBuy: 10, VetoBuy: true, VetoSell: true},
	}
	for _, v := range verdicts {
		got := Apply(raw, v)
		if got.Buy.Score > raw.Buy.Score || got.Sell.Score > raw.Sell.Score {
			t.Fatalf("verdict %+v raised a score: %+v", v, got)
		}
		if got.Buy.Score < 0 || got.Sell.Score < 0 {
			t.Fatalf("verdict %+v broke the clamp: %+v", v, got)
		}
		if v.VetoBuy && got.Buy.Score != 0 {
			t.Fatalf("vetoed buy score = %.1f, want 0", got.Buy.Score)
		}
		if v.VetoSell && got.Sell.Score != 0 {
			t.Fatalf("vetoed sell score = %.1f, want 0", got.Sell.Score)
		}
	}
}
