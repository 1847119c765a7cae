package strategy

import (
	"testing"

	"github.com/Jemujilmo/Gamma-Goblin/internal/config"
	"github.com/Jemujilmo/Gamma-Goblin/internal/market"
)

func gammaBars(n int) []market.Bar {
	bars := make([]market.Bar, n)
	for i := range bars {
		bars[i] = testBar(30 + i)
	}
	return bars
}

func TestGammaBaselineTape(t *testing.T) {
	g := NewGammaScorer(config.Default().Gamma)
	bars := gammaBars(25)
	for i := range bars {
		bars[i].Volume = 1000
		bars[i].Close = 100.25 // no momentum
	}

	// Ratios at parity and zero momentum: 30*1 + 30*1 + 40*0.
	if got := g.Score(bars); got != 60 {
		t.Fatalf("baseline gamma = %d, want 60", got)
	}
}

func TestGammaClipsOutlierRatios(t *testing.T) {
	g := NewGammaScorer(config.Default().Gamma)
	bars := gammaBars(25)
	for i := range bars {
		bars[i].Close = 100.25
	}
	last := len(bars) - 1
	for i := last - 4; i <= last; i++ {
		bars[i].Volume = 50000 // 50x baseline, clipped to 2x
	}

	// 30*2 (clipped volume) + 30*1 + 40*0.
	if got := g.Score(bars); got != 90 {
		t.Fatalf("clipped gamma = %d, want 90", got)
	}
}

func TestGammaClampsAt100(t *testing.T) {
	g := NewGammaScorer(config.Default().Gamma)
	bars := gammaBars(25)
	last := len(bars) - 1
	for i := last - 4; i <= last; i++ {
		bars[i].Volume = 50000
		bars[i].ATR = 5
	}
	bars[last].Close = 110 // ~10% move in 5 bars, saturates momentum

	if got := g.Score(bars); got != 100 {
		t.Fatalf("saturated gamma = %d, want clamp at 100", got)
	}
}

func TestGammaWarmupFallsBackToParity(t *testing.T) {
	g := NewGammaScorer(config.Default().Gamma)
	bars := gammaBars(2)
	for i := range bars {
		bars[i].AvgVolume = 0 // no trailing window yet
		bars[i].Close = 100.25
	}

	// Unusable baselines neither boost nor punish.
	if got := g.Score(bars); got != 60 {
		t.Fatalf("warmup gamma = %d, want 60", got)
	}
}

func TestGammaEmptySeries(t *testing.T) {
	g := NewGammaScorer(config.Default().Gamma)
	if got := g.Score(nil); got != 0 {
		t.Fatalf("empty series gamma = %d, want 0", got)
	}
}

func TestBand(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, "normal"}, {39, "normal"}, {40, "elevated"}, {69, "elevated"}, {70, "high"}, {100, "high"},
	}
	for _, tc := range cases {
		if got := Band(tc.score); got != tc.want {
			t.Fatalf("Band(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
