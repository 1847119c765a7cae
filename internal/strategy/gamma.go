package strategy

import (
	"math"

	"github.com/Jemujilmo/Gamma-Goblin/internal/config"
	"github.com/Jemujilmo/Gamma-Goblin/internal/market"
)

// GammaScorer produces the composite 0-100 conviction score from volume,
// volatility and price momentum, each normalized against its own rolling
// baseline and clipped so one outlier bar cannot dominate the composite.
type GammaScorer struct {
	cfg config.Gamma
}

// NewGammaScorer builds a scorer from the configured weight triple.
func NewGammaScorer(cfg config.Gamma) GammaScorer {
	return GammaScorer{cfg: cfg}
}

// Score evaluates the execution series ending at the bar under evaluation.
func (g GammaScorer) Score(execution []market.Bar) int {
	if len(execution) == 0 {
		return 0
	}
	bar := market.Last(execution)

	volumeRatio := g.clip(ratio(recentMeanVolume(execution, g.cfg.RecentBars), bar.AvgVolume))
	volatilityRatio := g.clip(ratio(bar.ATR, baselineATR(execution, g.cfg.BaselineBars)))
	momentum := g.clip(math.Abs(changePct(execution, g.cfg.MomentumBars)) / g.cfg.MomentumCalibration)

	score := g.cfg.VolumeWeight*volumeRatio +
		g.cfg.VolatilityWeight*volatilityRatio +
		g.cfg.MomentumWeight*momentum
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}

// Band names the informative interpretation band for a gamma score.
func Band(score int) string {
	switch {
	case score >= 70:
		return "high"
	case score >= 40:
		return "elevated"
	default:
		return "normal"
	}
}

func (g GammaScorer) clip(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > g.cfg.RatioClip {
		return g.cfg.RatioClip
	}
	return x
}

// ratio falls back to parity when the baseline is unusable, matching how a
// warming-up series should neither boost nor punish conviction.
func ratio(current, baseline float64) float64 {
	if baseline <= 0 {
		return 1
	}
	return current / baseline
}

func recentMeanVolume(bars []market.Bar, n int) float64 {
	lo := len(bars) - n
	if lo < 0 {
		lo = 0
	}
	var sum float64
	count := 0
	for _, b := range bars[lo:] {
		sum += b.Volume
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func baselineATR(bars []market.Bar, n int) float64 {
	lo := len(bars) - n
	if lo < 0 {
		lo = 0
	}
	var sum float64
	count := 0
	for _, b := range bars[lo:] {
		sum += b.ATR
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// changePct is the percent move of the close over the last n bars.
func changePct(bars []market.Bar, n int) float64 {
	idx := len(bars) - 1 - n
	if idx < 0 {
		return 0
	}
	base := bars[idx].Close
	if base <= 0 {
		return 0
	}
	return (market.Last(bars).Close/base - 1) * 100
}
