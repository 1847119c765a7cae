package strategy

import (
	"github.com/Jemujilmo/Gamma-Goblin/internal/config"
	"github.com/Jemujilmo/Gamma-Goblin/internal/market"
	sig "github.com/Jemujilmo/Gamma-Goblin/internal/signal"
)

// Bias is the simple alignment classifier: three mirrored checks, each worth
// a third of the scale. It keeps the same candidate contract as Confluence so
// the host can swap implementations freely.
type Bias struct {
	cfg config.Scoring
}

// NewBias builds the classifier from the scoring thresholds.
func NewBias(cfg config.Scoring) *Bias {
	return &Bias{cfg: cfg}
}

func (s *Bias) Name() string { return "Bias" }

// Evaluate scores the execution bar by counting aligned checks; confidence is
// the alignment ratio scaled to 0-100.
func (s *Bias) Evaluate(v market.View) sig.Candidate {
	bar := v.Bar()

	var buy, sell []string

	if bar.Close > bar.VWAP {
		buy = append(buy, sig.CondExecutionTrend)
	} else if bar.Close < bar.VWAP {
		sell = append(sell, sig.CondExecutionTrend)
	}

	if bar.EMAFast > bar.EMASlow {
		buy = append(buy, sig.CondEMATrend)
	} else if bar.EMAFast < bar.EMASlow {
		sell = append(sell, sig.CondEMATrend)
	}

	if bar.RSI > s.cfg.RSIBullish {
		buy = append(buy, sig.CondRSIRegime)
	} else if bar.RSI < s.cfg.RSIBearish {
		sell = append(sell, sig.CondRSIRegime)
	}

	const checks = 3
	return sig.Candidate{
		ScorePair: sig.ScorePair{
			Buy:  sig.SideScore{Score: float64(len(buy)) / checks * 100, Conditions: buy},
			Sell: sig.SideScore{Score: float64(len(sell)) / checks * 100, Conditions: sell},
		},
	}
}
