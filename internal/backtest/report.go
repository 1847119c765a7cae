package backtest

import (
	sig "github.com/Jemujilmo/Gamma-Goblin/internal/signal"
)

// AccuracyReport aggregates outcome counts per side. It is a derived view:
// Report recomputes it from the record set alone, so it can be requested at
// any point of a run and never drifts from the records.
type AccuracyReport struct {
	TotalSignals   int     `json:"total_signals"`
	BuySignals     int     `json:"buy_signals"`
	SellSignals    int     `json:"sell_signals"`
	CorrectBuys    int     `json:"correct_buys"`
	CorrectSells   int     `json:"correct_sells"`
	IncorrectBuys  int     `json:"incorrect_buys"`
	IncorrectSells int     `json:"incorrect_sells"`
	Pending        int     `json:"pending"`
	BuyAccuracy    float64 `json:"buy_accuracy_pct"`
	SellAccuracy   float64 `json:"sell_accuracy_pct"`
	Accuracy       float64 `json:"overall_accuracy_pct"`
}

// Report walks the record set and recomputes the aggregate view. Accuracy
// percentages count resolved records only.
func (ev *Evaluator) Report() AccuracyReport {
	var rep AccuracyReport
	for _, r := range ev.records {
		rep.TotalSignals++
		buy := r.Signal.Side == sig.Buy
		if buy {
			rep.BuySignals++
		} else {
			rep.SellSignals++
		}
		switch r.Outcome {
		case Correct:
			if buy {
				rep.CorrectBuys++
			} else {
				rep.CorrectSells++
			}
		case Incorrect:
			if buy {
				rep.IncorrectBuys++
			} else {
				rep.IncorrectSells++
			}
		default:
			rep.Pending++
		}
	}
	rep.BuyAccuracy = pct(rep.CorrectBuys, rep.CorrectBuys+rep.IncorrectBuys)
	rep.SellAccuracy = pct(rep.CorrectSells, rep.CorrectSells+rep.IncorrectSells)
	rep.Accuracy = pct(rep.CorrectBuys+rep.CorrectSells,
		rep.CorrectBuys+rep.CorrectSells+rep.IncorrectBuys+rep.IncorrectSells)
	return rep
}

func pct(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den) * 100
}
