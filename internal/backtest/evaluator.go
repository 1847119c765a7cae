// Package backtest replays emitted signals against subsequent bars to
// classify their outcome and keep a running accuracy view.
package backtest

import (
	"time"

	"github.com/Jemujilmo/Gamma-Goblin/internal/config"
	"github.com/Jemujilmo/Gamma-Goblin/internal/market"
	sig "github.com/Jemujilmo/Gamma-Goblin/internal/signal"
)

// Outcome is a record's resolution state. PENDING is terminal only when the
// series ends before the horizon does.
type Outcome string

const (
	Pending   Outcome = "PENDING"
	Correct   Outcome = "CORRECT"
	Incorrect Outcome = "INCORRECT"
)

// Record ties one emitted signal to its resolution. Mutated only by the
// evaluator; terminal once resolved.
type Record struct {
	Signal     sig.Signal `json:"signal"`
	Outcome    Outcome    `json:"outcome"`
	ResolvedAt time.Time  `json:"resolved_at,omitempty"`
	Favorable  float64    `json:"favorable_pct"` // max favorable excursion, percent
	Adverse    float64    `json:"adverse_pct"`   // max adverse excursion, percent

	barsSeen int
}

// Evaluator owns the record set for one engine instance. Like the engine it
// is single-owner state: one evaluator per (ticker, timeframe).
type Evaluator struct {
	horizon      int
	minFavorable float64
	adverseStop  float64
	records      []*Record
}

// NewEvaluator builds an evaluator from the backtest thresholds.
func NewEvaluator(cfg config.Backtest) *Evaluator {
	return &Evaluator{
		horizon:      cfg.HorizonBars,
		minFavorable: cfg.MinFavorablePct,
		adverseStop:  cfg.AdverseStopPct,
	}
}

// Track registers an emitted signal for resolution.
func (ev *Evaluator) Track(s sig.Signal) {
	ev.records = append(ev.records, &Record{Signal: s, Outcome: Pending})
}

// OnBar advances every pending record using one subsequent bar. A record
// resolves CORRECT the moment its favorable excursion clears the minimum;
// when one bar clears both thresholds the favorable excursion wins.
func (ev *Evaluator) OnBar(bar market.Bar) {
	for _, r := range ev.records {
		if r.Outcome != Pending {
			continue
		}
		if !bar.Ts.After(r.Signal.Ts) {
			continue
		}
		r.barsSeen++

		entry := r.Signal.Price
		var favorable, adverse float64
		if r.Signal.Side == sig.Buy {
			favorable = (bar.High - entry) / entry * 100
			adverse = (entry - bar.Low) / entry * 100
		} else {
			favorable = (entry - bar.Low) / entry * 100
			adverse = (bar.High - entry) / entry * 100
		}
		if favorable > r.Favorable {
			r.Favorable = favorable
		}
		if adverse > r.Adverse {
			r.Adverse = adverse
		}

		switch {
		case r.Favorable >= ev.minFavorable:
			r.Outcome = Correct
			r.ResolvedAt = bar.Ts
		case r.Adverse >= ev.adverseStop:
			r.Outcome = Incorrect
			r.ResolvedAt = bar.Ts
		case r.barsSeen >= ev.horizon:
			r.Outcome = Incorrect
			r.ResolvedAt = bar.Ts
		}
	}
}

// Replay resets every record and re-resolves it against the full series.
// Running it twice over the same series yields identical classifications, and
// its results match the streaming path bar for bar.
func (ev *Evaluator) Replay(bars []market.Bar) {
	for _, r := range ev.records {
		r.Outcome = Pending
		r.ResolvedAt = time.Time{}
		r.Favorable = 0
		r.Adverse = 0
		r.barsSeen = 0
	}
	for _, b := range bars {
		ev.OnBar(b)
	}
}

// Records returns a copy of the record set.
func (ev *Evaluator) Records() []Record {
	out := make([]Record, len(ev.records))
	for i, r := range ev.records {
		out[i] = *r
	}
	return out
}
