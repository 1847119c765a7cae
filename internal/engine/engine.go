// Package engine owns gating, cooldown and emission for one (ticker,
// timeframe) stream. An Engine is a plain value owned by its caller: one
// instance per tracked combination, never shared across goroutines.
package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jemujilmo/Gamma-Goblin/internal/config"
	"github.com/Jemujilmo/Gamma-Goblin/internal/indicators"
	"github.com/Jemujilmo/Gamma-Goblin/internal/market"
	"github.com/Jemujilmo/Gamma-Goblin/internal/metrics"
	sig "github.com/Jemujilmo/Gamma-Goblin/internal/signal"
	"github.com/Jemujilmo/Gamma-Goblin/internal/strategy"
)

// regimeLookback sizes the ATR window used to tag emitted signals with a
// volatility regime.
const regimeLookback = 5

// Engine runs the score -> gate -> cooldown -> emit pipeline over an ordered
// bar sequence and keeps the run's signal log.
type Engine struct {
	log       zerolog.Logger
	ticker    string
	timeframe string
	scoring   config.Scoring
	cooldown  config.Cooldown
	strat     strategy.Strategy

	lastTs  time.Time
	state   cooldownState
	signals []sig.Signal
	skipped int
}

// New validates the configuration and builds an engine for one (ticker,
// timeframe) combination. Configuration errors surface here, never mid-run.
func New(ticker, timeframe string, cfg *config.Config, strat strategy.Strategy, log zerolog.Logger) (*Engine, error) {
	if ticker == "" || timeframe == "" {
		return nil, fmt.Errorf("engine: ticker and timeframe are required")
	}
	if strat == nil {
		return nil, fmt.Errorf("engine: nil strategy")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return &Engine{
		log:       log.With().Str("ticker", ticker).Str("timeframe", timeframe).Logger(),
		ticker:    ticker,
		timeframe: timeframe,
		scoring:   cfg.Scoring,
		cooldown:  cfg.Cooldown,
		strat:     strat,
	}, nil
}

// OnBar evaluates one aligned view and returns the emitted signal, if any.
// A non-nil error means the bar was rejected; engine state is untouched and
// the caller may keep feeding subsequent bars.
func (e *Engine) OnBar(v market.View) (*sig.Signal, error) {
	if len(v.Execution) == 0 {
		return nil, fmt.Errorf("%w: empty view", market.ErrInvalidBar)
	}
	bar := v.Bar()
	if err := bar.Validate(); err != nil {
		e.skipped++
		metrics.BarsSkippedTotal.WithLabelValues(e.ticker, "invalid").Inc()
		e.log.Debug().Time("bar", bar.Ts).Err(err).Msg("bar skipped")
		return nil, err
	}
	if !bar.Ts.After(e.lastTs) {
		e.skipped++
		metrics.BarsSkippedTotal.WithLabelValues(e.ticker, "out_of_order").Inc()
		return nil, fmt.Errorf("%w: %s not after %s", market.ErrOutOfOrder, bar.Ts, e.lastTs)
	}
	e.lastTs = bar.Ts
	metrics.BarsTotal.WithLabelValues(e.ticker).Inc()

	cand := e.strat.Evaluate(v)
	side, ok := e.qualify(cand)
	if !ok {
		return nil, nil
	}

	score := cand.Side(side).Score
	margin := cand.Margin(side)
	if !e.state.allows(e.cooldown, bar.Ts, score, margin) {
		metrics.SuppressedTotal.WithLabelValues(e.ticker, "cooldown").Inc()
		e.log.Debug().Time("bar", bar.Ts).Str("side", string(side)).Float64("score", score).Msg("suppressed by cooldown")
		return nil, nil
	}

	emitted := e.emit(v, cand, side)
	return &emitted, nil
}

// Replay runs the engine over pre-aligned views, returning the emitted
// signals. A feed where every bar is rejected reports ErrFeedIntegrity.
func (e *Engine) Replay(views []market.View) ([]sig.Signal, error) {
	emitted := make([]sig.Signal, 0)
	rejected := 0
	for _, v := range views {
		s, err := e.OnBar(v)
		if err != nil {
			rejected++
			continue
		}
		if s != nil {
			emitted = append(emitted, *s)
		}
	}
	if len(views) > 0 && rejected == len(views) {
		return nil, fmt.Errorf("%w: %d bars rejected", market.ErrFeedIntegrity, rejected)
	}
	return emitted, nil
}

// emit materializes the immutable signal record, appends it to the run log
// and advances the cooldown state. This is the only mutation path for both.
func (e *Engine) emit(v market.View, cand sig.Candidate, side sig.Side) sig.Signal {
	bar := v.Bar()
	score := cand.Side(side).Score
	margin := cand.Margin(side)
	conditions := cand.Side(side).Conditions
	emitted := sig.Signal{
		Ticker:        e.ticker,
		Timeframe:     e.timeframe,
		Ts:            bar.Ts,
		Side:          side,
		Price:         bar.Close,
		Score:         score,
		Margin:        margin,
		Conditions:    conditions,
		ConditionsMet: len(conditions),
		Gamma:         cand.Gamma,
		Override:      cand.Override(side),
		Regime:        indicators.Regime(atrSeries(v.Execution), regimeLookback),
		Label:         sig.Label(side, len(conditions), cand.Gamma),
	}
	e.signals = append(e.signals, emitted)
	e.state = cooldownState{lastEmit: bar.Ts, lastScore: score, lastMargin: margin}

	metrics.SignalsTotal.WithLabelValues(e.ticker, string(side)).Inc()
	e.log.Info().
		Time("bar", bar.Ts).
		Str("side", string(side)).
		Float64("score", score).
		Float64("margin", margin).
		Int("gamma", cand.Gamma).
		Bool("override", emitted.Override).
		Msg(emitted.Label)
	return emitted
}

// Signals returns a copy of the run's signal log.
func (e *Engine) Signals() []sig.Signal {
	out := make([]sig.Signal, len(e.signals))
	copy(out, e.signals)
	return out
}

// Skipped reports how many bars were rejected before scoring.
func (e *Engine) Skipped() int { return e.skipped }

func atrSeries(bars []market.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.ATR
	}
	return out
}
