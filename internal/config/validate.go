package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrConfig wraps every validation failure.
var ErrConfig = errors.New("invalid config")

// Validate checks every tunable against its sane bounds. It runs at engine
// construction so a bad value can never surface mid-run.
func (c *Config) Validate() error {
	s := c.Scoring
	if s.MinScore <= 0 || s.MinScore > 100 {
		return fmt.Errorf("%w: min_score %.1f outside (0,100]", ErrConfig, s.MinScore)
	}
	if s.ScoreMargin < 0 || s.ScoreMargin > 100 {
		return fmt.Errorf("%w: score_margin %.1f outside [0,100]", ErrConfig, s.ScoreMargin)
	}
	if s.MACDMinHistogram < 0 || s.MACDWeakness < 0 {
		return fmt.Errorf("%w: negative MACD floor", ErrConfig)
	}
	if s.WeakMomentumPenalty < 0 || s.WeakMomentumPenalty > 100 {
		return fmt.Errorf("%w: weak_momentum_penalty %.1f outside [0,100]", ErrConfig, s.WeakMomentumPenalty)
	}
	if s.VolumeThreshold <= 0 {
		return fmt.Errorf("%w: volume_threshold must be positive", ErrConfig)
	}
	if s.ResistanceProximity < 0 {
		return fmt.Errorf("%w: negative resistance_proximity", ErrConfig)
	}
	for _, band := range []struct {
		name      string
		low, high float64
	}{
		{"rsi_buy", s.RSIBuyLow, s.RSIBuyHigh},
		{"rsi_sell", s.RSISellLow, s.RSISellHigh},
	} {
		if band.low < 0 || band.high > 100 || band.low >= band.high {
			return fmt.Errorf("%w: %s band [%.1f,%.1f] malformed", ErrConfig, band.name, band.low, band.high)
		}
	}
	if s.RSIOverbought <= 0 || s.RSIOverbought > 100 || s.RSIOversold < 0 || s.RSIOversold >= s.RSIOverbought {
		return fmt.Errorf("%w: rsi extremes [%.1f,%.1f] malformed", ErrConfig, s.RSIOversold, s.RSIOverbought)
	}
	if s.GammaElevated < 0 || s.GammaElevated > 100 {
		return fmt.Errorf("%w: gamma_elevated %.1f outside [0,100]", ErrConfig, s.GammaElevated)
	}

	g := c.Gamma
	if sum := g.VolumeWeight + g.VolatilityWeight + g.MomentumWeight; math.Abs(sum-100) > 1e-9 {
		return fmt.Errorf("%w: gamma weights sum to %.1f, want 100", ErrConfig, sum)
	}
	if g.VolumeWeight < 0 || g.VolatilityWeight < 0 || g.MomentumWeight < 0 {
		return fmt.Errorf("%w: negative gamma weight", ErrConfig)
	}
	if g.MomentumBars < 1 || g.BaselineBars < 1 || g.RecentBars < 1 {
		return fmt.Errorf("%w: gamma lookbacks must be at least one bar", ErrConfig)
	}
	if g.MomentumCalibration <= 0 || g.RatioClip <= 0 {
		return fmt.Errorf("%w: gamma calibration and clip must be positive", ErrConfig)
	}

	cd := c.Cooldown
	if cd.Minutes < 0 || cd.StrongMinutes < 0 {
		return fmt.Errorf("%w: negative cooldown window", ErrConfig)
	}
	if cd.StrongMinutes > cd.Minutes {
		return fmt.Errorf("%w: strong window %dm exceeds base window %dm", ErrConfig, cd.StrongMinutes, cd.Minutes)
	}
	if cd.StrongScore < 0 || cd.StrongScore > 100 || cd.StrongMargin < 0 || cd.StrongMargin > 100 {
		return fmt.Errorf("%w: strong thresholds outside [0,100]", ErrConfig)
	}

	bt := c.Backtest
	if bt.HorizonBars < 1 {
		return fmt.Errorf("%w: backtest horizon must be at least one bar", ErrConfig)
	}
	if bt.MinFavorablePct < 0 || bt.AdverseStopPct < 0 {
		return fmt.Errorf("%w: negative excursion threshold", ErrConfig)
	}
	return nil
}
