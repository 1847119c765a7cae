package engine

import (
	"time"

	"github.com/Jemujilmo/Gamma-Goblin/internal/config"
)

// cooldownState tracks the last emission for one (ticker, timeframe). It is
// written only by emit and never rolled back.
type cooldownState struct {
	lastEmit   time.Time
	lastScore  float64
	lastMargin float64
}

// allows decides whether a qualifying candidate may emit at ts. Strong
// candidates get the reduced window, or skip the wait entirely when the
// full-bypass variant is configured.
func (s cooldownState) allows(cfg config.Cooldown, ts time.Time, score, margin float64) bool {
	if s.lastEmit.IsZero() {
		return true
	}
	elapsed := ts.Sub(s.lastEmit)
	if elapsed >= time.Duration(cfg.Minutes)*time.Minute {
		return true
	}
	strong := score >= cfg.StrongScore && margin >= cfg.StrongMargin
	if !strong {
		return false
	}
	if cfg.StrongBypass {
		return true
	}
	return elapsed >= time.Duration(cfg.StrongMinutes)*time.Minute
}
