// Package strategy hosts the scoring implementations that turn aligned bar
// views into signal candidates for the engine to gate.
package strategy

import (
	"strings"

	"github.com/Jemujilmo/Gamma-Goblin/internal/config"
	"github.com/Jemujilmo/Gamma-Goblin/internal/market"
	sig "github.com/Jemujilmo/Gamma-Goblin/internal/signal"
)

// Strategy defines behaviour shared by scoring implementations. Evaluate is a
// pure function of the view; all emission state lives in the engine.
type Strategy interface {
	Evaluate(v market.View) sig.Candidate
	Name() string
}

// Build returns the implementation matching the configured mode.
func Build(mode string, scoring config.Scoring, gamma config.Gamma) Strategy {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "confluence", "multi_timeframe":
		return NewConfluence(scoring, gamma)
	case "bias", "classifier":
		return NewBias(scoring)
	default:
		return NewConfluence(scoring, gamma)
	}
}
