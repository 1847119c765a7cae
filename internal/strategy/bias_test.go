package strategy

import (
	"math"
	"testing"

	"github.com/Jemujilmo/Gamma-Goblin/internal/config"
	"github.com/Jemujilmo/Gamma-Goblin/internal/market"
)

func TestBiasFullAlignment(t *testing.T) {
	bar := testBar(35)
	bar.RSI = 60 // above the bullish split

	cand := NewBias(config.Default().Scoring).Evaluate(market.View{Execution: []market.Bar{bar}})
	if cand.Buy.Score != 100 {
		t.Fatalf("buy score = %.1f, want 100", cand.Buy.Score)
	}
	if len(cand.Buy.Conditions) != 3 || len(cand.Sell.Conditions) != 0 {
		t.Fatalf("conditions = %v / %v", cand.Buy.Conditions, cand.Sell.Conditions)
	}
}

func TestBiasPartialAlignment(t *testing.T) {
	bar := testBar(35)
	bar.RSI = 50 // between the splits, counts for neither side

	cand := NewBias(config.Default().Scoring).Evaluate(market.View{Execution: []market.Bar{bar}})
	want := 2.0 / 3 * 100
	if math.Abs(cand.Buy.Score-want) > 1e-9 {
		t.Fatalf("buy score = %.2f, want %.2f", cand.Buy.Score, want)
	}
	if cand.Sell.Score != 0 {
		t.Fatalf("sell score = %.1f, want 0", cand.Sell.Score)
	}
}

func TestBiasNeverOverridesOrVetoes(t *testing.T) {
	bar := testBar(35)
	cand := NewBias(config.Default().Scoring).Evaluate(market.View{Execution: []market.Bar{bar}})
	if cand.OverrideBuy || cand.OverrideSell || cand.VetoBuy || cand.VetoSell {
		t.Fatalf("bias candidate carries gate flags: %+v", cand)
	}
}

func TestBuildFactory(t *testing.T) {
	cfg := config.Default()
	cases := []struct {
		mode string
		want string
	}{
		{"confluence", "Confluence"},
		{"bias", "Bias"},
		{"", "Confluence"},
		{"unknown", "Confluence"},
	}
	for _, tc := range cases {
		s := Build(tc.mode, cfg.Scoring, cfg.Gamma)
		if s.Name() != tc.want {
			t.Fatalf("Build(%q).Name() = %s, want %s", tc.mode, s.Name(), tc.want)
		}
	}
}
