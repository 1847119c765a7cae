package indicators

import (
	"math"
	"testing"
	"time"
)

// flatCandles builds n identical candles at price p spaced one minute apart.
func flatCandles(start time.Time, n int, p, volume float64) []Candle {
	out := make([]Candle, n)
	for i := range out {
		out[i] = Candle{
			Ts:     start.Add(time.Duration(i) * time.Minute),
			Open:   p,
			High:   p,
			Low:    p,
			Close:  p,
			Volume: volume,
		}
	}
	return out
}

func TestEnrichSessionVWAPResets(t *testing.T) {
	day1 := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)
	day2 := time.Date(2025, 6, 3, 14, 30, 0, 0, time.UTC)
	candles := append(flatCandles(day1, 20, 100, 1000), flatCandles(day2, 20, 110, 1000)...)

	bars := Enrich(candles, DefaultParams())
	if len(bars) != 40 {
		t.Fatalf("expected 40 bars, got %d", len(bars))
	}
	if got := bars[19].VWAP; math.Abs(got-100) > 1e-9 {
		t.Fatalf("day one vwap = %.4f, want 100", got)
	}
	// First bar of the new session must not blend the prior day.
	if got := bars[20].VWAP; math.Abs(got-110) > 1e-9 {
		t.Fatalf("session-open vwap = %.4f, want 110", got)
	}
}

func TestEnrichBaselinesTrailExclusively(t *testing.T) {
	start := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)
	candles := flatCandles(start, 40, 100, 1000)
	candles[1].Volume = 2000
	candles[2].High = 105
	candles[2].Low = 95

	bars := Enrich(candles, DefaultParams())

	// Bar zero has no trailing window at all.
	if bars[0].AvgVolume != 0 || bars[0].RangeHigh != 0 || bars[0].RangeLow != 0 {
		t.Fatalf("bar zero baselines = %+v, want zeros", bars[0])
	}
	// The spike at index 1 shows up from index 2 on, never in its own bar.
	if got := bars[1].AvgVolume; got != 1000 {
		t.Fatalf("bar one avg volume = %.1f, want 1000", got)
	}
	if got := bars[2].AvgVolume; got != 1500 {
		t.Fatalf("bar two avg volume = %.1f, want 1500", got)
	}
	// Same for the range extremes at index 2.
	if got := bars[2].RangeHigh; got != 100 {
		t.Fatalf("bar two range high = %.1f, want 100", got)
	}
	if got := bars[3].RangeHigh; got != 105 {
		t.Fatalf("bar three range high = %.1f, want 105", got)
	}
	if got := bars[3].RangeLow; got != 95 {
		t.Fatalf("bar three range low = %.1f, want 95", got)
	}
	// The 20-bar window slides: by index 23 the spike has aged out.
	if got := bars[23].RangeHigh; got != 100 {
		t.Fatalf("bar 23 range high = %.1f, want 100", got)
	}
}

func TestRegime(t *testing.T) {
	rising := []float64{0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	falling := []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5}
	flat := []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}

	if got := Regime(rising, 5); got != "Expansion" {
		t.Fatalf("rising atr = %s, want Expansion", got)
	}
	if got := Regime(falling, 5); got != "Compression" {
		t.Fatalf("falling atr = %s, want Compression", got)
	}
	if got := Regime(flat, 5); got != "Neutral" {
		t.Fatalf("flat atr = %s, want Neutral", got)
	}
	if got := Regime(rising[:3], 5); got != "Neutral" {
		t.Fatalf("short series = %s, want Neutral", got)
	}
}

func TestEnrichEmpty(t *testing.T) {
	if got := Enrich(nil, DefaultParams()); got != nil {
		t.Fatalf("expected nil for empty input, got %d bars", len(got))
	}
}
