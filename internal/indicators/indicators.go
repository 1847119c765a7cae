// Package indicators enriches raw OHLCV candles with the indicator set the
// scoring layers consume. EMA, RSI, MACD and ATR come from talib; session
// VWAP and the rolling baselines are computed here because talib has no
// session-resetting variants.
package indicators

import (
	"time"

	talib "github.com/markcheno/go-talib"

	"github.com/Jemujilmo/Gamma-Goblin/internal/market"
)

// Candle is one raw bar prior to enrichment.
type Candle struct {
	Ts     time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Params holds indicator lookbacks.
type Params struct {
	EMAFast    int
	EMASlow    int
	RSIPeriod  int
	ATRPeriod  int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	// BaselineBars sizes the rolling average volume and rolling high/low
	// windows; both trail the current bar exclusively.
	BaselineBars int
}

// DefaultParams mirrors the usual intraday setup: EMA 9/21, RSI 14, ATR 14,
// MACD 12/26/9, 20-bar baselines.
func DefaultParams() Params {
	return Params{
		EMAFast:      9,
		EMASlow:      21,
		RSIPeriod:    14,
		ATRPeriod:    14,
		MACDFast:     12,
		MACDSlow:     26,
		MACDSignal:   9,
		BaselineBars: 20,
	}
}

// Enrich computes the full indicator set over a chronological candle series.
// The first BaselineBars bars carry partial baselines and talib warmup zeros;
// bar validation downstream decides whether they are usable.
func Enrich(candles []Candle, p Params) []market.Bar {
	n := len(candles)
	if n == 0 {
		return nil
	}

	opens := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i, c := range candles {
		opens[i] = c.Open
		highs[i] = c.High
		lows[i] = c.Low
		closes[i] = c.Close
		volumes[i] = c.Volume
	}

	emaFast := talib.Ema(closes, p.EMAFast)
	emaSlow := talib.Ema(closes, p.EMASlow)
	rsi := talib.Rsi(closes, p.RSIPeriod)
	atr := talib.Atr(highs, lows, closes, p.ATRPeriod)
	_, _, macdHist := talib.Macd(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	vwap := sessionVWAP(candles)

	bars := make([]market.Bar, n)
	for i := range candles {
		lo := i - p.BaselineBars
		if lo < 0 {
			lo = 0
		}
		bars[i] = market.Bar{
			Ts:        candles[i].Ts,
			Open:      opens[i],
			High:      highs[i],
			Low:       lows[i],
			Close:     closes[i],
			Volume:    volumes[i],
			EMAFast:   emaFast[i],
			EMASlow:   emaSlow[i],
			RSI:       rsi[i],
			MACDHist:  macdHist[i],
			VWAP:      vwap[i],
			ATR:       atr[i],
			AvgVolume: mean(volumes[lo:i]),
			RangeHigh: highest(highs[lo:i]),
			RangeLow:  lowest(lows[lo:i]),
		}
	}
	return bars
}

// sessionVWAP accumulates typical price x volume within each calendar day and
// resets at the session boundary.
func sessionVWAP(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	var cumPV, cumV float64
	var day int
	for i, c := range candles {
		y, m, d := c.Ts.Date()
		key := y*10000 + int(m)*100 + d
		if i == 0 || key != day {
			day = key
			cumPV, cumV = 0, 0
		}
		typical := (c.High + c.Low + c.Close) / 3
		cumPV += typical * c.Volume
		cumV += c.Volume
		if cumV > 0 {
			out[i] = cumPV / cumV
		} else {
			out[i] = typical
		}
	}
	return out
}

// Regime classifies the volatility trend from the ATR series: a least-squares
// slope beyond 1% of the recent mean marks expansion or compression.
func Regime(atr []float64, lookback int) string {
	if lookback < 2 || len(atr) < lookback+1 {
		return "Neutral"
	}
	recent := atr[len(atr)-lookback:]
	slope := lsSlope(recent)
	threshold := mean(recent) * 0.01
	switch {
	case slope > threshold:
		return "Expansion"
	case slope < -threshold:
		return "Compression"
	default:
		return "Neutral"
	}
}

func lsSlope(ys []float64) float64 {
	n := float64(len(ys))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func highest(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func lowest(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}
