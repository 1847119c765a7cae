// Package market defines the bar snapshot consumed by the scoring layers and
// the multi-timeframe alignment helpers used to feed it.
package market

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrInvalidBar flags a bar with missing or out-of-range indicator fields.
	ErrInvalidBar = errors.New("bar has missing or invalid fields")
	// ErrOutOfOrder flags a bar whose timestamp is not strictly increasing.
	ErrOutOfOrder = errors.New("bar timestamp not strictly increasing")
	// ErrFeedIntegrity flags a series with no usable bars at all.
	ErrFeedIntegrity = errors.New("feed integrity: no usable bars in series")
)

// Bar is one intraday candle plus its precomputed indicator set. Bars are
// produced upstream and treated as immutable here.
type Bar struct {
	Ts     time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64

	EMAFast   float64
	EMASlow   float64
	RSI       float64
	MACDHist  float64
	VWAP      float64
	ATR       float64
	AvgVolume float64 // rolling average volume
	RangeHigh float64 // rolling N-bar high
	RangeLow  float64 // rolling N-bar low
}

// Validate reports whether the bar carries everything scoring needs.
func (b Bar) Validate() error {
	fields := map[string]float64{
		"open": b.Open, "high": b.High, "low": b.Low, "close": b.Close,
		"volume": b.Volume, "ema_fast": b.EMAFast, "ema_slow": b.EMASlow,
		"rsi": b.RSI, "macd_hist": b.MACDHist, "vwap": b.VWAP, "atr": b.ATR,
		"avg_volume": b.AvgVolume, "range_high": b.RangeHigh, "range_low": b.RangeLow,
	}
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidBar, name, v)
		}
	}
	if b.Ts.IsZero() {
		return fmt.Errorf("%w: zero timestamp", ErrInvalidBar)
	}
	if b.Close <= 0 || b.Open <= 0 || b.VWAP <= 0 {
		return fmt.Errorf("%w: non-positive price", ErrInvalidBar)
	}
	if b.High < b.Low {
		return fmt.Errorf("%w: high %.4f below low %.4f", ErrInvalidBar, b.High, b.Low)
	}
	if b.Volume < 0 || b.AvgVolume < 0 {
		return fmt.Errorf("%w: negative volume", ErrInvalidBar)
	}
	if b.RSI < 0 || b.RSI > 100 {
		return fmt.Errorf("%w: rsi %.2f outside [0,100]", ErrInvalidBar, b.RSI)
	}
	if b.ATR < 0 {
		return fmt.Errorf("%w: negative atr", ErrInvalidBar)
	}
	return nil
}
