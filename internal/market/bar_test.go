package market

import (
	"errors"
	"math"
	"testing"
	"time"
)

func validBar() Bar {
	return Bar{
		Ts:        time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC),
		Open:      100,
		High:      101,
		Low:       99,
		Close:     100.5,
		Volume:    1000,
		EMAFast:   100.2,
		EMASlow:   100.0,
		RSI:       50,
		MACDHist:  0.2,
		VWAP:      100.0,
		ATR:       0.5,
		AvgVolume: 1000,
		RangeHigh: 102,
		RangeLow:  98,
	}
}

func TestValidateAcceptsCompleteBar(t *testing.T) {
	if err := validBar().Validate(); err != nil {
		t.Fatalf("valid bar rejected: %v", err)
	}
}

func TestValidateRejectsBrokenBars(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Bar)
	}{
		{"nan rsi", func(b *Bar) { b.RSI = math.NaN() }},
		{"inf close", func(b *Bar) { b.Close = math.Inf(1) }},
		{"nan vwap", func(b *Bar) { b.VWAP = math.NaN() }},
		{"zero timestamp", func(b *Bar) { b.Ts = time.Time{} }},
		{"zero close", func(b *Bar) { b.Close = 0 }},
		{"negative vwap", func(b *Bar) { b.VWAP = -1 }},
		{"high below low", func(b *Bar) { b.High, b.Low = 99, 101 }},
		{"negative volume", func(b *Bar) { b.Volume = -5 }},
		{"negative avg volume", func(b *Bar) { b.AvgVolume = -5 }},
		{"rsi above 100", func(b *Bar) { b.RSI = 101 }},
		{"negative rsi", func(b *Bar) { b.RSI = -1 }},
		{"negative atr", func(b *Bar) { b.ATR = -0.1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := validBar()
			tc.mutate(&b)
			err := b.Validate()
			if err == nil {
				t.Fatalf("expected rejection")
			}
			if !errors.Is(err, ErrInvalidBar) {
				t.Fatalf("expected ErrInvalidBar, got %v", err)
			}
		})
	}
}
