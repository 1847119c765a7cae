package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BarsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bars_total", Help: "Count of bars evaluated"},
		[]string{"ticker"},
	)
	BarsSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bars_skipped_total", Help: "Bars rejected before scoring"},
		[]string{"ticker", "reason"},
	)
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signals_total", Help: "Signals emitted"},
		[]string{"ticker", "side"},
	)
	SuppressedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "signals_suppressed_total", Help: "Qualified candidates suppressed before emission"},
		[]string{"ticker", "reason"},
	)
	AccuracyPct = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "signal_accuracy_pct", Help: "Running backtest accuracy"},
		[]string{"ticker", "side"},
	)
)

func init() {
	prometheus.MustRegister(BarsTotal, BarsSkippedTotal, SignalsTotal, SuppressedTotal, AccuracyPct)
}

// SetAccuracy publishes the current per-side accuracy for a ticker. Called on
// every bar of a replay so the gauge tracks resolutions as they happen.
func SetAccuracy(ticker string, buyPct, sellPct float64) {
	AccuracyPct.WithLabelValues(ticker, "BUY").Set(buyPct)
	AccuracyPct.WithLabelValues(ticker, "SELL").Set(sellPct)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
