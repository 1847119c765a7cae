// Command replay runs the full offline loop: raw candle CSVs in, indicator
// enrichment, signal generation, streaming backtest resolution, and an
// accuracy report plus JSONL exports out.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Jemujilmo/Gamma-Goblin/internal/backtest"
	"github.com/Jemujilmo/Gamma-Goblin/internal/config"
	"github.com/Jemujilmo/Gamma-Goblin/internal/engine"
	"github.com/Jemujilmo/Gamma-Goblin/internal/export"
	"github.com/Jemujilmo/Gamma-Goblin/internal/indicators"
	"github.com/Jemujilmo/Gamma-Goblin/internal/market"
	"github.com/Jemujilmo/Gamma-Goblin/internal/metrics"
	"github.com/Jemujilmo/Gamma-Goblin/internal/strategy"
	"github.com/Jemujilmo/Gamma-Goblin/internal/util"
)

func main() {
	_ = godotenv.Load() // best-effort

	var (
		configPath     = flag.String("config", envOr("GOBLIN_CONFIG", "config.yaml"), "path to YAML config")
		ticker         = flag.String("ticker", envOr("GOBLIN_TICKER", "SPY"), "ticker symbol")
		timeframe      = flag.String("timeframe", "5m", "execution timeframe label")
		executionCSV   = flag.String("candles", "", "execution-timeframe candle CSV (required)")
		entryCSV       = flag.String("entry", "", "entry-timeframe candle CSV (optional)")
		structuralCSV  = flag.String("structural", "", "structural-timeframe candle CSV (optional)")
		serveMetricsFl = flag.Bool("metrics", false, "serve prometheus metrics while replaying")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// Only a missing file falls back to defaults; a present but broken
		// config must never silently lose the operator's tunables.
		if !errors.Is(err, os.ErrNotExist) {
			bootLog := util.NewLogger("info")
			bootLog.Fatal().Err(err).Str("path", *configPath).Msg("load config")
		}
		def := config.Default()
		cfg = &def
	}
	log := util.NewLogger(cfg.App.LogLevel)

	if *executionCSV == "" {
		log.Fatal().Msg("-candles is required")
	}
	if *serveMetricsFl {
		_ = metrics.Serve(cfg.App.MetricsAddr)
		log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")
	}

	strat := strategy.Build(cfg.Strategy.Mode, cfg.Scoring, cfg.Gamma)
	eng, err := engine.New(*ticker, *timeframe, cfg, strat, log)
	if err != nil {
		log.Fatal().Err(err).Msg("engine construction")
	}

	params := indicators.DefaultParams()
	execution := mustLoad(log, *executionCSV, params)
	entry := loadOptional(log, *entryCSV, params)
	structural := loadOptional(log, *structuralCSV, params)

	evaluator := backtest.NewEvaluator(cfg.Backtest)
	signalsOut, err := export.NewJSONLRecorder(cfg.Export.SignalsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open signals output")
	}
	defer signalsOut.Close()

	views := market.Align(entry, execution, structural)
	rejected := 0
	for _, v := range views {
		emitted, err := eng.OnBar(v)
		if err != nil {
			rejected++
			continue
		}
		if emitted != nil {
			evaluator.Track(*emitted)
			if err := signalsOut.Record(emitted); err != nil {
				log.Error().Err(err).Msg("record signal")
			}
		}
		evaluator.OnBar(v.Bar())

		running := evaluator.Report()
		metrics.SetAccuracy(*ticker, running.BuyAccuracy, running.SellAccuracy)
	}
	if len(views) > 0 && rejected == len(views) {
		log.Fatal().Err(market.ErrFeedIntegrity).Int("bars", len(views)).Msg("replay aborted")
	}

	report := evaluator.Report()

	outcomesOut, err := export.NewJSONLRecorder(cfg.Export.OutcomesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open outcomes output")
	}
	defer outcomesOut.Close()
	for _, r := range evaluator.Records() {
		if err := outcomesOut.Record(r); err != nil {
			log.Error().Err(err).Msg("record outcome")
		}
	}
	if err := export.WriteJSON(cfg.Export.ReportPath, report); err != nil {
		log.Error().Err(err).Msg("write report")
	}

	log.Info().
		Int("bars", len(views)).
		Int("skipped", eng.Skipped()).
		Int("signals", report.TotalSignals).
		Int("pending", report.Pending).
		Float64("buy_accuracy", report.BuyAccuracy).
		Float64("sell_accuracy", report.SellAccuracy).
		Float64("overall_accuracy", report.Accuracy).
		Msg("replay complete")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustLoad(log zerolog.Logger, path string, p indicators.Params) []market.Bar {
	bars, err := loadCandles(path, p)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("load candles")
	}
	return bars
}

func loadOptional(log zerolog.Logger, path string, p indicators.Params) []market.Bar {
	if path == "" {
		return nil
	}
	return mustLoad(log, path, p)
}

// loadCandles reads a headered CSV of ts,open,high,low,close,volume rows,
// with ts either RFC 3339 or a unix-seconds integer, and enriches the series.
func loadCandles(path string, p indicators.Params) ([]market.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true
	if _, err := r.Read(); err != nil { // header
		return nil, fmt.Errorf("read header: %w", err)
	}

	var candles []indicators.Candle
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 6 {
			return nil, fmt.Errorf("line %d: want 6 columns, got %d", line, len(rec))
		}
		ts, err := parseTs(rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		vals := make([]float64, 5)
		for i := 0; i < 5; i++ {
			vals[i], err = strconv.ParseFloat(rec[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d col %d: %w", line, i+2, err)
			}
		}
		candles = append(candles, indicators.Candle{
			Ts:     ts,
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vals[4],
		})
	}
	return indicators.Enrich(candles, p), nil
}

func parseTs(s string) (time.Time, error) {
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Parse(time.RFC3339, s)
}
