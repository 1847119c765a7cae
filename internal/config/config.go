// Package config exposes strongly typed engine configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Strategy specifies which scoring implementation is active.
type Strategy struct {
	Mode string `yaml:"mode"` // "confluence" (default) or "bias"
}

// Scoring groups the thresholds applied while scoring and gating one bar.
type Scoring struct {
	MinScore            float64 `yaml:"min_score"`
	ScoreMargin         float64 `yaml:"score_margin"`
	MACDMinHistogram    float64 `yaml:"macd_min_histogram"`
	MACDWeakness        float64 `yaml:"macd_weakness"`
	WeakMomentumPenalty float64 `yaml:"weak_momentum_penalty"`
	VolumeThreshold     float64 `yaml:"volume_threshold"`
	ResistanceProximity float64 `yaml:"resistance_proximity"` // percent of price
	RSIBuyLow           float64 `yaml:"rsi_buy_low"`
	RSIBuyHigh          float64 `yaml:"rsi_buy_high"`
	RSISellLow          float64 `yaml:"rsi_sell_low"`
	RSISellHigh         float64 `yaml:"rsi_sell_high"`
	RSIOverbought       float64 `yaml:"rsi_overbought"`
	RSIOversold         float64 `yaml:"rsi_oversold"`
	RSIBullish          float64 `yaml:"rsi_bullish"` // bias strategy regime split
	RSIBearish          float64 `yaml:"rsi_bearish"`
	GammaElevated       float64 `yaml:"gamma_elevated"`
}

// Gamma tunes the composite conviction score: weight triple, momentum
// lookback and the clipping that keeps one outlier bar from dominating.
type Gamma struct {
	VolumeWeight        float64 `yaml:"volume_weight"`
	VolatilityWeight    float64 `yaml:"volatility_weight"`
	MomentumWeight      float64 `yaml:"momentum_weight"`
	MomentumBars        int     `yaml:"momentum_bars"`
	MomentumCalibration float64 `yaml:"momentum_calibration"` // percent move worth full weight
	RatioClip           float64 `yaml:"ratio_clip"`
	BaselineBars        int     `yaml:"baseline_bars"`
	RecentBars          int     `yaml:"recent_bars"`
}

// Cooldown controls the temporal rate limiter between emissions.
type Cooldown struct {
	Minutes       int     `yaml:"minutes"`
	StrongScore   float64 `yaml:"strong_score"`
	StrongMargin  float64 `yaml:"strong_margin"`
	StrongMinutes int     `yaml:"strong_minutes"`
	StrongBypass  bool    `yaml:"strong_bypass"` // strong candidates skip the window entirely
}

// Backtest sets the lookahead horizon and the excursion thresholds that
// classify an emitted signal as correct or incorrect.
type Backtest struct {
	HorizonBars     int     `yaml:"horizon_bars"`
	MinFavorablePct float64 `yaml:"min_favorable_pct"`
	AdverseStopPct  float64 `yaml:"adverse_stop_pct"`
}

// Export holds output paths for boundary records.
type Export struct {
	SignalsPath  string `yaml:"signals_path"`
	OutcomesPath string `yaml:"outcomes_path"`
	ReportPath   string `yaml:"report_path"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App      App      `yaml:"app"`
	Strategy Strategy `yaml:"strategy"`
	Scoring  Scoring  `yaml:"scoring"`
	Gamma    Gamma    `yaml:"gamma"`
	Cooldown Cooldown `yaml:"cooldown"`
	Backtest Backtest `yaml:"backtest"`
	Export   Export   `yaml:"export"`
}

// Default returns the production defaults; Load decodes on top of them so a
// partial YAML file only overrides what it names.
func Default() Config {
	return Config{
		App: App{
			Name:        "gamma-goblin",
			Env:         "dev",
			MetricsAddr: ":9109",
			LogLevel:    "info",
		},
		Strategy: Strategy{Mode: "confluence"},
		Scoring: Scoring{
			MinScore:            55,
			ScoreMargin:         15,
			MACDMinHistogram:    0.15,
			MACDWeakness:        0.05,
			WeakMomentumPenalty: 30,
			VolumeThreshold:     1.05,
			ResistanceProximity: 0.3,
			RSIBuyLow:           35,
			RSIBuyHigh:          60,
			RSISellLow:          40,
			RSISellHigh:         65,
			RSIOverbought:       68,
			RSIOversold:         25,
			RSIBullish:          55,
			RSIBearish:          45,
			GammaElevated:       40,
		},
		Gamma: Gamma{
			VolumeWeight:        30,
			VolatilityWeight:    30,
			MomentumWeight:      40,
			MomentumBars:        5,
			MomentumCalibration: 4.0,
			RatioClip:           2.0,
			BaselineBars:        20,
			RecentBars:          5,
		},
		Cooldown: Cooldown{
			Minutes:       15,
			StrongScore:   80,
			StrongMargin:  25,
			StrongMinutes: 10,
		},
		Backtest: Backtest{
			HorizonBars:     5,
			MinFavorablePct: 0.10,
			AdverseStopPct:  0.30,
		},
		Export: Export{
			SignalsPath:  "data/signals.jsonl",
			OutcomesPath: "data/outcomes.jsonl",
			ReportPath:   "data/report.json",
		},
	}
}

// Load reads a YAML file from disk and hydrates a Config on top of the defaults.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return &config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
