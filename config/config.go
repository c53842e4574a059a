package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Config is the complete run configuration for the CLI.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Run      RunConfig      `yaml:"run"`
	Signal   SignalConfig   `yaml:"signal"`
	Assets   AssetsConfig   `yaml:"assets"`
	Advisory AdvisoryConfig `yaml:"advisory"`
	Report   ReportConfig   `yaml:"report"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// RunConfig describes the backtest window and cost model.
type RunConfig struct {
	Strategies     []StrategyConfig `yaml:"strategies"`
	Start          string           `yaml:"start"` // 2006-01-02
	End            string           `yaml:"end"`
	InitialCapital float64          `yaml:"initial_capital"`
	Commission     float64          `yaml:"commission"` // per trade
	SlippagePct    float64          `yaml:"slippage_pct"`
	TrendBias      bool             `yaml:"trend_bias"`
	Granularity    string           `yaml:"granularity"` // 60 | 240 | D | W
	Benchmark      string           `yaml:"benchmark"`
	RiskFreeRate   float64          `yaml:"risk_free_rate"`

	StartTime time.Time `yaml:"-"`
	EndTime   time.Time `yaml:"-"`
}

type StrategyConfig struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Indicators  []string `yaml:"indicators"`
	Symbols     []string `yaml:"symbols"`
	StopLossPct float64  `yaml:"stop_loss_pct"`
}

// SignalConfig selects the entry signal source.
type SignalConfig struct {
	Kind             string  `yaml:"kind"` // random | momentum
	TradeProbability float64 `yaml:"trade_probability"`
	Seed             int64   `yaml:"seed"`
	TargetRR         float64 `yaml:"target_rr"` // momentum only
}

// AssetsConfig optionally maps symbols to asset classes in-config; when empty
// the CLI resolves classes from the datasource instead.
type AssetsConfig struct {
	Classes map[string]string `yaml:"classes"` // symbol -> STOCK | CRYPTO | FOREX | INDEX
}

// AdvisoryConfig carries free-form feedback strings embedded verbatim in the
// result. Both fields are optional.
type AdvisoryConfig struct {
	StopLossFeedback string   `yaml:"stop_loss_feedback"`
	Optimizations    []string `yaml:"optimizations"`
}

type ReportConfig struct {
	TradesCSV   string `yaml:"trades_csv"` // path, empty disables export
	PrintTrades bool   `yaml:"print_trades"`
}

// Load reads the YAML file and the .env file if present. Values from the
// environment override the YAML for the keys that map to one.
func Load(path string) (*Config, error) {
	// Load .env if present (silence the error when there is none)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	cfg.Run.StartTime, err = time.Parse(dateLayout, cfg.Run.Start)
	if err != nil {
		return nil, fmt.Errorf("config.Load: parse run.start: %w", err)
	}
	cfg.Run.EndTime, err = time.Parse(dateLayout, cfg.Run.End)
	if err != nil {
		return nil, fmt.Errorf("config.Load: parse run.end: %w", err)
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Run.InitialCapital <= 0 {
		cfg.Run.InitialCapital = 100000
	}
	if cfg.Run.Granularity == "" {
		cfg.Run.Granularity = "D"
	}
	if cfg.Signal.Kind == "" {
		cfg.Signal.Kind = "random"
	}
	if cfg.Signal.TradeProbability <= 0 {
		cfg.Signal.TradeProbability = 0.05
	}
	if cfg.Signal.Seed == 0 {
		cfg.Signal.Seed = time.Now().UnixNano()
	}
	if cfg.Signal.TargetRR <= 0 {
		cfg.Signal.TargetRR = 3.0
	}
}
