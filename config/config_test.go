package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stratsim.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalYAML = `
database:
  dsn: postgres://localhost:5432/stratsim
run:
  strategies:
    - id: s1
      name: breakout
      symbols: [AAPL, MSFT]
      stop_loss_pct: 2
  start: "2023-01-01"
  end: "2023-12-31"
`

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, minimalYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Database.DSN != "postgres://localhost:5432/stratsim" {
		t.Errorf("dsn = %q", cfg.Database.DSN)
	}
	if len(cfg.Run.Strategies) != 1 || cfg.Run.Strategies[0].ID != "s1" {
		t.Fatalf("strategies = %+v", cfg.Run.Strategies)
	}
	if got := cfg.Run.Strategies[0].Symbols; len(got) != 2 || got[0] != "AAPL" {
		t.Errorf("symbols = %v", got)
	}

	wantStart := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	if !cfg.Run.StartTime.Equal(wantStart) {
		t.Errorf("start = %s, want %s", cfg.Run.StartTime, wantStart)
	}
	wantEnd := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	if !cfg.Run.EndTime.Equal(wantEnd) {
		t.Errorf("end = %s, want %s", cfg.Run.EndTime, wantEnd)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, minimalYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Run.InitialCapital != 100000 {
		t.Errorf("initial capital default = %v, want 100000", cfg.Run.InitialCapital)
	}
	if cfg.Run.Granularity != "D" {
		t.Errorf("granularity default = %q, want D", cfg.Run.Granularity)
	}
	if cfg.Signal.Kind != "random" {
		t.Errorf("signal kind default = %q, want random", cfg.Signal.Kind)
	}
	if cfg.Signal.TradeProbability != 0.05 {
		t.Errorf("trade probability default = %v, want 0.05", cfg.Signal.TradeProbability)
	}
	if cfg.Signal.Seed == 0 {
		t.Error("seed default should be non-zero")
	}
	if cfg.Signal.TargetRR != 3.0 {
		t.Errorf("target rr default = %v, want 3.0", cfg.Signal.TargetRR)
	}
}

func TestLoad_EnvOverridesDSN(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://override:5432/other")

	cfg, err := Load(writeConfigFile(t, minimalYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.DSN != "postgres://override:5432/other" {
		t.Errorf("dsn = %q, want the environment override", cfg.Database.DSN)
	}
}

func TestLoad_BadDate(t *testing.T) {
	yaml := `
run:
  start: "01/02/2023"
  end: "2023-12-31"
`
	if _, err := Load(writeConfigFile(t, yaml)); err == nil {
		t.Fatal("expected a date parse error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeConfigFile(t, "run: [unclosed")); err == nil {
		t.Fatal("expected a YAML parse error")
	}
}
