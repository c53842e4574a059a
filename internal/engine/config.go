package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"stratsim/types"
)

const defaultPositionPct = 0.02

// RunConfig enumerates everything one backtest run needs. Collaborator
// implementations (bar provider, asset lookup, signal source) are passed to
// NewEngine separately.
type RunConfig struct {
	Strategies         []types.StrategyConfig
	Start              time.Time
	End                time.Time
	InitialCapital     decimal.Decimal
	CommissionPerTrade decimal.Decimal
	SlippagePct        float64
	TrendBias          bool
	Granularity        types.Granularity
	BenchmarkSymbol    string

	// PositionPct is the fraction of initial capital committed per trade.
	// The reference sizing rule is fixed per trade regardless of how many
	// positions are open on the same date, which can imply leverage beyond
	// the per-trade cap. Preserved as a known limitation.
	PositionPct float64

	// RiskFreeRate is the annual rate subtracted in the Sortino numerator.
	RiskFreeRate float64
}

// NewRunConfig fills defaults for optional knobs.
func NewRunConfig(
	strategies []types.StrategyConfig,
	start, end time.Time,
	initialCapital decimal.Decimal,
	commissionPerTrade decimal.Decimal,
	slippagePct float64,
	trendBias bool,
	granularity types.Granularity,
	benchmarkSymbol string,
) RunConfig {
	return RunConfig{
		Strategies:         strategies,
		Start:              start,
		End:                end,
		InitialCapital:     initialCapital,
		CommissionPerTrade: commissionPerTrade,
		SlippagePct:        slippagePct,
		TrendBias:          trendBias,
		Granularity:        granularity,
		BenchmarkSymbol:    benchmarkSymbol,
		PositionPct:        defaultPositionPct,
	}
}

func (c RunConfig) validate() error {
	if len(c.Strategies) == 0 {
		return ErrNoStrategies
	}
	if len(c.symbolUniverse()) == 0 {
		return ErrNoSymbols
	}
	if !c.InitialCapital.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: initial capital must be > 0", ErrInvalidConfig)
	}
	if c.CommissionPerTrade.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: commission per trade must be >= 0", ErrInvalidConfig)
	}
	if c.SlippagePct < 0 {
		return fmt.Errorf("%w: slippage percent must be >= 0", ErrInvalidConfig)
	}
	if !c.End.After(c.Start) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidConfig)
	}
	for _, s := range c.Strategies {
		if s.StopLossPct <= 0 {
			return fmt.Errorf("%w: strategy %s: stop-loss percent must be > 0", ErrInvalidConfig, s.ID)
		}
	}
	return nil
}

// symbolUniverse returns the deduplicated union of all strategies' symbols,
// preserving first-seen order.
func (c RunConfig) symbolUniverse() []string {
	seen := make(map[string]bool)
	var symbols []string
	for _, s := range c.Strategies {
		for _, sym := range s.Symbols {
			if sym == "" || seen[sym] {
				continue
			}
			seen[sym] = true
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

func (c RunConfig) positionPct() decimal.Decimal {
	pct := c.PositionPct
	if pct <= 0 {
		pct = defaultPositionPct
	}
	return decimal.NewFromFloat(pct)
}
