package engine

import (
	"context"
	"fmt"
	"sync"

	"stratsim/types"
)

// Engine runs one backtest: validate input, fetch bars and advisory text,
// simulate trades, fold daily P&L, build the equity curve, derive risk
// metrics and assemble the result.
type Engine struct {
	cfg      RunConfig
	bars     BarProvider
	assets   AssetLookup
	signal   SignalSource
	advisory AdvisoryProvider
}

// NewEngine wires the collaborators. advisory may be nil.
func NewEngine(cfg RunConfig, bars BarProvider, assets AssetLookup, signal SignalSource, advisory AdvisoryProvider) *Engine {
	return &Engine{
		cfg:      cfg,
		bars:     bars,
		assets:   assets,
		signal:   signal,
		advisory: advisory,
	}
}

// Run executes the backtest. Input errors are reported before any simulation
// work begins. A run either completes and produces a result or fails
// outright; there is no partial result.
func (e *Engine) Run(ctx context.Context) (*types.BacktestResult, error) {
	if err := e.cfg.validate(); err != nil {
		return nil, err
	}

	symbols := e.cfg.symbolUniverse()
	fetchSymbols := symbols
	if b := e.cfg.BenchmarkSymbol; b != "" && !contains(symbols, b) {
		fetchSymbols = append(append([]string{}, symbols...), b)
	}

	// The bar fetch and the advisory fetch are independent; run them in
	// parallel and join before the simulator starts.
	var (
		wg          sync.WaitGroup
		bars        map[string][]types.Bar
		barsErr     error
		advisory    types.Advisory
		advisoryErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		bars, barsErr = e.bars.GetBars(ctx, fetchSymbols, e.cfg.Start, e.cfg.End, e.cfg.Granularity)
	}()
	if e.advisory != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			advisory, advisoryErr = e.advisory.Advise(ctx, e.cfg)
		}()
	}
	wg.Wait()
	if barsErr != nil {
		return nil, fmt.Errorf("fetch bars: %w", barsErr)
	}
	if advisoryErr != nil {
		return nil, fmt.Errorf("fetch advisory: %w", advisoryErr)
	}

	// Symbols with too few bars are skipped individually, but every symbol
	// coming up short means there is nothing to simulate.
	usable := false
	for _, sym := range symbols {
		if len(bars[sym]) > trendLookback {
			usable = true
			break
		}
	}
	if !usable {
		return nil, ErrNoData
	}

	trades, err := newSimulator(e.cfg, e.assets, e.signal, bars).run(ctx)
	if err != nil {
		return nil, err
	}
	if len(trades) == 0 {
		return nil, ErrNoTrades
	}

	daily := aggregateDailyPnL(trades)
	curve := buildEquityCurve(daily, e.cfg.InitialCapital, bars[e.cfg.BenchmarkSymbol])
	metrics, summary := computeMetrics(curve, trades, e.cfg)

	return assembleResult(e.cfg, curve, trades, metrics, summary, advisory)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
