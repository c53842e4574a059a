package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"

	"stratsim/types"
)

// trendLookback is the number of prior closes feeding the trend filter; a
// symbol needs at least one bar beyond it to be simulated at all.
const trendLookback = 5

var hundred = decimal.NewFromInt(100)

// simulator iterates historical bars per (strategy, symbol) pair and emits
// completed trades. Symbols are independent, so each pair runs on its own
// goroutine and the per-pair trade lists merge by concatenation; chronological
// order within a symbol's own sequence is preserved.
type simulator struct {
	cfg    RunConfig
	assets AssetLookup
	signal SignalSource
	bars   map[string][]types.Bar
}

func newSimulator(cfg RunConfig, assets AssetLookup, signal SignalSource, bars map[string][]types.Bar) *simulator {
	return &simulator{
		cfg:    cfg,
		assets: assets,
		signal: signal,
		bars:   bars,
	}
}

func (s *simulator) run(ctx context.Context) ([]types.Trade, error) {
	type pair struct {
		strat  types.StrategyConfig
		symbol string
	}

	var pairs []pair
	totalBars := 0
	for _, strat := range s.cfg.Strategies {
		for _, sym := range strat.Symbols {
			pairs = append(pairs, pair{strat: strat, symbol: sym})
			if n := len(s.bars[sym]); n > trendLookback {
				totalBars += n - trendLookback
			}
		}
	}

	progress := initProgressBar(totalBars)
	results := make([][]types.Trade, len(pairs))
	errs := make([]error, len(pairs))

	var wg sync.WaitGroup
	for i, p := range pairs {
		wg.Add(1)
		go func(i int, p pair) {
			defer wg.Done()
			results[i], errs[i] = s.runSymbol(ctx, p.strat, p.symbol, s.bars[p.symbol], progress)
		}(i, p)
	}
	wg.Wait()

	var trades []types.Trade
	for i := range pairs {
		if errs[i] != nil {
			return nil, errs[i]
		}
		trades = append(trades, results[i]...)
	}
	return trades, nil
}

// runSymbol walks one symbol's bars for one strategy. A symbol with fewer
// bars than the lookback window is skipped entirely; that is not an error.
func (s *simulator) runSymbol(
	ctx context.Context,
	strat types.StrategyConfig,
	symbol string,
	bars []types.Bar,
	progress *progressbar.ProgressBar,
) ([]types.Trade, error) {
	if len(bars) <= trendLookback {
		return nil, nil
	}

	class, err := s.assets.Lookup(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("asset lookup %s: %w", symbol, err)
	}

	slipIn := decimal.NewFromFloat(1 + s.cfg.SlippagePct/100)
	slipOut := decimal.NewFromFloat(1 - s.cfg.SlippagePct/100)
	stopFactor := decimal.NewFromFloat(1 - strat.StopLossPct/100)
	notional := s.cfg.InitialCapital.Mul(s.cfg.positionPct())

	var trades []types.Trade
	for i := trendLookback; i < len(bars); i++ {
		_ = progress.Add(1)

		bar := bars[i]
		// A non-positive open cannot price an entry; sizing divides by it.
		if !bar.Open.IsPositive() {
			continue
		}
		history := bars[i-trendLookback : i]

		intent := s.signal.Evaluate(bar, history)
		if intent == nil {
			continue
		}
		// Long-only trend bias: require the close above the short moving
		// average of the prior closes.
		if s.cfg.TrendBias && !bar.Close.GreaterThan(smaClose(history)) {
			continue
		}

		trades = append(trades, s.resolveTrade(strat, class, symbol, bar, intent, slipIn, slipOut, stopFactor, notional))
	}
	return trades, nil
}

// resolveTrade opens a position on the bar's open and resolves its exit
// against the same bar's high/low. The stop-loss check precedes the
// take-profit check: when both levels fall inside the bar, assume the worse
// outcome hit first.
func (s *simulator) resolveTrade(
	strat types.StrategyConfig,
	class types.AssetClass,
	symbol string,
	bar types.Bar,
	intent *EntryIntent,
	slipIn, slipOut, stopFactor, notional decimal.Decimal,
) types.Trade {
	rr := clampRR(intent.TargetRR)

	entry := bar.Open.Mul(slipIn)
	stop := entry.Mul(stopFactor)
	take := entry.Add(entry.Sub(stop).Mul(decimal.NewFromFloat(rr)))

	var exitRaw decimal.Decimal
	var reason types.ExitReason
	switch {
	case !bar.Low.GreaterThan(stop):
		exitRaw, reason = stop, types.ExitStopLoss
	case !bar.High.LessThan(take):
		exitRaw, reason = take, types.ExitTakeProfit
	default:
		exitRaw, reason = bar.Close, types.ExitEndOfPeriod
	}
	exit := exitRaw.Mul(slipOut)

	size := notional.Div(entry)
	pnl := exit.Sub(entry).Mul(size).Sub(s.cfg.CommissionPerTrade)
	pnlPct := pnl.Div(notional).Mul(hundred)
	slippage := entry.Sub(bar.Open).Add(exitRaw.Sub(exit)).Mul(size)

	outcome := types.OutcomeLoss
	if pnl.GreaterThan(decimal.Zero) {
		outcome = types.OutcomeWin
	}

	return types.Trade{
		ID:         uuid.NewString(),
		StrategyID: strat.ID,
		Symbol:     symbol,
		EntryTime:  bar.Timestamp,
		EntryPrice: entry,
		ExitPrice:  exit,
		StopLoss:   stop,
		TakeProfit: take,
		Size:       size,
		Notional:   notional,
		Leverage:   leverageFor(rr, class.MaxLeverage),
		PnL:        pnl,
		PnLPct:     pnlPct,
		RiskReward: rr,
		Commission: s.cfg.CommissionPerTrade,
		Slippage:   slippage,
		ExitReason: reason,
		Outcome:    outcome,
	}
}

func initProgressBar(maxTicks int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Simulating trades..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
