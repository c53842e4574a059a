package engine

import (
	"math"
	"sync"

	"github.com/shopspring/decimal"

	"stratsim/types"
)

// riskReport collects the computed risk/return figures before they are
// flattened into metric label/value pairs.
type riskReport struct {
	annualizedReturn  float64
	downsideDeviation float64
	sortino           float64
	calmar            float64
	maxDrawdown       float64
	summary           types.Summary
}

// computeMetrics derives the risk metrics and the trade summary from the
// equity curve and trade list. The independent calculations fan out across
// goroutines writing disjoint report fields; the two ratios that combine
// their outputs run after the join.
//
// Every numeric degenerate case (division by zero, NaN, infinity) is
// recovered locally by substituting 0, never surfaced as an error.
func computeMetrics(curve []types.PerformanceDataPoint, trades []types.Trade, cfg RunConfig) ([]types.Metric, types.Summary) {
	returns := periodReturns(curve, cfg.InitialCapital)
	barsPerYear := cfg.Granularity.BarsPerYear()

	r := &riskReport{}
	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		r.maxDrawdown = calcMaxDrawdown(curve, &wg)
	}()
	go func() {
		r.annualizedReturn = calcAnnualizedReturn(curve, cfg.InitialCapital, barsPerYear, len(returns), &wg)
	}()
	go func() {
		r.downsideDeviation = calcDownsideDeviation(returns, barsPerYear, &wg)
	}()
	go func() {
		r.summary = calcSummary(trades, &wg)
	}()
	wg.Wait()

	if r.downsideDeviation != 0 {
		r.sortino = finiteOrZero((r.annualizedReturn - cfg.RiskFreeRate) / r.downsideDeviation)
	}
	if r.maxDrawdown != 0 {
		r.calmar = finiteOrZero(r.annualizedReturn / r.maxDrawdown)
	}

	metrics := []types.Metric{
		{Label: "Annualized Return", Value: r.annualizedReturn},
		{Label: "Sortino Ratio", Value: r.sortino},
		{Label: "Calmar Ratio", Value: r.calmar},
		{Label: "Max Drawdown", Value: r.maxDrawdown},
		{Label: "Downside Deviation", Value: r.downsideDeviation},
		{Label: "Win Rate", Value: r.summary.WinRate},
	}
	return metrics, r.summary
}

// periodReturns computes per-period returns along the curve with the initial
// capital as the base of the first period. Non-positive bases are skipped.
func periodReturns(curve []types.PerformanceDataPoint, initialCapital decimal.Decimal) []float64 {
	returns := make([]float64, 0, len(curve))
	prev := initialCapital
	for _, p := range curve {
		if prev.GreaterThan(decimal.Zero) {
			returns = append(returns, finiteOrZero(p.Value.Div(prev).InexactFloat64()-1))
		}
		prev = p.Value
	}
	return returns
}

// calcMaxDrawdown is the maximum of the per-point drawdown field.
func calcMaxDrawdown(curve []types.PerformanceDataPoint, wg *sync.WaitGroup) float64 {
	defer wg.Done()

	maxDD := 0.0
	for _, p := range curve {
		if p.Drawdown > maxDD {
			maxDD = p.Drawdown
		}
	}
	return maxDD
}

// calcAnnualizedReturn is (final/initial)^(barsPerYear/numReturns) - 1.
func calcAnnualizedReturn(
	curve []types.PerformanceDataPoint,
	initialCapital decimal.Decimal,
	barsPerYear, numReturns int,
	wg *sync.WaitGroup,
) float64 {
	defer wg.Done()

	if len(curve) == 0 || numReturns == 0 || !initialCapital.GreaterThan(decimal.Zero) {
		return 0
	}
	ratio := curve[len(curve)-1].Value.Div(initialCapital).InexactFloat64()
	if ratio <= 0 {
		return 0
	}
	exponent := float64(barsPerYear) / float64(numReturns)
	return finiteOrZero(math.Pow(ratio, exponent) - 1)
}

// calcDownsideDeviation is sqrt(mean(negativeReturn^2)) * sqrt(barsPerYear),
// computed only over strictly negative per-period returns. No negative
// returns means zero deviation (and, downstream, a Sortino of 0 rather than
// a non-finite value).
func calcDownsideDeviation(returns []float64, barsPerYear int, wg *sync.WaitGroup) float64 {
	defer wg.Done()

	sumSq := 0.0
	n := 0
	for _, r := range returns {
		if r < 0 {
			sumSq += r * r
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return finiteOrZero(math.Sqrt(sumSq/float64(n)) * math.Sqrt(float64(barsPerYear)))
}

func calcSummary(trades []types.Trade, wg *sync.WaitGroup) types.Summary {
	defer wg.Done()

	s := types.Summary{
		TotalTrades: len(trades),
		AvgWin:      decimal.Zero,
		AvgLoss:     decimal.Zero,
		AvgNotional: decimal.Zero,
	}
	if len(trades) == 0 {
		return s
	}

	sumWin := decimal.Zero
	sumLoss := decimal.Zero
	sumNotional := decimal.Zero
	sumRR := 0.0
	sumLeverage := 0.0

	for _, t := range trades {
		if t.Outcome == types.OutcomeWin {
			s.Wins++
			sumWin = sumWin.Add(t.PnL)
		} else {
			s.Losses++
			sumLoss = sumLoss.Add(t.PnL)
		}
		sumNotional = sumNotional.Add(t.Notional)
		sumRR += t.RiskReward
		sumLeverage += float64(t.Leverage)
	}

	n := decimal.NewFromInt(int64(len(trades)))
	s.WinRate = float64(s.Wins) / float64(len(trades)) * 100
	if s.Wins > 0 {
		s.AvgWin = sumWin.Div(decimal.NewFromInt(int64(s.Wins)))
	}
	if s.Losses > 0 {
		s.AvgLoss = sumLoss.Div(decimal.NewFromInt(int64(s.Losses)))
	}
	s.AvgRiskReward = sumRR / float64(len(trades))
	s.AvgNotional = sumNotional.Div(n)
	s.AvgLeverage = sumLeverage / float64(len(trades))
	return s
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
