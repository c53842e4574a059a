package engine

import (
	"math"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"stratsim/types"
)

func curvePoint(day int, value string, drawdown float64) types.PerformanceDataPoint {
	return types.PerformanceDataPoint{
		Date:     utcDay(day),
		Value:    decimal.RequireFromString(value),
		Drawdown: drawdown,
	}
}

func metricValue(t *testing.T, metrics []types.Metric, label string) float64 {
	t.Helper()
	for _, m := range metrics {
		if m.Label == label {
			return m.Value
		}
	}
	t.Fatalf("metric %q not found in %v", label, metrics)
	return 0
}

func TestComputeMetrics(t *testing.T) {
	cfg := testRunConfig(2.0, 0, "0", false)
	cfg.InitialCapital = decimal.NewFromInt(1000)
	curve := []types.PerformanceDataPoint{
		curvePoint(1, "1100", 0),
		curvePoint(2, "880", 0.2),
	}
	trades := []types.Trade{
		{Outcome: types.OutcomeWin, PnL: decimal.NewFromInt(100), Notional: decimal.NewFromInt(2000), RiskReward: 3, Leverage: 4},
		{Outcome: types.OutcomeLoss, PnL: decimal.NewFromInt(-220), Notional: decimal.NewFromInt(2000), RiskReward: 4, Leverage: 6},
	}

	metrics, summary := computeMetrics(curve, trades, cfg)

	if got := metricValue(t, metrics, "Max Drawdown"); got != 0.2 {
		t.Errorf("max drawdown = %v, want 0.2", got)
	}
	if got := metricValue(t, metrics, "Win Rate"); got != 50 {
		t.Errorf("win rate = %v, want 50", got)
	}

	ann := metricValue(t, metrics, "Annualized Return")
	dd := metricValue(t, metrics, "Downside Deviation")
	if dd <= 0 {
		t.Fatalf("downside deviation = %v, want > 0 (the curve has a losing period)", dd)
	}
	if got, want := metricValue(t, metrics, "Sortino Ratio"), (ann-cfg.RiskFreeRate)/dd; math.Abs(got-want) > 1e-12 {
		t.Errorf("sortino = %v, want %v", got, want)
	}
	if got, want := metricValue(t, metrics, "Calmar Ratio"), ann/0.2; math.Abs(got-want) > 1e-12 {
		t.Errorf("calmar = %v, want %v", got, want)
	}

	if summary.TotalTrades != 2 || summary.Wins != 1 || summary.Losses != 1 {
		t.Errorf("summary counts = %d/%d/%d, want 2/1/1", summary.TotalTrades, summary.Wins, summary.Losses)
	}
	if !summary.AvgWin.Equal(decimal.NewFromInt(100)) {
		t.Errorf("avg win = %s, want 100", summary.AvgWin)
	}
	if !summary.AvgLoss.Equal(decimal.NewFromInt(-220)) {
		t.Errorf("avg loss = %s, want -220 (signed)", summary.AvgLoss)
	}
	if summary.AvgRiskReward != 3.5 {
		t.Errorf("avg rr = %v, want 3.5", summary.AvgRiskReward)
	}
	if summary.AvgLeverage != 5 {
		t.Errorf("avg leverage = %v, want 5", summary.AvgLeverage)
	}
}

func TestComputeMetrics_ZeroDenominators(t *testing.T) {
	cfg := testRunConfig(2.0, 0, "0", false)
	cfg.InitialCapital = decimal.NewFromInt(1000)
	// Monotonically rising curve: no negative returns and no drawdown, so
	// both ratios collapse to 0 instead of dividing by zero.
	curve := []types.PerformanceDataPoint{
		curvePoint(1, "1100", 0),
		curvePoint(2, "1200", 0),
	}

	metrics, _ := computeMetrics(curve, nil, cfg)
	if got := metricValue(t, metrics, "Sortino Ratio"); got != 0 {
		t.Errorf("sortino with no downside = %v, want 0", got)
	}
	if got := metricValue(t, metrics, "Calmar Ratio"); got != 0 {
		t.Errorf("calmar with no drawdown = %v, want 0", got)
	}
	if got := metricValue(t, metrics, "Downside Deviation"); got != 0 {
		t.Errorf("downside deviation = %v, want 0", got)
	}
}

func TestComputeMetrics_EmptyInputs(t *testing.T) {
	cfg := testRunConfig(2.0, 0, "0", false)

	metrics, summary := computeMetrics(nil, nil, cfg)
	for _, m := range metrics {
		if m.Value != 0 {
			t.Errorf("metric %q = %v, want 0 on empty inputs", m.Label, m.Value)
		}
	}
	if summary.TotalTrades != 0 || summary.WinRate != 0 {
		t.Errorf("summary on no trades = %+v, want zeros", summary)
	}
	if !summary.AvgWin.Equal(decimal.Zero) || !summary.AvgNotional.Equal(decimal.Zero) {
		t.Errorf("summary averages on no trades = %+v, want zeros", summary)
	}
}

func TestPeriodReturns(t *testing.T) {
	capital := decimal.NewFromInt(1000)
	curve := []types.PerformanceDataPoint{
		curvePoint(1, "1100", 0),
		curvePoint(2, "550", 0.5),
	}

	returns := periodReturns(curve, capital)
	want := []float64{0.1, -0.5}
	if len(returns) != len(want) {
		t.Fatalf("got %d returns, want %d", len(returns), len(want))
	}
	for i := range want {
		if math.Abs(returns[i]-want[i]) > 1e-12 {
			t.Errorf("return %d = %v, want %v", i, returns[i], want[i])
		}
	}
}

func TestPeriodReturns_SkipsNonPositiveBase(t *testing.T) {
	capital := decimal.NewFromInt(1000)
	curve := []types.PerformanceDataPoint{
		curvePoint(1, "0", 1),
		curvePoint(2, "100", 0.9),
	}

	returns := periodReturns(curve, capital)
	// The second period has a zero base and is skipped entirely.
	if len(returns) != 1 {
		t.Fatalf("got %d returns, want 1", len(returns))
	}
	if returns[0] != -1 {
		t.Errorf("return = %v, want -1", returns[0])
	}
}

func TestCalcAnnualizedReturn(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	// Doubling over exactly one year of daily bars annualizes to +100%.
	curve := []types.PerformanceDataPoint{curvePoint(1, "2000", 0)}
	got := calcAnnualizedReturn(curve, decimal.NewFromInt(1000), 252, 252, &wg)
	if math.Abs(got-1) > 1e-12 {
		t.Errorf("annualized return = %v, want 1", got)
	}
}

func TestCalcDownsideDeviation(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)

	// Only the strictly negative returns contribute: sqrt((0.01+0.04)/2) scaled.
	got := calcDownsideDeviation([]float64{0.3, -0.1, 0, -0.2}, 252, &wg)
	want := math.Sqrt(0.05/2) * math.Sqrt(252)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("downside deviation = %v, want %v", got, want)
	}

	if got := calcDownsideDeviation([]float64{0.1, 0.2}, 252, &wg); got != 0 {
		t.Errorf("downside deviation with no losses = %v, want 0", got)
	}
}

func TestFiniteOrZero(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 1.5, want: 1.5},
		{in: 0, want: 0},
		{in: math.NaN(), want: 0},
		{in: math.Inf(1), want: 0},
		{in: math.Inf(-1), want: 0},
	}

	for _, tc := range tests {
		if got := finiteOrZero(tc.in); got != tc.want {
			t.Errorf("finiteOrZero(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
