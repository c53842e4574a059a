package engine

import (
	"stratsim/types"
)

// assembleResult packages curve, trades, metrics and run configuration into
// one immutable result. It refuses to assemble a partial result from an
// empty curve.
func assembleResult(
	cfg RunConfig,
	curve []types.PerformanceDataPoint,
	trades []types.Trade,
	metrics []types.Metric,
	summary types.Summary,
	advisory types.Advisory,
) (*types.BacktestResult, error) {
	if len(curve) == 0 {
		return nil, ErrEmptyCurve
	}
	return &types.BacktestResult{
		Metrics:         metrics,
		PerformanceData: curve,
		Trades:          trades,
		Summary:         summary,
		Advisory:        advisory,
		Config: types.RunEcho{
			Start:              cfg.Start,
			End:                cfg.End,
			InitialCapital:     cfg.InitialCapital,
			CommissionPerTrade: cfg.CommissionPerTrade,
			SlippagePct:        cfg.SlippagePct,
			Granularity:        cfg.Granularity,
		},
	}, nil
}
