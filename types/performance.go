package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// PerformanceDataPoint is one point of the equity curve. Points are ordered by
// date ascending; the ordering is a correctness invariant since peak and
// drawdown are running computations.
type PerformanceDataPoint struct {
	Date      time.Time       `json:"date"`
	Value     decimal.Decimal `json:"value"`
	Benchmark decimal.Decimal `json:"benchmark"`
	Drawdown  float64         `json:"drawdown"` // fraction in [0, 1]
}
