package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"stratsim/types"
)

// buildEquityCurve walks the aggregated daily P&L in ascending date order,
// maintaining the running portfolio value and its non-decreasing peak. Dates
// are unique aggregation keys, so ties are impossible.
//
// The benchmark series is rebased to the initial capital via
// capital * price / firstPrice; dates with no benchmark price carry forward
// the last known benchmark value.
func buildEquityCurve(
	daily map[time.Time]decimal.Decimal,
	initialCapital decimal.Decimal,
	benchmarkBars []types.Bar,
) []types.PerformanceDataPoint {
	if len(daily) == 0 {
		return nil
	}

	benchClose := make(map[time.Time]decimal.Decimal, len(benchmarkBars))
	for _, b := range benchmarkBars {
		benchClose[b.Date()] = b.Close
	}

	value := initialCapital
	peak := initialCapital
	benchmark := initialCapital
	var firstPrice decimal.Decimal

	dates := sortedDates(daily)
	curve := make([]types.PerformanceDataPoint, 0, len(dates))
	for _, date := range dates {
		value = value.Add(daily[date])
		if value.GreaterThan(peak) {
			peak = value
		}

		// Losses can push the value below zero because trades are sized
		// against initial capital; the fraction stays within [0, 1].
		drawdown := 0.0
		if peak.GreaterThan(decimal.Zero) {
			drawdown = peak.Sub(value).Div(peak).InexactFloat64()
			if drawdown > 1 {
				drawdown = 1
			}
		}

		if price, ok := benchClose[date]; ok {
			if firstPrice.IsZero() {
				firstPrice = price
			}
			if !firstPrice.IsZero() {
				benchmark = initialCapital.Mul(price).Div(firstPrice)
			}
		}

		curve = append(curve, types.PerformanceDataPoint{
			Date:      date,
			Value:     value,
			Benchmark: benchmark,
			Drawdown:  drawdown,
		})
	}
	return curve
}
