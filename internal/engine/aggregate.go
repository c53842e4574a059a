package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"stratsim/types"
)

// aggregateDailyPnL folds all trades into a date-keyed running total,
// independent of how many symbols or strategies contributed. Decimal addition
// keeps the fold exact, and commutativity makes it order-independent.
func aggregateDailyPnL(trades []types.Trade) map[time.Time]decimal.Decimal {
	daily := make(map[time.Time]decimal.Decimal)
	for _, t := range trades {
		date := tradeDate(t)
		daily[date] = daily[date].Add(t.PnL)
	}
	return daily
}

func tradeDate(t types.Trade) time.Time {
	ts := t.EntryTime.UTC()
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
}

func sortedDates(daily map[time.Time]decimal.Decimal) []time.Time {
	dates := make([]time.Time, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
