package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bar is one OHLCV observation for a symbol at a timestamp.
// Invariant: Low <= min(Open, Close) <= max(Open, Close) <= High.
type Bar struct {
	Symbol    string          `json:"symbol"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    decimal.Decimal `json:"volume"`
	Timestamp time.Time       `json:"timestamp"`
}

// Date returns the bar's timestamp truncated to its UTC calendar day.
// Used as the aggregation key for daily P&L.
func (b Bar) Date() time.Time {
	t := b.Timestamp.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
