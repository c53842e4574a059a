package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Metric is one label/value pair for presentation.
type Metric struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Summary holds trade-level statistics. Averages over an empty trade list
// are defined as zero.
type Summary struct {
	TotalTrades   int             `json:"totalTrades"`
	Wins          int             `json:"wins"`
	Losses        int             `json:"losses"`
	WinRate       float64         `json:"winRate"` // percent
	AvgWin        decimal.Decimal `json:"avgWin"`
	AvgLoss       decimal.Decimal `json:"avgLoss"`
	AvgRiskReward float64         `json:"avgRiskReward"`
	AvgNotional   decimal.Decimal `json:"avgNotional"`
	AvgLeverage   float64         `json:"avgLeverage"`
}

// Advisory carries free-form feedback strings embedded verbatim in the result.
// The engine never parses them.
type Advisory struct {
	StopLossFeedback string   `json:"stopLossFeedback"`
	Optimizations    []string `json:"optimizations"`
}

// RunEcho is the run configuration echoed back in the result.
type RunEcho struct {
	Start              time.Time       `json:"start"`
	End                time.Time       `json:"end"`
	InitialCapital     decimal.Decimal `json:"initialCapital"`
	CommissionPerTrade decimal.Decimal `json:"commissionPerTrade"`
	SlippagePct        float64         `json:"slippagePct"`
	Granularity        Granularity     `json:"granularity"`
}

// BacktestResult is the immutable aggregate of one run. A fresh run produces
// a fresh result; nothing mutates it after assembly.
type BacktestResult struct {
	Metrics         []Metric               `json:"metrics"`
	PerformanceData []PerformanceDataPoint `json:"performanceData"`
	Trades          []Trade                `json:"trades"`
	Summary         Summary                `json:"summary"`
	Config          RunEcho                `json:"config"`
	Advisory        Advisory               `json:"advisory"`
}
