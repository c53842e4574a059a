package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExitReason string

const (
	ExitTakeProfit  ExitReason = "TAKE_PROFIT"
	ExitStopLoss    ExitReason = "STOP_LOSS"
	ExitEndOfPeriod ExitReason = "END_OF_PERIOD"
)

type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLoss Outcome = "LOSS"
)

// Trade is a completed simulated position. It is created exactly once by the
// simulator when a bar resolves an open position and is immutable thereafter.
type Trade struct {
	ID         string          `json:"id"`
	StrategyID string          `json:"strategyId"`
	Symbol     string          `json:"symbol"`
	EntryTime  time.Time       `json:"entryTime"`
	EntryPrice decimal.Decimal `json:"entryPrice"`
	ExitPrice  decimal.Decimal `json:"exitPrice"`
	StopLoss   decimal.Decimal `json:"stopLoss"`
	TakeProfit decimal.Decimal `json:"takeProfit"`
	Size       decimal.Decimal `json:"size"`     // units
	Notional   decimal.Decimal `json:"notional"` // currency committed at entry
	Leverage   int             `json:"leverage"` // >= 1
	PnL        decimal.Decimal `json:"pnl"`      // net of commission
	PnLPct     decimal.Decimal `json:"pnlPct"`
	RiskReward float64         `json:"riskReward"`
	Commission decimal.Decimal `json:"commission"`
	Slippage   decimal.Decimal `json:"slippage"` // currency lost to slippage on both legs
	ExitReason ExitReason      `json:"exitReason"`
	Outcome    Outcome         `json:"outcome"` // WIN iff PnL > 0
}
