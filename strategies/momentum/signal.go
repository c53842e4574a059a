// Package momentum is a deterministic breakout signal source: it proposes an
// entry when the bar's close breaks above the highest high of the lookback
// window. It exists to show the engine running on real signal logic instead
// of the stochastic placeholder.
package momentum

import (
	"github.com/shopspring/decimal"

	"stratsim/internal/engine"
	"stratsim/types"
)

type Signal struct {
	targetRR float64
}

func New(targetRR float64) *Signal {
	return &Signal{targetRR: targetRR}
}

func (s *Signal) Evaluate(bar types.Bar, history []types.Bar) *engine.EntryIntent {
	if len(history) == 0 {
		return nil
	}
	if !bar.Close.GreaterThan(highestHigh(history)) {
		return nil
	}
	return &engine.EntryIntent{TargetRR: s.targetRR}
}

func highestHigh(bars []types.Bar) decimal.Decimal {
	highest := bars[0].High
	for _, b := range bars[1:] {
		if b.High.GreaterThan(highest) {
			highest = b.High
		}
	}
	return highest
}
