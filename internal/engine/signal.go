package engine

import (
	"math/rand"
	"sync"

	"github.com/shopspring/decimal"

	"stratsim/types"
)

// Target risk/reward ratios are drawn from [minTargetRR, maxTargetRR).
const (
	minTargetRR = 2.5
	maxTargetRR = 5.0
)

// EntryIntent is a proposal to open a long position on the current bar.
type EntryIntent struct {
	TargetRR float64
}

// SignalSource decides per bar whether a trade is proposed. History holds the
// lookback window of bars preceding the current one, oldest first. A nil
// return means no trade on this bar.
//
// The demo source below is a stochastic placeholder; the simulator only
// depends on this interface, so real signal logic can replace it without
// touching the simulation loop.
type SignalSource interface {
	Evaluate(bar types.Bar, history []types.Bar) *EntryIntent
}

// RandomSignalSource proposes entries with a fixed per-bar probability and a
// target RR uniform in [2.5, 5.0). Safe for concurrent use.
type RandomSignalSource struct {
	mu   sync.Mutex
	rng  *rand.Rand
	prob float64
}

func NewRandomSignalSource(tradeProbability float64, seed int64) *RandomSignalSource {
	return &RandomSignalSource{
		rng:  rand.New(rand.NewSource(seed)),
		prob: tradeProbability,
	}
}

func (s *RandomSignalSource) Evaluate(_ types.Bar, _ []types.Bar) *EntryIntent {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rng.Float64() >= s.prob {
		return nil
	}
	return &EntryIntent{
		TargetRR: minTargetRR + s.rng.Float64()*(maxTargetRR-minTargetRR),
	}
}

// smaClose is the simple moving average of the bars' closes.
func smaClose(bars []types.Bar) decimal.Decimal {
	if len(bars) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, b := range bars {
		sum = sum.Add(b.Close)
	}
	return sum.Div(decimal.NewFromInt(int64(len(bars))))
}

func clampRR(rr float64) float64 {
	if rr < minTargetRR {
		return minTargetRR
	}
	if rr > maxTargetRR {
		return maxTargetRR
	}
	return rr
}
