// Package advisory provides a canned advisory-text provider. The engine
// embeds the strings verbatim in the result and never parses them.
package advisory

import (
	"context"

	"stratsim/internal/engine"
	"stratsim/types"
)

// Static returns the configured feedback strings for every run.
type Static struct {
	StopLossFeedback string
	Optimizations    []string
}

func NewStatic(stopLossFeedback string, optimizations []string) *Static {
	return &Static{
		StopLossFeedback: stopLossFeedback,
		Optimizations:    optimizations,
	}
}

func (s *Static) Advise(_ context.Context, _ engine.RunConfig) (types.Advisory, error) {
	return types.Advisory{
		StopLossFeedback: s.StopLossFeedback,
		Optimizations:    s.Optimizations,
	}, nil
}
