package engine

import "errors"

// Structural absence of data is fatal; numeric degeneracy inside the metrics
// calculator is recovered locally and never surfaced as an error.
var (
	ErrNoStrategies  = errors.New("no strategies selected")
	ErrNoSymbols     = errors.New("no symbols resolvable for any selected strategy")
	ErrInvalidConfig = errors.New("invalid run configuration")
	ErrNoData        = errors.New("no usable price data for any requested symbol")
	ErrNoTrades      = errors.New("simulation produced no trades")
	ErrEmptyCurve    = errors.New("cannot assemble result from an empty performance curve")
)
