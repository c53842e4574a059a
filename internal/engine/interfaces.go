package engine

import (
	"context"
	"time"

	"stratsim/types"
)

// BarProvider supplies historical bars per symbol. A provider may return an
// empty slice for a symbol it cannot serve; that symbol is skipped.
type BarProvider interface {
	GetBars(ctx context.Context, symbols []string, start, end time.Time, g types.Granularity) (map[string][]types.Bar, error)
}

// AssetLookup resolves a symbol to its asset class and leverage cap.
type AssetLookup interface {
	Lookup(ctx context.Context, symbol string) (types.AssetClass, error)
}

// AdvisoryProvider returns free-form feedback strings embedded verbatim in
// the result. Optional collaborator: the engine accepts a nil provider.
type AdvisoryProvider interface {
	Advise(ctx context.Context, cfg RunConfig) (types.Advisory, error)
}
