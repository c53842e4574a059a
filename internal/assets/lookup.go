// Package assets provides an in-memory asset-class lookup for runs that do
// not carry a classification table in the datasource.
package assets

import (
	"context"

	"stratsim/types"
)

// DefaultClasses are the built-in leverage caps per asset class.
var DefaultClasses = map[types.AssetClassName]types.AssetClass{
	types.AssetClassStock:  {Name: types.AssetClassStock, MaxLeverage: 5},
	types.AssetClassCrypto: {Name: types.AssetClassCrypto, MaxLeverage: 10},
	types.AssetClassForex:  {Name: types.AssetClassForex, MaxLeverage: 30},
	types.AssetClassIndex:  {Name: types.AssetClassIndex, MaxLeverage: 20},
}

// StaticLookup maps symbols to asset classes from a fixed table, falling back
// to a default class for unknown symbols.
type StaticLookup struct {
	classes  map[string]types.AssetClass
	fallback types.AssetClass
}

func NewStaticLookup(classes map[string]types.AssetClass, fallback types.AssetClass) *StaticLookup {
	return &StaticLookup{
		classes:  classes,
		fallback: fallback,
	}
}

// NewStaticLookupByClass builds a lookup from symbol -> class-name pairs
// using the default leverage caps. Stocks are the fallback.
func NewStaticLookupByClass(symbolClasses map[string]types.AssetClassName) *StaticLookup {
	classes := make(map[string]types.AssetClass, len(symbolClasses))
	for sym, name := range symbolClasses {
		if class, ok := DefaultClasses[name]; ok {
			classes[sym] = class
		}
	}
	return NewStaticLookup(classes, DefaultClasses[types.AssetClassStock])
}

func (l *StaticLookup) Lookup(_ context.Context, symbol string) (types.AssetClass, error) {
	if class, ok := l.classes[symbol]; ok {
		return class, nil
	}
	return l.fallback, nil
}
