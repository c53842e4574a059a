package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"stratsim/types"
)

const assetClassQuery = `
SELECT class, max_leverage
FROM assets
WHERE symbol = $1`

// Lookup resolves a symbol to its asset class and leverage cap.
func (db *Database) Lookup(ctx context.Context, symbol string) (types.AssetClass, error) {
	var (
		class       string
		maxLeverage int32
	)
	err := db.pool.QueryRow(ctx, assetClassQuery, symbol).Scan(&class, &maxLeverage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.AssetClass{}, fmt.Errorf("symbol %s %w", symbol, ErrAssetNotFound)
		}
		return types.AssetClass{}, err
	}
	return types.AssetClass{
		Name:        types.AssetClassName(class),
		MaxLeverage: int(maxLeverage),
	}, nil
}
