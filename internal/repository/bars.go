package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"stratsim/types"
)

var bucketForGranularity = map[types.Granularity]string{
	types.Hourly:    "1 hour",
	types.FourHours: "4 hours",
	types.Daily:     "1 day",
	types.Weekly:    "1 week",
}

const barsQuery = `
SELECT time_bucket($1::interval, b.ts) AS bucket,
       first(b.open, b.ts)             AS open,
       max(b.high)                     AS high,
       min(b.low)                      AS low,
       last(b.close, b.ts)             AS close,
       sum(b.volume)                   AS volume
FROM bars b
JOIN assets a ON a.id = b.asset_id
WHERE a.symbol = $2
  AND b.ts >= $3
  AND b.ts < $4
GROUP BY bucket
ORDER BY bucket`

// GetBars fetches time-bucketed OHLCV aggregates for each symbol. A symbol
// with no rows maps to an empty slice rather than an error; the engine skips
// such symbols.
func (db *Database) GetBars(
	ctx context.Context,
	symbols []string,
	start, end time.Time,
	g types.Granularity,
) (map[string][]types.Bar, error) {
	bucket, ok := bucketForGranularity[g]
	if !ok {
		return nil, ErrGranularityNotSupported
	}

	out := make(map[string][]types.Bar, len(symbols))
	for _, symbol := range symbols {
		rows, err := db.pool.Query(ctx, barsQuery, bucket, symbol, start, end)
		if err != nil {
			return nil, fmt.Errorf("query bars for %s: %w", symbol, err)
		}
		bars, err := scanBars(rows, symbol)
		if err != nil {
			return nil, fmt.Errorf("scan bars for %s: %w", symbol, err)
		}
		out[symbol] = bars
	}
	return out, nil
}

func scanBars(rows pgx.Rows, symbol string) ([]types.Bar, error) {
	defer rows.Close()

	var bars []types.Bar
	for rows.Next() {
		var (
			ts                        time.Time
			open, high, low, cls, vol decimal.Decimal
		)
		if err := rows.Scan(&ts, &open, &high, &low, &cls, &vol); err != nil {
			return nil, err
		}
		bars = append(bars, types.Bar{
			Symbol:    symbol,
			Open:      open,
			High:      high,
			Low:       low,
			Close:     cls,
			Volume:    vol,
			Timestamp: ts,
		})
	}
	return bars, rows.Err()
}
