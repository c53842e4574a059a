package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"stratsim/types"
)

// WriteTradesCSVFile writes the result's trade list to a CSV file at the
// given path.
func WriteTradesCSVFile(path string, trades []types.Trade) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trades file: %w", err)
	}
	defer f.Close()

	return writeTradesCSV(f, trades)
}

// writeTradesCSV writes trades to any io.Writer as CSV. Pass os.Stdout for
// debugging, or a file.
func writeTradesCSV(w io.Writer, trades []types.Trade) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"trade_id",
		"strategy_id",
		"symbol",
		"entry_time", // RFC3339
		"entry_price",
		"exit_price",
		"stop_loss",
		"take_profit",
		"size",
		"notional",
		"leverage",
		"pnl",
		"pnl_pct",
		"risk_reward",
		"commission",
		"slippage",
		"exit_reason",
		"outcome",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, t := range trades {
		record := []string{
			t.ID,
			t.StrategyID,
			t.Symbol,
			t.EntryTime.Format(time.RFC3339),
			t.EntryPrice.String(),
			t.ExitPrice.String(),
			t.StopLoss.String(),
			t.TakeProfit.String(),
			t.Size.String(),
			t.Notional.String(),
			strconv.Itoa(t.Leverage),
			t.PnL.String(),
			t.PnLPct.String(),
			strconv.FormatFloat(t.RiskReward, 'f', -1, 64),
			t.Commission.String(),
			t.Slippage.String(),
			string(t.ExitReason),
			string(t.Outcome),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
