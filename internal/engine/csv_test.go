package engine

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stratsim/types"
)

func TestWriteTradesCSV(t *testing.T) {
	trades := []types.Trade{
		{
			ID:         "t-1",
			StrategyID: "s1",
			Symbol:     "AAPL",
			EntryTime:  time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
			EntryPrice: decimal.RequireFromString("100.1"),
			ExitPrice:  decimal.RequireFromString("99.9"),
			StopLoss:   decimal.RequireFromString("98.098"),
			TakeProfit: decimal.RequireFromString("106.106"),
			Size:       decimal.RequireFromString("19.98"),
			Notional:   decimal.RequireFromString("2000"),
			Leverage:   4,
			PnL:        decimal.RequireFromString("-4.996"),
			PnLPct:     decimal.RequireFromString("-0.2498"),
			RiskReward: 3,
			Commission: decimal.RequireFromString("1"),
			Slippage:   decimal.RequireFromString("3.996"),
			ExitReason: types.ExitEndOfPeriod,
			Outcome:    types.OutcomeLoss,
		},
	}

	var buf bytes.Buffer
	if err := writeTradesCSV(&buf, trades); err != nil {
		t.Fatalf("writeTradesCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}

	header := records[0]
	if header[0] != "trade_id" || header[len(header)-1] != "outcome" {
		t.Errorf("unexpected header: %v", header)
	}

	row := records[1]
	if len(row) != len(header) {
		t.Fatalf("row has %d fields, header has %d", len(row), len(header))
	}
	checks := map[int]string{
		0:  "t-1",
		1:  "s1",
		2:  "AAPL",
		3:  "2024-01-06T00:00:00Z",
		4:  "100.1",
		5:  "99.9",
		10: "4",
		13: "3",
		16: string(types.ExitEndOfPeriod),
		17: string(types.OutcomeLoss),
	}
	for i, want := range checks {
		if row[i] != want {
			t.Errorf("field %d (%s) = %q, want %q", i, header[i], row[i], want)
		}
	}
}

func TestWriteTradesCSV_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	if err := writeTradesCSV(&buf, nil); err != nil {
		t.Fatalf("writeTradesCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d records", len(records))
	}
}
