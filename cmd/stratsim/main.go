package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"stratsim/config"
	"stratsim/internal/advisory"
	"stratsim/internal/assets"
	"stratsim/internal/engine"
	"stratsim/internal/repository"
	"stratsim/strategies/momentum"
	"stratsim/types"
)

func main() {
	configPath := flag.String("config", "stratsim.yaml", "path to the run configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	db, err := repository.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	eng := engine.NewEngine(
		buildRunConfig(cfg),
		db,
		buildLookup(cfg, db),
		buildSignal(cfg),
		buildAdvisory(cfg),
	)

	result, err := eng.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	printResult(result)
	if cfg.Report.PrintTrades {
		printTrades(result.Trades)
	}
	if cfg.Report.TradesCSV != "" {
		if err := engine.WriteTradesCSVFile(cfg.Report.TradesCSV, result.Trades); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("trades written to %s\n", cfg.Report.TradesCSV)
	}
}

func buildRunConfig(cfg *config.Config) engine.RunConfig {
	strategies := make([]types.StrategyConfig, 0, len(cfg.Run.Strategies))
	for _, s := range cfg.Run.Strategies {
		strategies = append(strategies, types.StrategyConfig{
			ID:          s.ID,
			Name:        s.Name,
			Indicators:  s.Indicators,
			Symbols:     s.Symbols,
			StopLossPct: s.StopLossPct,
		})
	}

	g, ok := types.ConvertGranularity[cfg.Run.Granularity]
	if !ok {
		g = types.Daily
	}

	rc := engine.NewRunConfig(
		strategies,
		cfg.Run.StartTime,
		cfg.Run.EndTime,
		decimal.NewFromFloat(cfg.Run.InitialCapital),
		decimal.NewFromFloat(cfg.Run.Commission),
		cfg.Run.SlippagePct,
		cfg.Run.TrendBias,
		g,
		cfg.Run.Benchmark,
	)
	rc.RiskFreeRate = cfg.Run.RiskFreeRate
	return rc
}

func buildSignal(cfg *config.Config) engine.SignalSource {
	if cfg.Signal.Kind == "momentum" {
		return momentum.New(cfg.Signal.TargetRR)
	}
	return engine.NewRandomSignalSource(cfg.Signal.TradeProbability, cfg.Signal.Seed)
}

func buildLookup(cfg *config.Config, db *repository.Database) engine.AssetLookup {
	if len(cfg.Assets.Classes) == 0 {
		return db
	}
	classes := make(map[string]types.AssetClassName, len(cfg.Assets.Classes))
	for sym, class := range cfg.Assets.Classes {
		classes[sym] = types.AssetClassName(strings.ToUpper(class))
	}
	return assets.NewStaticLookupByClass(classes)
}

func buildAdvisory(cfg *config.Config) engine.AdvisoryProvider {
	if cfg.Advisory.StopLossFeedback == "" && len(cfg.Advisory.Optimizations) == 0 {
		return nil
	}
	return advisory.NewStatic(cfg.Advisory.StopLossFeedback, cfg.Advisory.Optimizations)
}

func printResult(result *types.BacktestResult) {
	fmt.Printf("\n===== Backtest Report =====\n")
	fmt.Printf("Period:          %s -> %s\n",
		result.Config.Start.Format("2006-01-02"),
		result.Config.End.Format("2006-01-02"))
	fmt.Printf("Initial Capital: %s\n", result.Config.InitialCapital)
	fmt.Printf("Final Value:     %s\n",
		result.PerformanceData[len(result.PerformanceData)-1].Value.StringFixed(2))
	fmt.Println()

	metrics := tablewriter.NewWriter(os.Stdout)
	metrics.Header("Metric", "Value")
	for _, m := range result.Metrics {
		metrics.Append(m.Label, fmt.Sprintf("%.4f", m.Value))
	}
	metrics.Render()

	fmt.Println()
	summary := tablewriter.NewWriter(os.Stdout)
	summary.Header("Trades", "Wins", "Losses", "Win Rate", "Avg Win", "Avg Loss", "Avg RR", "Avg Notional", "Avg Lev")
	s := result.Summary
	summary.Append(
		fmt.Sprintf("%d", s.TotalTrades),
		fmt.Sprintf("%d", s.Wins),
		fmt.Sprintf("%d", s.Losses),
		fmt.Sprintf("%.2f%%", s.WinRate),
		s.AvgWin.StringFixed(2),
		s.AvgLoss.StringFixed(2),
		fmt.Sprintf("%.2f", s.AvgRiskReward),
		s.AvgNotional.StringFixed(2),
		fmt.Sprintf("%.2f", s.AvgLeverage),
	)
	summary.Render()

	if result.Advisory.StopLossFeedback != "" {
		fmt.Printf("\nStop-loss feedback: %s\n", result.Advisory.StopLossFeedback)
	}
	for _, opt := range result.Advisory.Optimizations {
		fmt.Printf("  - %s\n", opt)
	}
}

func printTrades(trades []types.Trade) {
	fmt.Println()
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Symbol", "Entry", "Exit", "Size", "Lev", "PnL", "Reason", "Outcome")
	for _, t := range trades {
		table.Append(
			t.Symbol,
			t.EntryPrice.StringFixed(4),
			t.ExitPrice.StringFixed(4),
			t.Size.StringFixed(4),
			fmt.Sprintf("%d", t.Leverage),
			t.PnL.StringFixed(2),
			string(t.ExitReason),
			string(t.Outcome),
		)
	}
	table.Render()
}
