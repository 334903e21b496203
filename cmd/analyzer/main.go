// Command analyzer runs the inventory analysis pipeline over a single
// .xlsx/.csv dataset and writes the derived usage table, predicted
// replenishment events, and an optional per-item price projection as CSV.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"oeminv/internal/analysis"
	"oeminv/internal/config"
	"oeminv/internal/dataload"
	"oeminv/internal/exporter"
)

func main() {
	var (
		in            = flag.String("in", "", "input dataset file (.xlsx or .csv)")
		out           = flag.String("out", "reports", "output directory for CSV files")
		configPath    = flag.String("config", "config.yaml", "configuration file")
		replenishYear = flag.Int("replenish-year", 2040, "target year for replenishment prediction")
		priceItem     = flag.String("price-item", "", "item name for a single price projection (optional)")
		priceYear     = flag.Int("price-year", 2028, "target year for the price projection")
	)
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: analyzer -in <dataset.xlsx|dataset.csv> [-out dir]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logging.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger, *in, *out, *replenishYear, *priceItem, *priceYear); err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, in, out string, replenishYear int, priceItem string, priceYear int) error {
	table, err := dataload.Load(in)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	pipeline := analysis.NewPipeline(cfg.Analysis.RateTable(), logger)
	result, err := pipeline.Process(table, cfg.Analysis.NameColumn, cfg.Analysis.PriceColumn)
	if err != nil {
		return fmt.Errorf("process dataset: %w", err)
	}

	usagePath := filepath.Join(out, "usage_history.csv")
	if err := exporter.WriteUsageCSV(usagePath, exporter.BuildUsageTable(result.Items, result.YearColumns)); err != nil {
		return fmt.Errorf("write usage table: %w", err)
	}

	events := analysis.PredictReplenishments(result.Items, replenishYear)
	eventsPath := filepath.Join(out, "replenishment_events.csv")
	if err := exporter.WriteEventsCSV(eventsPath, events); err != nil {
		return fmt.Errorf("write events: %w", err)
	}

	logger.Info("analysis complete",
		slog.Int("items", len(result.Items)),
		slog.Int("events", len(events)),
		slog.Int("replenish_target", replenishYear),
		slog.String("usage_csv", usagePath),
		slog.String("events_csv", eventsPath))

	if priceItem != "" {
		prediction, err := pipeline.PredictPrice(result.Items, priceItem, priceYear)
		if err != nil {
			return fmt.Errorf("predict price: %w", err)
		}
		logger.Info("price projection",
			slog.String("item", prediction.Item),
			slog.Int("base_year", prediction.LastYear),
			slog.Int("target_year", prediction.TargetYear),
			slog.Float64("factor", prediction.InflationFactor),
			slog.String("predicted_price", exporter.FormatIndianNumber(prediction.PredictedPrice)))
	}

	return nil
}
