package analysis

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"oeminv/pkg/contracts/domain"
)

// Row is one source record keyed by trimmed column header.
type Row map[string]string

// Table is the raw tabular dataset handed over by the ingestion layer:
// named columns, one string cell per row per column. Headers are expected
// trimmed; Process trims again defensively when matching required columns.
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Result is the structured output of a pipeline run.
type Result struct {
	Items       []domain.ItemHistory `json:"items"`
	YearColumns []YearColumn         `json:"year_columns"`
}

// Pipeline orchestrates year column detection and per-row extraction over a
// dataset, and answers the two projection queries against the extracted
// items. It holds no mutable state across runs; one Pipeline is safe to
// share between concurrent runs over different datasets.
type Pipeline struct {
	rates  RateTable
	logger *slog.Logger
}

// NewPipeline creates a pipeline with the given inflation table.
func NewPipeline(rates RateTable, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{rates: rates, logger: logger}
}

// Rates returns the pipeline's inflation table.
func (p *Pipeline) Rates() RateTable {
	return p.rates
}

// Process runs the full dataset pipeline: verify required columns, detect
// year columns once, then extract one ItemHistory per surviving row. Rows
// with a missing, unparsable, or non-positive price are dropped, as are rows
// with no valid positive usage quantity in any year column. Output preserves
// source row order. Only dataset-level conditions (missing required column,
// no year columns) fail the run; bad individual rows never do.
func (p *Pipeline) Process(table Table, nameField, priceField string) (*Result, error) {
	for _, required := range []string{nameField, priceField} {
		if !hasHeader(table.Headers, required) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	yearCols, err := DetectYearColumns(table.Headers)
	if err != nil {
		return nil, err
	}
	p.logger.Info("detected year columns",
		slog.Int("count", len(yearCols)),
		slog.Int("first_year", yearCols[0].Year),
		slog.Int("last_year", yearCols[len(yearCols)-1].Year))

	items := make([]domain.ItemHistory, 0, len(table.Rows))
	dropped := 0
	for _, row := range table.Rows {
		item, ok := extractItem(row, nameField, priceField, yearCols)
		if !ok {
			dropped++
			continue
		}
		items = append(items, item)
	}

	p.logger.Info("dataset processed",
		slog.Int("total_rows", len(table.Rows)),
		slog.Int("items", len(items)),
		slog.Int("dropped_rows", dropped))

	return &Result{Items: items, YearColumns: yearCols}, nil
}

// extractItem turns one raw row into an ItemHistory, or reports ok=false
// when the row must be excluded (bad price, or zero valid usage points).
func extractItem(row Row, nameField, priceField string, yearCols []YearColumn) (domain.ItemHistory, bool) {
	price, ok := ParseNumber(row[priceField])
	if !ok || price <= 0 {
		return domain.ItemHistory{}, false
	}

	usage := make(map[int]float64, len(yearCols))
	for _, col := range yearCols {
		qty, ok := ParseNumber(row[col.Label])
		if ok && qty > 0 {
			usage[col.Year] = qty
		}
	}
	if len(usage) == 0 {
		return domain.ItemHistory{}, false
	}

	return domain.ItemHistory{
		Name:        strings.TrimSpace(row[nameField]),
		BasePrice:   price,
		UsageByYear: usage,
	}, true
}

// PredictPrice answers a single item/year projection query against a
// processed item set. The item's last historical usage year is the base
// year; a target at or before it is an InvalidPredictionRange reported to
// the caller without affecting other queries. Duplicate item names resolve
// to the first matching row.
func (p *Pipeline) PredictPrice(items []domain.ItemHistory, name string, targetYear int) (domain.PricePrediction, error) {
	item, ok := findItem(items, name)
	if !ok {
		return domain.PricePrediction{}, fmt.Errorf("%w: %s", ErrItemNotFound, name)
	}

	lastYear := item.LastYear()
	factor, err := p.rates.CompoundFactor(lastYear, targetYear)
	if err != nil {
		return domain.PricePrediction{}, err
	}

	return domain.PricePrediction{
		Item:            item.Name,
		TargetYear:      targetYear,
		BasePrice:       item.BasePrice,
		LastYear:        lastYear,
		InflationFactor: factor,
		PredictedPrice:  item.BasePrice * factor,
	}, nil
}

// PredictReplenishments projects replenishment events for every item up to
// targetYear, sorted ascending by event year with ties kept in original
// item order. Items with insufficient history simply contribute no events.
func PredictReplenishments(items []domain.ItemHistory, targetYear int) []domain.ReplenishmentEvent {
	var events []domain.ReplenishmentEvent
	for _, item := range items {
		years := item.HistoryYears()
		lastUsage := item.LastYear()
		for _, eventYear := range PredictEvents(years, targetYear) {
			events = append(events, domain.ReplenishmentEvent{
				Item:          item.Name,
				LastUsageYear: lastUsage,
				EventYear:     eventYear,
				LifetimeYears: eventYear - lastUsage,
			})
		}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].EventYear < events[j].EventYear })
	return events
}

func findItem(items []domain.ItemHistory, name string) (domain.ItemHistory, bool) {
	for _, item := range items {
		if item.Name == name {
			return item, true
		}
	}
	return domain.ItemHistory{}, false
}

func hasHeader(headers []string, name string) bool {
	for _, h := range headers {
		if strings.TrimSpace(h) == strings.TrimSpace(name) {
			return true
		}
	}
	return false
}
