// Package exporter shapes analysis results into display tables and writes
// them as CSV, reproducing the derived-column layout of the source system:
// material, unit price, then "<year> Units"/"<year> Total" pairs in
// canonical ascending year order.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"oeminv/internal/analysis"
	"oeminv/pkg/contracts/domain"
)

// UsageTable is the filtered/derived item table for display.
type UsageTable struct {
	Headers []string   `json:"headers"`
	Records [][]string `json:"records"`
}

// BuildUsageTable shapes processed items into the display table. Cells for
// years an item was not used stay empty rather than zero. Numeric cells use
// the Indian display convention.
func BuildUsageTable(items []domain.ItemHistory, yearCols []analysis.YearColumn) UsageTable {
	headers := []string{"Material", "Unit Price"}
	for _, col := range yearCols {
		headers = append(headers, fmt.Sprintf("%d Units", col.Year), fmt.Sprintf("%d Total", col.Year))
	}

	records := make([][]string, 0, len(items))
	for _, item := range items {
		record := []string{item.Name, FormatIndianNumber(item.BasePrice)}
		for _, col := range yearCols {
			qty, used := item.UsageByYear[col.Year]
			if !used {
				record = append(record, "", "")
				continue
			}
			record = append(record, FormatIndianNumber(qty), FormatIndianNumber(item.BasePrice*qty))
		}
		records = append(records, record)
	}

	return UsageTable{Headers: headers, Records: records}
}

// YearCount is the number of predicted replenishment events in one year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// EventCounts aggregates events per year in ascending year order, the shape
// the presentation layer charts.
func EventCounts(events []domain.ReplenishmentEvent) []YearCount {
	byYear := make(map[int]int)
	for _, e := range events {
		byYear[e.EventYear]++
	}
	counts := make([]YearCount, 0, len(byYear))
	for year, count := range byYear {
		counts = append(counts, YearCount{Year: year, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Year < counts[j].Year })
	return counts
}

// WriteUsageCSV writes the display table to path, creating parent
// directories as needed.
func WriteUsageCSV(path string, table UsageTable) error {
	return writeCSVFile(path, table.Headers, table.Records)
}

// WriteEventsCSV writes predicted replenishment events to path in their
// given (event-year ascending) order.
func WriteEventsCSV(path string, events []domain.ReplenishmentEvent) error {
	headers := []string{"Inventory", "Last Usage", "Replenishment Year", "Lifetime (years)"}
	records := make([][]string, 0, len(events))
	for _, e := range events {
		records = append(records, []string{
			e.Item,
			formatInt(e.LastUsageYear),
			formatInt(e.EventYear),
			formatInt(e.LifetimeYears),
		})
	}
	return writeCSVFile(path, headers, records)
}

// WriteCSV writes headers and records to w.
func WriteCSV(w io.Writer, headers []string, records [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeCSVFile(path string, headers []string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, headers, records); err != nil {
		return err
	}

	slog.Info("wrote csv file",
		slog.String("path", path),
		slog.Int("records", len(records)))
	return nil
}
