// Package dataload reads inventory datasets from .xlsx and .csv files into
// the raw tabular form the analysis pipeline consumes. Headers are trimmed
// on load; everything else is kept as raw strings so the engine's coercion
// rules decide what counts as a number.
package dataload

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"oeminv/internal/analysis"
	apperrors "oeminv/internal/errors"
)

// Load reads a dataset, dispatching on file extension. Only .xlsx and .csv
// are supported.
func Load(path string) (analysis.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return LoadXLSX(path)
	case ".csv":
		return LoadCSV(path)
	default:
		return analysis.Table{}, apperrors.NewAppError(apperrors.ErrTypeValidation,
			"unsupported file format: expected .xlsx or .csv", nil).
			WithContext("extension", filepath.Ext(path))
	}
}

// LoadXLSX reads the first sheet of an Excel workbook, treating the first
// row as headers.
func LoadXLSX(path string) (analysis.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return analysis.Table{}, fmt.Errorf("open xlsx file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return analysis.Table{}, fmt.Errorf("no sheets in workbook %s", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return analysis.Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	slog.Debug("loaded xlsx sheet",
		slog.String("path", path),
		slog.String("sheet", sheets[0]),
		slog.Int("rows", len(rows)))

	return fromRows(rows)
}

// LoadCSV reads a CSV file, treating the first record as headers. Records
// with a variable number of fields are tolerated; missing trailing cells
// are simply absent.
func LoadCSV(path string) (analysis.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return analysis.Table{}, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return analysis.Table{}, fmt.Errorf("read csv: %w", err)
	}

	return fromRows(records)
}

// fromRows converts raw row data into a Table keyed by trimmed header.
func fromRows(rows [][]string) (analysis.Table, error) {
	if len(rows) == 0 {
		return analysis.Table{}, apperrors.NewAppError(apperrors.ErrTypeParsing, "dataset is empty", nil)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	table := analysis.Table{Headers: headers, Rows: make([]analysis.Row, 0, len(rows)-1)}
	for _, raw := range rows[1:] {
		row := make(analysis.Row, len(headers))
		for i, header := range headers {
			if i < len(raw) {
				row[header] = raw[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
