package analysis

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oeminv/pkg/contracts/domain"
)

const (
	testNameField  = "Material Discription"
	testPriceField = "Unit Price"
)

func newTestPipeline() *Pipeline {
	return NewPipeline(DefaultRateTable(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testTable(rows ...Row) Table {
	return Table{
		Headers: []string{testNameField, testPriceField, "2021", "2022", "2023"},
		Rows:    rows,
	}
}

func TestPipelineProcess(t *testing.T) {
	pipeline := newTestPipeline()

	t.Run("extracts valid rows in source order", func(t *testing.T) {
		table := testTable(
			Row{testNameField: "Bearing", testPriceField: "50", "2021": "3", "2023": "2"},
			Row{testNameField: "Gasket", testPriceField: "12.5", "2022": "10"},
		)

		result, err := pipeline.Process(table, testNameField, testPriceField)
		require.NoError(t, err)
		require.Len(t, result.Items, 2)

		assert.Equal(t, "Bearing", result.Items[0].Name)
		assert.Equal(t, 50.0, result.Items[0].BasePrice)
		assert.Equal(t, map[int]float64{2021: 3, 2023: 2}, result.Items[0].UsageByYear)
		assert.Equal(t, "Gasket", result.Items[1].Name)
		assert.Equal(t, map[int]float64{2022: 10}, result.Items[1].UsageByYear)
	})

	t.Run("drops zero and unparsable quantities but keeps the item", func(t *testing.T) {
		table := testTable(
			Row{testNameField: "Seal", testPriceField: "50", "2021": "3", "2022": "0", "2023": "x"},
		)

		result, err := pipeline.Process(table, testNameField, testPriceField)
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, map[int]float64{2021: 3}, result.Items[0].UsageByYear)
	})

	t.Run("excludes rows with invalid price", func(t *testing.T) {
		table := testTable(
			Row{testNameField: "Free", testPriceField: "0", "2021": "3"},
			Row{testNameField: "Negative", testPriceField: "-5", "2021": "3"},
			Row{testNameField: "Unpriced", testPriceField: "", "2021": "3"},
			Row{testNameField: "Garbage", testPriceField: "n/a", "2021": "3"},
			Row{testNameField: "Kept", testPriceField: "1,250.50", "2021": "3"},
		)

		result, err := pipeline.Process(table, testNameField, testPriceField)
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "Kept", result.Items[0].Name)
		assert.Equal(t, 1250.50, result.Items[0].BasePrice)
	})

	t.Run("excludes rows with no valid usage even when priced", func(t *testing.T) {
		table := testTable(
			Row{testNameField: "Idle", testPriceField: "99", "2021": "", "2022": "0", "2023": "-"},
		)

		result, err := pipeline.Process(table, testNameField, testPriceField)
		require.NoError(t, err)
		assert.Empty(t, result.Items)
	})

	t.Run("missing required column is fatal", func(t *testing.T) {
		table := Table{
			Headers: []string{testNameField, "2021"},
			Rows:    []Row{{testNameField: "Bearing", "2021": "3"}},
		}

		_, err := pipeline.Process(table, testNameField, testPriceField)
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("no year columns is fatal", func(t *testing.T) {
		table := Table{
			Headers: []string{testNameField, testPriceField, "Notes"},
			Rows:    []Row{{testNameField: "Bearing", testPriceField: "10", "Notes": "ok"}},
		}

		_, err := pipeline.Process(table, testNameField, testPriceField)
		assert.ErrorIs(t, err, ErrNoYearColumns)
	})

	t.Run("idempotent and order stable", func(t *testing.T) {
		table := testTable(
			Row{testNameField: "B", testPriceField: "2", "2021": "1"},
			Row{testNameField: "A", testPriceField: "1", "2022": "1"},
			Row{testNameField: "C", testPriceField: "3", "2023": "1"},
		)

		first, err := pipeline.Process(table, testNameField, testPriceField)
		require.NoError(t, err)
		second, err := pipeline.Process(table, testNameField, testPriceField)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, "B", first.Items[0].Name)
		assert.Equal(t, "A", first.Items[1].Name)
		assert.Equal(t, "C", first.Items[2].Name)
	})
}

func TestPipelinePredictPrice(t *testing.T) {
	pipeline := newTestPipeline()
	items := []domain.ItemHistory{
		{Name: "Bearing", BasePrice: 100, UsageByYear: map[int]float64{2021: 2, 2023: 1}},
	}

	t.Run("projects from last historical year", func(t *testing.T) {
		pred, err := pipeline.PredictPrice(items, "Bearing", 2025)
		require.NoError(t, err)

		assert.Equal(t, "Bearing", pred.Item)
		assert.Equal(t, 2023, pred.LastYear)
		assert.Equal(t, 2025, pred.TargetYear)
		assert.InDelta(t, 1.049*1.0316, pred.InflationFactor, 1e-12)
		assert.InDelta(t, 100*1.049*1.0316, pred.PredictedPrice, 1e-9)
	})

	t.Run("target at last year is an invalid range", func(t *testing.T) {
		_, err := pipeline.PredictPrice(items, "Bearing", 2023)
		assert.ErrorIs(t, err, ErrInvalidPredictionRange)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := pipeline.PredictPrice(items, "Sprocket", 2030)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("duplicate names resolve to first match", func(t *testing.T) {
		dupes := append(items, domain.ItemHistory{
			Name: "Bearing", BasePrice: 999, UsageByYear: map[int]float64{2020: 1, 2022: 1},
		})
		pred, err := pipeline.PredictPrice(dupes, "Bearing", 2025)
		require.NoError(t, err)
		assert.Equal(t, 100.0, pred.BasePrice)
	})
}

func TestPredictReplenishments(t *testing.T) {
	items := []domain.ItemHistory{
		{Name: "Late", BasePrice: 1, UsageByYear: map[int]float64{2018: 1, 2023: 1}},
		{Name: "Often", BasePrice: 1, UsageByYear: map[int]float64{2021: 1, 2023: 1}},
		{Name: "Single", BasePrice: 1, UsageByYear: map[int]float64{2022: 1}},
	}

	events := PredictReplenishments(items, 2030)

	// Late: lifetime 5 → 2028; Often: lifetime 2 → 2025, 2027, 2029.
	// Single contributes nothing. Sorted ascending by event year.
	require.Len(t, events, 4)
	assert.Equal(t, domain.ReplenishmentEvent{Item: "Often", LastUsageYear: 2023, EventYear: 2025, LifetimeYears: 2}, events[0])
	assert.Equal(t, domain.ReplenishmentEvent{Item: "Often", LastUsageYear: 2023, EventYear: 2027, LifetimeYears: 4}, events[1])
	assert.Equal(t, domain.ReplenishmentEvent{Item: "Late", LastUsageYear: 2023, EventYear: 2028, LifetimeYears: 5}, events[2])
	assert.Equal(t, domain.ReplenishmentEvent{Item: "Often", LastUsageYear: 2023, EventYear: 2029, LifetimeYears: 6}, events[3])
}

func TestPredictReplenishmentsTieOrder(t *testing.T) {
	// Both items project an event in 2026; original item order breaks the tie.
	items := []domain.ItemHistory{
		{Name: "First", BasePrice: 1, UsageByYear: map[int]float64{2020: 1, 2023: 1}},
		{Name: "Second", BasePrice: 1, UsageByYear: map[int]float64{2022: 1, 2024: 1}},
	}

	events := PredictReplenishments(items, 2026)
	require.Len(t, events, 2)
	assert.Equal(t, "First", events[0].Item)
	assert.Equal(t, "Second", events[1].Item)
	assert.Equal(t, 2026, events[0].EventYear)
	assert.Equal(t, 2026, events[1].EventYear)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
		ok       bool
	}{
		{"plain integer", "42", 42, true},
		{"decimal", "3.14", 3.14, true},
		{"whitespace padded", "  7.5  ", 7.5, true},
		{"thousand separators", "1,234,567.89", 1234567.89, true},
		{"negative", "-10", -10, true},
		{"empty", "", 0, false},
		{"whitespace only", "   ", 0, false},
		{"text", "n/a", 0, false},
		{"nan literal", "NaN", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, ok := ParseNumber(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, val)
			}
		})
	}
}
