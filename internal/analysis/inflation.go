package analysis

import "fmt"

// DefaultInflationRate is the fallback annual rate (percent) for any year
// absent from the rate table.
const DefaultInflationRate = 4.5

// defaultRates are the known historical/forecast annual inflation rates in
// percent.
var defaultRates = map[int]float64{
	2021: 5.1,
	2022: 6.7,
	2023: 5.7,
	2024: 4.9,
	2025: 3.16,
	2026: 4.5,
	2027: 4.5,
}

// RateTable maps calendar years to annual inflation rates in percent, with
// a fallback default for unknown years. It is an immutable value: the
// constructor copies its input and nothing mutates it afterward, so a single
// table is safe to share across concurrent analysis runs.
type RateTable struct {
	rates       map[int]float64
	defaultRate float64
}

// NewRateTable builds a table from explicit per-year rates and a fallback
// default rate, both in percent.
func NewRateTable(rates map[int]float64, defaultRate float64) RateTable {
	copied := make(map[int]float64, len(rates))
	for year, rate := range rates {
		copied[year] = rate
	}
	return RateTable{rates: copied, defaultRate: defaultRate}
}

// DefaultRateTable returns the table seeded with the known rates and the
// 4.5% fallback.
func DefaultRateTable() RateTable {
	return NewRateTable(defaultRates, DefaultInflationRate)
}

// Rate returns the annual inflation rate in percent for the given year,
// falling back to the table default for unknown years.
func (t RateTable) Rate(year int) float64 {
	if rate, ok := t.rates[year]; ok {
		return rate
	}
	return t.defaultRate
}

// CompoundFactor returns the multiplicative price growth between baseYear
// and targetYear: the product of (1 + rate/100) over every year strictly
// after baseYear up to and including targetYear. A target year at or before
// the base year is rejected with ErrInvalidPredictionRange — the factor is
// never silently 1.0.
func (t RateTable) CompoundFactor(baseYear, targetYear int) (float64, error) {
	if targetYear <= baseYear {
		return 0, fmt.Errorf("%w: base %d, target %d", ErrInvalidPredictionRange, baseYear, targetYear)
	}
	factor := 1.0
	for year := baseYear + 1; year <= targetYear; year++ {
		factor *= 1 + t.Rate(year)/100
	}
	return factor, nil
}

// PredictPrice projects basePrice from baseYear to targetYear by the
// compounded inflation factor.
func (t RateTable) PredictPrice(basePrice float64, baseYear, targetYear int) (float64, error) {
	factor, err := t.CompoundFactor(baseYear, targetYear)
	if err != nil {
		return 0, err
	}
	return basePrice * factor, nil
}
