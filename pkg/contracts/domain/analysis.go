package domain

import "sort"

// ItemHistory is one inventory item's historical usage record as extracted
// from the source table. UsageByYear only contains years where a strictly
// positive quantity was recorded; an ItemHistory is never constructed with
// an empty usage map.
type ItemHistory struct {
	Name        string          `json:"name"`
	BasePrice   float64         `json:"base_price"`
	UsageByYear map[int]float64 `json:"usage_by_year"`
}

// LastYear returns the most recent year with recorded usage.
func (ih ItemHistory) LastYear() int {
	last := 0
	for year := range ih.UsageByYear {
		if year > last {
			last = year
		}
	}
	return last
}

// HistoryYears returns the recorded usage years in ascending order.
func (ih ItemHistory) HistoryYears() []int {
	years := make([]int, 0, len(ih.UsageByYear))
	for year := range ih.UsageByYear {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// IsValid checks the extraction invariants: positive price and at least one
// usage point.
func (ih ItemHistory) IsValid() bool {
	return ih.BasePrice > 0 && len(ih.UsageByYear) > 0
}

// UsagePoint is one display cell pair for the usage history table. Total is
// derived (BasePrice * Quantity) and recomputable on demand.
type UsagePoint struct {
	Year     int     `json:"year"`
	Quantity float64 `json:"quantity"`
	Total    float64 `json:"total"`
}

// UsagePoints returns the item's usage history as display rows in ascending
// year order.
func (ih ItemHistory) UsagePoints() []UsagePoint {
	points := make([]UsagePoint, 0, len(ih.UsageByYear))
	for _, year := range ih.HistoryYears() {
		qty := ih.UsageByYear[year]
		points = append(points, UsagePoint{
			Year:     year,
			Quantity: qty,
			Total:    ih.BasePrice * qty,
		})
	}
	return points
}

// ReplenishmentEvent is a single predicted future resupply for an item.
type ReplenishmentEvent struct {
	Item          string `json:"item"`
	LastUsageYear int    `json:"last_usage_year"`
	EventYear     int    `json:"event_year"`
	LifetimeYears int    `json:"lifetime_years"`
}

// PricePrediction is the result of a single price projection query.
type PricePrediction struct {
	Item            string  `json:"item"`
	TargetYear      int     `json:"target_year"`
	BasePrice       float64 `json:"base_price"`
	LastYear        int     `json:"last_year"`
	InflationFactor float64 `json:"inflation_factor"`
	PredictedPrice  float64 `json:"predicted_price"`
}
