package analysis

import "sort"

// EstimateLifetime computes an item's replenishment cadence from its
// historical usage years: the maximum gap between consecutive distinct
// years. The maximum (not mean or median) is deliberate — it is the longest
// the item has been known to go without replenishment, so it gives a
// conservative cadence. Fewer than 2 distinct years means no lifetime is
// inferable (ok=false). Duplicate years and input order do not affect the
// result.
func EstimateLifetime(years []int) (int, bool) {
	distinct := distinctSorted(years)
	if len(distinct) < 2 {
		return 0, false
	}
	maxGap := 0
	for i := 1; i < len(distinct); i++ {
		if gap := distinct[i] - distinct[i-1]; gap > maxGap {
			maxGap = gap
		}
	}
	return maxGap, true
}

// PredictEvents projects future replenishment years from the historical
// cadence: starting at lastUsage+lifetime, it emits every multiple of the
// lifetime up to and including targetYear. An empty result is the valid
// "insufficient history" outcome, not an error. A non-positive lifetime is
// treated the same as an undefined one so the rollout cannot loop forever.
func PredictEvents(years []int, targetYear int) []int {
	lifetime, ok := EstimateLifetime(years)
	if !ok || lifetime <= 0 {
		return nil
	}
	lastUsage := maxYear(years)
	var events []int
	for next := lastUsage + lifetime; next <= targetYear; next += lifetime {
		events = append(events, next)
	}
	return events
}

func distinctSorted(years []int) []int {
	seen := make(map[int]struct{}, len(years))
	out := make([]int, 0, len(years))
	for _, y := range years {
		if _, dup := seen[y]; dup {
			continue
		}
		seen[y] = struct{}{}
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

func maxYear(years []int) int {
	max := 0
	for _, y := range years {
		if y > max {
			max = y
		}
	}
	return max
}
