package analysis

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber coerces a raw cell value to a float. It tolerates surrounding
// whitespace and thousand separators ("1,250.50"). Anything that does not
// parse to a finite number is reported as absent (ok=false), never as zero:
// the drop-on-failure policy depends on absent and zero being distinct.
func ParseNumber(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return 0, false
	}
	return val, true
}
