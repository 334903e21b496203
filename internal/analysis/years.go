package analysis

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// yearHeaderPattern matches a full trimmed header that denotes a usage year:
// either a bare 4-digit number ("2021") or a fiscal-year label with exactly
// two digits ("FY21", case-insensitive). Years embedded in longer strings
// are not accepted.
var yearHeaderPattern = regexp.MustCompile(`(?i)^(\d{4}|FY\d{2})$`)

// yearDigitsPattern extracts the first run of 2-4 digits from a matched
// label for canonicalization.
var yearDigitsPattern = regexp.MustCompile(`\d{2,4}`)

// YearColumn pairs a recognized column label (trimmed, as it keys the row
// cells) with its canonical 4-digit year.
type YearColumn struct {
	Label string `json:"label"`
	Year  int    `json:"year"`
}

// DetectYearColumns identifies which headers denote usage years and returns
// them sorted ascending by canonical year. That ordering drives both
// extraction and the display order of derived columns. Returns
// ErrNoYearColumns when nothing matches; that is fatal to a dataset run.
func DetectYearColumns(headers []string) ([]YearColumn, error) {
	var cols []YearColumn
	for _, header := range headers {
		label := strings.TrimSpace(header)
		if !yearHeaderPattern.MatchString(label) {
			continue
		}
		cols = append(cols, YearColumn{Label: label, Year: canonicalYear(label)})
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w (expected headers like 2021 or FY21)", ErrNoYearColumns)
	}
	sort.SliceStable(cols, func(i, j int) bool { return cols[i].Year < cols[j].Year })
	return cols, nil
}

// canonicalYear converts a matched label to a 4-digit year. Two-digit years
// pivot at 50: below 50 map into the 2000s, 50 and above into the 1900s
// ("FY21" → 2021, "FY85" → 1985, "FY49" → 2049, "FY50" → 1950).
func canonicalYear(label string) int {
	digits := yearDigitsPattern.FindString(label)
	n, _ := strconv.Atoi(digits)
	if len(digits) == 2 {
		if n < 50 {
			return 2000 + n
		}
		return 1900 + n
	}
	return n
}
