package exporter

import (
	"fmt"
	"math"
	"strings"
)

// FormatIndianNumber formats a value using the display convention of the
// source system: plain comma-grouped numbers below one lakh, then "Lakh"
// (1e5) and "Crore" (1e7) units with two decimal places. NaN renders as "-".
func FormatIndianNumber(num float64) string {
	if math.IsNaN(num) {
		return "-"
	}
	abs := math.Abs(num)
	switch {
	case abs < 1e5:
		return groupThousands(fmt.Sprintf("%.2f", num))
	case abs < 1e7:
		return fmt.Sprintf("%.2f Lakh", num/1e5)
	default:
		return fmt.Sprintf("%.2f Crore", num/1e7)
	}
}

// groupThousands inserts comma separators into the integer part of an
// already-formatted decimal string.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if fracPart != "" {
		return sign + b.String() + "." + fracPart
	}
	return sign + b.String()
}

// formatFloat formats a float for CSV output with exactly 2 decimal places.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int for CSV output.
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
