package canon

import (
	"math"
	"strconv"
	"strings"
)

// maxSafeInt64Float is the largest magnitude for which converting a float64
// to int64 is exact and round-trips through FormatInt without fraction loss.
const maxSafeInt64Float = 9223372036854775808.0 // 2^63

// formatNumber renders f per the canonicalizer's number rules:
//   - integers that fit a signed 64-bit range render without a fraction
//   - other finite floats round to 10 decimal places, shortest non-scientific
//     form, with -0 normalized to 0
func formatNumber(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", invalidNumeric("", f)
	}
	if f == math.Trunc(f) && math.Abs(f) < maxSafeInt64Float {
		return strconv.FormatInt(int64(f), 10), nil
	}
	return formatFloat10(f), nil
}

// formatFloat10 rounds f to 10 decimal places and renders the shortest
// non-scientific decimal string for the rounded value, normalizing -0 to 0.
//
// strconv.FormatFloat with explicit precision performs correctly-rounded
// (round-half-to-even) decimal conversion at any magnitude, which is why this
// is preferred over scaling f by 1e10 and rounding in float arithmetic: the
// scale-and-round approach reintroduces binary representation error for
// values outside a narrow range.
func formatFloat10(f float64) string {
	s := strconv.FormatFloat(f, 'f', 10, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "" || s == "-0" {
		s = "0"
	}
	return s
}
