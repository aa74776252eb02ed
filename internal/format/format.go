// Package format renders numbers the way the field pages print them.
package format

import (
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Fixed returns n with exactly d decimals, rounding the exact binary value half away
// from zero. A negative input keeps its sign even when it rounds to zero.
func Fixed(n float64, d int) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	if d < 0 {
		d = 0
	}

	// 1074 digits covers the longest fractional expansion of a float64.
	exact := new(big.Float).SetFloat64(n).Text('f', 1074)
	s := decimal.RequireFromString(exact).StringFixed(int32(d))

	if n < 0 && !strings.HasPrefix(s, "-") {
		s = "-" + s
	}
	return s
}

// Money returns n as dollars with two decimals.
func Money(n float64) string {
	return "$" + Fixed(n, 2)
}

// Percent returns n with d decimals followed by a percent sign.
func Percent(n float64, d int) string {
	return Fixed(n, d) + "%"
}
