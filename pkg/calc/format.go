package calc

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// FormatNumber renders v the way a JavaScript engine stringifies a double:
// shortest round-trip digits, plain notation for 1e-6 <= |v| < 1e21,
// exponent notation otherwise, and "0" for negative zero.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		// Go writes e+06 style exponents; trim leading zeros of the exponent.
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// numberPrefix matches the leading number of a display, so "-1e-7." reads as -1e-7.
var numberPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseNumber reads an operand from its leading numeric text. Anything
// without a numeric prefix yields NaN; overflow yields ±Inf.
func ParseNumber(s string) float64 {
	prefix := numberPrefix.FindString(strings.TrimSpace(s))
	if prefix == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}

// isNonFinite reports whether s is one of the markers FormatNumber emits
// for NaN and infinities. Long typed operands are never treated as such.
func isNonFinite(s string) bool {
	switch s {
	case "NaN", "Infinity", "-Infinity":
		return true
	}
	return false
}
