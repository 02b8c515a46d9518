package arith

import (
	"math"
	"strconv"
	"strings"
)

// Values whose decimal exponent falls outside [minPlainExp, maxPlainExp)
// are printed in exponent notation.
const (
	minPlainExp = -4
	maxPlainExp = 16
)

// FormatNumber returns the shortest representation of f that parses back to
// the same value. Integral values keep a trailing ".0" so a result always
// reads as a float.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if f != 0 {
		if exp := decimalExponent(f); exp < minPlainExp || exp >= maxPlainExp {
			return strconv.FormatFloat(f, 'e', -1, 64)
		}
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// decimalExponent returns the exponent of f in shortest scientific notation.
func decimalExponent(f float64) int {
	s := strconv.FormatFloat(f, 'e', -1, 64)
	i := strings.LastIndexByte(s, 'e')
	exp, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return 0
	}
	return exp
}
