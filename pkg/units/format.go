package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Precision is the number of decimal places kept for displayed values.
const Precision = 6

// FormatValue renders v with Precision decimals, dropping trailing zeros and a
// dangling decimal point. Non-finite values and negative zero render as "0".
func FormatValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	s := strconv.FormatFloat(v, 'f', Precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// Round returns the numeric value FormatValue displays.
func Round(v float64) float64 {
	rounded, err := strconv.ParseFloat(FormatValue(v), 64)
	if err != nil {
		return 0
	}
	return rounded
}

// ParseValue parses user input as a finite decimal number. Surrounding
// whitespace and redundant leading zeros are ignored.
func ParseValue(raw string) (float64, error) {
	trimmed := stripLeadingZeros(strings.TrimSpace(raw))
	if trimmed == "" || !isDecimal(trimmed) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || !IsFinite(v) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, raw)
	}
	return v, nil
}

func stripLeadingZeros(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	trimmed := strings.TrimLeft(s, "0")
	if len(trimmed) < len(s) && (trimmed == "" || trimmed[0] < '0' || trimmed[0] > '9') {
		// keep one zero so "0.5" and "0e3" still have a mantissa
		trimmed = "0" + trimmed
	}
	return sign + trimmed
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// isDecimal rejects the hex, inf and nan spellings strconv would accept.
func isDecimal(s string) bool {
	digits := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = true
		case r == '.' || r == 'e' || r == 'E':
		case (r == '-' || r == '+') && (i == 0 || s[i-1] == 'e' || s[i-1] == 'E'):
		default:
			return false
		}
	}
	return digits
}

// Slug lowercases a name for use in element ids and theme variant keys.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
