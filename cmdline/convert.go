package cmdline

import (
	"math"
	"strconv"
	"strings"
)

// ParseInt converts the leading decimal integer of s the way C's atol does:
// leading white space and one sign are accepted, parsing stops at the first
// non-digit, and text without digits yields 0. Values outside the int64
// range saturate.
//
// There is no error result. Malformed text and a literal "0" are
// indistinguishable, callers that need strict validation must inspect the
// token themselves.
func ParseInt(s string) int64 {
	i := skipSpace(s, 0)
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == digits {
		return 0
	}

	v, err := strconv.ParseInt(s[start:i], 10, 64)
	if err != nil {
		if s[start] == '-' {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return v
}

// ParseFloat converts the leading decimal floating point number of s the
// way C's strtod does for decimal input, including "inf", "infinity" and
// "nan" with an optional sign. Hexadecimal forms are not recognised and read
// as their leading decimal digits ("0x1A" is 0). Text without a number
// yields 0 and overflow yields an infinity.
func ParseFloat(s string) float64 {
	i := skipSpace(s, 0)
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	rest := strings.ToLower(s[i:])
	switch {
	case strings.HasPrefix(rest, "infinity"):
		return parseFloatPrefix(s[start : i+len("infinity")])
	case strings.HasPrefix(rest, "inf"):
		return parseFloatPrefix(s[start : i+3])
	case strings.HasPrefix(rest, "nan"):
		// strconv rejects a sign in front of nan.
		return math.NaN()
	}

	n := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		n++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			n++
		}
	}
	if n == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return parseFloatPrefix(s[start:i])
}

func parseFloatPrefix(s string) float64 {
	// On ErrRange strconv still returns the saturated value.
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n', '\v', '\f', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
