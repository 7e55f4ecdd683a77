package querycheck

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
)

var (
	floatPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)
	intPrefix   = regexp.MustCompile(`^[+-]?(?:0[xX][0-9a-fA-F]+|\d+)`)
)

// LooseEqual reports whether a and b are equal under loose coercion.
//
//   - nil equals only nil.
//   - Two strings compare as text, so "5.0" != "5".
//   - Anything else is converted with [ToNumber] and compared numerically,
//     so "5.0" == 5 and true == 1. NaN is never equal to anything.
func LooseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return as == bs
	}
	return ToNumber(a) == ToNumber(b)
}

// ToNumber converts v to a float64 the way a loose comparison does.
//
// Numeric kinds convert directly and booleans become 1 or 0. Strings are
// trimmed: an empty string is 0, "0x", "0o" and "0b" prefixes parse as
// unsigned integers, "Infinity" (optionally signed) is infinite and decimal
// literals parse as floats. Everything else, including nil, is NaN.
func ToNumber(v any) float64 {
	if f, ok := numeric(v); ok {
		return f
	}
	switch t := v.(type) {
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		return stringToNumber(t)
	case json.Number:
		return stringToNumber(string(t))
	}
	return math.NaN()
}

func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			u, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(u)
		}
	}

	// govalidator's float grammar does not allow a sign before a bare
	// fraction such as "-.5", so the sign is checked separately.
	unsigned := strings.TrimLeft(s, "+-")
	if len(s)-len(unsigned) > 1 || !govalidator.IsFloat(unsigned) {
		return math.NaN()
	}
	return parseDecimal(s)
}

// ParseFloatPrefix parses the longest leading decimal literal of v's string
// form, ignoring leading whitespace and any trailing text. Numbers are
// returned as is. It returns NaN when no literal is found.
func ParseFloatPrefix(v any) float64 {
	if f, ok := numeric(v); ok {
		return f
	}
	s, ok := stringOf(v)
	if !ok {
		return math.NaN()
	}
	m := floatPrefix.FindString(strings.TrimLeft(s, " \t\n\r\v\f"))
	if m == "" {
		return math.NaN()
	}
	return parseDecimal(m)
}

// ParseIntPrefix parses the leading signed integer of v's string form,
// accepting a 0x hexadecimal prefix. Finite numbers are truncated toward
// zero. It returns NaN when no integer is found.
func ParseIntPrefix(v any) float64 {
	if f, ok := numeric(v); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return math.NaN()
		}
		return math.Trunc(f)
	}
	s, ok := stringOf(v)
	if !ok {
		return math.NaN()
	}
	m := intPrefix.FindString(strings.TrimLeft(s, " \t\n\r\v\f"))
	if m == "" {
		return math.NaN()
	}

	sign := 1.0
	switch m[0] {
	case '-':
		sign = -1
		m = m[1:]
	case '+':
		m = m[1:]
	}
	if len(m) > 2 && (m[1] == 'x' || m[1] == 'X') {
		u, err := strconv.ParseUint(m[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return sign * float64(u)
	}
	return sign * parseDecimal(m)
}

// FormatValue renders v for error messages: numbers in their shortest form
// ("5", "5.5"), everything else with its default format.
func FormatValue(v any) string {
	if f, ok := numeric(v); ok {
		switch {
		case math.IsInf(f, 1):
			return "Infinity"
		case math.IsInf(f, -1):
			return "-Infinity"
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return govalidator.ToString(v)
}

func parseDecimal(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

// numeric converts integer, unsigned and float kinds to float64.
func numeric(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return float64(rv.Int()), true
	case rv.CanUint():
		return float64(rv.Uint()), true
	case rv.CanFloat():
		return rv.Float(), true
	}
	return 0, false
}

func stringOf(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return string(t), true
	}
	return "", false
}
