package values

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrConversion = errors.New("conversion failed")

func conversionError(raw any, to Kind) error {
	return fmt.Errorf("%w: %v (%T) to %s", ErrConversion, raw, raw, to)
}

func ToBool(raw any) (bool, error) {
	switch raw := raw.(type) {
	case bool:
		return raw, nil
	case float64:
		return raw != 0, nil
	case float32:
		return raw != 0, nil
	case int:
		return raw != 0, nil
	case int64:
		return raw != 0, nil
	case string:
		switch strings.ToLower(strings.Trim(raw, " \t\r\n\x00")) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	}
	return false, conversionError(raw, KindBool)
}

func ToNumber(raw any) (float64, error) {
	switch raw := raw.(type) {
	case float64:
		return raw, nil
	case float32:
		return float64(raw), nil
	case int:
		return float64(raw), nil
	case int64:
		return float64(raw), nil
	case bool:
		if raw {
			return 1, nil
		}
		return 0, nil
	case string:
		if n, ok := ParseNumber(raw); ok {
			return n, nil
		}
	}
	return 0, conversionError(raw, KindNumber)
}

func ToString(raw any) (string, error) {
	switch raw := raw.(type) {
	case nil:
		return "", nil
	case string:
		return raw, nil
	case bool:
		return FormatBool(raw), nil
	case float64:
		return FormatNumber(raw), nil
	case float32:
		return FormatNumber(float64(raw)), nil
	case int:
		return strconv.Itoa(raw), nil
	case int64:
		return strconv.FormatInt(raw, 10), nil
	}
	return "", conversionError(raw, KindString)
}

// RoundToInt rounds half to even, the way the original host rounds number-to-integer casts.
func RoundToInt(n float64) int {
	return int(math.RoundToEven(n))
}

// ParseNumber accepts invariant-culture float text: optional surrounding
// whitespace, sign, decimal point and exponent. Hex floats, digit separators
// and Go's inf spellings are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	case "NaN":
		return math.NaN(), true
	case "":
		return 0, false
	}
	digits := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = true
		case r == '.', r == 'e', r == 'E', r == '+', r == '-':
		default:
			return 0, false
		}
	}
	if !digits {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return n, true
		}
		return 0, false
	}
	return n, true
}

func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	// no exponent form, scripts can not read it back
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func FormatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// FormatRaw renders a stored value for display.
func FormatRaw(raw any) string {
	if s, err := ToString(raw); err == nil {
		return s
	}
	return fmt.Sprint(raw)
}
