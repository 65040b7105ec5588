package formula

import (
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ToNumeric converts a value to a number the way spreadsheet arithmetic
// does: booleans are 0/1, empty is 0, numeric text is parsed.
func ToNumeric(value Primitive) (float64, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		return parseNumeral(value, v)
	case []byte:
		return parseNumeral(value, string(v))
	default:
		return 0, NewCoercionError(value, "number")
	}
}

// parseNumeral parses numeric text. surrounding white space is ignored and
// empty text counts as zero.
func parseNumeral(original Primitive, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if !isDecimalNumeral(s) {
		return 0, NewCoercionError(original, "number")
	}
	num, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(num, 0) {
		return 0, NewCoercionError(original, "number")
	}
	return num, nil
}

// isDecimalNumeral reports whether s only holds characters of a decimal
// number: sign, digits, point and exponent. this keeps out Inf, NaN, hex
// floats and digit separators, which ParseFloat would accept.
func isDecimalNumeral(s string) bool {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case isDigit(c), c == '.', c == '+', c == '-', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return true
}

// ToText converts a value to its text form, used by the concat operator and
// when rendering error messages.
func ToText(value Primitive) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		if !utf8.Valid(v) {
			return "", NewCoercionError(value, "text")
		}
		return string(v), nil
	case bool:
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return formatNumber(float64(v)), nil
	case float64:
		return formatNumber(v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", NewCoercionError(value, "text")
	}
}

// formatNumber renders a number without unnecessary decimals
func formatNumber(f float64) string {
	if !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// CoerceSequence lazily coerces values to numbers, falling back to text.
// each element is either a float64 or a string. the first ErrorValue ends
// the sequence: it is yielded as the error and nothing after it is looked
// at. a value with neither form ends the sequence with a *CoercionError.
//
//	for v, err := range CoerceSequence(args...) {
//		if err != nil {
//			return nil, err // propagate #DIV/0! etc. unchanged
//		}
//		...
//	}
func CoerceSequence(values ...Primitive) iter.Seq2[Primitive, error] {
	return func(yield func(Primitive, error) bool) {
		for _, value := range values {
			if errValue, ok := value.(ErrorValue); ok {
				yield(nil, errValue)
				return
			}

			if num, err := ToNumeric(value); err == nil {
				if !yield(num, nil) {
					return
				}
				continue
			}

			text, err := ToText(value)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(text, nil) {
				return
			}
		}
	}
}

// FirstErrorValue returns the first error value among values, if any
func FirstErrorValue(values ...Primitive) (ErrorValue, bool) {
	for _, value := range values {
		if errValue, ok := value.(ErrorValue); ok {
			return errValue, true
		}
	}
	return nil, false
}
