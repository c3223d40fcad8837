package core

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/inoxlang/seqwatch/internal/utils"
	"github.com/maruel/natural"
)

// A Comparator returns a negative number if a < b, zero if a and b are equal and a positive number if a > b.
type Comparator[T any] func(a, b T) int

// A MissingFunc tells whether an element is the missing-value sentinel.
type MissingFunc[T any] func(v T) bool

// A SameFunc tells whether two elements are the same element.
type SameFunc[T any] func(a, b T) bool

// IsNilValue reports whether v is a nil interface or a nil pointer, map, slice, function or channel.
func IsNilValue[T any](v T) bool {
	val := any(v)
	if val == nil {
		return true
	}

	rval := reflect.ValueOf(val)
	switch rval.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rval.IsNil()
	}
	return false
}

// IsSameValue compares a and b with == if their dynamic types are comparable, values of non-comparable types
// are never the same. Pointers are compared by address.
func IsSameValue[T any](a, b T) bool {
	aVal, bVal := any(a), any(b)
	if aVal == nil || bVal == nil {
		return aVal == nil && bVal == nil
	}

	aType := reflect.TypeOf(aVal)
	if aType != reflect.TypeOf(bVal) || !aType.Comparable() {
		return false
	}

	// comparable types can still panic on comparison if they contain an interface holding a non-comparable value.
	defer func() {
		recover()
	}()

	return aVal == bVal
}

// DefaultCompare compares the string conversions of a and b code unit by code unit, as if the strings were
// encoded in UTF-16.
func DefaultCompare[T any](a, b T) int {
	return compareUTF16(SortString(a), SortString(b))
}

// NaturalCompare compares the string conversions of a and b in natural order ("a2" < "a10").
func NaturalCompare[T any](a, b T) int {
	sa, sb := SortString(a), SortString(b)
	switch {
	case sa == sb:
		return 0
	case natural.Less(sa, sb):
		return -1
	default:
		return 1
	}
}

// SortString returns the string conversion of v used by the default comparators.
func SortString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return "null"
	}

	rval := reflect.ValueOf(v)
	if rval.Kind() == reflect.Pointer && !rval.IsNil() {
		return SortString(rval.Elem().Interface())
	}
	return fmt.Sprint(v)
}

// formatFloat formats f like the number-to-string conversion of JavaScript: shortest round-tripping digits, plain
// notation for decimal exponents in [-7, 21) and e-notation without exponent padding otherwise.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	case f < 0:
		return "-" + formatFloat(-f)
	}

	//d.ddde±x
	mantissa, exponent, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	digits := strings.Replace(mantissa, ".", "", 1)
	pointPos := utils.Must(strconv.Atoi(exponent)) + 1
	digitCount := len(digits)

	switch {
	case digitCount <= pointPos && pointPos <= 21:
		return digits + strings.Repeat("0", pointPos-digitCount)
	case 0 < pointPos && pointPos <= 21:
		return digits[:pointPos] + "." + digits[pointPos:]
	case -6 < pointPos && pointPos <= 0:
		return "0." + strings.Repeat("0", -pointPos) + digits
	}

	sign := "+"
	if pointPos-1 < 0 {
		sign = "-"
	}
	expPart := "e" + sign + strconv.Itoa(utils.Abs(pointPos-1))

	if digitCount == 1 {
		return digits + expPart
	}
	return digits[:1] + "." + digits[1:] + expPart
}

// compareUTF16 compares two strings by UTF-16 code units without converting them.
func compareUTF16(a, b string) int {
	for len(a) > 0 && len(b) > 0 {
		ra, sizeA := utf8.DecodeRuneInString(a)
		rb, sizeB := utf8.DecodeRuneInString(b)

		if ra != rb {
			ua, ub := firstUTF16Unit(ra), firstUTF16Unit(rb)
			if ua != ub {
				if ua < ub {
					return -1
				}
				return 1
			}
			//same high surrogate, the low surrogates are ordered like the runes.
			if ra < rb {
				return -1
			}
			return 1
		}

		a, b = a[sizeA:], b[sizeB:]
	}

	switch {
	case len(a) == len(b):
		return 0
	case len(a) == 0:
		return -1
	default:
		return 1
	}
}

func firstUTF16Unit(r rune) rune {
	if r < 0x10000 {
		return r
	}
	return 0xD800 + ((r - 0x10000) >> 10)
}
