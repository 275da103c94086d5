package dataview

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CompareValues orders arbitrary property values.
// nil < bool < number < string < anything else. Values of the same kind are
// compared naturally, unknown kinds by their printed form.
// Returns -1, 0 or 1.
func CompareValues(a, b any) int {
	ra, rb := valueRank(a), valueRank(b)
	if ra != rb {
		return compareInts(ra, rb)
	}

	switch ra {
	case rankNil:
		return 0
	case rankBool:
		return compareBools(a.(bool), b.(bool))
	case rankNumber:
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		return compareFloat64s(fa, fb)
	case rankString:
		return strings.Compare(a.(string), b.(string))
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

const (
	rankNil = iota
	rankBool
	rankNumber
	rankString
	rankOther
)

func valueRank(v any) int {
	switch v.(type) {
	case nil:
		return rankNil
	case bool:
		return rankBool
	case string:
		return rankString
	}
	if _, ok := toFloat(v); ok {
		return rankNumber
	}
	return rankOther
}

func compareInts(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func compareBools(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

// compareFloat64s puts NaN before every other number.
func compareFloat64s(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	if aNaN || bNaN {
		return compareBools(!aNaN, !bNaN)
	}
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// numeric is the lenient conversion used by aggregators: numbers and numeric
// strings count, everything else (including NaN) does not.
func numeric(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// FieldComparer orders items by a single property using CompareValues.
func FieldComparer(field string) Comparer {
	return func(a, b Item) int {
		va, _ := a.Get(field)
		vb, _ := b.Get(field)
		return CompareValues(va, vb)
	}
}
