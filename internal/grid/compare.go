package grid

import (
	"cmp"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// valueClass ranks values of different kinds so mixed columns still sort into a
// total order.
type valueClass int

const (
	classNil valueClass = iota
	classNumber
	classBool
	classTime
	classText
)

func classify(v any) (valueClass, float64) {
	if v == nil {
		return classNil, 0
	}
	if f, ok := toNumber(v); ok {
		return classNumber, f
	}
	switch v.(type) {
	case bool:
		return classBool, 0
	case time.Time:
		return classTime, 0
	default:
		return classText, 0
	}
}

// CompareValues orders two cell values for sorting.
//
// Values are ranked by kind first: nil, then numbers (any Go numeric kind, json.Number,
// or a string that parses as a number), then bools, then times, then everything else.
// Within a kind numbers compare numerically, bools order false before true, times
// chronologically and the rest by display text.
func CompareValues(a, b any) int {
	ca, fa := classify(a)
	cb, fb := classify(b)
	if ca != cb {
		return cmp.Compare(ca, cb)
	}

	switch ca {
	case classNil:
		return 0
	case classNumber:
		return cmp.Compare(fa, fb)
	case classBool:
		ab, _ := a.(bool)
		bb, _ := b.(bool)
		switch {
		case ab == bb:
			return 0
		case !ab:
			return -1
		default:
			return 1
		}
	case classTime:
		at, _ := a.(time.Time)
		bt, _ := b.(time.Time)
		return at.Compare(bt)
	default:
		return strings.Compare(FormatValue(a), FormatValue(b))
	}
}

// toNumber converts numeric kinds and numeric strings to float64.
//
//nolint:cyclop // One case per numeric kind.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
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
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
