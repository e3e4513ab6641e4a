package engine

import (
	"fmt"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	// collate.Collator keeps internal buffers and is not safe for
	// concurrent use, so comparisons take the mutex.
	collMu   sync.Mutex
	collator = collate.New(language.Und)
)

func compareStrings(a, b string) int {
	collMu.Lock()
	defer collMu.Unlock()
	return collator.CompareString(a, b)
}

// Compare orders two scalar values, returning -1, 0 or 1.
//
// Strings compare with locale-aware collation, numbers by numeric value.
// When the types differ or neither rule applies, the string forms of both
// values are compared instead. Nil orders after every non-nil value, so
// missing values sink to the bottom of an ascending sort (and surface
// first when the direction is reversed).
func Compare(a, b interface{}) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return 1
		default:
			return -1
		}
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return compareStrings(as, bs)
		}
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	return compareStrings(fmt.Sprint(a), fmt.Sprint(b))
}

// toFloat widens any numeric scalar to float64. Sheet cells decode to
// float64, but operands supplied by callers may be any Go numeric type.
func toFloat(v interface{}) (float64, bool) {
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
	default:
		return 0, false
	}
}
