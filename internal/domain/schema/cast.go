package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Accepted layouts for datetime cells held as strings
var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Cast converts a non-nil cell to the in-memory representation of target:
// int64, float64, string, bool or time.Time
func Cast(v interface{}, target LogicalType) (interface{}, bool) {
	switch target {
	case LogicalInteger:
		return toInt64(v)
	case LogicalFloat:
		return toFloat64(v)
	case LogicalString:
		if s, ok := v.(string); ok {
			return s, true
		}
		if t, ok := v.(time.Time); ok {
			return t.Format(time.RFC3339Nano), true
		}
		return fmt.Sprint(v), true
	case LogicalBoolean:
		return toBool(v)
	case LogicalDatetime:
		return toTime(v)
	default:
		return nil, false
	}
}

func toInt64(v interface{}) (interface{}, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float32:
		return wholeFloat(float64(n))
	case float64:
		// only whole numbers survive the narrowing
		return wholeFloat(n)
	case bool:
		if n {
			return int64(1), true
		}
		return int64(0), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return nil, false
		}
		return i, true
	default:
		return nil, false
	}
}

func wholeFloat(f float64) (interface{}, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, false
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return nil, false
	}
	return int64(f), true
}

func toFloat64(v interface{}) (interface{}, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil, false
		}
		return f, true
	default:
		return nil, false
	}
}

func toBool(v interface{}) (interface{}, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case int64:
		return intBool(b)
	case int:
		return intBool(int64(b))
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return nil, false
	default:
		return nil, false
	}
}

func intBool(n int64) (interface{}, bool) {
	switch n {
	case 0:
		return false, true
	case 1:
		return true, true
	default:
		return nil, false
	}
}

func toTime(v interface{}) (interface{}, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range datetimeLayouts {
			if parsed, err := time.Parse(layout, strings.TrimSpace(t)); err == nil {
				return parsed, true
			}
		}
		return nil, false
	default:
		return nil, false
	}
}
