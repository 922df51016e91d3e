package grid

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// DefaultIDField is the field that carries a row's identity unless configured otherwise.
const DefaultIDField = "_id"

// Row is a single record keyed by field name.
// Fields that are not declared as columns are kept but never rendered.
type Row map[string]any

// ID returns the identity value stored under field, or nil when absent.
func (r Row) ID(field string) any {
	if field == "" {
		field = DefaultIDField
	}
	return r[field]
}

// Text returns the display text of field using the default value formatting.
func (r Row) Text(field string) string {
	return FormatValue(r[field])
}

// SortedKeys returns the row's field names in lexical order.
func (r Row) SortedKeys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatValue renders a cell value as text.
// nil renders empty, floats drop trailing zeros and times use RFC 3339.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
