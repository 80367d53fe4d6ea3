package builder

import (
	"reflect"
	"sort"
	"strings"

	"github.com/gaborage/sqlbricks/database/types"
)

// sortedKeys returns a deterministically ordered slice of keys from the provided map.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// normalizeToSlice flattens an IN operand into individual bindings.
// Slices and unnamed arrays yield their elements and nil yields nothing.
// Byte slices and named arrays such as uuid.UUID are single values.
func normalizeToSlice(value any) []any {
	if value == nil {
		return []any{}
	}
	if vals, ok := value.([]any); ok {
		out := make([]any, len(vals))
		copy(out, vals)
		return out
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return []any{value}
		}
	case reflect.Array:
		if v.Type().Name() != "" {
			return []any{value}
		}
	default:
		return []any{value}
	}

	out := make([]any, v.Len())
	for i := range out {
		out[i] = v.Index(i).Interface()
	}
	return out
}

// splitDirection separates a trailing asc/desc keyword from an order-by column.
// Any other trailing word stays part of the column.
func splitDirection(column string) (string, types.Direction) {
	column = strings.TrimSpace(column)
	idx := strings.LastIndexAny(column, " \t")
	if idx < 0 {
		return column, ""
	}

	switch strings.ToLower(column[idx+1:]) {
	case string(types.Asc):
		return strings.TrimSpace(column[:idx]), types.Asc
	case string(types.Desc):
		return strings.TrimSpace(column[:idx]), types.Desc
	default:
		return column, ""
	}
}
