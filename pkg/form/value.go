package form

import (
	"fmt"
	"reflect"
	"strconv"
)

// Record is one row of a joined result set keyed by column name.
type Record map[string]any

func asRecord(v any) (Record, bool) {
	switch r := v.(type) {
	case Record:
		return r, true
	case map[string]any:
		return Record(r), true
	}
	return nil, false
}

// rowsOf reports whether raw is a list of row records.
func rowsOf(raw any) ([]Record, bool) {
	switch v := raw.(type) {
	case []Record:
		return v, len(v) > 0
	case []map[string]any:
		out := make([]Record, len(v))
		for i := range v {
			out[i] = Record(v[i])
		}
		return out, len(out) > 0
	case []any:
		if len(v) == 0 {
			return nil, false
		}
		if _, ok := asRecord(v[0]); !ok {
			return nil, false
		}
		out := make([]Record, 0, len(v))
		for _, item := range v {
			if row, ok := asRecord(item); ok {
				out = append(out, row)
			}
		}
		return out, true
	}
	return nil, false
}

// column returns the first value stored under name in rows.
func column(rows []Record, name string) (any, bool) {
	for _, row := range rows {
		if v, ok := row[name]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func isList(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.([]byte); ok {
		return false
	}
	return reflect.TypeOf(v).Kind() == reflect.Slice
}

func listLen(v any) int {
	if !isList(v) {
		return 0
	}
	return reflect.ValueOf(v).Len()
}

// toStrings flattens a list value into strings. Scalars become a single entry
// and nil becomes an empty slice.
func toStrings(v any) []string {
	if v == nil {
		return []string{}
	}
	if s, ok := v.([]string); ok {
		out := make([]string, len(s))
		copy(out, s)
		return out
	}
	if !isList(v) {
		return []string{scalarString(v)}
	}
	rv := reflect.ValueOf(v)
	out := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, scalarString(rv.Index(i).Interface()))
	}
	return out
}

func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case bool:
		if s {
			return "1"
		}
		return ""
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}
