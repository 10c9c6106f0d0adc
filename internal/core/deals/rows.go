package deals

import (
	"encoding/json"
	"fmt"
	"strconv"

	"synergyai.app/internal/ports"
)

func stringField(row ports.Row, key string) string {
	return stringFieldOr(row, key, "")
}

func stringFieldOr(row ports.Row, key, fallback string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func nestedString(row ports.Row, parent, key string) string {
	child, ok := asRow(row[parent])
	if !ok {
		return ""
	}
	return stringField(child, key)
}

func intField(row ports.Row, key string) int {
	switch v := row[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

// asRow accepts nested objects decoded either as maps or as raw JSON text,
// which is how the postgres driver hands back json columns.
func asRow(v interface{}) (ports.Row, bool) {
	switch t := v.(type) {
	case map[string]interface{}:
		return t, true
	case string:
		var row ports.Row
		if err := json.Unmarshal([]byte(t), &row); err != nil {
			return nil, false
		}
		return row, true
	case []byte:
		var row ports.Row
		if err := json.Unmarshal(t, &row); err != nil {
			return nil, false
		}
		return row, true
	default:
		return nil, false
	}
}
