package mapping

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// A field definition is a generic tree of maps, lists and scalars as produced
// by the source decoders. Parsers treat the tree as read-only and copy the
// top-level map before consuming keys.

// sortedKeys returns the keys of node in lexical order. Decoded maps carry no
// insertion order, so all traversal is done in sorted order to keep parsing,
// and in particular first-violation reporting, deterministic.
func sortedKeys(node map[string]any) []string {
	keys := make([]string, 0, len(node))
	for key := range node {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// typeName renders a human-readable name for a scalar or container found in a
// definition tree. Integral floats are reported as Integer since JSON does not
// distinguish the two.
func typeName(value any) string {
	switch v := value.(type) {
	case nil:
		return "Null"
	case bool:
		return "Boolean"
	case string:
		return "String"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "Integer"
	case float32:
		if float64(v) == math.Trunc(float64(v)) {
			return "Integer"
		}
		return "Float"
	case float64:
		if v == math.Trunc(v) {
			return "Integer"
		}
		return "Float"
	case json.Number:
		if _, err := strconv.ParseInt(string(v), 10, 64); err == nil {
			return "Integer"
		}
		return "Float"
	case []any:
		return "List"
	case map[string]any:
		return "Map"
	default:
		return fmt.Sprintf("%T", value)
	}
}

// nodeBool coerces a definition value to a boolean, accepting the JSON
// boolean type and the string forms "true"/"false".
func nodeBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		if v == "true" {
			return true, true
		}
		if v == "false" {
			return false, true
		}
	}
	return false, false
}

// nodeFloat coerces a numeric definition value to float64.
func nodeFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// nodeInt coerces a numeric definition value to int.
func nodeInt(value any) (int, bool) {
	f, ok := nodeFloat(value)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
