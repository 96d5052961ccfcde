package mapping

import (
	"maps"
	"sort"
)

// DocumentMapping is the compiled mapping for a whole document type: the
// field mappers keyed by field name plus the optional free-form top-level
// meta object. Frozen after parsing.
type DocumentMapping struct {
	Properties map[string]FieldMapper
	Meta       map[string]any
}

// ParseMapping parses a complete mapping document. The tree holds the field
// definitions under "properties" and may carry a top-level "_meta" object;
// unknown top-level keys follow the same strictness policy as unknown field
// parameters. Parsing the same tree twice with equal contexts yields
// structurally equal mappings.
func ParseMapping(source map[string]any, ctx *ParserContext) (*DocumentMapping, error) {
	compiled := &DocumentMapping{}
	remaining := cloneDefinition(source)

	if raw, ok := remaining["properties"]; ok {
		node, isMap := raw.(map[string]any)
		if !isMap {
			return nil, newError(ErrCodeMalformedField, "properties",
				"[properties] must be an object, got %s", typeName(raw))
		}

		compiled.Properties = make(map[string]FieldMapper, len(node))
		for _, fieldName := range sortedKeys(node) {
			definition, isMap := node[fieldName].(map[string]any)
			if !isMap {
				return nil, newError(ErrCodeMalformedField, fieldName,
					"definition of field [%s] must be an object, got %s", fieldName, typeName(node[fieldName]))
			}
			mapper, err := ParseField(fieldName, definition, ctx)
			if err != nil {
				return nil, err
			}
			compiled.Properties[fieldName] = mapper
		}
		delete(remaining, "properties")
	}

	if raw, ok := remaining["_meta"]; ok {
		node, isMap := raw.(map[string]any)
		if !isMap {
			return nil, newError(ErrCodeMalformedField, "_meta",
				"[_meta] must be an object, got %s", typeName(raw))
		}
		// Copied so the frozen mapping does not alias the caller's tree.
		compiled.Meta = maps.Clone(node)
		delete(remaining, "_meta")
	}

	for _, key := range sortedKeys(remaining) {
		if ctx.Strict() {
			return nil, newError(ErrCodeUnknownParameter, key,
				"unknown mapping definition key [%s]", key)
		}
		ctx.Deprecate(key, "Mapping definition key [%s] is unknown and will be ignored", key)
	}

	return compiled, nil
}

// Field returns the mapper for a top-level field, or nil when unmapped.
func (m *DocumentMapping) Field(name string) FieldMapper {
	return m.Properties[name]
}

// FieldNames returns the mapped top-level field names in deterministic order.
func (m *DocumentMapping) FieldNames() []string {
	names := make([]string, 0, len(m.Properties))
	for name := range m.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
