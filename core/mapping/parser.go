package mapping

import "maps"

// ParseField parses a single raw field definition into its mapper. The
// definition's "type" key selects the builder through the context's registry;
// a definition without a type parses as text. The definition tree is treated
// as read-only.
func ParseField(fieldName string, definition map[string]any, ctx *ParserContext) (FieldMapper, error) {
	fieldType := TypeText
	if raw, ok := definition["type"]; ok {
		s, isString := raw.(string)
		if !isString || s == "" {
			return nil, newError(ErrCodeMalformedField, fieldName,
				"[type] on field [%s] must be a non-empty string, got %s[%v]", fieldName, typeName(raw), raw)
		}
		fieldType = s
	}

	parser, err := ctx.TypeParser(fieldType, fieldName)
	if err != nil {
		return nil, err
	}

	builder, err := parser.Parse(fieldName, definition, ctx)
	if err != nil {
		return nil, err
	}
	return builder.Build(), nil
}

// parseCommonAttributes consumes the attributes shared by every field type
// from the remaining definition keys: index, store, boost, copy_to, meta and
// fields. Consumed keys are deleted from remaining so the caller can detect
// unknown parameters afterwards.
func parseCommonAttributes(b *builderCore, remaining map[string]any, ctx *ParserContext) error {
	for _, key := range sortedKeys(remaining) {
		value := remaining[key]
		switch key {
		case "type":
			// Consumed by registry dispatch.
		case "index":
			v, ok := nodeBool(value)
			if !ok {
				return attributeError(b.name, key, "boolean", value)
			}
			b.index = v
		case "store":
			v, ok := nodeBool(value)
			if !ok {
				return attributeError(b.name, key, "boolean", value)
			}
			b.store = v
		case "boost":
			v, ok := nodeFloat(value)
			if !ok {
				return attributeError(b.name, key, "number", value)
			}
			b.boost = v
			ctx.Deprecate(b.name,
				"Parameter [boost] on field [%s] is deprecated and has no effect", b.name)
		case "copy_to":
			targets, err := parseCopyTo(b.name, value)
			if err != nil {
				return err
			}
			b.copyTo = targets
		case "meta":
			meta, err := ParseMeta(b.name, value)
			if err != nil {
				return err
			}
			b.meta = meta
		case "fields":
			children, err := parseMultiFields(b.name, value, ctx)
			if err != nil {
				return err
			}
			b.fields = children
		default:
			continue
		}
		delete(remaining, key)
	}
	return nil
}

// checkUnknownParameters handles whatever keys survived type-specific and
// common parsing: rejected in strict mode, dropped with a deprecation
// otherwise.
func checkUnknownParameters(fieldName, fieldType string, remaining map[string]any, ctx *ParserContext) error {
	for _, key := range sortedKeys(remaining) {
		if ctx.Strict() {
			return newError(ErrCodeUnknownParameter, fieldName,
				"unknown parameter [%s] on mapper [%s] of type [%s]", key, fieldName, fieldType)
		}
		ctx.Deprecate(fieldName,
			"Parameter [%s] is unknown on mapper [%s] of type [%s] and will be ignored", key, fieldName, fieldType)
	}
	return nil
}

func attributeError(fieldName, key, want string, got any) *Error {
	return newError(ErrCodeMalformedField, fieldName,
		"[%s] on field [%s] must be a %s, got %s[%v]", key, fieldName, want, typeName(got), got)
}

func parseCopyTo(fieldName string, value any) ([]string, error) {
	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case []any:
		targets := make([]string, 0, len(v))
		for _, entry := range v {
			s, ok := entry.(string)
			if !ok {
				return nil, attributeError(fieldName, "copy_to", "string or list of strings", entry)
			}
			targets = append(targets, s)
		}
		return targets, nil
	default:
		return nil, attributeError(fieldName, "copy_to", "string or list of strings", value)
	}
}

// cloneDefinition shallow-copies a definition map so parsers can consume keys
// without mutating the caller's tree.
func cloneDefinition(definition map[string]any) map[string]any {
	return maps.Clone(definition)
}
