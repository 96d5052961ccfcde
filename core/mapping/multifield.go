package mapping

// chainedFieldsDeprecation is the stable template recorded when a pre-8.0
// definition chains multi-fields. Migration tooling asserts on this text.
const chainedFieldsDeprecation = "At least one multi-field, [%s], was encountered that itself " +
	"contains a multi-field. Defining multi-fields within a multi-field is deprecated " +
	"and is not supported for indices created in 8.0 and later. To migrate the mappings, all instances of [fields] " +
	"that occur within a [fields] block should be removed from the mappings, either by flattening the chained " +
	"[fields] blocks into a single level, or switching to [copy_to] if appropriate."

// parseMultiFields resolves the "fields" block of fieldName into child
// mappers, enforcing the rule that multi-fields may not chain. When fieldName
// is itself a multi-field and its block is non-empty, the violation is either
// recorded as a deprecation (versions before 8.0) or fails the parse. In the
// deprecated case parsing continues best-effort: the offending sub-field's
// own children are still built, but no deeper "fields" blocks are descended
// into.
func parseMultiFields(fieldName string, value any, ctx *ParserContext) (map[string]FieldMapper, error) {
	node, ok := value.(map[string]any)
	if !ok {
		return nil, newError(ErrCodeMalformedField, fieldName,
			"expected an object for property [fields] on field [%s], got %s", fieldName, typeName(value))
	}
	if len(node) == 0 {
		return nil, nil
	}

	if ctx.InMultiField() {
		if ChainedFieldsMode(ctx.Version()) == ModeReject {
			return nil, newError(ErrCodeChainedField, fieldName,
				"Encountered a multi-field [%s] which itself contains a multi-field. "+
					"Defining chained multi-fields is not supported.", fieldName)
		}
		if ctx.multiFieldDepth > 1 {
			// Already one level past the first offense; stop descending.
			return nil, nil
		}
		ctx.Deprecate(ctx.parentField, chainedFieldsDeprecation, fieldName)
	}

	children := make(map[string]FieldMapper, len(node))
	for _, subName := range sortedKeys(node) {
		subDefinition, ok := node[subName].(map[string]any)
		if !ok {
			return nil, newError(ErrCodeMalformedField, subName,
				"expected an object for multi-field [%s] of field [%s], got %s",
				subName, fieldName, typeName(node[subName]))
		}

		mapper, err := ParseField(subName, subDefinition, ctx.MultiField(fieldName))
		if err != nil {
			return nil, err
		}
		children[subName] = mapper
	}

	return children, nil
}
