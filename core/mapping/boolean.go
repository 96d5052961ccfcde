package mapping

// TypeBoolean indexes true/false values.
const TypeBoolean = "boolean"

// BooleanFieldMapper is the mapper for boolean fields.
type BooleanFieldMapper struct {
	fieldMapper
	nullValue *bool
}

// NullValue is the substitute indexed for explicit nulls, nil when unset.
func (m *BooleanFieldMapper) NullValue() *bool {
	return m.nullValue
}

// BooleanBuilder accumulates boolean attributes before freezing the mapper.
type BooleanBuilder struct {
	builderCore
	nullValue *bool
}

// NewBooleanBuilder creates a builder with the type defaults.
func NewBooleanBuilder(name string) *BooleanBuilder {
	return &BooleanBuilder{builderCore: newBuilderCore(name)}
}

// Build freezes the builder into an immutable mapper.
func (b *BooleanBuilder) Build() FieldMapper {
	return &BooleanFieldMapper{
		fieldMapper: b.freeze(TypeBoolean),
		nullValue:   b.nullValue,
	}
}

// BooleanTypeParser parses boolean field definitions.
type BooleanTypeParser struct{}

var _ TypeParser = BooleanTypeParser{}

func (BooleanTypeParser) Parse(fieldName string, node map[string]any, ctx *ParserContext) (Builder, error) {
	b := NewBooleanBuilder(fieldName)
	remaining := cloneDefinition(node)

	if value, ok := remaining["null_value"]; ok {
		v, isBool := nodeBool(value)
		if !isBool {
			return nil, attributeError(fieldName, "null_value", "boolean", value)
		}
		b.nullValue = &v
		delete(remaining, "null_value")
	}

	if err := parseCommonAttributes(&b.builderCore, remaining, ctx); err != nil {
		return nil, err
	}
	if err := checkUnknownParameters(fieldName, TypeBoolean, remaining, ctx); err != nil {
		return nil, err
	}
	return b, nil
}
