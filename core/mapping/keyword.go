package mapping

import "math"

// TypeKeyword indexes values verbatim for exact matching, sorting and
// aggregations.
const TypeKeyword = "keyword"

// KeywordFieldMapper is the mapper for keyword fields.
type KeywordFieldMapper struct {
	fieldMapper
	ignoreAbove int
	nullValue   *string
	docValues   bool
}

// IgnoreAbove is the length above which values are skipped at index time.
func (m *KeywordFieldMapper) IgnoreAbove() int {
	return m.ignoreAbove
}

// NullValue is the substitute indexed for explicit nulls, nil when unset.
func (m *KeywordFieldMapper) NullValue() *string {
	return m.nullValue
}

// DocValues reports whether the field writes columnar doc values.
func (m *KeywordFieldMapper) DocValues() bool {
	return m.docValues
}

// KeywordBuilder accumulates keyword attributes before freezing the mapper.
type KeywordBuilder struct {
	builderCore
	ignoreAbove int
	nullValue   *string
	docValues   bool
}

// NewKeywordBuilder creates a builder with the type defaults.
func NewKeywordBuilder(name string) *KeywordBuilder {
	return &KeywordBuilder{
		builderCore: newBuilderCore(name),
		ignoreAbove: math.MaxInt32,
		docValues:   true,
	}
}

// Build freezes the builder into an immutable mapper.
func (b *KeywordBuilder) Build() FieldMapper {
	return &KeywordFieldMapper{
		fieldMapper: b.freeze(TypeKeyword),
		ignoreAbove: b.ignoreAbove,
		nullValue:   b.nullValue,
		docValues:   b.docValues,
	}
}

// KeywordTypeParser parses keyword field definitions.
type KeywordTypeParser struct{}

var _ TypeParser = KeywordTypeParser{}

func (KeywordTypeParser) Parse(fieldName string, node map[string]any, ctx *ParserContext) (Builder, error) {
	b := NewKeywordBuilder(fieldName)
	remaining := cloneDefinition(node)

	for _, key := range sortedKeys(remaining) {
		value := remaining[key]
		switch key {
		case "ignore_above":
			v, ok := nodeInt(value)
			if !ok || v < 0 {
				return nil, attributeError(fieldName, key, "non-negative integer", value)
			}
			b.ignoreAbove = v
		case "null_value":
			s, ok := value.(string)
			if !ok {
				return nil, attributeError(fieldName, key, "string", value)
			}
			b.nullValue = &s
		case "doc_values":
			v, ok := nodeBool(value)
			if !ok {
				return nil, attributeError(fieldName, key, "boolean", value)
			}
			b.docValues = v
		default:
			continue
		}
		delete(remaining, key)
	}

	if err := parseCommonAttributes(&b.builderCore, remaining, ctx); err != nil {
		return nil, err
	}
	if err := checkUnknownParameters(fieldName, TypeKeyword, remaining, ctx); err != nil {
		return nil, err
	}
	return b, nil
}
