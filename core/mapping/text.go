package mapping

import "github.com/asaidimu/go-ramani/core/analysis"

// TypeText runs values through an analyzer and indexes the resulting terms.
// It is also the fallback type for definitions that name no type at all.
const TypeText = "text"

// TextFieldMapper is the mapper for analyzed text fields.
type TextFieldMapper struct {
	fieldMapper
	analyzer       *analysis.NamedAnalyzer
	searchAnalyzer *analysis.NamedAnalyzer
	norms          bool
}

// Analyzer is the index-time analyzer, nil when no lookup was supplied.
func (m *TextFieldMapper) Analyzer() *analysis.NamedAnalyzer {
	return m.analyzer
}

// SearchAnalyzer is the query-time analyzer; defaults to the index-time one.
func (m *TextFieldMapper) SearchAnalyzer() *analysis.NamedAnalyzer {
	return m.searchAnalyzer
}

// Norms reports whether field-length normalization factors are kept.
func (m *TextFieldMapper) Norms() bool {
	return m.norms
}

// TextBuilder accumulates text attributes before freezing the mapper.
type TextBuilder struct {
	builderCore
	analyzer       *analysis.NamedAnalyzer
	searchAnalyzer *analysis.NamedAnalyzer
	norms          bool
}

// NewTextBuilder creates a builder with the type defaults.
func NewTextBuilder(name string) *TextBuilder {
	return &TextBuilder{builderCore: newBuilderCore(name), norms: true}
}

// Build freezes the builder into an immutable mapper.
func (b *TextBuilder) Build() FieldMapper {
	analyzer := b.analyzer
	searchAnalyzer := b.searchAnalyzer
	if searchAnalyzer == nil {
		searchAnalyzer = analyzer
	}
	return &TextFieldMapper{
		fieldMapper:    b.freeze(TypeText),
		analyzer:       analyzer,
		searchAnalyzer: searchAnalyzer,
		norms:          b.norms,
	}
}

// TextTypeParser parses text field definitions, resolving analyzer names
// through the context's analyzer lookup.
type TextTypeParser struct{}

var _ TypeParser = TextTypeParser{}

func (TextTypeParser) Parse(fieldName string, node map[string]any, ctx *ParserContext) (Builder, error) {
	b := NewTextBuilder(fieldName)
	remaining := cloneDefinition(node)

	for _, key := range sortedKeys(remaining) {
		value := remaining[key]
		switch key {
		case "analyzer":
			analyzer, err := resolveAnalyzer(fieldName, key, value, ctx)
			if err != nil {
				return nil, err
			}
			b.analyzer = analyzer
		case "search_analyzer":
			analyzer, err := resolveAnalyzer(fieldName, key, value, ctx)
			if err != nil {
				return nil, err
			}
			b.searchAnalyzer = analyzer
		case "norms":
			v, ok := nodeBool(value)
			if !ok {
				return nil, attributeError(fieldName, key, "boolean", value)
			}
			b.norms = v
		default:
			continue
		}
		delete(remaining, key)
	}

	if b.analyzer == nil && ctx.Analyzers() != nil {
		b.analyzer = ctx.Analyzers().Default()
	}
	if b.searchAnalyzer == nil && ctx.Analyzers() != nil {
		b.searchAnalyzer = ctx.Analyzers().DefaultSearch()
	}

	if err := parseCommonAttributes(&b.builderCore, remaining, ctx); err != nil {
		return nil, err
	}
	if err := checkUnknownParameters(fieldName, TypeText, remaining, ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// resolveAnalyzer turns an analyzer name into its handle via the context lookup.
func resolveAnalyzer(fieldName, key string, value any, ctx *ParserContext) (*analysis.NamedAnalyzer, error) {
	name, ok := value.(string)
	if !ok {
		return nil, attributeError(fieldName, key, "string", value)
	}

	lookup := ctx.Analyzers()
	if lookup == nil {
		return nil, newError(ErrCodeUnknownAnalyzer, fieldName,
			"analyzer [%s] not found for field [%s]", name, fieldName)
	}
	analyzer := lookup.Get(name)
	if analyzer == nil {
		return nil, newError(ErrCodeUnknownAnalyzer, fieldName,
			"analyzer [%s] not found for field [%s]", name, fieldName)
	}
	return analyzer, nil
}
