package mapping

import "github.com/asaidimu/go-ramani/core/analysis"

// ParserContext is the immutable per-parse environment threaded through the
// whole mapper tree: format version, analyzer lookup, type registry and the
// call-scoped deprecation sink. One context belongs to exactly one parse
// call; concurrent parses each build their own.
type ParserContext struct {
	version   Version
	analyzers *analysis.IndexAnalyzers
	registry  *TypeRegistry
	strict    bool

	deprecations *Deprecations

	// multi-field nesting state; parentField is the field whose "fields"
	// block is currently being resolved.
	multiFieldDepth int
	parentField     string
}

// ParserContextOptions configures optional parser behavior.
type ParserContextOptions struct {
	// Strict rejects unknown field parameters instead of deprecating them.
	Strict bool
}

// NewParserContext builds the environment for one schema parse. A nil
// registry falls back to the process default; a nil options pointer selects
// lenient parsing.
func NewParserContext(version Version, analyzers *analysis.IndexAnalyzers, registry *TypeRegistry, options *ParserContextOptions) *ParserContext {
	if registry == nil {
		registry = DefaultRegistry()
	}
	strict := false
	if options != nil {
		strict = options.Strict
	}
	return &ParserContext{
		version:      version,
		analyzers:    analyzers,
		registry:     registry,
		strict:       strict,
		deprecations: &Deprecations{},
	}
}

// Version returns the mapping-format version of this parse.
func (c *ParserContext) Version() Version {
	return c.version
}

// Analyzers returns the analyzer lookup, possibly nil when the caller indexes
// no analyzed fields.
func (c *ParserContext) Analyzers() *analysis.IndexAnalyzers {
	return c.analyzers
}

// TypeParser resolves a field type name through the registry.
func (c *ParserContext) TypeParser(typeName, fieldName string) (TypeParser, error) {
	return c.registry.Resolve(typeName, fieldName)
}

// Strict reports whether unknown parameters fail the parse.
func (c *ParserContext) Strict() bool {
	return c.strict
}

// Deprecate records a deprecation notice against a field.
func (c *ParserContext) Deprecate(field, format string, args ...any) {
	c.deprecations.Add(field, format, args...)
}

// Deprecations returns the sink accumulating this parse's notices.
func (c *ParserContext) Deprecations() *Deprecations {
	return c.deprecations
}

// MultiField derives the context used while resolving the "fields" block of
// parentField. The sink and environment are shared; only the nesting state
// changes.
func (c *ParserContext) MultiField(parentField string) *ParserContext {
	derived := *c
	derived.multiFieldDepth++
	derived.parentField = parentField
	return &derived
}

// InMultiField reports whether the current definition is itself a
// multi-field of another field.
func (c *ParserContext) InMultiField() bool {
	return c.multiFieldDepth > 0
}
