package mapping

import (
	"sort"
	"sync"
)

// TypeParser turns a raw field definition into a Builder for one field type.
// Implementations must not retain or mutate node.
type TypeParser interface {
	Parse(fieldName string, node map[string]any, ctx *ParserContext) (Builder, error)
}

// TypeRegistry maps a field type name to its TypeParser. Registration is
// expected to happen once at process start; Resolve is safe for concurrent
// use afterwards.
type TypeRegistry struct {
	mu      sync.RWMutex
	parsers map[string]TypeParser
}

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{parsers: make(map[string]TypeParser)}
}

// Register binds a type name to a parser, replacing any previous binding.
func (r *TypeRegistry) Register(typeName string, parser TypeParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[typeName] = parser
}

// Resolve returns the parser registered for typeName. The field name is only
// used to build the error message for unregistered types.
func (r *TypeRegistry) Resolve(typeName, fieldName string) (TypeParser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parser, ok := r.parsers[typeName]
	if !ok {
		return nil, newError(ErrCodeUnknownType, fieldName,
			"No handler for type [%s] declared on field [%s]", typeName, fieldName)
	}
	return parser, nil
}

// Types returns the registered type names in deterministic order.
func (r *TypeRegistry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	defaultRegistry     *TypeRegistry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry preloaded with the
// built-in field types. Callers may register additional types on it before
// parsing begins.
func DefaultRegistry() *TypeRegistry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewTypeRegistry()
		defaultRegistry.Register(TypeKeyword, KeywordTypeParser{})
		defaultRegistry.Register(TypeText, TextTypeParser{})
		defaultRegistry.Register(TypeBoolean, BooleanTypeParser{})
	})
	return defaultRegistry
}
