// Package mapping parses document mapping definitions into trees of typed
// field mappers. A raw definition arrives as a generic tree of maps, lists
// and scalars; parsing dispatches each field through a pluggable type
// registry, resolves multi-fields recursively, validates the reserved meta
// block, and applies version-gated enforcement of structural rules. The
// finished mapper tree is immutable and is handed to the indexing subsystem.
package mapping

// FieldMapper is the constructed descriptor for one field: its name, type,
// validated meta block and resolved multi-fields. Mappers are frozen once
// built and safe to share across goroutines.
type FieldMapper interface {
	// Name is the field name the mapper was built for.
	Name() string
	// TypeName is the registered type the mapper was built by.
	TypeName() string
	// Indexed reports whether values of the field are searchable.
	Indexed() bool
	// Stored reports whether the original value is retrievable.
	Stored() bool
	// CopyTo lists the fields values are additionally copied into.
	CopyTo() []string
	// Meta is the validated meta block, nil when absent.
	Meta() map[string]string
	// Multifields are the alternate typed views of the field's values,
	// keyed by sub-field name.
	Multifields() map[string]FieldMapper
}

// Builder is the per-field construction state produced by a TypeParser. Build
// freezes the state into a FieldMapper.
type Builder interface {
	Name() string
	Build() FieldMapper
}

// fieldMapper carries the state shared by every concrete mapper type.
type fieldMapper struct {
	name     string
	typeName string
	index    bool
	store    bool
	copyTo   []string
	meta     map[string]string
	fields   map[string]FieldMapper
}

func (m *fieldMapper) Name() string                        { return m.name }
func (m *fieldMapper) TypeName() string                    { return m.typeName }
func (m *fieldMapper) Indexed() bool                       { return m.index }
func (m *fieldMapper) Stored() bool                        { return m.store }
func (m *fieldMapper) CopyTo() []string                    { return m.copyTo }
func (m *fieldMapper) Meta() map[string]string             { return m.meta }
func (m *fieldMapper) Multifields() map[string]FieldMapper { return m.fields }

// builderCore is the builder state shared by every field type; concrete
// builders embed it and add their own attributes.
type builderCore struct {
	name   string
	index  bool
	store  bool
	boost  float64
	copyTo []string
	meta   map[string]string
	fields map[string]FieldMapper
}

func newBuilderCore(name string) builderCore {
	return builderCore{name: name, index: true, boost: 1.0}
}

func (b *builderCore) Name() string {
	return b.name
}

// freeze materializes the shared mapper state for the given type name.
func (b *builderCore) freeze(typeName string) fieldMapper {
	return fieldMapper{
		name:     b.name,
		typeName: typeName,
		index:    b.index,
		store:    b.store,
		copyTo:   b.copyTo,
		meta:     b.meta,
		fields:   b.fields,
	}
}
