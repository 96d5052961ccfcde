// Package analysis exposes the analyzer handles consumed by the mapping
// parser. Analyzers themselves are built elsewhere; this package only models
// the opaque name -> analyzer lookup that field parsing resolves against.
package analysis

// Names of the analyzers every index is expected to carry. The lookup falls
// back to DefaultAnalyzerName when a more specific default is missing.
const (
	DefaultAnalyzerName             = "default"
	DefaultSearchAnalyzerName       = "default_search"
	DefaultSearchQuotedAnalyzerName = "default_search_quoted"
)

// AnalyzerScope identifies where an analyzer was registered.
type AnalyzerScope string

const (
	ScopeIndex  AnalyzerScope = "index"
	ScopeGlobal AnalyzerScope = "global"
)

// NamedAnalyzer is an opaque handle to a configured analyzer. The mapping
// layer never inspects the analysis chain; it only carries the handle through
// to the indexing subsystem.
type NamedAnalyzer struct {
	name  string
	scope AnalyzerScope
}

// NewNamedAnalyzer creates a handle for an analyzer registered under the given name.
func NewNamedAnalyzer(name string, scope AnalyzerScope) *NamedAnalyzer {
	return &NamedAnalyzer{name: name, scope: scope}
}

// Name returns the name the analyzer was registered under.
func (a *NamedAnalyzer) Name() string {
	return a.name
}

// Scope returns the scope the analyzer was registered in.
func (a *NamedAnalyzer) Scope() AnalyzerScope {
	return a.scope
}

// IndexAnalyzers is the per-index analyzer lookup handed to the mapping
// parser. It is read-only after construction and safe for concurrent use.
type IndexAnalyzers struct {
	analyzers map[string]*NamedAnalyzer
}

// NewIndexAnalyzers builds a lookup from a name -> analyzer map. The map is
// copied, so the caller may reuse or mutate its own copy afterwards.
func NewIndexAnalyzers(analyzers map[string]*NamedAnalyzer) *IndexAnalyzers {
	copied := make(map[string]*NamedAnalyzer, len(analyzers))
	for name, analyzer := range analyzers {
		copied[name] = analyzer
	}
	return &IndexAnalyzers{analyzers: copied}
}

// Get returns the analyzer registered under name, or nil when none exists.
func (ia *IndexAnalyzers) Get(name string) *NamedAnalyzer {
	return ia.analyzers[name]
}

// Default returns the index default analyzer.
func (ia *IndexAnalyzers) Default() *NamedAnalyzer {
	return ia.analyzers[DefaultAnalyzerName]
}

// DefaultSearch returns the default search analyzer, falling back to the
// index default when no dedicated search analyzer is configured.
func (ia *IndexAnalyzers) DefaultSearch() *NamedAnalyzer {
	if a := ia.analyzers[DefaultSearchAnalyzerName]; a != nil {
		return a
	}
	return ia.Default()
}
