package mapping

import (
	"testing"

	"github.com/asaidimu/go-ramani/core/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultAnalyzers() *analysis.IndexAnalyzers {
	return analysis.NewIndexAnalyzers(map[string]*analysis.NamedAnalyzer{
		analysis.DefaultAnalyzerName:             analysis.NewNamedAnalyzer("default", analysis.ScopeIndex),
		analysis.DefaultSearchAnalyzerName:       analysis.NewNamedAnalyzer("default", analysis.ScopeIndex),
		analysis.DefaultSearchQuotedAnalyzerName: analysis.NewNamedAnalyzer("default", analysis.ScopeIndex),
	})
}

func chainedDefinition() map[string]any {
	return map[string]any{
		"type": "keyword",
		"fields": map[string]any{
			"sub-field": map[string]any{
				"type": "keyword",
				"fields": map[string]any{
					"sub-sub-field": map[string]any{
						"type": "keyword",
					},
				},
			},
		},
	}
}

func TestMultiFieldWithinMultiField_WarnsBeforeThreshold(t *testing.T) {
	ctx := NewParserContext(MustParseVersion("7.17.0"), defaultAnalyzers(), nil, nil)

	mapper, err := ParseField("some-field", chainedDefinition(), ctx)
	require.NoError(t, err)
	require.NotNil(t, mapper)

	deprecations := ctx.Deprecations().All()
	require.Len(t, deprecations, 1)
	assert.Equal(t, "some-field", deprecations[0].Field)
	assert.Equal(t, "At least one multi-field, [sub-field], "+
		"was encountered that itself contains a multi-field. Defining multi-fields within a multi-field is deprecated "+
		"and is not supported for indices created in 8.0 and later. To migrate the mappings, all instances of [fields] "+
		"that occur within a [fields] block should be removed from the mappings, either by flattening the chained "+
		"[fields] blocks into a single level, or switching to [copy_to] if appropriate.",
		deprecations[0].Message)

	// The offending sub-field's own mapper is still built, one level deep.
	sub := mapper.Multifields()["sub-field"]
	require.NotNil(t, sub)
	require.NotNil(t, sub.Multifields()["sub-sub-field"])
}

func TestMultiFieldWithinMultiField_FailsAtThreshold(t *testing.T) {
	for _, version := range []string{"8.0.0", "8.11.4", "9.0.0"} {
		ctx := NewParserContext(MustParseVersion(version), defaultAnalyzers(), nil, nil)

		mapper, err := ParseField("some-field", chainedDefinition(), ctx)
		require.Error(t, err, "version %s", version)
		assert.Nil(t, mapper)
		assert.Equal(t, ErrCodeChainedField, ErrorCode(err))
		assert.Equal(t, "Encountered a multi-field [sub-field] which itself contains a "+
			"multi-field. Defining chained multi-fields is not supported.", err.Error())
	}
}

func TestMultiFieldWithinMultiField_DoesNotDescendPastOneLevel(t *testing.T) {
	definition := chainedDefinition()
	subSub := definition["fields"].(map[string]any)["sub-field"].(map[string]any)["fields"].(map[string]any)["sub-sub-field"].(map[string]any)
	subSub["fields"] = map[string]any{
		"too-deep": map[string]any{"type": "keyword"},
	}

	ctx := NewParserContext(MustParseVersion("7.9.3"), defaultAnalyzers(), nil, nil)
	mapper, err := ParseField("some-field", definition, ctx)
	require.NoError(t, err)

	// One warning for the first offense, and the deeper block is dropped.
	assert.Equal(t, 1, ctx.Deprecations().Len())
	subSubMapper := mapper.Multifields()["sub-field"].Multifields()["sub-sub-field"]
	require.NotNil(t, subSubMapper)
	assert.Empty(t, subSubMapper.Multifields())
}

func TestMultiFields_ReportPerOffense(t *testing.T) {
	definition := map[string]any{
		"type": "keyword",
		"fields": map[string]any{
			"first": map[string]any{
				"type":   "keyword",
				"fields": map[string]any{"nested": map[string]any{"type": "keyword"}},
			},
			"second": map[string]any{
				"type":   "keyword",
				"fields": map[string]any{"nested": map[string]any{"type": "keyword"}},
			},
		},
	}

	ctx := NewParserContext(MustParseVersion("7.17.0"), defaultAnalyzers(), nil, nil)
	_, err := ParseField("outer", definition, ctx)
	require.NoError(t, err)

	deprecations := ctx.Deprecations().All()
	require.Len(t, deprecations, 2)
	assert.Contains(t, deprecations[0].Message, "[first]")
	assert.Contains(t, deprecations[1].Message, "[second]")
}

func TestMultiFields_EmptyBlockIsIgnored(t *testing.T) {
	definition := map[string]any{
		"type":   "keyword",
		"fields": map[string]any{},
	}

	ctx := NewParserContext(MustParseVersion("8.1.0"), defaultAnalyzers(), nil, nil)
	mapper, err := ParseField("plain", definition, ctx)
	require.NoError(t, err)
	assert.Empty(t, mapper.Multifields())
	assert.Zero(t, ctx.Deprecations().Len())
}

func TestMultiFields_MalformedSubDefinition(t *testing.T) {
	definition := map[string]any{
		"type": "keyword",
		"fields": map[string]any{
			"raw": "keyword",
		},
	}

	ctx := NewParserContext(MustParseVersion("8.1.0"), defaultAnalyzers(), nil, nil)
	_, err := ParseField("broken", definition, ctx)
	require.Error(t, err)
	assert.Equal(t, ErrCodeMalformedField, ErrorCode(err))
}

func TestParseField_Idempotent(t *testing.T) {
	definition := map[string]any{
		"type":         "keyword",
		"store":        true,
		"ignore_above": 128,
		"meta":         map[string]any{"unit": "ms"},
		"fields": map[string]any{
			"analyzed": map[string]any{"type": "text"},
		},
	}

	first, err := ParseField("latency", definition,
		NewParserContext(MustParseVersion("8.2.0"), defaultAnalyzers(), nil, nil))
	require.NoError(t, err)

	second, err := ParseField("latency", definition,
		NewParserContext(MustParseVersion("8.2.0"), defaultAnalyzers(), nil, nil))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
