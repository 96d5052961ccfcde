package mapping

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMeta_RejectsNonObject(t *testing.T) {
	meta, err := ParseMeta("foo", 3)
	require.Error(t, err)
	assert.Nil(t, meta)
	assert.Equal(t, ErrCodeMetaType, ErrorCode(err))
	assert.Equal(t, "[meta] must be an object, got Integer[3] for field [foo]", err.Error())
}

func TestParseMeta_RejectsLongKey(t *testing.T) {
	_, err := ParseMeta("foo", map[string]any{"veryloooooooooooongkey": 3})
	require.Error(t, err)
	assert.Equal(t, ErrCodeMetaKeyLength, ErrorCode(err))
	assert.Equal(t, "[meta] keys can't be longer than 20 chars, but got [veryloooooooooooongkey] for field [foo]",
		err.Error())
}

func TestParseMeta_RejectsTooManyEntries(t *testing.T) {
	value := map[string]any{
		"foo1": "a", "foo2": "b", "foo3": "c", "foo4": "d", "foo5": "e", "foo6": "f",
	}
	_, err := ParseMeta("foo", value)
	require.Error(t, err)
	assert.Equal(t, ErrCodeMetaSize, ErrorCode(err))
	assert.Equal(t, "[meta] can't have more than 5 entries, but got 6 on field [foo]", err.Error())
}

func TestParseMeta_AcceptsFiveEntries(t *testing.T) {
	value := map[string]any{
		"foo1": "a", "foo2": "b", "foo3": "c", "foo4": "d", "foo5": "e",
	}
	meta, err := ParseMeta("foo", value)
	require.NoError(t, err)
	assert.Len(t, meta, 5)
	assert.Equal(t, "c", meta["foo3"])
}

func TestParseMeta_RejectsObjectValue(t *testing.T) {
	_, err := ParseMeta("foo", map[string]any{"foo": map[string]any{"bar": "baz"}})
	require.Error(t, err)
	assert.Equal(t, ErrCodeMetaValueType, ErrorCode(err))
	assert.Equal(t, "[meta] values can only be strings, but got Map[map[bar:baz]] for field [foo]", err.Error())
}

func TestParseMeta_RejectsNumericValue(t *testing.T) {
	// "bar" sorts first and is valid; the failure must name the second entry.
	_, err := ParseMeta("foo", map[string]any{"bar": "baz", "foo": 3})
	require.Error(t, err)
	assert.Equal(t, ErrCodeMetaValueType, ErrorCode(err))
	assert.Equal(t, "[meta] values can only be strings, but got Integer[3] for field [foo]", err.Error())
}

func TestParseMeta_RejectsNullValue(t *testing.T) {
	_, err := ParseMeta("foo", map[string]any{"foo": nil})
	require.Error(t, err)
	assert.Equal(t, ErrCodeMetaNullValue, ErrorCode(err))
	assert.Equal(t, "[meta] values can't be null (field [foo])", err.Error())
}

func TestParseMeta_RejectsLongValue(t *testing.T) {
	_, err := ParseMeta("foo", map[string]any{"foo": strings.Repeat("a", 51)})
	require.Error(t, err)
	assert.Equal(t, ErrCodeMetaValueLength, ErrorCode(err))
	assert.True(t, strings.HasPrefix(err.Error(), "[meta] values can't be longer than 50 chars"))
}

func TestParseMeta_LimitsCountCharactersNotBytes(t *testing.T) {
	// 30 characters, 60 bytes; the limit is on characters.
	value := strings.Repeat("é", 30)
	meta, err := ParseMeta("foo", map[string]any{"foo": value})
	require.NoError(t, err)
	assert.Equal(t, value, meta["foo"])

	key := strings.Repeat("é", 15)
	meta, err = ParseMeta("foo", map[string]any{key: "bar"})
	require.NoError(t, err)
	assert.Equal(t, "bar", meta[key])

	_, err = ParseMeta("foo", map[string]any{"foo": strings.Repeat("é", 51)})
	require.Error(t, err)
	assert.Equal(t, ErrCodeMetaValueLength, ErrorCode(err))

	_, err = ParseMeta("foo", map[string]any{strings.Repeat("é", 21): "bar"})
	require.Error(t, err)
	assert.Equal(t, ErrCodeMetaKeyLength, ErrorCode(err))
}

func TestParseMeta_AcceptsBoundaryValueLength(t *testing.T) {
	meta, err := ParseMeta("foo", map[string]any{"foo": strings.Repeat("a", 50)})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 50), meta["foo"])
}

func TestParseMeta_ChecksShortCircuit(t *testing.T) {
	// Entry count is checked before any per-key validation.
	value := map[string]any{
		"a": nil, "b": nil, "c": nil, "d": nil, "e": nil, "f": nil,
	}
	_, err := ParseMeta("foo", value)
	require.Error(t, err)
	assert.Equal(t, ErrCodeMetaSize, ErrorCode(err))
}
