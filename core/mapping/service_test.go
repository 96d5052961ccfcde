package mapping

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store for service tests.
type memStore struct {
	mu      sync.Mutex
	records map[string]Record
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]Record)}
}

func (m *memStore) Put(_ context.Context, record Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.Index] = record
	return nil
}

func (m *memStore) Get(_ context.Context, index string) (Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, found := m.records[index]
	return record, found, nil
}

func (m *memStore) Exists(_ context.Context, index string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, found := m.records[index]
	return found, nil
}

func (m *memStore) List(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	indices := make([]string, 0, len(m.records))
	for index := range m.records {
		indices = append(indices, index)
	}
	sort.Strings(indices)
	return indices, nil
}

func (m *memStore) Delete(_ context.Context, index string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, found := m.records[index]
	delete(m.records, index)
	return found, nil
}

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	store := newMemStore()
	service, err := NewService(store, &ServiceOptions{Analyzers: defaultAnalyzers()})
	require.NoError(t, err)
	return service, store
}

func TestService_RequiresStore(t *testing.T) {
	_, err := NewService(nil, nil)
	assert.Error(t, err)
}

func TestService_CompilePersistsSource(t *testing.T) {
	service, store := newTestService(t)
	source := []byte(`{"properties": {"status": {"type": "keyword"}}}`)

	compiled, deprecations, err := service.Compile(context.Background(), "articles", source, FormatJSON, MustParseVersion("8.0.0"))
	require.NoError(t, err)
	require.NotNil(t, compiled)
	assert.Empty(t, deprecations)

	record, found, err := store.Get(context.Background(), "articles")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, source, record.Source)
	assert.Equal(t, "8.0.0", record.Version)
}

func TestService_CompileSurfacesDeprecations(t *testing.T) {
	service, _ := newTestService(t)
	source := []byte(`{
		"properties": {
			"title": {
				"type": "text",
				"fields": {
					"raw": {
						"type": "keyword",
						"fields": {"deeper": {"type": "keyword"}}
					}
				}
			}
		}
	}`)

	compiled, deprecations, err := service.Compile(context.Background(), "articles", source, FormatJSON, MustParseVersion("7.17.0"))
	require.NoError(t, err)
	require.NotNil(t, compiled)
	require.Len(t, deprecations, 1)
	assert.Equal(t, "title", deprecations[0].Field)
	assert.Contains(t, deprecations[0].Message, "[raw]")
}

func TestService_CompileFailureLeavesStoreUntouched(t *testing.T) {
	service, store := newTestService(t)
	source := []byte(`{
		"properties": {
			"title": {
				"type": "text",
				"fields": {
					"raw": {
						"type": "keyword",
						"fields": {"deeper": {"type": "keyword"}}
					}
				}
			}
		}
	}`)

	compiled, _, err := service.Compile(context.Background(), "articles", source, FormatJSON, MustParseVersion("8.0.0"))
	require.Error(t, err)
	assert.Nil(t, compiled)
	assert.Equal(t, ErrCodeChainedField, ErrorCode(err))

	found, err := store.Exists(context.Background(), "articles")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestService_MappingRecompilesStoredSource(t *testing.T) {
	service, _ := newTestService(t)
	source := []byte(`{"properties": {"status": {"type": "keyword"}}}`)

	_, _, err := service.Compile(context.Background(), "articles", source, FormatJSON, MustParseVersion("8.0.0"))
	require.NoError(t, err)

	compiled, found, err := service.Mapping(context.Background(), "articles")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, TypeKeyword, compiled.Field("status").TypeName())

	_, found, err = service.Mapping(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestService_IndicesAndDelete(t *testing.T) {
	service, _ := newTestService(t)
	source := []byte(`{"properties": {"status": {"type": "keyword"}}}`)

	for _, index := range []string{"b-index", "a-index"} {
		_, _, err := service.Compile(context.Background(), index, source, FormatJSON, MustParseVersion("8.0.0"))
		require.NoError(t, err)
	}

	indices, err := service.Indices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a-index", "b-index"}, indices)

	removed, err := service.Delete(context.Background(), "a-index")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = service.Delete(context.Background(), "a-index")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestService_SubscriptionLifecycle(t *testing.T) {
	service, _ := newTestService(t)

	label := "audit"
	id := service.Subscribe(SubscribeOptions{
		Event: MappingCompileSuccess,
		Label: &label,
		Callback: func(ctx context.Context, event Event) error {
			return nil
		},
	})
	require.NotEmpty(t, id)

	subs := service.Subscriptions()
	require.Len(t, subs, 1)
	assert.Equal(t, MappingCompileSuccess, subs[0].Event)

	service.Unsubscribe(id)
	assert.Empty(t, service.Subscriptions())
}
