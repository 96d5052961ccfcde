package mapping

import (
	"context"
	"time"
)

// Record is the persisted form of one index's mapping: the raw source
// exactly as submitted, plus the format version it was compiled under. The
// compiled mapper tree itself is never persisted; it is rebuilt from source.
type Record struct {
	Index     string       `json:"index"`
	Version   string       `json:"version"`
	Format    SourceFormat `json:"format"`
	Source    []byte       `json:"source"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Store persists mapping records keyed by index name. Implementations live
// outside this package (see the sqlite adapter); the engine only requires
// this interface.
type Store interface {
	// Put inserts or replaces the record for record.Index.
	Put(ctx context.Context, record Record) error
	// Get returns the record for an index; found is false when absent.
	Get(ctx context.Context, index string) (record Record, found bool, err error)
	// Exists reports whether a record is stored for the index.
	Exists(ctx context.Context, index string) (bool, error)
	// List returns the stored index names in deterministic order.
	List(ctx context.Context) ([]string, error)
	// Delete removes an index's record; removed is false when absent.
	Delete(ctx context.Context, index string) (removed bool, err error)
}
