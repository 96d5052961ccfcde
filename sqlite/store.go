// Package sqlite provides a concrete implementation of the mapping.Store
// interface backed by a SQLite database. It persists raw mapping sources
// keyed by index name; compiled mapper trees are always rebuilt from source.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/asaidimu/go-ramani/core/mapping"
	"go.uber.org/zap"
)

const createMappingsTable = `
CREATE TABLE IF NOT EXISTS mappings (
	index_name TEXT PRIMARY KEY,
	format_version TEXT NOT NULL,
	source_format TEXT NOT NULL,
	source BLOB NOT NULL,
	updated_at TEXT NOT NULL
)`

// Store is a mapping.Store over a SQLite database. It is safe for concurrent
// use; all synchronization is delegated to database/sql.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ mapping.Store = (*Store)(nil)

// NewStore creates a store over db and ensures the mappings table exists. A
// nil logger defaults to a no-op logger.
func NewStore(db *sql.DB, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := db.Exec(createMappingsTable); err != nil {
		return nil, fmt.Errorf("failed to create mappings table: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Put inserts or replaces the mapping record for record.Index.
func (s *Store) Put(ctx context.Context, record mapping.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mappings (index_name, format_version, source_format, source, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(index_name) DO UPDATE SET
			format_version = excluded.format_version,
			source_format = excluded.source_format,
			source = excluded.source,
			updated_at = excluded.updated_at`,
		record.Index, record.Version, string(record.Format), record.Source,
		record.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to store mapping for index %s: %w", record.Index, err)
	}

	s.logger.Debug("stored mapping", zap.String("index", record.Index), zap.String("version", record.Version))
	return nil
}

// Get returns the stored record for an index.
func (s *Store) Get(ctx context.Context, index string) (mapping.Record, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT index_name, format_version, source_format, source, updated_at
		 FROM mappings WHERE index_name = ?`, index)

	var record mapping.Record
	var format string
	var updatedAt string
	err := row.Scan(&record.Index, &record.Version, &format, &record.Source, &updatedAt)
	if err == sql.ErrNoRows {
		return mapping.Record{}, false, nil
	}
	if err != nil {
		return mapping.Record{}, false, fmt.Errorf("failed to read mapping for index %s: %w", index, err)
	}

	record.Format = mapping.SourceFormat(format)
	record.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return mapping.Record{}, false, fmt.Errorf("failed to parse stored timestamp for index %s: %w", index, err)
	}
	return record, true, nil
}

// Exists reports whether a mapping is stored for the index.
func (s *Store) Exists(ctx context.Context, index string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM mappings WHERE index_name = ?`, index).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up mapping for index %s: %w", index, err)
	}
	return true, nil
}

// List returns the stored index names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT index_name FROM mappings ORDER BY index_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list mappings: %w", err)
	}
	defer rows.Close()

	var indices []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan mapping row: %w", err)
		}
		indices = append(indices, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mappings: %w", err)
	}
	return indices, nil
}

// Delete removes an index's mapping record.
func (s *Store) Delete(ctx context.Context, index string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM mappings WHERE index_name = ?`, index)
	if err != nil {
		return false, fmt.Errorf("failed to delete mapping for index %s: %w", index, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result for index %s: %w", index, err)
	}
	return affected > 0, nil
}
