package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/logbook/pkg/types"
)

// timeLayout is the storage format for store-generated timestamps. Fixed
// fractional width keeps lexical ordering equal to chronological ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// GetTableMetadata returns the metadata record for one table.
// Returns ErrTableNotFound when no record exists.
func (s *Store) GetTableMetadata(ctx context.Context, table string) (*types.TableMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.getTableMetadata(ctx, s.db, table)
}

// querier is the subset of *sql.DB and *sql.Tx the metadata helpers need,
// so they can run inside or outside a transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) getTableMetadata(ctx context.Context, q querier, table string) (*types.TableMetadata, error) {
	row := q.QueryRowContext(ctx,
		"SELECT table_name, description, purpose, learnings, created_at, updated_at FROM table_metadata WHERE table_name = ?",
		table)

	var md types.TableMetadata
	var learningsJSON, createdAt, updatedAt string
	err := row.Scan(&md.TableName, &md.Description, &md.Purpose, &learningsJSON, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", types.ErrTableNotFound, table)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning table metadata: %w", err)
	}
	if err := json.Unmarshal([]byte(learningsJSON), &md.Learnings); err != nil {
		return nil, fmt.Errorf("parsing learnings: %w", err)
	}
	if md.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parsing metadata created_at: %w", err)
	}
	if md.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing metadata updated_at: %w", err)
	}
	return &md, nil
}

// columnMetadataFor loads the column metadata records of one table, keyed
// by column name.
func (s *Store) columnMetadataFor(ctx context.Context, q querier, table string) (map[string]types.ColumnMetadata, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT table_name, column_name, description, data_type, unit, created_at FROM column_metadata WHERE table_name = ?",
		table)
	if err != nil {
		return nil, fmt.Errorf("loading column metadata: %w", err)
	}
	defer rows.Close()

	out := make(map[string]types.ColumnMetadata)
	for rows.Next() {
		var cm types.ColumnMetadata
		var createdAt string
		if err := rows.Scan(&cm.TableName, &cm.ColumnName, &cm.Description, &cm.DataType, &cm.Unit, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning column metadata: %w", err)
		}
		if cm.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parsing column metadata created_at: %w", err)
		}
		out[cm.ColumnName] = cm
	}
	return out, rows.Err()
}

// insertColumnMetadata writes one column metadata row inside tx.
func insertColumnMetadata(ctx context.Context, tx *sql.Tx, table string, col types.ColumnSpec, now time.Time) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO column_metadata (table_name, column_name, description, data_type, unit, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		table, col.Name, col.Description, string(col.Type), col.Unit, now.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("inserting column metadata %s.%s: %w", table, col.Name, err)
	}
	return nil
}

// touchTableMetadata bumps a table's updated_at inside tx.
func touchTableMetadata(ctx context.Context, tx *sql.Tx, table string, now time.Time) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE table_metadata SET updated_at = ? WHERE table_name = ?",
		now.Format(timeLayout), table)
	if err != nil {
		return fmt.Errorf("touching table metadata: %w", err)
	}
	return nil
}

// MergeLearnings merges updates into a table's learnings blob in one
// transaction. Per-key replacement only: existing unrelated keys survive.
func (s *Store) MergeLearnings(ctx context.Context, table string, updates map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.mergeLearnings(ctx, table, updates)
}

func (s *Store) mergeLearnings(ctx context.Context, table string, updates map[string]any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	md, err := s.getTableMetadata(ctx, tx, table)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	merged := md.Learnings.Merge(updates, now)
	blob, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encoding learnings: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE table_metadata SET learnings = ?, updated_at = ? WHERE table_name = ?",
		string(blob), now.Format(timeLayout), table)
	if err != nil {
		return fmt.Errorf("updating learnings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing learnings: %w", err)
	}
	return nil
}
