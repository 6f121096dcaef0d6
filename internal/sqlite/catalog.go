package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/logbook/pkg/types"
)

// recentRowLimit is how many most-recent rows DescribeTable includes.
const recentRowLimit = 3

// liveColumn is one column as reported by the SQLite catalog.
type liveColumn struct {
	Name    string
	Type    string
	NotNull bool
	Default sql.NullString
}

// tableExists checks the live catalog for a user table with this name.
func tableExists(ctx context.Context, q querier, name string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx,
		"SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking table existence: %w", err)
	}
	return true, nil
}

// liveColumns returns the table's columns in declaration order from the
// SQLite catalog. pragma_table_info is parameterizable, unlike PRAGMA.
func liveColumns(ctx context.Context, q querier, table string) ([]liveColumn, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT name, type, "notnull", dflt_value FROM pragma_table_info(?) ORDER BY cid`, table)
	if err != nil {
		return nil, fmt.Errorf("reading table info: %w", err)
	}
	defer rows.Close()

	var cols []liveColumn
	for rows.Next() {
		var col liveColumn
		var notNull int
		if err := rows.Scan(&col.Name, &col.Type, &notNull, &col.Default); err != nil {
			return nil, fmt.Errorf("scanning table info: %w", err)
		}
		col.NotNull = notNull != 0
		cols = append(cols, col)
	}
	return cols, rows.Err()
}

// ListTables returns a summary of every registered table: name,
// description, purpose, and caller-defined column count. Read-only.
func (s *Store) ListTables(ctx context.Context) ([]types.TableSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT table_name, description, purpose FROM table_metadata ORDER BY table_name")
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var summaries []types.TableSummary
	for rows.Next() {
		var sum types.TableSummary
		if err := rows.Scan(&sum.Name, &sum.Description, &sum.Purpose); err != nil {
			return nil, fmt.Errorf("scanning table summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tables: %w", err)
	}

	for i := range summaries {
		cols, err := liveColumns(ctx, s.db, summaries[i].Name)
		if err != nil {
			return nil, err
		}
		count := 0
		for _, col := range cols {
			if !types.IsInvariantColumn(col.Name) {
				count++
			}
		}
		summaries[i].ColumnCount = count
	}

	if summaries == nil {
		summaries = []types.TableSummary{}
	}
	return summaries, nil
}

// DescribeTable returns the full catalog view of one table: metadata,
// ordered columns joined with column metadata, row count, and the most
// recent rows by created_at. Returns ErrTableNotFound for unknown names.
// Read-only.
func (s *Store) DescribeTable(ctx context.Context, name string) (*types.TableDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	md, err := s.getTableMetadata(ctx, s.db, name)
	if err != nil {
		return nil, err
	}

	cols, err := liveColumns(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		// Metadata without a live table means the catalog is out of sync;
		// surface it the same way as an unknown table.
		return nil, fmt.Errorf("%w: %s", types.ErrTableNotFound, name)
	}

	colMeta, err := s.columnMetadataFor(ctx, s.db, name)
	if err != nil {
		return nil, err
	}

	detail := &types.TableDetail{
		Name:        md.TableName,
		Description: md.Description,
		Purpose:     md.Purpose,
	}
	for _, col := range cols {
		info := types.ColumnInfo{Name: col.Name, Type: col.Type, NotNull: col.NotNull}
		switch col.Name {
		case types.ColumnDate, types.ColumnCreatedAt:
			// Stored as text; the declared type is what callers see.
			info.Type = string(types.TypeTimestamp)
		}
		if cm, ok := colMeta[col.Name]; ok {
			info.Type = string(cm.DataType)
			info.Description = cm.Description
			info.Unit = cm.Unit
		}
		detail.Columns = append(detail.Columns, info)
	}

	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdent(name))
	if err := row.Scan(&detail.RowCount); err != nil {
		return nil, fmt.Errorf("counting rows: %w", err)
	}

	if detail.RowCount > 0 {
		recent, err := s.queryToResult(ctx, s.db, fmt.Sprintf(
			"SELECT * FROM %s ORDER BY created_at DESC, id DESC LIMIT %d",
			quoteIdent(name), recentRowLimit))
		if err != nil {
			return nil, err
		}
		detail.RecentRows = recent.Rows
	}

	return detail, nil
}
