package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/logbook/pkg/types"
)

// dateLayouts are the accepted input formats for the semantic date field,
// tried in order. Values are normalized to UTC RFC 3339 in storage.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDate normalizes a caller-supplied date value.
func parseDate(v any) (string, error) {
	switch d := v.(type) {
	case time.Time:
		return d.UTC().Format(time.RFC3339), nil
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, d); err == nil {
				return t.UTC().Format(time.RFC3339), nil
			}
		}
		return "", fmt.Errorf("%w: %q", types.ErrInvalidDate, d)
	default:
		return "", fmt.Errorf("%w: %T", types.ErrInvalidDate, v)
	}
}

// coerceValue converts a caller value for storage under the column's
// declared type. Only booleans need conversion: SQLite stores them as
// integers and the original inputs arrive as bools or yes/no strings.
func coerceValue(column, declared string, v any) (any, error) {
	if v == nil || !strings.EqualFold(declared, string(types.TypeBoolean)) {
		return v, nil
	}
	switch b := v.(type) {
	case bool:
		if b {
			return 1, nil
		}
		return 0, nil
	case float64:
		if b == 0 || b == 1 {
			return int(b), nil
		}
	case int:
		if b == 0 || b == 1 {
			return b, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "1":
			return 1, nil
		case "false", "no", "0":
			return 0, nil
		}
	}
	return nil, fmt.Errorf("%w: %s expects a boolean, got %v", types.ErrInvalidValue, column, v)
}

// Insert validates and writes one or more records into a user table as a
// single atomic batch. Every key must name an existing non-protected
// column; date is required; required columns without a default must
// carry non-null values; id and created_at must be absent. Returns the
// generated row ids in input order. On success a best-effort learnings
// update records the insertion pattern; its failure never fails the
// insert.
func (s *Store) Insert(ctx context.Context, table string, records []types.Row) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, types.ErrNoRows
	}

	exists, err := tableExists(ctx, s.db, table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", types.ErrTableNotFound, table)
	}

	cols, err := liveColumns(ctx, s.db, table)
	if err != nil {
		return nil, err
	}
	colMeta, err := s.columnMetadataFor(ctx, s.db, table)
	if err != nil {
		return nil, err
	}
	// Declared types come from column metadata; the live catalog only
	// carries storage types. Invariant columns have no metadata row.
	declaredTypes := make(map[string]string, len(cols))
	for _, col := range cols {
		declaredTypes[col.Name] = col.Type
		if cm, ok := colMeta[col.Name]; ok {
			declaredTypes[col.Name] = string(cm.DataType)
		}
	}

	// Validate and normalize every record before touching the table, so a
	// bad record anywhere in the batch writes nothing.
	prepared := make([]types.Row, len(records))
	for i, record := range records {
		clean := make(types.Row, len(record))
		for key, value := range record {
			if types.IsProtectedColumn(key) {
				return nil, fmt.Errorf("%w: %s", types.ErrProtectedField, key)
			}
			declared, ok := declaredTypes[key]
			if !ok {
				return nil, fmt.Errorf("%w: %s", types.ErrUnknownColumn, key)
			}
			if key == types.ColumnDate {
				normalized, err := parseDate(value)
				if err != nil {
					return nil, err
				}
				clean[key] = normalized
				continue
			}
			coerced, err := coerceValue(key, declared, value)
			if err != nil {
				return nil, err
			}
			clean[key] = coerced
		}
		if _, ok := clean[types.ColumnDate]; !ok {
			return nil, fmt.Errorf("%w: record %d", types.ErrMissingDate, i+1)
		}
		for _, col := range cols {
			if !col.NotNull || types.IsProtectedColumn(col.Name) || col.Name == types.ColumnDate {
				continue
			}
			value, present := clean[col.Name]
			if present && value == nil {
				return nil, fmt.Errorf("%w: %s: record %d", types.ErrMissingRequired, col.Name, i+1)
			}
			if !present && !col.Default.Valid {
				return nil, fmt.Errorf("%w: %s: record %d", types.ErrMissingRequired, col.Name, i+1)
			}
		}
		prepared[i] = clean
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	ids := make([]string, len(prepared))
	for i, record := range prepared {
		id := newRowID()
		createdAt := s.nextCreatedAt().Format(timeLayout)

		names := []string{quoteIdent(types.ColumnID)}
		placeholders := []string{"?"}
		args := []any{id}
		// Record keys in declaration order keeps the statement stable.
		for _, col := range cols {
			value, ok := record[col.Name]
			if !ok || col.Name == types.ColumnID || col.Name == types.ColumnCreatedAt {
				continue
			}
			names = append(names, quoteIdent(col.Name))
			placeholders = append(placeholders, "?")
			args = append(args, value)
		}
		names = append(names, quoteIdent(types.ColumnCreatedAt))
		placeholders = append(placeholders, "?")
		args = append(args, createdAt)

		stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			quoteIdent(table), strings.Join(names, ", "), strings.Join(placeholders, ", "))
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return nil, fmt.Errorf("inserting row %d: %w", i+1, err)
		}
		ids[i] = id
	}

	if err := touchTableMetadata(ctx, tx, table, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing insert: %w", err)
	}

	s.log.Debug("rows inserted",
		zap.String("table", table),
		zap.Int("count", len(ids)))

	// Best-effort: a failed learnings update must not fail the insert.
	if err := s.mergeLearnings(ctx, table, insertLearnings(prepared)); err != nil {
		s.log.Warn("learnings update failed",
			zap.String("table", table),
			zap.Error(err))
	}

	return ids, nil
}

// insertLearnings summarizes an insert batch for the table's learnings.
func insertLearnings(records []types.Row) map[string]any {
	columnSet := make(map[string]bool)
	valueTypes := make(map[string]any)
	for _, record := range records {
		for key, value := range record {
			columnSet[key] = true
			valueTypes[key] = fmt.Sprintf("%T", value)
		}
	}
	columns := make([]string, 0, len(columnSet))
	for key := range columnSet {
		columns = append(columns, key)
	}

	last := records[len(records)-1]
	summary := make(map[string]any, len(last))
	for key, value := range last {
		summary[key] = value
	}

	return map[string]any{
		"recent_columns":     columns,
		"recent_value_types": valueTypes,
		"last_insert":        summary,
		"last_batch_size":    len(records),
	}
}
