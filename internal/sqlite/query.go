package sqlite

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/logbook/pkg/types"
)

// Query executes exactly one read-only statement and returns its rows in
// order. Statements rejected by the read-only guard never reach the
// database. An empty result is an empty slice, not an error; database
// errors are wrapped as ErrQueryFailed.
func (s *Store) Query(ctx context.Context, sqlText string) (*types.QueryResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	if err := checkReadOnly(sqlText); err != nil {
		return nil, err
	}

	result, err := s.queryToResult(ctx, s.db, sqlText)
	if err != nil {
		return nil, err
	}

	s.log.Debug("query executed",
		zap.Int("rows", len(result.Rows)),
		zap.Int("columns", len(result.Columns)))
	return result, nil
}

// queryToResult runs a statement and scans every row into a column→value
// map, preserving column order separately. []byte values are converted to
// strings so results serialize cleanly.
func (s *Store) queryToResult(ctx context.Context, q querier, sqlText string, args ...any) (*types.QueryResult, error) {
	rows, err := q.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrQueryFailed, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrQueryFailed, err)
	}

	result := &types.QueryResult{Columns: columns, Rows: []types.Row{}}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrQueryFailed, err)
		}

		row := make(types.Row, len(columns))
		for i, name := range columns {
			if b, ok := values[i].([]byte); ok {
				row[name] = string(b)
			} else {
				row[name] = values[i]
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrQueryFailed, err)
	}
	return result, nil
}
