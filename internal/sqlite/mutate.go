package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/logbook/pkg/types"
)

// storageType maps a declared column type to the SQLite type used in DDL.
// Timestamps are stored as RFC 3339 text and booleans as 0/1 integers; the
// declared type lives in column metadata. Plain storage types keep the
// driver from reinterpreting values on scan.
func storageType(ct types.ColumnType) string {
	switch ct {
	case types.TypeTimestamp:
		return "TEXT"
	case types.TypeBoolean:
		return "INTEGER"
	default:
		return string(ct)
	}
}

// CreateTable creates a user table with the invariant column frame
// (id, date, caller columns in order, created_at) plus its table metadata
// row and one column metadata row per caller column, all in a single
// transaction. Returns ErrTableExists on a name collision and a validation
// error for malformed specs.
func (s *Store) CreateTable(ctx context.Context, spec types.TableSpec) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}

	if err := validateTableName(spec.Name); err != nil {
		return err
	}
	if err := spec.Validate(); err != nil {
		return err
	}
	cols := make([]types.ColumnSpec, len(spec.Columns))
	for i, col := range spec.Columns {
		if err := validateColumnName(col.Name); err != nil {
			return err
		}
		ct, err := types.ParseColumnType(string(col.Type))
		if err != nil {
			return err
		}
		cols[i] = col
		cols[i].Type = ct
	}

	exists, err := tableExists(ctx, s.db, spec.Name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", types.ErrTableExists, spec.Name)
	}

	var defs []string
	defs = append(defs,
		quoteIdent(types.ColumnID)+" TEXT PRIMARY KEY",
		quoteIdent(types.ColumnDate)+" TEXT NOT NULL")
	for _, col := range cols {
		def := quoteIdent(col.Name) + " " + storageType(col.Type)
		if col.Required {
			def += " NOT NULL"
		}
		defs = append(defs, def)
	}
	defs = append(defs, quoteIdent(types.ColumnCreatedAt)+" TEXT NOT NULL")

	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(spec.Name), strings.Join(defs, ", "))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("creating table %s: %w", spec.Name, err)
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		"INSERT INTO table_metadata (table_name, description, purpose, learnings, created_at, updated_at) VALUES (?, ?, ?, '{}', ?, ?)",
		spec.Name, spec.Description, spec.Purpose, now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("inserting table metadata: %w", err)
	}
	for _, col := range cols {
		if err := insertColumnMetadata(ctx, tx, spec.Name, col, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing table creation: %w", err)
	}

	s.log.Info("table created",
		zap.String("table", spec.Name),
		zap.Int("columns", len(cols)))
	return nil
}

// EditSchema applies an ordered batch of schema operations to one table as
// a single transaction: all succeed or none do. Column metadata is updated
// in the same transaction as each column change. The invariant columns can
// never be renamed, retyped, or dropped.
func (s *Store) EditSchema(ctx context.Context, table string, ops []types.EditOp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}

	if len(ops) == 0 {
		return fmt.Errorf("%w: operations list is empty", types.ErrMissingParam)
	}
	for _, op := range ops {
		if err := op.Validate(); err != nil {
			return err
		}
	}

	exists, err := tableExists(ctx, s.db, table)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", types.ErrTableNotFound, table)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	current := table
	for i, op := range ops {
		if err := applyEditOp(ctx, tx, &current, op, now); err != nil {
			return fmt.Errorf("operation %d (%s): %w", i+1, op.Action, err)
		}
	}

	if err := touchTableMetadata(ctx, tx, current, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema edit: %w", err)
	}

	s.log.Info("schema edited",
		zap.String("table", current),
		zap.Int("operations", len(ops)))
	return nil
}

// applyEditOp dispatches one operation inside the edit transaction.
// table is a pointer so rename_table affects subsequent operations.
func applyEditOp(ctx context.Context, tx *sql.Tx, table *string, op types.EditOp, now time.Time) error {
	switch op.Action {
	case types.ActionAddColumn:
		return applyAddColumn(ctx, tx, *table, op, now)
	case types.ActionRenameColumn:
		return applyRenameColumn(ctx, tx, *table, op)
	case types.ActionRetypeColumn:
		return applyRetypeColumn(ctx, tx, *table, op)
	case types.ActionDropColumn:
		return applyDropColumn(ctx, tx, *table, op)
	case types.ActionRenameTable:
		return applyRenameTable(ctx, tx, table, op)
	default:
		return fmt.Errorf("%w: %q", types.ErrUnknownAction, op.Action)
	}
}

// columnByName finds a live column, or nil.
func columnByName(ctx context.Context, tx *sql.Tx, table, name string) (*liveColumn, error) {
	cols, err := liveColumns(ctx, tx, table)
	if err != nil {
		return nil, err
	}
	for i := range cols {
		if cols[i].Name == name {
			return &cols[i], nil
		}
	}
	return nil, nil
}

// zeroLiteral is the SQL default used when adding a required column to a
// table that may already hold rows.
func zeroLiteral(ct types.ColumnType) string {
	switch ct {
	case types.TypeInteger, types.TypeBoolean:
		return "0"
	case types.TypeReal:
		return "0.0"
	default:
		return "''"
	}
}

func applyAddColumn(ctx context.Context, tx *sql.Tx, table string, op types.EditOp, now time.Time) error {
	if err := validateColumnName(op.Name); err != nil {
		return err
	}
	ct, err := types.ParseColumnType(string(op.Type))
	if err != nil {
		return err
	}
	existing, err := columnByName(ctx, tx, table, op.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: %s", types.ErrColumnExists, op.Name)
	}

	ddl := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", quoteIdent(table), quoteIdent(op.Name), storageType(ct))
	if op.Required {
		// SQLite refuses NOT NULL additions without a default once rows
		// exist, so required additions carry a type-appropriate zero.
		ddl += " NOT NULL DEFAULT " + zeroLiteral(ct)
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("adding column: %w", err)
	}

	spec := types.ColumnSpec{
		Name:        op.Name,
		Type:        ct,
		Description: op.Description,
		Unit:        op.Unit,
		Required:    op.Required,
	}
	return insertColumnMetadata(ctx, tx, table, spec, now)
}

func applyRenameColumn(ctx context.Context, tx *sql.Tx, table string, op types.EditOp) error {
	if types.IsInvariantColumn(strings.ToLower(op.OldName)) {
		return fmt.Errorf("%w: %s", types.ErrProtectedColumn, op.OldName)
	}
	if err := validateColumnName(op.NewName); err != nil {
		return err
	}
	existing, err := columnByName(ctx, tx, table, op.OldName)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: %s", types.ErrColumnNotFound, op.OldName)
	}
	clash, err := columnByName(ctx, tx, table, op.NewName)
	if err != nil {
		return err
	}
	if clash != nil {
		return fmt.Errorf("%w: %s", types.ErrColumnExists, op.NewName)
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s",
		quoteIdent(table), quoteIdent(op.OldName), quoteIdent(op.NewName)))
	if err != nil {
		return fmt.Errorf("renaming column: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE column_metadata SET column_name = ? WHERE table_name = ? AND column_name = ?",
		op.NewName, table, op.OldName)
	if err != nil {
		return fmt.Errorf("updating column metadata: %w", err)
	}
	return nil
}

// applyRetypeColumn changes a column's declared type. SQLite has no ALTER
// COLUMN TYPE, so the table is rebuilt: a shadow table with the new
// declared type is created, rows are copied with a CAST on the target
// column, and the shadow replaces the original. All inside the caller's
// transaction, so a later failing operation rolls the rebuild back too.
func applyRetypeColumn(ctx context.Context, tx *sql.Tx, table string, op types.EditOp) error {
	if types.IsInvariantColumn(strings.ToLower(op.Name)) {
		return fmt.Errorf("%w: %s", types.ErrProtectedColumn, op.Name)
	}
	ct, err := types.ParseColumnType(string(op.Type))
	if err != nil {
		return err
	}
	target, err := columnByName(ctx, tx, table, op.Name)
	if err != nil {
		return err
	}
	if target == nil {
		return fmt.Errorf("%w: %s", types.ErrColumnNotFound, op.Name)
	}

	cols, err := liveColumns(ctx, tx, table)
	if err != nil {
		return err
	}

	var defs, names, selects []string
	for _, col := range cols {
		declared := col.Type
		sel := quoteIdent(col.Name)
		if col.Name == op.Name {
			declared = storageType(ct)
			sel = fmt.Sprintf("CAST(%s AS %s)", quoteIdent(col.Name), declared)
		}

		def := quoteIdent(col.Name) + " " + declared
		if col.Name == types.ColumnID {
			def = quoteIdent(col.Name) + " " + declared + " PRIMARY KEY"
		} else {
			if col.NotNull {
				def += " NOT NULL"
			}
			if col.Default.Valid {
				def += " DEFAULT " + col.Default.String
			}
		}
		defs = append(defs, def)
		names = append(names, quoteIdent(col.Name))
		selects = append(selects, sel)
	}

	shadow := table + "_retype_new"
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(shadow)); err != nil {
		return fmt.Errorf("clearing shadow table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)",
		quoteIdent(shadow), strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("creating shadow table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s",
		quoteIdent(shadow), strings.Join(names, ", "),
		strings.Join(selects, ", "), quoteIdent(table))); err != nil {
		return fmt.Errorf("copying rows: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DROP TABLE "+quoteIdent(table)); err != nil {
		return fmt.Errorf("dropping original table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s RENAME TO %s",
		quoteIdent(shadow), quoteIdent(table))); err != nil {
		return fmt.Errorf("renaming shadow table: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE column_metadata SET data_type = ? WHERE table_name = ? AND column_name = ?",
		string(ct), table, op.Name)
	if err != nil {
		return fmt.Errorf("updating column metadata: %w", err)
	}
	return nil
}

func applyDropColumn(ctx context.Context, tx *sql.Tx, table string, op types.EditOp) error {
	if types.IsInvariantColumn(strings.ToLower(op.Name)) {
		return fmt.Errorf("%w: %s", types.ErrProtectedColumn, op.Name)
	}
	existing, err := columnByName(ctx, tx, table, op.Name)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: %s", types.ErrColumnNotFound, op.Name)
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s",
		quoteIdent(table), quoteIdent(op.Name)))
	if err != nil {
		return fmt.Errorf("dropping column: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"DELETE FROM column_metadata WHERE table_name = ? AND column_name = ?",
		table, op.Name)
	if err != nil {
		return fmt.Errorf("deleting column metadata: %w", err)
	}
	return nil
}

func applyRenameTable(ctx context.Context, tx *sql.Tx, table *string, op types.EditOp) error {
	if err := validateTableName(op.NewName); err != nil {
		return err
	}
	exists, err := tableExists(ctx, tx, op.NewName)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", types.ErrTableExists, op.NewName)
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s RENAME TO %s",
		quoteIdent(*table), quoteIdent(op.NewName)))
	if err != nil {
		return fmt.Errorf("renaming table: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE table_metadata SET table_name = ? WHERE table_name = ?",
		op.NewName, *table); err != nil {
		return fmt.Errorf("updating table metadata: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE column_metadata SET table_name = ? WHERE table_name = ?",
		op.NewName, *table); err != nil {
		return fmt.Errorf("updating column metadata: %w", err)
	}

	*table = op.NewName
	return nil
}
