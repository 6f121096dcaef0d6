package types

import (
	"fmt"
	"strings"
)

// ColumnType is the declared scalar type of a caller-defined column.
type ColumnType string

// Supported column types. Stored canonically upper-case in DDL and in
// column metadata.
const (
	TypeText      ColumnType = "TEXT"
	TypeInteger   ColumnType = "INTEGER"
	TypeReal      ColumnType = "REAL"
	TypeBoolean   ColumnType = "BOOLEAN"
	TypeTimestamp ColumnType = "TIMESTAMP"
)

// ColumnTypes lists all supported column types for enumeration.
var ColumnTypes = []ColumnType{
	TypeText,
	TypeInteger,
	TypeReal,
	TypeBoolean,
	TypeTimestamp,
}

// ParseColumnType normalizes a caller-supplied type name, accepting any
// casing. Returns ErrUnknownType for unrecognized names.
func ParseColumnType(s string) (ColumnType, error) {
	ct := ColumnType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range ColumnTypes {
		if ct == known {
			return ct, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Invariant column names present on every table.
const (
	ColumnID        = "id"
	ColumnDate      = "date"
	ColumnCreatedAt = "created_at"
)

// ProtectedColumns are never caller-writable: their values are generated
// by the store at insert time.
var ProtectedColumns = []string{ColumnID, ColumnCreatedAt}

// InvariantColumns exist on every table and can never be renamed, retyped,
// or dropped.
var InvariantColumns = []string{ColumnID, ColumnDate, ColumnCreatedAt}

// IsProtectedColumn reports whether name is a store-generated column.
func IsProtectedColumn(name string) bool {
	return name == ColumnID || name == ColumnCreatedAt
}

// IsInvariantColumn reports whether name is one of the columns every table
// must carry.
func IsInvariantColumn(name string) bool {
	return name == ColumnID || name == ColumnDate || name == ColumnCreatedAt
}

// ColumnSpec describes one caller-defined column for table creation or
// column addition.
type ColumnSpec struct {
	Name        string     `json:"name"`
	Type        ColumnType `json:"type"`
	Description string     `json:"description"`
	Unit        string     `json:"unit,omitempty"`
	Required    bool       `json:"required,omitempty"`
}

// TableSpec describes a table to create: its name, human context, and the
// ordered caller-defined columns. The invariant columns are added by the
// store and must not appear in Columns.
type TableSpec struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Purpose     string       `json:"purpose,omitempty"`
	Columns     []ColumnSpec `json:"columns"`
}

// Validate checks the structural shape of the spec: at least one column,
// no duplicate names, no invariant names, recognized types. Identifier
// lexical rules are enforced by the store.
func (s TableSpec) Validate() error {
	if len(s.Columns) == 0 {
		return ErrNoColumns
	}
	seen := make(map[string]bool, len(s.Columns))
	for _, col := range s.Columns {
		name := strings.ToLower(col.Name)
		if IsInvariantColumn(name) {
			return fmt.Errorf("%w: %s", ErrReservedName, col.Name)
		}
		if seen[name] {
			return fmt.Errorf("%w: %s", ErrDuplicateColumn, col.Name)
		}
		seen[name] = true
		if _, err := ParseColumnType(string(col.Type)); err != nil {
			return err
		}
	}
	return nil
}

// EditAction identifies one schema-editing operation.
type EditAction string

// Supported schema edit actions.
const (
	ActionAddColumn    EditAction = "add_column"
	ActionRenameColumn EditAction = "rename_column"
	ActionRetypeColumn EditAction = "retype_column"
	ActionDropColumn   EditAction = "drop_column"
	ActionRenameTable  EditAction = "rename_table"
)

// EditOp is a single operation inside an EditSchema call. Which fields are
// consulted depends on Action:
//
//	add_column:    Name, Type, Description, Unit, Required
//	rename_column: OldName, NewName
//	retype_column: Name, Type
//	drop_column:   Name
//	rename_table:  NewName
type EditOp struct {
	Action      EditAction `json:"action"`
	Name        string     `json:"name,omitempty"`
	OldName     string     `json:"old_name,omitempty"`
	NewName     string     `json:"new_name,omitempty"`
	Type        ColumnType `json:"type,omitempty"`
	Description string     `json:"description,omitempty"`
	Unit        string     `json:"unit,omitempty"`
	Required    bool       `json:"required,omitempty"`
}

// Validate checks that the operation names an action and carries the
// parameters that action requires.
func (op EditOp) Validate() error {
	switch op.Action {
	case ActionAddColumn:
		if op.Name == "" {
			return fmt.Errorf("%w: add_column requires name", ErrMissingParam)
		}
		if _, err := ParseColumnType(string(op.Type)); err != nil {
			return err
		}
	case ActionRenameColumn:
		if op.OldName == "" || op.NewName == "" {
			return fmt.Errorf("%w: rename_column requires old_name and new_name", ErrMissingParam)
		}
	case ActionRetypeColumn:
		if op.Name == "" {
			return fmt.Errorf("%w: retype_column requires name", ErrMissingParam)
		}
		if _, err := ParseColumnType(string(op.Type)); err != nil {
			return err
		}
	case ActionDropColumn:
		if op.Name == "" {
			return fmt.Errorf("%w: drop_column requires name", ErrMissingParam)
		}
	case ActionRenameTable:
		if op.NewName == "" {
			return fmt.Errorf("%w: rename_table requires new_name", ErrMissingParam)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, op.Action)
	}
	return nil
}
