package types

import "errors"

// Catalog and schema errors.
var (
	ErrTableNotFound  = errors.New("table not found")
	ErrColumnNotFound = errors.New("column not found")
	ErrTableExists    = errors.New("table already exists")
	ErrColumnExists   = errors.New("column already exists")
)

// Validation errors for table and column specifications.
var (
	ErrInvalidName     = errors.New("invalid identifier")
	ErrReservedName    = errors.New("reserved identifier")
	ErrNoColumns       = errors.New("at least one column is required")
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrUnknownType     = errors.New("unknown column type")
	ErrUnknownAction   = errors.New("unknown schema action")
	ErrMissingParam    = errors.New("missing operation parameter")
)

// Data writer errors.
var (
	ErrNoRows          = errors.New("at least one row is required")
	ErrMissingDate     = errors.New("date is required")
	ErrMissingRequired = errors.New("required column must have a value")
	ErrInvalidDate     = errors.New("unrecognized date format")
	ErrInvalidValue    = errors.New("invalid value for column type")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrProtectedField  = errors.New("protected field is not writable")
)

// ErrProtectedColumn is returned when a schema edit targets one of the
// invariant columns (id, date, created_at).
var ErrProtectedColumn = errors.New("protected column cannot be altered")

// Query executor errors.
var (
	ErrForbiddenStatement = errors.New("statement is not read-only")
	ErrQueryFailed        = errors.New("query execution failed")
)

// ErrStoreClosed is returned by operations on a closed store.
var ErrStoreClosed = errors.New("store is closed")
