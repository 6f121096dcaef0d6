package tools

import (
	"errors"

	"github.com/mesh-intelligence/logbook/pkg/types"
)

// Code is the machine-checkable reason attached to every failure payload.
// The calling agent branches on the code; the message is for humans.
type Code string

const (
	CodeNotFound           Code = "not_found"
	CodeAlreadyExists      Code = "already_exists"
	CodeValidation         Code = "validation"
	CodeUnknownColumn      Code = "unknown_column"
	CodeProtectedField     Code = "protected_field"
	CodeForbiddenOperation Code = "forbidden_operation"
	CodeQueryFailed        Code = "query_failed"
	CodeUnknownTool        Code = "unknown_tool"
	CodeInternal           Code = "internal"
)

// Failure is the structured error payload returned across the tool
// boundary. Faults never propagate uncaught: every error becomes one of
// these.
type Failure struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// ErrToolNotFound is returned when dispatching to an unregistered name.
var ErrToolNotFound = errors.New("tool not found")

// validationErrs are the store sentinels that classify as malformed input.
var validationErrs = []error{
	types.ErrInvalidName,
	types.ErrReservedName,
	types.ErrNoColumns,
	types.ErrDuplicateColumn,
	types.ErrUnknownType,
	types.ErrUnknownAction,
	types.ErrMissingParam,
	types.ErrNoRows,
	types.ErrMissingDate,
	types.ErrMissingRequired,
	types.ErrInvalidDate,
	types.ErrInvalidValue,
}

// Classify maps a store error to its reason code. Order matters: the
// specific write-path sentinels are checked before the broad buckets.
func Classify(err error) Code {
	switch {
	case errors.Is(err, ErrToolNotFound):
		return CodeUnknownTool
	case errors.Is(err, types.ErrUnknownColumn):
		return CodeUnknownColumn
	case errors.Is(err, types.ErrProtectedField), errors.Is(err, types.ErrProtectedColumn):
		return CodeProtectedField
	case errors.Is(err, types.ErrTableNotFound), errors.Is(err, types.ErrColumnNotFound):
		return CodeNotFound
	case errors.Is(err, types.ErrTableExists), errors.Is(err, types.ErrColumnExists):
		return CodeAlreadyExists
	case errors.Is(err, types.ErrForbiddenStatement):
		return CodeForbiddenOperation
	case errors.Is(err, types.ErrQueryFailed):
		return CodeQueryFailed
	}
	for _, sentinel := range validationErrs {
		if errors.Is(err, sentinel) {
			return CodeValidation
		}
	}
	return CodeInternal
}
