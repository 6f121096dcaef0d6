package tools

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mesh-intelligence/logbook/pkg/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"table not found", types.ErrTableNotFound, CodeNotFound},
		{"column not found", types.ErrColumnNotFound, CodeNotFound},
		{"table exists", types.ErrTableExists, CodeAlreadyExists},
		{"column exists", types.ErrColumnExists, CodeAlreadyExists},
		{"unknown column", types.ErrUnknownColumn, CodeUnknownColumn},
		{"protected field", types.ErrProtectedField, CodeProtectedField},
		{"protected column", types.ErrProtectedColumn, CodeProtectedField},
		{"forbidden statement", types.ErrForbiddenStatement, CodeForbiddenOperation},
		{"query failed", types.ErrQueryFailed, CodeQueryFailed},
		{"unknown tool", ErrToolNotFound, CodeUnknownTool},
		{"invalid name", types.ErrInvalidName, CodeValidation},
		{"reserved name", types.ErrReservedName, CodeValidation},
		{"no columns", types.ErrNoColumns, CodeValidation},
		{"missing date", types.ErrMissingDate, CodeValidation},
		{"missing required", types.ErrMissingRequired, CodeValidation},
		{"invalid date", types.ErrInvalidDate, CodeValidation},
		{"invalid value", types.ErrInvalidValue, CodeValidation},
		{"missing param", types.ErrMissingParam, CodeValidation},
		{"unknown action", types.ErrUnknownAction, CodeValidation},
		{"wrapped", fmt.Errorf("operation 2 (drop_column): %w", types.ErrColumnNotFound), CodeNotFound},
		{"unrecognized", errors.New("something broke"), CodeInternal},
		{"nil-adjacent generic", errors.New(""), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Fatalf("Classify(%v) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}
