package sqlite

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/logbook/pkg/types"
)

// maxIdentLen bounds table and column name length.
const maxIdentLen = 64

// reservedIdents are names callers may not use for tables or columns:
// the auxiliary metadata tables, SQLite's internal prefix space, and SQL
// keywords that would make generated DDL ambiguous even when quoted.
var reservedIdents = map[string]bool{
	tableMetadataName:  true,
	columnMetadataName: true,
	"select":           true,
	"insert":           true,
	"update":           true,
	"delete":           true,
	"create":           true,
	"drop":             true,
	"alter":            true,
	"table":            true,
	"index":            true,
	"from":             true,
	"where":            true,
	"group":            true,
	"order":            true,
	"join":             true,
	"union":            true,
	"values":           true,
	"primary":          true,
	"foreign":          true,
	"references":       true,
	"constraint":       true,
	"default":          true,
	"null":             true,
	"not":              true,
	"and":              true,
	"or":               true,
	"in":               true,
	"is":               true,
	"as":               true,
	"on":               true,
	"transaction":      true,
	"pragma":           true,
}

// validateIdent enforces the identifier allow-list: ASCII letters, digits,
// and underscores, not starting with a digit, within length bounds, and
// not a reserved word. DDL cannot be parameterized, so every identifier is
// validated before it is interpolated into a statement.
func validateIdent(name string) error {
	if name == "" || len(name) > maxIdentLen {
		return fmt.Errorf("%w: %q", types.ErrInvalidName, name)
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return fmt.Errorf("%w: %q", types.ErrInvalidName, name)
			}
		default:
			return fmt.Errorf("%w: %q", types.ErrInvalidName, name)
		}
	}
	lower := strings.ToLower(name)
	if reservedIdents[lower] || strings.HasPrefix(lower, "sqlite_") {
		return fmt.Errorf("%w: %q", types.ErrReservedName, name)
	}
	return nil
}

// validateTableName applies identifier rules to a caller-chosen table
// name.
func validateTableName(name string) error {
	return validateIdent(name)
}

// validateColumnName applies identifier rules and additionally rejects the
// invariant column names, which only the store itself may define.
func validateColumnName(name string) error {
	if types.IsInvariantColumn(strings.ToLower(name)) {
		return fmt.Errorf("%w: %s", types.ErrReservedName, name)
	}
	return validateIdent(name)
}

// quoteIdent wraps an already-validated identifier in double quotes for
// interpolation into SQL text.
func quoteIdent(name string) string {
	return `"` + name + `"`
}
