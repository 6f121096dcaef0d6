package sqlite

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/logbook/pkg/types"
)

// mutatingKeywords are rejected as standalone tokens anywhere in a
// statement. This is a lexical guard layered under the structural check,
// not a security boundary; the database file's permissions are.
var mutatingKeywords = map[string]bool{
	"create":   true,
	"insert":   true,
	"update":   true,
	"delete":   true,
	"drop":     true,
	"alter":    true,
	"truncate": true,
	"replace":  true,
	"attach":   true,
	"pragma":   true,
	"vacuum":   true,
	"reindex":  true,
}

// checkReadOnly asserts that sqlText is a single SELECT (or WITH-prefixed)
// statement containing no mutating keyword tokens. Comments and string
// literals are stripped before inspection so they cannot hide or trigger a
// rejection.
func checkReadOnly(sqlText string) error {
	cleaned := stripCommentsAndLiterals(sqlText)

	var statements []string
	for _, part := range strings.Split(cleaned, ";") {
		if strings.TrimSpace(part) != "" {
			statements = append(statements, part)
		}
	}
	if len(statements) == 0 {
		return fmt.Errorf("%w: empty statement", types.ErrForbiddenStatement)
	}
	if len(statements) > 1 {
		return fmt.Errorf("%w: multiple statements", types.ErrForbiddenStatement)
	}

	tokens := tokenizeWords(statements[0])
	if len(tokens) == 0 {
		return fmt.Errorf("%w: empty statement", types.ErrForbiddenStatement)
	}
	if first := tokens[0]; first != "select" && first != "with" {
		return fmt.Errorf("%w: only SELECT statements are allowed", types.ErrForbiddenStatement)
	}
	for _, tok := range tokens {
		if mutatingKeywords[tok] {
			return fmt.Errorf("%w: %s", types.ErrForbiddenStatement, strings.ToUpper(tok))
		}
	}
	return nil
}

// stripCommentsAndLiterals blanks out -- and /* */ comments and the
// contents of '...' and "..." literals, preserving statement structure.
func stripCommentsAndLiterals(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	for i := 0; i < len(s); {
		switch {
		case s[i] == '-' && i+1 < len(s) && s[i+1] == '-':
			for i < len(s) && s[i] != '\n' {
				i++
			}
		case s[i] == '/' && i+1 < len(s) && s[i+1] == '*':
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			i = min(i+2, len(s))
			out.WriteByte(' ')
		case s[i] == '\'' || s[i] == '"':
			quote := s[i]
			i++
			for i < len(s) {
				if s[i] == quote {
					// Doubled quotes escape inside SQL literals.
					if i+1 < len(s) && s[i+1] == quote {
						i += 2
						continue
					}
					i++
					break
				}
				i++
			}
			out.WriteByte(' ')
		default:
			out.WriteByte(s[i])
			i++
		}
	}
	return out.String()
}

// tokenizeWords lowercases and extracts bare word tokens.
func tokenizeWords(s string) []string {
	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			current.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return tokens
}
