package sql

import (
	"fmt"
	"strings"

	"github.com/syssam/loam/dialect"
)

// identOK reports whether every rune of the identifier belongs to the safe
// set [A-Za-z0-9_.]. Quoting alone is not trusted to neutralize hostile
// identifiers, so anything outside the set is rejected up front.
func identOK(ident string) bool {
	if ident == "" || len(ident) > 128 {
		return false
	}
	for _, r := range ident {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}

// quoteRune returns the identifier quote character of the dialect.
func quoteRune(d string) string {
	if d == dialect.MySQL {
		return "`"
	}
	return `"`
}

// Quote validates and quotes a simple identifier or a dotted table.column
// reference for the given dialect. Dotted references are split and each
// segment is quoted independently, then rejoined with ".".
func Quote(d, ident string) (string, error) {
	if !identOK(ident) {
		return "", fmt.Errorf("sql: unquotable identifier %q: %w", ident, ErrInvalidArgument)
	}
	q := quoteRune(d)
	parts := strings.Split(ident, ".")
	for i, p := range parts {
		if p == "" {
			return "", fmt.Errorf("sql: unquotable identifier %q: %w", ident, ErrInvalidArgument)
		}
		parts[i] = q + p + q
	}
	return strings.Join(parts, "."), nil
}

// MustQuote is like Quote but panics on invalid identifiers. It is intended
// for identifiers that were already validated at schema declaration time.
func MustQuote(d, ident string) string {
	s, err := Quote(d, ident)
	if err != nil {
		panic(err)
	}
	return s
}
