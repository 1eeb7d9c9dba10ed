// Package sqlbuild holds small helpers for composing SQL from reusable
// fragments. Fragments carry `?` placeholders so they can be concatenated
// in any order; Rebind converts the assembled statement to pgx's numbered
// form in a single final pass.
package sqlbuild

import (
	"strconv"
	"strings"
)

// Placeholders returns n comma-separated `?` markers, e.g. "?, ?, ?".
func Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(n * 3)
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('?')
	}
	return b.String()
}

// Rebind rewrites `?` placeholders to Postgres `$1..$N` form. Question
// marks inside single-quoted literals are left untouched.
func Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inLiteral := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inLiteral = !inLiteral
			b.WriteByte(ch)
		case ch == '?' && !inLiteral:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// WhereSQL joins clauses into a WHERE section, or returns "" when empty.
// Callers must keep the clause order aligned with their argument order.
func WhereSQL(clauses []string) string {
	if len(clauses) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(clauses, " AND ")
}
