//revive:disable-next-line:var-naming // Package name "types" avoids circular imports.
package types

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

// Expression is a raw SQL fragment carrying its own positional bindings.
// It can be used anywhere a column, table, value or condition is accepted and is
// rendered verbatim: identifiers inside it are never quoted.
//
// Bindings are referenced with "?" markers inside the SQL text. The compiler
// rewrites each marker into the positional syntax of the target driver ($1, @p1, ?)
// at the position the expression lands in the final statement. A literal question
// mark (for example the Postgres JSON "?" operator) is written as "??".
//
// SECURITY WARNING: Raw SQL expressions are NOT escaped or sanitized.
// Never interpolate user input into the SQL text; pass it as a binding instead.
//
// Safe usage:
//
//	qb.SelectExpr(types.Raw("count(*)").As("total"))
//	qb.WhereRaw("lower(email) = ?", email)
//	qb.Where("created_at", ">", types.Raw("now() - interval '1 day'"))
type Expression struct {
	sql      string
	bindings []any
	alias    string
}

// Raw creates an Expression from literal SQL text and its bindings.
// Panics if sql is empty (fail fast).
func Raw(sql string, bindings ...any) Expression {
	if strings.TrimSpace(sql) == "" {
		panic("expression SQL cannot be empty") //nolint:S8148 // NOSONAR: Fail-fast on invalid SQL expression construction
	}

	copied := make([]any, len(bindings))
	copy(copied, bindings)

	return Expression{sql: sql, bindings: copied}
}

// FromSqlizer renders a squirrel predicate (squirrel.Eq, squirrel.Or, squirrel.Expr, ...)
// into an Expression. Squirrel emits "?" markers by default, which is exactly the
// marker convention Expressions use, so the result can be placed in any clause.
func FromSqlizer(s squirrel.Sqlizer) (Expression, error) {
	if s == nil {
		return Expression{}, ErrNilSqlizer
	}

	sql, args, err := s.ToSql()
	if err != nil {
		return Expression{}, fmt.Errorf("%w: %v", ErrInvalidSqlizer, err)
	}
	if strings.TrimSpace(sql) == "" {
		return Expression{}, ErrEmptyExpressionSQL
	}

	return Raw(sql, args...), nil
}

// MustFromSqlizer is like FromSqlizer but panics on error.
func MustFromSqlizer(s squirrel.Sqlizer) Expression {
	expr, err := FromSqlizer(s)
	if err != nil {
		panic(fmt.Sprintf("MustFromSqlizer: %v", err))
	}
	return expr
}

// As returns a copy of the expression with an alias used when it appears in a select list.
func (e Expression) As(alias string) Expression {
	e.bindings = e.Bindings()
	e.alias = alias
	return e
}

// SQL returns the raw SQL text.
func (e Expression) SQL() string {
	return e.sql
}

// Bindings returns a copy of the expression's bindings.
func (e Expression) Bindings() []any {
	copied := make([]any, len(e.bindings))
	copy(copied, e.bindings)
	return copied
}

// Alias returns the select-list alias, or an empty string.
func (e Expression) Alias() string {
	return e.alias
}

// IsZero reports whether the expression was never constructed.
func (e Expression) IsZero() bool {
	return e.sql == ""
}

// MarkerCount returns the number of "?" binding markers in the SQL text.
// Escaped "??" pairs are not counted.
func (e Expression) MarkerCount() int {
	return CountMarkers(e.sql)
}

// CountMarkers counts unescaped "?" markers in sql.
func CountMarkers(sql string) int {
	count := 0
	for i := 0; i < len(sql); i++ {
		if sql[i] != '?' {
			continue
		}
		if i+1 < len(sql) && sql[i+1] == '?' {
			i++
			continue
		}
		count++
	}
	return count
}
