//revive:disable-next-line:var-naming // Package name "types" avoids circular imports.
package types

import "errors"

// Sentinel errors returned while constructing or compiling queries.
// These can be used with errors.Is() for programmatic error checking.
var (
	// ErrEmptyExpressionSQL is returned when a Sqlizer renders empty SQL.
	ErrEmptyExpressionSQL = errors.New("expression SQL cannot be empty")

	// ErrNilSqlizer is returned when FromSqlizer() is called with nil.
	ErrNilSqlizer = errors.New("sqlizer cannot be nil")

	// ErrInvalidSqlizer is returned when a Sqlizer fails to render.
	ErrInvalidSqlizer = errors.New("invalid sqlizer")

	// ErrUnsupportedOperator is returned when a comparison operator is not part
	// of the selected dialect's vocabulary.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrMarkerMismatch is returned when an Expression's "?" marker count differs
	// from the number of bindings it carries.
	ErrMarkerMismatch = errors.New("binding marker count does not match bindings")

	// ErrNoGrammar is returned when a builder without a dialect grammar is compiled.
	ErrNoGrammar = errors.New("query builder has no dialect grammar")
)
