package testing

import (
	"database/sql/driver"
	"regexp"

	"github.com/DATA-DOG/go-sqlmock"
)

// ExpectQuery compiles q and registers a query expectation on mock matching
// the compiled SQL literally and the bindings in order.
func ExpectQuery(mock sqlmock.Sqlmock, q Compilable) (*sqlmock.ExpectedQuery, error) {
	sql, args, err := q.ToSQL()
	if err != nil {
		return nil, err
	}
	return mock.ExpectQuery(regexp.QuoteMeta(sql)).WithArgs(driverValues(args)...), nil
}

// driverValues converts bindings for sqlmock's WithArgs.
func driverValues(args []any) []driver.Value {
	values := make([]driver.Value, len(args))
	for i, arg := range args {
		values[i] = arg
	}
	return values
}
