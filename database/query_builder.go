// Package database is the public entry point of sqlbricks: it creates query
// builders for a driver name and re-exports the builder, aggregator and option
// types.
package database

import (
	"github.com/gaborage/sqlbricks/config"
	"github.com/gaborage/sqlbricks/database/internal/builder"
	"github.com/gaborage/sqlbricks/database/internal/compiler"
	"github.com/gaborage/sqlbricks/database/types"
	"github.com/gaborage/sqlbricks/logger"
)

type (
	// QueryBuilder records the clauses of one select statement.
	QueryBuilder = builder.QueryBuilder
	// WhereClauses accumulates where conditions; callbacks of WhereGroup receive one.
	WhereClauses = builder.WhereClauses
	// JoinWhereClauses accumulates join on-conditions.
	JoinWhereClauses = builder.JoinWhereClauses
	// JoinClauses accumulates joins.
	JoinClauses = builder.JoinClauses
	// WhereTuple is one condition of WhereTuples.
	WhereTuple = builder.WhereTuple
	// SubqueryFunc populates a subquery builder.
	SubqueryFunc = builder.SubqueryFunc
	// WhereFunc populates a group of where conditions.
	WhereFunc = builder.WhereFunc
	// JoinOnFunc populates join on-conditions.
	JoinOnFunc = builder.JoinOnFunc
	// Option configures compilation.
	Option = compiler.Option
)

// Compilation options.
var (
	WithLogger          = compiler.WithLogger
	WithTrace           = compiler.WithTrace
	WithLogBindings     = compiler.WithLogBindings
	WithMaxQueryLength  = compiler.WithMaxQueryLength
	WithSensitiveFilter = compiler.WithSensitiveFilter
	WithTracerProvider  = compiler.WithTracerProvider
	WithMeterProvider   = compiler.WithMeterProvider
)

// NewQueryBuilder creates a builder for driver ("mysql", "postgres", "sqlite"
// or "mssql"). Matching is exact; anything else, including non-string values,
// yields an error matching grammar.ErrDriverNotSupported.
func NewQueryBuilder(driver any, opts ...Option) (*QueryBuilder, error) {
	f, err := NewFactory(driver, opts...)
	if err != nil {
		return nil, err
	}
	return f.Query(), nil
}

// NewQueryBuilderFromConfig creates a builder from cfg. See NewFactoryFromConfig.
func NewQueryBuilderFromConfig(cfg *config.Config, log logger.Logger, opts ...Option) (*QueryBuilder, error) {
	f, err := NewFactoryFromConfig(cfg, log, opts...)
	if err != nil {
		return nil, err
	}
	return f.Query(), nil
}

// NewWhereClauses returns a standalone where aggregator.
func NewWhereClauses() *WhereClauses {
	return builder.NewWhereClauses()
}

// Raw returns an expression rendered verbatim; "?" markers bind the given
// values in order and "??" renders a literal "?". It panics on empty sql.
func Raw(sql string, bindings ...any) types.Expression {
	return types.Raw(sql, bindings...)
}
