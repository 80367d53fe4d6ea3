// Package builder provides the fluent query builder and the clause aggregators
// it delegates to. Builders only record clauses; rendering is done by the
// compiler bound at construction.
package builder

import (
	"context"
	"slices"

	"github.com/Masterminds/squirrel"
	"github.com/gaborage/sqlbricks/database/grammar"
	"github.com/gaborage/sqlbricks/database/internal/compiler"
	"github.com/gaborage/sqlbricks/database/types"
)

// QueryBuilder records the clauses of one select statement. Every method
// appends to the builder's own clauses and returns the same instance.
// A QueryBuilder is not safe for concurrent mutation.
type QueryBuilder struct {
	compiler *compiler.Compiler
	clauses  types.Clauses
	wheres   *WhereClauses
	joins    *JoinClauses
}

var _ squirrel.Sqlizer = (*QueryBuilder)(nil)

// New creates a QueryBuilder rendering for g. It panics if g is nil.
func New(g *grammar.Grammar, opts ...compiler.Option) *QueryBuilder {
	return NewWithCompiler(compiler.New(g, opts...))
}

// NewWithCompiler creates a QueryBuilder sharing an existing compiler.
func NewWithCompiler(c *compiler.Compiler) *QueryBuilder {
	qb := &QueryBuilder{compiler: c}
	qb.wheres = newWhereClauses(qb.NewQuery)
	qb.joins = newJoinClauses(qb.NewQuery)
	return qb
}

// newDetachedBuilder returns a builder without compiler, used for subqueries
// of standalone aggregators.
func newDetachedBuilder() *QueryBuilder {
	return NewWithCompiler(nil)
}

// NewQuery returns a fresh builder bound to the same grammar with empty clauses.
func (qb *QueryBuilder) NewQuery() *QueryBuilder {
	return NewWithCompiler(qb.compiler)
}

// Dialect returns the grammar name, or "" for a detached builder.
func (qb *QueryBuilder) Dialect() string {
	if qb.compiler == nil {
		return ""
	}
	return qb.compiler.Grammar().Name()
}

// Clauses returns a snapshot of the recorded clauses.
func (qb *QueryBuilder) Clauses() *types.Clauses {
	c := qb.clauses
	c.Distinct.Columns = slices.Clone(c.Distinct.Columns)
	c.Select.Columns = slices.Clone(c.Select.Columns)
	c.From = slices.Clone(c.From)
	c.Join = qb.joins.Clauses()
	c.Where = qb.wheres.Clauses()
	c.GroupBy = slices.Clone(c.GroupBy)
	c.OrderBy = slices.Clone(c.OrderBy)
	return &c
}

// Wheres exposes the builder's where aggregator.
func (qb *QueryBuilder) Wheres() *WhereClauses {
	return qb.wheres
}

// Joins exposes the builder's join aggregator.
func (qb *QueryBuilder) Joins() *JoinClauses {
	return qb.joins
}

func (qb *QueryBuilder) subquery(fn SubqueryFunc) *types.Clauses {
	child := qb.NewQuery()
	if fn != nil {
		fn(child)
	}
	return child.Clauses()
}

// ========== Distinct ==========

// Distinct makes the select list distinct.
func (qb *QueryBuilder) Distinct() *QueryBuilder {
	qb.clauses.Distinct = types.Distinct{Mode: types.DistinctOn}
	return qb
}

// DistinctOn restricts distinctness to columns. Only Postgres renders
// "distinct on (...)"; other dialects render plain distinct.
func (qb *QueryBuilder) DistinctOn(columns ...string) *QueryBuilder {
	qb.clauses.Distinct = types.Distinct{Mode: types.DistinctColumns, Columns: slices.Clone(columns)}
	return qb
}

// DistinctExpr restricts distinctness to a raw expression.
func (qb *QueryBuilder) DistinctExpr(expr types.Expression) *QueryBuilder {
	qb.clauses.Distinct = types.Distinct{Mode: types.DistinctExpression, Expr: expr}
	return qb
}

// ========== Select ==========

// Select appends columns to the select list. "col as alias" is honored and a
// function call such as "count(*)" is emitted verbatim. Expressions carrying
// bindings go through SelectRaw or SelectExpr.
func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	for _, column := range columns {
		qb.clauses.Select.Columns = append(qb.clauses.Select.Columns, types.SelectColumn{
			Type: types.SelectColumnName,
			Name: column,
		})
	}
	return qb
}

// SelectExpr appends raw expressions to the select list, aliased when the
// expression carries an alias.
func (qb *QueryBuilder) SelectExpr(exprs ...types.Expression) *QueryBuilder {
	for _, expr := range exprs {
		qb.clauses.Select.Columns = append(qb.clauses.Select.Columns, types.SelectColumn{
			Type:  types.SelectColumnExpression,
			Expr:  expr,
			Alias: expr.Alias(),
		})
	}
	return qb
}

// SelectRaw appends a raw select expression with "?" bindings.
func (qb *QueryBuilder) SelectRaw(sql string, bindings ...any) *QueryBuilder {
	return qb.SelectExpr(types.Raw(sql, bindings...))
}

// SelectSub appends "(subquery) as alias" to the select list.
func (qb *QueryBuilder) SelectSub(fn SubqueryFunc, alias string) *QueryBuilder {
	qb.clauses.Select.Columns = append(qb.clauses.Select.Columns, types.SelectColumn{
		Type:  types.SelectColumnSubquery,
		Query: qb.subquery(fn),
		Alias: alias,
	})
	return qb
}

// ========== From ==========

// From appends a table. "table as t" and "table t" are honored.
func (qb *QueryBuilder) From(table string) *QueryBuilder {
	qb.clauses.From = append(qb.clauses.From, types.FromClause{Type: types.FromBasic, Table: table})
	return qb
}

// FromAs appends a table with an explicit alias.
func (qb *QueryBuilder) FromAs(table, alias string) *QueryBuilder {
	qb.clauses.From = append(qb.clauses.From, types.FromClause{Type: types.FromBasic, Table: table, Alias: alias})
	return qb
}

// FromSub appends "(subquery) as alias".
func (qb *QueryBuilder) FromSub(fn SubqueryFunc, alias string) *QueryBuilder {
	qb.clauses.From = append(qb.clauses.From, types.FromClause{
		Type:  types.FromSubquery,
		Query: qb.subquery(fn),
		Alias: alias,
	})
	return qb
}

// FromExpr appends a raw source expression, e.g. a table function.
func (qb *QueryBuilder) FromExpr(expr types.Expression) *QueryBuilder {
	qb.clauses.From = append(qb.clauses.From, types.FromClause{
		Type:  types.FromExpression,
		Expr:  expr,
		Alias: expr.Alias(),
	})
	return qb
}

// ========== Group by ==========

// GroupBy appends grouping columns.
func (qb *QueryBuilder) GroupBy(columns ...string) *QueryBuilder {
	for _, column := range columns {
		qb.clauses.GroupBy = append(qb.clauses.GroupBy, types.GroupByClause{Type: types.GroupByColumn, Column: column})
	}
	return qb
}

// GroupByExpr appends raw grouping expressions.
func (qb *QueryBuilder) GroupByExpr(exprs ...types.Expression) *QueryBuilder {
	for _, expr := range exprs {
		qb.clauses.GroupBy = append(qb.clauses.GroupBy, types.GroupByClause{Type: types.GroupByExpression, Expr: expr})
	}
	return qb
}

// GroupBySub appends a parenthesized subquery as grouping key.
func (qb *QueryBuilder) GroupBySub(fn SubqueryFunc) *QueryBuilder {
	qb.clauses.GroupBy = append(qb.clauses.GroupBy, types.GroupByClause{
		Type:  types.GroupBySubquery,
		Query: qb.subquery(fn),
	})
	return qb
}

// ========== Order by ==========

// OrderBy appends ordering terms written as "column" or "column direction".
// Only a trailing asc or desc is taken as direction.
func (qb *QueryBuilder) OrderBy(columns ...string) *QueryBuilder {
	for _, column := range columns {
		name, dir := splitDirection(column)
		qb.appendOrder(types.OrderByClause{Type: types.OrderByColumn, Column: name, Direction: dir})
	}
	return qb
}

// OrderByDir appends one ordering term with an explicit direction.
func (qb *QueryBuilder) OrderByDir(column string, dir types.Direction) *QueryBuilder {
	return qb.appendOrder(types.OrderByClause{Type: types.OrderByColumn, Column: column, Direction: dir})
}

// OrderByExpr appends a raw ordering expression.
func (qb *QueryBuilder) OrderByExpr(expr types.Expression) *QueryBuilder {
	return qb.appendOrder(types.OrderByClause{Type: types.OrderByExpression, Expr: expr})
}

// OrderByRaw appends a raw ordering expression with "?" bindings.
func (qb *QueryBuilder) OrderByRaw(sql string, bindings ...any) *QueryBuilder {
	return qb.OrderByExpr(types.Raw(sql, bindings...))
}

// OrderByRandom replaces the whole ordering with the dialect's random function.
// A later OrderBy call replaces the random ordering again.
func (qb *QueryBuilder) OrderByRandom() *QueryBuilder {
	qb.clauses.OrderBy = nil
	qb.clauses.OrderRandom = true
	return qb
}

func (qb *QueryBuilder) appendOrder(clause types.OrderByClause) *QueryBuilder {
	qb.clauses.OrderRandom = false
	qb.clauses.OrderBy = append(qb.clauses.OrderBy, clause)
	return qb
}

// ========== Limit / offset ==========

// Limit sets the row limit. The value is bound, not inlined.
func (qb *QueryBuilder) Limit(n uint64) *QueryBuilder {
	qb.clauses.Limit = &n
	return qb
}

// Offset sets the row offset. The value is bound, not inlined.
func (qb *QueryBuilder) Offset(n uint64) *QueryBuilder {
	qb.clauses.Offset = &n
	return qb
}

// ========== Compilation ==========

// ToSQL renders the statement and its bindings.
func (qb *QueryBuilder) ToSQL() (sql string, args []any, err error) {
	return qb.ToSQLContext(context.Background())
}

// ToSQLContext renders the statement; ctx carries the parent span.
func (qb *QueryBuilder) ToSQLContext(ctx context.Context) (sql string, args []any, err error) {
	if qb.compiler == nil {
		return "", nil, types.ErrNoGrammar
	}
	return qb.compiler.CompileContext(ctx, qb.Clauses())
}

// ToSql implements squirrel.Sqlizer so a builder can be embedded in squirrel statements.
// Markers are always "?" so squirrel's PlaceholderFormat can number them; literal
// question marks come back escaped as "??". Identifiers keep the dialect's quoting.
//
//nolint:revive // ToSql is required by squirrel.Sqlizer interface (lowercase 's')
func (qb *QueryBuilder) ToSql() (sql string, args []any, err error) {
	if qb.compiler == nil {
		return "", nil, types.ErrNoGrammar
	}
	return qb.compiler.CompileSqlizer(context.Background(), qb.Clauses())
}
