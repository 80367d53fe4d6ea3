package builder

import (
	"github.com/gaborage/sqlbricks/database/types"
)

// The where methods delegate to the builder's WhereClauses and return the builder.

// Where appends "column op value" joined with and.
// An Expression value renders verbatim, a func(*QueryBuilder) becomes a
// subquery and anything else is bound.
func (qb *QueryBuilder) Where(column, op string, value any) *QueryBuilder {
	qb.wheres.Where(column, op, value)
	return qb
}

// OrWhere is Where joined with or.
func (qb *QueryBuilder) OrWhere(column, op string, value any) *QueryBuilder {
	qb.wheres.OrWhere(column, op, value)
	return qb
}

// WhereEq appends "column = value".
func (qb *QueryBuilder) WhereEq(column string, value any) *QueryBuilder {
	qb.wheres.WhereEq(column, value)
	return qb
}

// OrWhereEq is WhereEq joined with or.
func (qb *QueryBuilder) OrWhereEq(column string, value any) *QueryBuilder {
	qb.wheres.OrWhereEq(column, value)
	return qb
}

// WhereSub appends "column op (subquery)".
func (qb *QueryBuilder) WhereSub(column, op string, fn SubqueryFunc) *QueryBuilder {
	qb.wheres.WhereSub(column, op, fn, types.And)
	return qb
}

// OrWhereSub is WhereSub joined with or.
func (qb *QueryBuilder) OrWhereSub(column, op string, fn SubqueryFunc) *QueryBuilder {
	qb.wheres.WhereSub(column, op, fn, types.Or)
	return qb
}

// WhereMap appends one group of equality conditions, keys in sorted order.
func (qb *QueryBuilder) WhereMap(conditions map[string]any) *QueryBuilder {
	qb.wheres.WhereMap(conditions, types.And)
	return qb
}

// OrWhereMap is WhereMap joined with or.
func (qb *QueryBuilder) OrWhereMap(conditions map[string]any) *QueryBuilder {
	qb.wheres.WhereMap(conditions, types.Or)
	return qb
}

// WhereTuples appends one group of conditions in list order.
func (qb *QueryBuilder) WhereTuples(tuples []WhereTuple) *QueryBuilder {
	qb.wheres.WhereTuples(tuples, types.And)
	return qb
}

// OrWhereTuples is WhereTuples joined with or.
func (qb *QueryBuilder) OrWhereTuples(tuples []WhereTuple) *QueryBuilder {
	qb.wheres.WhereTuples(tuples, types.Or)
	return qb
}

// WhereGroup appends the conditions recorded by fn as one parenthesized group.
func (qb *QueryBuilder) WhereGroup(fn WhereFunc) *QueryBuilder {
	qb.wheres.WhereGroup(fn)
	return qb
}

// OrWhereGroup is WhereGroup joined with or.
func (qb *QueryBuilder) OrWhereGroup(fn WhereFunc) *QueryBuilder {
	qb.wheres.OrWhereGroup(fn)
	return qb
}

// WhereIn appends "column in(...)". values may be a slice or a single value.
func (qb *QueryBuilder) WhereIn(column string, values any) *QueryBuilder {
	qb.wheres.WhereIn(column, values)
	return qb
}

// OrWhereIn is WhereIn joined with or.
func (qb *QueryBuilder) OrWhereIn(column string, values any) *QueryBuilder {
	qb.wheres.OrWhereIn(column, values)
	return qb
}

// WhereNotIn appends "column not in(...)".
func (qb *QueryBuilder) WhereNotIn(column string, values any) *QueryBuilder {
	qb.wheres.WhereNotIn(column, values)
	return qb
}

// OrWhereNotIn is WhereNotIn joined with or.
func (qb *QueryBuilder) OrWhereNotIn(column string, values any) *QueryBuilder {
	qb.wheres.OrWhereNotIn(column, values)
	return qb
}

// WhereInSub appends "column in(subquery)".
func (qb *QueryBuilder) WhereInSub(column string, fn SubqueryFunc) *QueryBuilder {
	qb.wheres.WhereInSub(column, fn)
	return qb
}

// OrWhereInSub is WhereInSub joined with or.
func (qb *QueryBuilder) OrWhereInSub(column string, fn SubqueryFunc) *QueryBuilder {
	qb.wheres.OrWhereInSub(column, fn)
	return qb
}

// WhereNotInSub appends "column not in(subquery)".
func (qb *QueryBuilder) WhereNotInSub(column string, fn SubqueryFunc) *QueryBuilder {
	qb.wheres.WhereNotInSub(column, fn)
	return qb
}

// OrWhereNotInSub is WhereNotInSub joined with or.
func (qb *QueryBuilder) OrWhereNotInSub(column string, fn SubqueryFunc) *QueryBuilder {
	qb.wheres.OrWhereNotInSub(column, fn)
	return qb
}

// WhereNull appends "column is null" for each column.
func (qb *QueryBuilder) WhereNull(columns ...string) *QueryBuilder {
	qb.wheres.WhereNull(columns...)
	return qb
}

// OrWhereNull is WhereNull joined with or.
func (qb *QueryBuilder) OrWhereNull(columns ...string) *QueryBuilder {
	qb.wheres.OrWhereNull(columns...)
	return qb
}

// WhereNotNull appends "column is not null" for each column.
func (qb *QueryBuilder) WhereNotNull(columns ...string) *QueryBuilder {
	qb.wheres.WhereNotNull(columns...)
	return qb
}

// OrWhereNotNull is WhereNotNull joined with or.
func (qb *QueryBuilder) OrWhereNotNull(columns ...string) *QueryBuilder {
	qb.wheres.OrWhereNotNull(columns...)
	return qb
}

// WhereBetween appends "column between low and high".
func (qb *QueryBuilder) WhereBetween(column string, low, high any) *QueryBuilder {
	qb.wheres.WhereBetween(column, low, high)
	return qb
}

// OrWhereBetween is WhereBetween joined with or.
func (qb *QueryBuilder) OrWhereBetween(column string, low, high any) *QueryBuilder {
	qb.wheres.OrWhereBetween(column, low, high)
	return qb
}

// WhereNotBetween appends "column not between low and high".
func (qb *QueryBuilder) WhereNotBetween(column string, low, high any) *QueryBuilder {
	qb.wheres.WhereNotBetween(column, low, high)
	return qb
}

// OrWhereNotBetween is WhereNotBetween joined with or.
func (qb *QueryBuilder) OrWhereNotBetween(column string, low, high any) *QueryBuilder {
	qb.wheres.OrWhereNotBetween(column, low, high)
	return qb
}

// WhereExists appends "exists(subquery)".
func (qb *QueryBuilder) WhereExists(fn SubqueryFunc) *QueryBuilder {
	qb.wheres.WhereExists(fn)
	return qb
}

// OrWhereExists is WhereExists joined with or.
func (qb *QueryBuilder) OrWhereExists(fn SubqueryFunc) *QueryBuilder {
	qb.wheres.OrWhereExists(fn)
	return qb
}

// WhereNotExists appends "not exists(subquery)".
func (qb *QueryBuilder) WhereNotExists(fn SubqueryFunc) *QueryBuilder {
	qb.wheres.WhereNotExists(fn)
	return qb
}

// OrWhereNotExists is WhereNotExists joined with or.
func (qb *QueryBuilder) OrWhereNotExists(fn SubqueryFunc) *QueryBuilder {
	qb.wheres.OrWhereNotExists(fn)
	return qb
}

// WhereRaw appends a raw condition; "?" markers bind the given values.
func (qb *QueryBuilder) WhereRaw(sql string, bindings ...any) *QueryBuilder {
	qb.wheres.WhereRaw(sql, bindings...)
	return qb
}

// OrWhereRaw is WhereRaw joined with or.
func (qb *QueryBuilder) OrWhereRaw(sql string, bindings ...any) *QueryBuilder {
	qb.wheres.OrWhereRaw(sql, bindings...)
	return qb
}

// WhereExpr appends a prebuilt Expression as a condition.
func (qb *QueryBuilder) WhereExpr(expr types.Expression) *QueryBuilder {
	qb.wheres.WhereExpr(expr)
	return qb
}

// OrWhereExpr is WhereExpr joined with or.
func (qb *QueryBuilder) OrWhereExpr(expr types.Expression) *QueryBuilder {
	qb.wheres.OrWhereExpr(expr)
	return qb
}
