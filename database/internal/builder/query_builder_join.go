package builder

import (
	"github.com/gaborage/sqlbricks/database/types"
)

// Join appends an inner join of table on "first op second".
func (qb *QueryBuilder) Join(table, first, op, second string) *QueryBuilder {
	qb.joins.Join(types.InnerJoin, table, first, op, second)
	return qb
}

// JoinOn appends an inner join of table on the conditions recorded by fn.
func (qb *QueryBuilder) JoinOn(table string, fn JoinOnFunc) *QueryBuilder {
	qb.joins.JoinNested(types.InnerJoin, table, fn)
	return qb
}

// JoinSub appends an inner join of a subquery aliased as alias.
func (qb *QueryBuilder) JoinSub(fn SubqueryFunc, alias, first, op, second string) *QueryBuilder {
	qb.joins.JoinSub(types.InnerJoin, fn, alias, first, op, second)
	return qb
}

// JoinSubOn is JoinSub with the conditions recorded by onFn.
func (qb *QueryBuilder) JoinSubOn(fn SubqueryFunc, alias string, onFn JoinOnFunc) *QueryBuilder {
	qb.joins.JoinSubNested(types.InnerJoin, fn, alias, onFn)
	return qb
}

// LeftJoin appends a left join of table on "first op second".
func (qb *QueryBuilder) LeftJoin(table, first, op, second string) *QueryBuilder {
	qb.joins.Join(types.LeftJoin, table, first, op, second)
	return qb
}

// LeftJoinOn appends a left join of table on the conditions recorded by fn.
func (qb *QueryBuilder) LeftJoinOn(table string, fn JoinOnFunc) *QueryBuilder {
	qb.joins.JoinNested(types.LeftJoin, table, fn)
	return qb
}

// LeftJoinSub appends a left join of a subquery aliased as alias.
func (qb *QueryBuilder) LeftJoinSub(fn SubqueryFunc, alias, first, op, second string) *QueryBuilder {
	qb.joins.JoinSub(types.LeftJoin, fn, alias, first, op, second)
	return qb
}

// LeftJoinSubOn is LeftJoinSub with the conditions recorded by onFn.
func (qb *QueryBuilder) LeftJoinSubOn(fn SubqueryFunc, alias string, onFn JoinOnFunc) *QueryBuilder {
	qb.joins.JoinSubNested(types.LeftJoin, fn, alias, onFn)
	return qb
}

// RightJoin appends a right join of table on "first op second".
func (qb *QueryBuilder) RightJoin(table, first, op, second string) *QueryBuilder {
	qb.joins.Join(types.RightJoin, table, first, op, second)
	return qb
}

// RightJoinOn appends a right join of table on the conditions recorded by fn.
func (qb *QueryBuilder) RightJoinOn(table string, fn JoinOnFunc) *QueryBuilder {
	qb.joins.JoinNested(types.RightJoin, table, fn)
	return qb
}

// RightJoinSub appends a right join of a subquery aliased as alias.
func (qb *QueryBuilder) RightJoinSub(fn SubqueryFunc, alias, first, op, second string) *QueryBuilder {
	qb.joins.JoinSub(types.RightJoin, fn, alias, first, op, second)
	return qb
}

// RightJoinSubOn is RightJoinSub with the conditions recorded by onFn.
func (qb *QueryBuilder) RightJoinSubOn(fn SubqueryFunc, alias string, onFn JoinOnFunc) *QueryBuilder {
	qb.joins.JoinSubNested(types.RightJoin, fn, alias, onFn)
	return qb
}

// FullOuterJoin appends a full outer join of table on "first op second".
func (qb *QueryBuilder) FullOuterJoin(table, first, op, second string) *QueryBuilder {
	qb.joins.Join(types.FullJoin, table, first, op, second)
	return qb
}

// FullOuterJoinOn appends a full outer join of table on the conditions recorded by fn.
func (qb *QueryBuilder) FullOuterJoinOn(table string, fn JoinOnFunc) *QueryBuilder {
	qb.joins.JoinNested(types.FullJoin, table, fn)
	return qb
}

// FullOuterJoinSub appends a full outer join of a subquery aliased as alias.
func (qb *QueryBuilder) FullOuterJoinSub(fn SubqueryFunc, alias, first, op, second string) *QueryBuilder {
	qb.joins.JoinSub(types.FullJoin, fn, alias, first, op, second)
	return qb
}

// FullOuterJoinSubOn is FullOuterJoinSub with the conditions recorded by onFn.
func (qb *QueryBuilder) FullOuterJoinSubOn(fn SubqueryFunc, alias string, onFn JoinOnFunc) *QueryBuilder {
	qb.joins.JoinSubNested(types.FullJoin, fn, alias, onFn)
	return qb
}

// CrossJoin appends a cross join of table. alias may be empty.
func (qb *QueryBuilder) CrossJoin(table, alias string) *QueryBuilder {
	qb.joins.CrossJoin(table, alias)
	return qb
}

// CrossJoinSub appends a cross join of a subquery aliased as alias.
func (qb *QueryBuilder) CrossJoinSub(fn SubqueryFunc, alias string) *QueryBuilder {
	qb.joins.CrossJoinSub(fn, alias)
	return qb
}
