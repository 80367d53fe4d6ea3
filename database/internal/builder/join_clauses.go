package builder

import (
	"github.com/gaborage/sqlbricks/database/types"
)

// JoinClauses accumulates joins; every call appends exactly one entry.
type JoinClauses struct {
	clauses []types.JoinClause
	spawn   func() *QueryBuilder
}

// NewJoinClauses returns an empty, standalone JoinClauses. Subquery callbacks
// receive detached builders.
func NewJoinClauses() *JoinClauses {
	return newJoinClauses(newDetachedBuilder)
}

func newJoinClauses(spawn func() *QueryBuilder) *JoinClauses {
	return &JoinClauses{spawn: spawn}
}

// Clauses returns a copy of the recorded joins.
func (j *JoinClauses) Clauses() []types.JoinClause {
	if len(j.clauses) == 0 {
		return nil
	}
	out := make([]types.JoinClause, len(j.clauses))
	copy(out, j.clauses)
	return out
}

func (j *JoinClauses) subquery(fn SubqueryFunc) *types.Clauses {
	child := j.spawn()
	if fn != nil {
		fn(child)
	}
	return child.Clauses()
}

func (j *JoinClauses) add(clause types.JoinClause) *JoinClauses {
	j.clauses = append(j.clauses, clause)
	return j
}

func basicCondition(first, op, second string) types.JoinCondition {
	if op == "" {
		op = "="
	}
	return types.JoinCondition{
		Type:     types.JoinConditionBasic,
		Boolean:  types.And,
		First:    types.Col(first),
		Operator: op,
		Second:   types.Col(second),
	}
}

// Join appends "kind join table on first op second".
func (j *JoinClauses) Join(kind types.JoinKind, table, first, op, second string) *JoinClauses {
	return j.add(types.JoinClause{
		Type:  types.JoinBasic,
		Kind:  kind,
		Table: table,
		On:    basicCondition(first, op, second),
	})
}

// JoinNested appends "kind join table on (conditions from fn)".
func (j *JoinClauses) JoinNested(kind types.JoinKind, table string, fn JoinOnFunc) *JoinClauses {
	return j.add(types.JoinClause{
		Type:   types.JoinNested,
		Kind:   kind,
		Table:  table,
		Nested: collectConditions(fn),
	})
}

// JoinSub appends "kind join (subquery) as alias on first op second".
func (j *JoinClauses) JoinSub(kind types.JoinKind, fn SubqueryFunc, alias, first, op, second string) *JoinClauses {
	return j.add(types.JoinClause{
		Type:  types.JoinSub,
		Kind:  kind,
		Alias: alias,
		Query: j.subquery(fn),
		On:    basicCondition(first, op, second),
	})
}

// JoinSubNested appends "kind join (subquery) as alias on (conditions from onFn)".
func (j *JoinClauses) JoinSubNested(kind types.JoinKind, fn SubqueryFunc, alias string, onFn JoinOnFunc) *JoinClauses {
	return j.add(types.JoinClause{
		Type:   types.JoinSubNested,
		Kind:   kind,
		Alias:  alias,
		Query:  j.subquery(fn),
		Nested: collectConditions(onFn),
	})
}

// CrossJoin appends "cross join table". alias may be empty.
func (j *JoinClauses) CrossJoin(table, alias string) *JoinClauses {
	return j.add(types.JoinClause{
		Type:  types.JoinTable,
		Kind:  types.CrossJoin,
		Table: table,
		Alias: alias,
	})
}

// CrossJoinSub appends "cross join (subquery) as alias".
func (j *JoinClauses) CrossJoinSub(fn SubqueryFunc, alias string) *JoinClauses {
	return j.add(types.JoinClause{
		Type:  types.JoinTable,
		Kind:  types.CrossJoin,
		Alias: alias,
		Query: j.subquery(fn),
	})
}
