package builder

import (
	"github.com/gaborage/sqlbricks/database/types"
)

// SubqueryFunc populates a freshly spawned QueryBuilder whose clauses become a subquery.
type SubqueryFunc func(*QueryBuilder)

// WhereFunc populates a fresh WhereClauses whose conditions become one parenthesized group.
type WhereFunc func(*WhereClauses)

// WhereTuple is one (column, operator, value) condition of WhereTuples.
// An empty Operator means "=".
type WhereTuple struct {
	Column   string
	Operator string
	Value    any
}

// WhereClauses accumulates where conditions in call order. Each call appends
// exactly one clause, except WhereNull/WhereNotNull which append one per column.
//
// A WhereClauses obtained from NewWhereClauses spawns detached builders for
// subquery callbacks; those builders record clauses but cannot compile on their own.
type WhereClauses struct {
	clauses []types.WhereClause
	spawn   func() *QueryBuilder
}

// NewWhereClauses returns an empty, standalone WhereClauses.
func NewWhereClauses() *WhereClauses {
	return newWhereClauses(newDetachedBuilder)
}

func newWhereClauses(spawn func() *QueryBuilder) *WhereClauses {
	return &WhereClauses{spawn: spawn}
}

// Clauses returns a copy of the recorded conditions.
func (w *WhereClauses) Clauses() []types.WhereClause {
	if len(w.clauses) == 0 {
		return nil
	}
	out := make([]types.WhereClause, len(w.clauses))
	copy(out, w.clauses)
	return out
}

// Len returns the number of recorded conditions.
func (w *WhereClauses) Len() int {
	return len(w.clauses)
}

func (w *WhereClauses) add(clause types.WhereClause) *WhereClauses {
	if clause.Boolean == "" {
		clause.Boolean = types.And
	}
	w.clauses = append(w.clauses, clause)
	return w
}

func (w *WhereClauses) subquery(fn SubqueryFunc) *types.Clauses {
	child := w.spawn()
	if fn != nil {
		fn(child)
	}
	return child.Clauses()
}

func (w *WhereClauses) group(fn WhereFunc) []types.WhereClause {
	inner := newWhereClauses(w.spawn)
	if fn != nil {
		fn(inner)
	}
	return inner.clauses
}

// ========== Dispatch ==========

// dispatch routes a (column, operator, value) call by the dynamic type of value:
// an Expression renders verbatim, a builder callback becomes a subquery and
// anything else is bound.
func (w *WhereClauses) dispatch(column, op string, value any, boolean types.Boolean) *WhereClauses {
	switch v := value.(type) {
	case types.Expression:
		return w.WhereColumnOpExpr(column, op, v, boolean)
	case *types.Expression:
		if v != nil {
			return w.WhereColumnOpExpr(column, op, *v, boolean)
		}
		return w.WhereColumnOpValue(column, op, nil, boolean)
	case SubqueryFunc:
		return w.WhereSub(column, op, v, boolean)
	case func(*QueryBuilder):
		return w.WhereSub(column, op, v, boolean)
	default:
		return w.WhereColumnOpValue(column, op, value, boolean)
	}
}

// Where appends "column op value" joined with and. See dispatch for value handling.
func (w *WhereClauses) Where(column, op string, value any) *WhereClauses {
	return w.dispatch(column, op, value, types.And)
}

// OrWhere is Where joined with or.
func (w *WhereClauses) OrWhere(column, op string, value any) *WhereClauses {
	return w.dispatch(column, op, value, types.Or)
}

// WhereEq appends "column = value" joined with and.
func (w *WhereClauses) WhereEq(column string, value any) *WhereClauses {
	return w.WhereColumnValue(column, value, types.And)
}

// OrWhereEq appends "column = value" joined with or.
func (w *WhereClauses) OrWhereEq(column string, value any) *WhereClauses {
	return w.WhereColumnValue(column, value, types.Or)
}

// ========== Basic ==========

// WhereColumnValue appends "column = value".
func (w *WhereClauses) WhereColumnValue(column string, value any, boolean types.Boolean) *WhereClauses {
	return w.WhereColumnOpValue(column, "=", value, boolean)
}

// WhereColumnOpValue appends "column op ?" binding value. An empty op means "=".
func (w *WhereClauses) WhereColumnOpValue(column, op string, value any, boolean types.Boolean) *WhereClauses {
	if op == "" {
		op = "="
	}
	return w.add(types.WhereClause{
		Type:     types.WhereBasic,
		Boolean:  boolean,
		Column:   column,
		Operator: op,
		Value:    value,
	})
}

// WhereColumnOpExpr appends "column op <expr>" with expr rendered verbatim.
func (w *WhereClauses) WhereColumnOpExpr(column, op string, expr types.Expression, boolean types.Boolean) *WhereClauses {
	if op == "" {
		op = "="
	}
	return w.add(types.WhereClause{
		Type:     types.WhereBasic,
		Boolean:  boolean,
		Column:   column,
		Operator: op,
		Expr:     &expr,
	})
}

// WhereSub appends "column op (subquery)".
func (w *WhereClauses) WhereSub(column, op string, fn SubqueryFunc, boolean types.Boolean) *WhereClauses {
	if op == "" {
		op = "="
	}
	return w.add(types.WhereClause{
		Type:     types.WhereSub,
		Boolean:  boolean,
		Column:   column,
		Operator: op,
		Query:    w.subquery(fn),
	})
}

// WhereMap appends one group of "key = value" conditions joined with and.
// Keys are visited in sorted order so the output is deterministic.
func (w *WhereClauses) WhereMap(conditions map[string]any, boolean types.Boolean) *WhereClauses {
	return w.WhereNested(func(inner *WhereClauses) {
		for _, column := range sortedKeys(conditions) {
			inner.WhereColumnValue(column, conditions[column], types.And)
		}
	}, boolean)
}

// WhereTuples appends one group of conditions joined with and, in list order.
func (w *WhereClauses) WhereTuples(tuples []WhereTuple, boolean types.Boolean) *WhereClauses {
	return w.WhereNested(func(inner *WhereClauses) {
		for _, t := range tuples {
			inner.WhereColumnOpValue(t.Column, t.Operator, t.Value, types.And)
		}
	}, boolean)
}

// WhereNested appends the conditions recorded by fn as one parenthesized group.
// An empty group renders nothing.
func (w *WhereClauses) WhereNested(fn WhereFunc, boolean types.Boolean) *WhereClauses {
	return w.add(types.WhereClause{
		Type:    types.WhereNested,
		Boolean: boolean,
		Nested:  w.group(fn),
	})
}

// WhereGroup is WhereNested joined with and.
func (w *WhereClauses) WhereGroup(fn WhereFunc) *WhereClauses {
	return w.WhereNested(fn, types.And)
}

// OrWhereGroup is WhereNested joined with or.
func (w *WhereClauses) OrWhereGroup(fn WhereFunc) *WhereClauses {
	return w.WhereNested(fn, types.Or)
}

// ========== In ==========

// in is the canonical in/not in constructor. values may be a slice, an array
// or a single scalar.
func (w *WhereClauses) in(column string, values any, boolean types.Boolean, not bool) *WhereClauses {
	typ := types.WhereIn
	if not {
		typ = types.WhereNotIn
	}
	return w.add(types.WhereClause{
		Type:    typ,
		Boolean: boolean,
		Column:  column,
		Values:  normalizeToSlice(values),
	})
}

// WhereIn appends "column in (values...)". An empty list matches nothing.
func (w *WhereClauses) WhereIn(column string, values any) *WhereClauses {
	return w.in(column, values, types.And, false)
}

// OrWhereIn is WhereIn joined with or.
func (w *WhereClauses) OrWhereIn(column string, values any) *WhereClauses {
	return w.in(column, values, types.Or, false)
}

// WhereNotIn appends "column not in (values...)". An empty list matches everything.
func (w *WhereClauses) WhereNotIn(column string, values any) *WhereClauses {
	return w.in(column, values, types.And, true)
}

// OrWhereNotIn is WhereNotIn joined with or.
func (w *WhereClauses) OrWhereNotIn(column string, values any) *WhereClauses {
	return w.in(column, values, types.Or, true)
}

func (w *WhereClauses) inSub(column string, fn SubqueryFunc, boolean types.Boolean, not bool) *WhereClauses {
	typ := types.WhereInSub
	if not {
		typ = types.WhereNotInSub
	}
	return w.add(types.WhereClause{
		Type:    typ,
		Boolean: boolean,
		Column:  column,
		Query:   w.subquery(fn),
	})
}

// WhereInSub appends "column in (subquery)".
func (w *WhereClauses) WhereInSub(column string, fn SubqueryFunc) *WhereClauses {
	return w.inSub(column, fn, types.And, false)
}

// OrWhereInSub is WhereInSub joined with or.
func (w *WhereClauses) OrWhereInSub(column string, fn SubqueryFunc) *WhereClauses {
	return w.inSub(column, fn, types.Or, false)
}

// WhereNotInSub appends "column not in (subquery)".
func (w *WhereClauses) WhereNotInSub(column string, fn SubqueryFunc) *WhereClauses {
	return w.inSub(column, fn, types.And, true)
}

// OrWhereNotInSub is WhereNotInSub joined with or.
func (w *WhereClauses) OrWhereNotInSub(column string, fn SubqueryFunc) *WhereClauses {
	return w.inSub(column, fn, types.Or, true)
}

// ========== Null ==========

// null appends one clause per column, all with the same connective.
func (w *WhereClauses) null(columns []string, boolean types.Boolean, not bool) *WhereClauses {
	typ := types.WhereNull
	if not {
		typ = types.WhereNotNull
	}
	for _, column := range columns {
		w.add(types.WhereClause{Type: typ, Boolean: boolean, Column: column})
	}
	return w
}

// WhereNull appends "column is null" for each column.
func (w *WhereClauses) WhereNull(columns ...string) *WhereClauses {
	return w.null(columns, types.And, false)
}

// OrWhereNull is WhereNull joined with or.
func (w *WhereClauses) OrWhereNull(columns ...string) *WhereClauses {
	return w.null(columns, types.Or, false)
}

// WhereNotNull appends "column is not null" for each column.
func (w *WhereClauses) WhereNotNull(columns ...string) *WhereClauses {
	return w.null(columns, types.And, true)
}

// OrWhereNotNull is WhereNotNull joined with or.
func (w *WhereClauses) OrWhereNotNull(columns ...string) *WhereClauses {
	return w.null(columns, types.Or, true)
}

// ========== Between ==========

func (w *WhereClauses) between(column string, low, high any, boolean types.Boolean, not bool) *WhereClauses {
	typ := types.WhereBetween
	if not {
		typ = types.WhereNotBetween
	}
	return w.add(types.WhereClause{
		Type:    typ,
		Boolean: boolean,
		Column:  column,
		Values:  []any{low, high},
	})
}

// WhereBetween appends "column between low and high".
func (w *WhereClauses) WhereBetween(column string, low, high any) *WhereClauses {
	return w.between(column, low, high, types.And, false)
}

// OrWhereBetween is WhereBetween joined with or.
func (w *WhereClauses) OrWhereBetween(column string, low, high any) *WhereClauses {
	return w.between(column, low, high, types.Or, false)
}

// WhereNotBetween appends "column not between low and high".
func (w *WhereClauses) WhereNotBetween(column string, low, high any) *WhereClauses {
	return w.between(column, low, high, types.And, true)
}

// OrWhereNotBetween is WhereNotBetween joined with or.
func (w *WhereClauses) OrWhereNotBetween(column string, low, high any) *WhereClauses {
	return w.between(column, low, high, types.Or, true)
}

// ========== Exists ==========

func (w *WhereClauses) exists(fn SubqueryFunc, boolean types.Boolean, not bool) *WhereClauses {
	typ := types.WhereExists
	if not {
		typ = types.WhereNotExists
	}
	return w.add(types.WhereClause{
		Type:    typ,
		Boolean: boolean,
		Query:   w.subquery(fn),
	})
}

// WhereExists appends "exists(subquery)".
func (w *WhereClauses) WhereExists(fn SubqueryFunc) *WhereClauses {
	return w.exists(fn, types.And, false)
}

// OrWhereExists is WhereExists joined with or.
func (w *WhereClauses) OrWhereExists(fn SubqueryFunc) *WhereClauses {
	return w.exists(fn, types.Or, false)
}

// WhereNotExists appends "not exists(subquery)".
func (w *WhereClauses) WhereNotExists(fn SubqueryFunc) *WhereClauses {
	return w.exists(fn, types.And, true)
}

// OrWhereNotExists is WhereNotExists joined with or.
func (w *WhereClauses) OrWhereNotExists(fn SubqueryFunc) *WhereClauses {
	return w.exists(fn, types.Or, true)
}

// ========== Raw ==========

func (w *WhereClauses) raw(expr types.Expression, boolean types.Boolean) *WhereClauses {
	return w.add(types.WhereClause{
		Type:    types.WhereRaw,
		Boolean: boolean,
		Expr:    &expr,
	})
}

// WhereRaw appends a raw condition. "?" markers bind the given values in order.
// It panics on empty sql, like types.Raw.
func (w *WhereClauses) WhereRaw(sql string, bindings ...any) *WhereClauses {
	return w.raw(types.Raw(sql, bindings...), types.And)
}

// OrWhereRaw is WhereRaw joined with or.
func (w *WhereClauses) OrWhereRaw(sql string, bindings ...any) *WhereClauses {
	return w.raw(types.Raw(sql, bindings...), types.Or)
}

// WhereExpr appends a prebuilt Expression as a raw condition.
func (w *WhereClauses) WhereExpr(expr types.Expression) *WhereClauses {
	return w.raw(expr, types.And)
}

// OrWhereExpr is WhereExpr joined with or.
func (w *WhereClauses) OrWhereExpr(expr types.Expression) *WhereClauses {
	return w.raw(expr, types.Or)
}
