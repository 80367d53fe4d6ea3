package compiler

import (
	"strings"

	"github.com/gaborage/sqlbricks/database/types"
)

func (c *Compiler) compileWhere(cc *compileContext, q *types.Clauses) string {
	conditions := c.compileConditions(cc, q.Where)
	if conditions == "" {
		return ""
	}
	return "where " + conditions
}

// compileConditions joins the rendered clauses with their connectives. The
// connective of the first rendered clause is dropped; empty nested groups render
// nothing and do not count as first.
func (c *Compiler) compileConditions(cc *compileContext, wheres []types.WhereClause) string {
	var b strings.Builder
	for i := range wheres {
		sql := c.compileCondition(cc, &wheres[i])
		if sql == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
			b.WriteString(connective(wheres[i].Boolean))
			b.WriteByte(' ')
		}
		b.WriteString(sql)
	}
	return b.String()
}

func (c *Compiler) compileCondition(cc *compileContext, w *types.WhereClause) string {
	switch w.Type {
	case types.WhereBasic:
		return c.whereBasic(cc, w)
	case types.WhereIn:
		return c.whereIn(cc, w, false)
	case types.WhereNotIn:
		return c.whereIn(cc, w, true)
	case types.WhereInSub:
		return c.whereInSub(cc, w, false)
	case types.WhereNotInSub:
		return c.whereInSub(cc, w, true)
	case types.WhereNull:
		return c.wrapColumn(w.Column) + " is null"
	case types.WhereNotNull:
		return c.wrapColumn(w.Column) + " is not null"
	case types.WhereBetween:
		return c.whereBetween(cc, w, false)
	case types.WhereNotBetween:
		return c.whereBetween(cc, w, true)
	case types.WhereExists:
		return "exists(" + c.compileSubquery(cc, w.Query) + ")"
	case types.WhereNotExists:
		return "not exists(" + c.compileSubquery(cc, w.Query) + ")"
	case types.WhereRaw:
		if w.Expr == nil {
			invariant("raw where clause without expression")
		}
		return c.compileExpr(cc, *w.Expr)
	case types.WhereSub:
		op := c.checkOperator(cc, w.Operator)
		return c.wrapColumn(w.Column) + " " + op + " (" + c.compileSubquery(cc, w.Query) + ")"
	case types.WhereNested:
		nested := c.compileConditions(cc, w.Nested)
		if nested == "" {
			return ""
		}
		return "(" + nested + ")"
	default:
		invariant("unknown where type %s", w.Type)
		return ""
	}
}

func (c *Compiler) whereBasic(cc *compileContext, w *types.WhereClause) string {
	op := c.checkOperator(cc, w.Operator)
	column := c.wrapColumn(w.Column)

	if w.Expr != nil {
		return column + " " + op + " " + c.compileExpr(cc, *w.Expr)
	}
	return column + " " + op + " " + cc.bind(w.Column, w.Value)
}

// whereIn expands one marker per value. An empty list can never match with
// "in" and always matches with "not in".
func (c *Compiler) whereIn(cc *compileContext, w *types.WhereClause, not bool) string {
	if len(w.Values) == 0 {
		if not {
			return "1 = 1"
		}
		return "0 = 1"
	}

	markers := make([]string, len(w.Values))
	for i, v := range w.Values {
		markers[i] = cc.bind(w.Column, v)
	}

	keyword := " in("
	if not {
		keyword = " not in("
	}
	return c.wrapColumn(w.Column) + keyword + strings.Join(markers, ",") + ")"
}

func (c *Compiler) whereInSub(cc *compileContext, w *types.WhereClause, not bool) string {
	keyword := " in("
	if not {
		keyword = " not in("
	}
	return c.wrapColumn(w.Column) + keyword + c.compileSubquery(cc, w.Query) + ")"
}

func (c *Compiler) whereBetween(cc *compileContext, w *types.WhereClause, not bool) string {
	if len(w.Values) != 2 {
		invariant("between on %q needs two values, got %d", w.Column, len(w.Values))
	}

	keyword := " between "
	if not {
		keyword = " not between "
	}
	column := c.wrapColumn(w.Column)
	low := cc.bind(w.Column, w.Values[0])
	high := cc.bind(w.Column, w.Values[1])
	return column + keyword + low + " and " + high
}

func connective(b types.Boolean) string {
	if b == "" {
		return string(types.And)
	}
	return string(b)
}
