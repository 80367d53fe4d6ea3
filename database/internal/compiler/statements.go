package compiler

import (
	"strings"

	"github.com/gaborage/sqlbricks/database/types"
	"github.com/samber/lo"
)

type clauseKind string

const (
	clauseSelect  clauseKind = "select"
	clauseFrom    clauseKind = "from"
	clauseJoin    clauseKind = "join"
	clauseWhere   clauseKind = "where"
	clauseOrderBy clauseKind = "orderBy"
	clauseGroupBy clauseKind = "groupBy"
	clauseLimit   clauseKind = "limit"
	clauseOffset  clauseKind = "offset"
)

type statement struct {
	kind    clauseKind
	compile func(*Compiler, *compileContext, *types.Clauses) string
}

// statementOrder is the fixed rendering order of a select statement.
// It is filled in init to break the initialization cycle through compileJoins.
var statementOrder [8]statement

func init() {
	statementOrder = [...]statement{
		{kind: clauseSelect, compile: (*Compiler).compileSelect},
		{kind: clauseFrom, compile: (*Compiler).compileFrom},
		{kind: clauseJoin, compile: (*Compiler).compileJoins},
		{kind: clauseWhere, compile: (*Compiler).compileWhere},
		{kind: clauseOrderBy, compile: (*Compiler).compileOrderBy},
		{kind: clauseGroupBy, compile: (*Compiler).compileGroupBy},
		{kind: clauseLimit, compile: (*Compiler).compileLimit},
		{kind: clauseOffset, compile: (*Compiler).compileOffset},
	}
}

func (c *Compiler) compileSelect(cc *compileContext, q *types.Clauses) string {
	head := c.compileDistinct(cc, q.Distinct)
	if len(q.Select.Columns) == 0 {
		return head + " *"
	}

	columns := make([]string, 0, len(q.Select.Columns))
	for _, col := range q.Select.Columns {
		columns = append(columns, c.compileSelectColumn(cc, col))
	}
	return head + " " + strings.Join(columns, ", ")
}

// compileDistinct renders the select keyword. Column or expression restricted
// distinct becomes "distinct on (...)" where the dialect supports it and plain
// "distinct" elsewhere.
func (c *Compiler) compileDistinct(cc *compileContext, d types.Distinct) string {
	switch d.Mode {
	case types.DistinctOff:
		return "select"
	case types.DistinctOn:
		return "select distinct"
	case types.DistinctColumns:
		if !c.grammar.SupportsDistinctOn() || len(d.Columns) == 0 {
			return "select distinct"
		}
		columns := lo.Map(d.Columns, func(col string, _ int) string {
			return c.wrapColumn(col)
		})
		return "select distinct on (" + strings.Join(columns, ", ") + ")"
	case types.DistinctExpression:
		if !c.grammar.SupportsDistinctOn() || d.Expr.IsZero() {
			return "select distinct"
		}
		return "select distinct on (" + c.compileExpr(cc, d.Expr) + ")"
	default:
		invariant("unknown distinct mode %d", d.Mode)
		return ""
	}
}

func (c *Compiler) compileSelectColumn(cc *compileContext, col types.SelectColumn) string {
	switch col.Type {
	case types.SelectColumnName:
		return c.wrapAliased(c.wrapColumn(col.Name), col.Alias)
	case types.SelectColumnExpression:
		alias := col.Alias
		if alias == "" {
			alias = col.Expr.Alias()
		}
		return c.wrapAliased(c.compileExpr(cc, col.Expr), alias)
	case types.SelectColumnSubquery:
		return c.wrapAliased("("+c.compileSubquery(cc, col.Query)+")", col.Alias)
	default:
		invariant("unknown select column type %d", col.Type)
		return ""
	}
}

func (c *Compiler) compileFrom(cc *compileContext, q *types.Clauses) string {
	if len(q.From) == 0 {
		return ""
	}

	sources := make([]string, 0, len(q.From))
	for _, f := range q.From {
		switch f.Type {
		case types.FromBasic:
			sources = append(sources, c.wrapTable(f.Table, f.Alias))
		case types.FromSubquery:
			sources = append(sources, c.wrapAliased("("+c.compileSubquery(cc, f.Query)+")", f.Alias))
		case types.FromExpression:
			alias := f.Alias
			if alias == "" {
				alias = f.Expr.Alias()
			}
			sources = append(sources, c.wrapAliased(c.compileExpr(cc, f.Expr), alias))
		default:
			invariant("unknown from type %d", f.Type)
		}
	}
	return "from " + strings.Join(sources, ", ")
}

// compileOrderBy renders the ordering terms, or the dialect's random function
// when the random sentinel is set.
func (c *Compiler) compileOrderBy(cc *compileContext, q *types.Clauses) string {
	if q.OrderRandom {
		return "order by " + c.grammar.RandomFunction()
	}
	if len(q.OrderBy) == 0 {
		return ""
	}

	terms := make([]string, 0, len(q.OrderBy))
	for _, o := range q.OrderBy {
		switch o.Type {
		case types.OrderByColumn:
			term := c.wrapColumn(o.Column)
			if o.Direction != "" {
				term += " " + string(o.Direction)
			}
			terms = append(terms, term)
		case types.OrderByExpression:
			terms = append(terms, c.compileExpr(cc, o.Expr))
		default:
			invariant("unknown order by type %d", o.Type)
		}
	}
	return "order by " + strings.Join(terms, ", ")
}

func (c *Compiler) compileGroupBy(cc *compileContext, q *types.Clauses) string {
	if len(q.GroupBy) == 0 {
		return ""
	}

	keys := make([]string, 0, len(q.GroupBy))
	for _, g := range q.GroupBy {
		switch g.Type {
		case types.GroupByColumn:
			keys = append(keys, c.wrapColumn(g.Column))
		case types.GroupByExpression:
			keys = append(keys, c.compileExpr(cc, g.Expr))
		case types.GroupBySubquery:
			keys = append(keys, "("+c.compileSubquery(cc, g.Query)+")")
		default:
			invariant("unknown group by type %d", g.Type)
		}
	}
	return "group by " + strings.Join(keys, ", ")
}

func (c *Compiler) compileLimit(cc *compileContext, q *types.Clauses) string {
	if q.Limit == nil {
		return ""
	}
	return "limit " + cc.bind(string(clauseLimit), *q.Limit)
}

func (c *Compiler) compileOffset(cc *compileContext, q *types.Clauses) string {
	if q.Offset == nil {
		return ""
	}
	return "offset " + cc.bind(string(clauseOffset), *q.Offset)
}
