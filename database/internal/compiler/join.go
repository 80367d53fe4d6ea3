package compiler

import (
	"strings"

	"github.com/gaborage/sqlbricks/database/types"
)

func (c *Compiler) compileJoins(cc *compileContext, q *types.Clauses) string {
	if len(q.Join) == 0 {
		return ""
	}

	joins := make([]string, 0, len(q.Join))
	for i := range q.Join {
		joins = append(joins, c.compileJoin(cc, &q.Join[i]))
	}
	return strings.Join(joins, " ")
}

func (c *Compiler) compileJoin(cc *compileContext, j *types.JoinClause) string {
	kind := j.Kind
	if kind == "" {
		kind = types.InnerJoin
	}
	head := string(kind) + " join " + c.compileJoinTarget(cc, j)

	var on string
	switch j.Type {
	case types.JoinBasic, types.JoinSub:
		on = c.compileJoinCondition(cc, &j.On)
	case types.JoinNested, types.JoinSubNested:
		on = c.compileJoinConditions(cc, j.Nested)
	case types.JoinTable:
		return head
	default:
		invariant("unknown join type %d", j.Type)
	}

	if on == "" {
		return head
	}
	return head + " on " + on
}

func (c *Compiler) compileJoinTarget(cc *compileContext, j *types.JoinClause) string {
	if j.Query != nil {
		return c.wrapAliased("("+c.compileSubquery(cc, j.Query)+")", j.Alias)
	}
	if j.Type == types.JoinSub || j.Type == types.JoinSubNested {
		invariant("subquery join without query")
	}
	return c.wrapTable(j.Table, j.Alias)
}

// compileJoinConditions mirrors compileConditions for on-clauses.
func (c *Compiler) compileJoinConditions(cc *compileContext, conditions []types.JoinCondition) string {
	var b strings.Builder
	for i := range conditions {
		sql := c.compileJoinCondition(cc, &conditions[i])
		if sql == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
			b.WriteString(connective(conditions[i].Boolean))
			b.WriteByte(' ')
		}
		b.WriteString(sql)
	}
	return b.String()
}

func (c *Compiler) compileJoinCondition(cc *compileContext, jc *types.JoinCondition) string {
	switch jc.Type {
	case types.JoinConditionBasic:
		first := c.compileOperand(cc, jc.First)
		op := c.checkOperator(cc, jc.Operator)
		second := c.compileOperand(cc, jc.Second)
		return first + " " + op + " " + second
	case types.JoinConditionNested:
		nested := c.compileJoinConditions(cc, jc.Nested)
		if nested == "" {
			return ""
		}
		return "(" + nested + ")"
	default:
		invariant("unknown join condition type %d", jc.Type)
		return ""
	}
}

func (c *Compiler) compileOperand(cc *compileContext, o types.Operand) string {
	if o.IsExpr() {
		return c.compileExpr(cc, *o.Expr)
	}
	return c.wrapColumn(o.Column)
}
