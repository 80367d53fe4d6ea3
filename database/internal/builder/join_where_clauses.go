package builder

import (
	"github.com/gaborage/sqlbricks/database/types"
)

// JoinOnFunc populates the on-conditions of a join.
type JoinOnFunc func(*JoinWhereClauses)

// JoinWhereClauses accumulates join on-conditions. Operands are column
// references unless given as expressions through OnOperands.
type JoinWhereClauses struct {
	conditions []types.JoinCondition
}

// NewJoinWhereClauses returns an empty JoinWhereClauses.
func NewJoinWhereClauses() *JoinWhereClauses {
	return &JoinWhereClauses{}
}

// Conditions returns a copy of the recorded conditions.
func (j *JoinWhereClauses) Conditions() []types.JoinCondition {
	if len(j.conditions) == 0 {
		return nil
	}
	out := make([]types.JoinCondition, len(j.conditions))
	copy(out, j.conditions)
	return out
}

// OnOperands appends "first op second" with arbitrary operands.
func (j *JoinWhereClauses) OnOperands(first types.Operand, op string, second types.Operand, boolean types.Boolean) *JoinWhereClauses {
	if op == "" {
		op = "="
	}
	if boolean == "" {
		boolean = types.And
	}
	j.conditions = append(j.conditions, types.JoinCondition{
		Type:     types.JoinConditionBasic,
		Boolean:  boolean,
		First:    first,
		Operator: op,
		Second:   second,
	})
	return j
}

// On appends "first op second" comparing two columns, joined with and.
func (j *JoinWhereClauses) On(first, op, second string) *JoinWhereClauses {
	return j.OnOperands(types.Col(first), op, types.Col(second), types.And)
}

// OrOn is On joined with or.
func (j *JoinWhereClauses) OrOn(first, op, second string) *JoinWhereClauses {
	return j.OnOperands(types.Col(first), op, types.Col(second), types.Or)
}

// OnEq appends "first = second".
func (j *JoinWhereClauses) OnEq(first, second string) *JoinWhereClauses {
	return j.On(first, "=", second)
}

// OnNested appends the conditions recorded by fn as one parenthesized group.
func (j *JoinWhereClauses) OnNested(fn JoinOnFunc, boolean types.Boolean) *JoinWhereClauses {
	if boolean == "" {
		boolean = types.And
	}
	j.conditions = append(j.conditions, types.JoinCondition{
		Type:    types.JoinConditionNested,
		Boolean: boolean,
		Nested:  collectConditions(fn),
	})
	return j
}

func collectConditions(fn JoinOnFunc) []types.JoinCondition {
	inner := NewJoinWhereClauses()
	if fn != nil {
		fn(inner)
	}
	return inner.conditions
}
