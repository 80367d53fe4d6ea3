//revive:disable-next-line:var-naming // Package name "types" avoids circular imports.
package types

// JoinType discriminates JoinClause variants by target and condition shape.
type JoinType int

const (
	// JoinBasic joins a table on a single condition.
	JoinBasic JoinType = iota
	// JoinNested joins a table on a list of conditions.
	JoinNested
	// JoinSub joins a subquery on a single condition.
	JoinSub
	// JoinSubNested joins a subquery on a list of conditions.
	JoinSubNested
	// JoinTable is a cross join against a table or subquery, without condition.
	JoinTable
)

// JoinKind is the SQL join keyword.
type JoinKind string

const (
	InnerJoin JoinKind = "inner"
	LeftJoin  JoinKind = "left"
	RightJoin JoinKind = "right"
	FullJoin  JoinKind = "full"
	CrossJoin JoinKind = "cross"
)

// JoinClause is one join entry.
// Table holds the target for basic/nested (and table without Query); Query holds
// the subquery target for sub/subNested (and table with Query).
type JoinClause struct {
	Type   JoinType
	Kind   JoinKind
	Table  string
	Alias  string
	Query  *Clauses
	On     JoinCondition
	Nested []JoinCondition
}

// JoinConditionType discriminates JoinCondition variants.
type JoinConditionType int

const (
	JoinConditionBasic JoinConditionType = iota
	JoinConditionNested
)

// JoinCondition is one on-condition. A nested condition renders its children
// as one parenthesized group.
type JoinCondition struct {
	Type     JoinConditionType
	Boolean  Boolean
	First    Operand
	Operator string
	Second   Operand
	Nested   []JoinCondition
}

// Operand is one side of a join comparison: a column reference or a raw Expression.
type Operand struct {
	Column string
	Expr   *Expression
}

// Col returns a column Operand.
func Col(column string) Operand {
	return Operand{Column: column}
}

// ExprOperand returns an Operand rendering expr verbatim.
func ExprOperand(expr Expression) Operand {
	return Operand{Expr: &expr}
}

// IsExpr reports whether the operand is a raw Expression.
func (o Operand) IsExpr() bool {
	return o.Expr != nil
}
