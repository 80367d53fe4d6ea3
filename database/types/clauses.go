//revive:disable-next-line:var-naming // Package name "types" avoids circular imports.
package types

// Boolean is the connective joining a condition to its preceding sibling.
type Boolean string

const (
	And Boolean = "and"
	Or  Boolean = "or"
)

// Clauses is the aggregate of every clause category of one query.
// A builder owns exactly one Clauses value; subqueries carry their own.
// The zero value is an empty query.
type Clauses struct {
	Distinct    Distinct
	Select      SelectClause
	From        []FromClause
	Join        []JoinClause
	Where       []WhereClause
	GroupBy     []GroupByClause
	OrderBy     []OrderByClause
	OrderRandom bool
	Limit       *uint64
	Offset      *uint64
}

// DistinctMode is the tri-state of a select's DISTINCT modifier.
type DistinctMode int

const (
	DistinctOff DistinctMode = iota
	DistinctOn
	DistinctColumns
	DistinctExpression
)

// Distinct restricts duplicate rows: plain (On), by column list (Columns) or by expression.
type Distinct struct {
	Mode    DistinctMode
	Columns []string
	Expr    Expression
}

// SelectColumnType discriminates SelectColumn variants.
type SelectColumnType int

const (
	SelectColumnName SelectColumnType = iota
	SelectColumnExpression
	SelectColumnSubquery
)

// SelectClause is the ordered select list. An empty list renders as "*".
type SelectClause struct {
	Columns []SelectColumn
}

// SelectColumn is one entry of the select list.
type SelectColumn struct {
	Type  SelectColumnType
	Name  string
	Expr  Expression
	Query *Clauses
	Alias string
}

// FromType discriminates FromClause variants.
type FromType int

const (
	FromBasic FromType = iota
	FromSubquery
	FromExpression
)

// FromClause is one source table of the query.
type FromClause struct {
	Type  FromType
	Table string
	Alias string
	Query *Clauses
	Expr  Expression
}

// GroupByType discriminates GroupByClause variants.
type GroupByType int

const (
	GroupByColumn GroupByType = iota
	GroupByExpression
	GroupBySubquery
)

// GroupByClause is one grouping key.
type GroupByClause struct {
	Type   GroupByType
	Column string
	Expr   Expression
	Query  *Clauses
}

// Direction is an ordering direction. The empty Direction renders no keyword.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// OrderByType discriminates OrderByClause variants.
type OrderByType int

const (
	OrderByColumn OrderByType = iota
	OrderByExpression
)

// OrderByClause is one ordering term.
type OrderByClause struct {
	Type      OrderByType
	Column    string
	Direction Direction
	Expr      Expression
}

// IsEmpty reports whether no clause has been recorded.
func (c *Clauses) IsEmpty() bool {
	return c.Distinct.Mode == DistinctOff &&
		len(c.Select.Columns) == 0 &&
		len(c.From) == 0 &&
		len(c.Join) == 0 &&
		len(c.Where) == 0 &&
		len(c.GroupBy) == 0 &&
		len(c.OrderBy) == 0 &&
		!c.OrderRandom &&
		c.Limit == nil &&
		c.Offset == nil
}
