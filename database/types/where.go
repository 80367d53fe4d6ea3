//revive:disable-next-line:var-naming // Package name "types" avoids circular imports.
package types

// WhereType discriminates WhereClause variants.
type WhereType int

const (
	WhereBasic WhereType = iota
	WhereIn
	WhereNotIn
	WhereInSub
	WhereNotInSub
	WhereNull
	WhereNotNull
	WhereBetween
	WhereNotBetween
	WhereExists
	WhereNotExists
	WhereRaw
	WhereSub
	WhereNested
)

var whereTypeNames = [...]string{
	WhereBasic:      "basic",
	WhereIn:         "in",
	WhereNotIn:      "notIn",
	WhereInSub:      "inSub",
	WhereNotInSub:   "notInSub",
	WhereNull:       "null",
	WhereNotNull:    "notNull",
	WhereBetween:    "between",
	WhereNotBetween: "notBetween",
	WhereExists:     "exists",
	WhereNotExists:  "notExists",
	WhereRaw:        "raw",
	WhereSub:        "sub",
	WhereNested:     "nested",
}

func (t WhereType) String() string {
	if t < 0 || int(t) >= len(whereTypeNames) {
		return "unknown"
	}
	return whereTypeNames[t]
}

// WhereClause is one boolean condition. Each variant uses only the fields it needs:
//
//	basic               Column, Operator, Value or Expr
//	in, notIn           Column, Values
//	inSub, notInSub     Column, Query
//	null, notNull       Column
//	between, notBetween Column, Values (exactly two)
//	exists, notExists   Query
//	raw                 Expr
//	sub                 Column, Operator, Query
//	nested              Nested
//
// Boolean attaches the clause to its preceding sibling and is ignored for the
// first clause of a list.
type WhereClause struct {
	Type     WhereType
	Boolean  Boolean
	Column   string
	Operator string
	Value    any
	Values   []any
	Expr     *Expression
	Query    *Clauses
	Nested   []WhereClause
}
