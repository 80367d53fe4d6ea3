package builder

import (
	"testing"

	"github.com/gaborage/sqlbricks/database/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhereClausesOneEntryPerCall(t *testing.T) {
	w := NewWhereClauses().
		WhereEq("a", 1).
		OrWhere("b", ">", 2).
		WhereNotIn("c", []string{"x", "y"}).
		OrWhereBetween("d", 1, 9).
		WhereRaw("e = ?", 5)

	clauses := w.Clauses()
	require.Len(t, clauses, 5)
	assert.Equal(t, 5, w.Len())

	assert.Equal(t, types.WhereClause{Type: types.WhereBasic, Boolean: types.And, Column: "a", Operator: "=", Value: 1}, clauses[0])
	assert.Equal(t, types.WhereClause{Type: types.WhereBasic, Boolean: types.Or, Column: "b", Operator: ">", Value: 2}, clauses[1])
	assert.Equal(t, types.WhereClause{Type: types.WhereNotIn, Boolean: types.And, Column: "c", Values: []any{"x", "y"}}, clauses[2])
	assert.Equal(t, types.WhereClause{Type: types.WhereBetween, Boolean: types.Or, Column: "d", Values: []any{1, 9}}, clauses[3])
	assert.Equal(t, types.WhereRaw, clauses[4].Type)
	require.NotNil(t, clauses[4].Expr)
	assert.Equal(t, "e = ?", clauses[4].Expr.SQL())
}

func TestWhereClausesNullPerColumn(t *testing.T) {
	clauses := NewWhereClauses().OrWhereNotNull("a", "b", "c").Clauses()

	require.Len(t, clauses, 3)
	for i, column := range []string{"a", "b", "c"} {
		assert.Equal(t, types.WhereNotNull, clauses[i].Type)
		assert.Equal(t, types.Or, clauses[i].Boolean)
		assert.Equal(t, column, clauses[i].Column)
	}
}

func TestWhereClausesPresets(t *testing.T) {
	sub := func(q *QueryBuilder) { q.From("x") }

	tests := []struct {
		name    string
		build   func(*WhereClauses)
		typ     types.WhereType
		boolean types.Boolean
	}{
		{name: "in", build: func(w *WhereClauses) { w.WhereIn("a", 1) }, typ: types.WhereIn, boolean: types.And},
		{name: "or in", build: func(w *WhereClauses) { w.OrWhereIn("a", 1) }, typ: types.WhereIn, boolean: types.Or},
		{name: "not in", build: func(w *WhereClauses) { w.WhereNotIn("a", 1) }, typ: types.WhereNotIn, boolean: types.And},
		{name: "or not in", build: func(w *WhereClauses) { w.OrWhereNotIn("a", 1) }, typ: types.WhereNotIn, boolean: types.Or},
		{name: "in sub", build: func(w *WhereClauses) { w.WhereInSub("a", sub) }, typ: types.WhereInSub, boolean: types.And},
		{name: "or not in sub", build: func(w *WhereClauses) { w.OrWhereNotInSub("a", sub) }, typ: types.WhereNotInSub, boolean: types.Or},
		{name: "null", build: func(w *WhereClauses) { w.WhereNull("a") }, typ: types.WhereNull, boolean: types.And},
		{name: "or null", build: func(w *WhereClauses) { w.OrWhereNull("a") }, typ: types.WhereNull, boolean: types.Or},
		{name: "not null", build: func(w *WhereClauses) { w.WhereNotNull("a") }, typ: types.WhereNotNull, boolean: types.And},
		{name: "between", build: func(w *WhereClauses) { w.WhereBetween("a", 1, 2) }, typ: types.WhereBetween, boolean: types.And},
		{name: "not between", build: func(w *WhereClauses) { w.WhereNotBetween("a", 1, 2) }, typ: types.WhereNotBetween, boolean: types.And},
		{name: "or not between", build: func(w *WhereClauses) { w.OrWhereNotBetween("a", 1, 2) }, typ: types.WhereNotBetween, boolean: types.Or},
		{name: "exists", build: func(w *WhereClauses) { w.WhereExists(sub) }, typ: types.WhereExists, boolean: types.And},
		{name: "or exists", build: func(w *WhereClauses) { w.OrWhereExists(sub) }, typ: types.WhereExists, boolean: types.Or},
		{name: "not exists", build: func(w *WhereClauses) { w.WhereNotExists(sub) }, typ: types.WhereNotExists, boolean: types.And},
		{name: "or not exists", build: func(w *WhereClauses) { w.OrWhereNotExists(sub) }, typ: types.WhereNotExists, boolean: types.Or},
		{name: "raw", build: func(w *WhereClauses) { w.WhereRaw("1 = 1") }, typ: types.WhereRaw, boolean: types.And},
		{name: "or raw", build: func(w *WhereClauses) { w.OrWhereRaw("1 = 1") }, typ: types.WhereRaw, boolean: types.Or},
		{name: "expr", build: func(w *WhereClauses) { w.WhereExpr(types.Raw("1 = 1")) }, typ: types.WhereRaw, boolean: types.And},
		{name: "group", build: func(w *WhereClauses) { w.WhereGroup(nil) }, typ: types.WhereNested, boolean: types.And},
		{name: "or group", build: func(w *WhereClauses) { w.OrWhereGroup(nil) }, typ: types.WhereNested, boolean: types.Or},
		{name: "sub", build: func(w *WhereClauses) { w.WhereSub("a", "", sub, types.Or) }, typ: types.WhereSub, boolean: types.Or},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWhereClauses()
			tt.build(w)

			clauses := w.Clauses()
			require.Len(t, clauses, 1)
			assert.Equal(t, tt.typ, clauses[0].Type)
			assert.Equal(t, tt.boolean, clauses[0].Boolean)
		})
	}
}

func TestWhereClausesDispatch(t *testing.T) {
	expr := types.Raw("now()")
	w := NewWhereClauses().
		Where("a", "=", expr).
		Where("b", "=", &expr).
		Where("c", "in", func(q *QueryBuilder) { q.Select("id").From("t") }).
		Where("d", "=", SubqueryFunc(func(q *QueryBuilder) { q.From("u") })).
		Where("e", "", 5)

	clauses := w.Clauses()
	require.Len(t, clauses, 5)

	assert.Equal(t, types.WhereBasic, clauses[0].Type)
	require.NotNil(t, clauses[0].Expr)
	assert.Equal(t, "now()", clauses[0].Expr.SQL())

	assert.Equal(t, types.WhereBasic, clauses[1].Type)
	require.NotNil(t, clauses[1].Expr)

	assert.Equal(t, types.WhereSub, clauses[2].Type)
	require.NotNil(t, clauses[2].Query)
	assert.Equal(t, "t", clauses[2].Query.From[0].Table)

	assert.Equal(t, types.WhereSub, clauses[3].Type)
	assert.Equal(t, "u", clauses[3].Query.From[0].Table)

	assert.Equal(t, types.WhereBasic, clauses[4].Type)
	assert.Equal(t, "=", clauses[4].Operator)
	assert.Equal(t, 5, clauses[4].Value)
}

func TestWhereClausesSubqueryUsesDetachedBuilder(t *testing.T) {
	var spawned *QueryBuilder
	w := NewWhereClauses().WhereExists(func(q *QueryBuilder) {
		spawned = q
		q.From("orders").WhereEq("paid", true)
	})

	require.NotNil(t, spawned)
	assert.Empty(t, spawned.Dialect())

	clauses := w.Clauses()
	require.Len(t, clauses, 1)
	require.NotNil(t, clauses[0].Query)
	assert.Equal(t, "orders", clauses[0].Query.From[0].Table)
	assert.Len(t, clauses[0].Query.Where, 1)
}

func TestWhereClausesNilCallbacks(t *testing.T) {
	clauses := NewWhereClauses().WhereExists(nil).WhereNested(nil, types.And).Clauses()

	require.Len(t, clauses, 2)
	require.NotNil(t, clauses[0].Query)
	assert.True(t, clauses[0].Query.IsEmpty())
	assert.Empty(t, clauses[1].Nested)
}

func TestWhereClausesMapAndTuples(t *testing.T) {
	clauses := NewWhereClauses().
		WhereMap(map[string]any{"z": 1, "m": 2, "a": 3}, types.And).
		WhereTuples([]WhereTuple{{Column: "z", Operator: "<", Value: 1}, {Column: "a", Value: 2}}, types.Or).
		Clauses()

	require.Len(t, clauses, 2)

	assert.Equal(t, types.WhereNested, clauses[0].Type)
	columns := make([]string, 0, 3)
	for _, n := range clauses[0].Nested {
		columns = append(columns, n.Column)
		assert.Equal(t, types.And, n.Boolean)
	}
	assert.Equal(t, []string{"a", "m", "z"}, columns)

	assert.Equal(t, types.Or, clauses[1].Boolean)
	require.Len(t, clauses[1].Nested, 2)
	assert.Equal(t, "z", clauses[1].Nested[0].Column)
	assert.Equal(t, "<", clauses[1].Nested[0].Operator)
	assert.Equal(t, "=", clauses[1].Nested[1].Operator)
}

func TestWhereClausesClausesIsCopy(t *testing.T) {
	w := NewWhereClauses().WhereEq("a", 1)
	clauses := w.Clauses()
	clauses[0].Column = "changed"

	assert.Equal(t, "a", w.Clauses()[0].Column)
	assert.Nil(t, NewWhereClauses().Clauses())
}

func TestJoinWhereClauses(t *testing.T) {
	j := NewJoinWhereClauses().
		OnEq("a.id", "b.a_id").
		OrOn("a.x", ">", "b.x").
		OnOperands(types.Col("a.s"), "", types.ExprOperand(types.Raw("?", 1)), "").
		OnNested(func(n *JoinWhereClauses) { n.On("a.y", "=", "b.y") }, types.Or)

	conditions := j.Conditions()
	require.Len(t, conditions, 4)

	assert.Equal(t, types.JoinCondition{
		Type:     types.JoinConditionBasic,
		Boolean:  types.And,
		First:    types.Col("a.id"),
		Operator: "=",
		Second:   types.Col("b.a_id"),
	}, conditions[0])
	assert.Equal(t, types.Or, conditions[1].Boolean)
	assert.Equal(t, ">", conditions[1].Operator)

	assert.Equal(t, "=", conditions[2].Operator)
	assert.Equal(t, types.And, conditions[2].Boolean)
	assert.True(t, conditions[2].Second.IsExpr())

	assert.Equal(t, types.JoinConditionNested, conditions[3].Type)
	assert.Equal(t, types.Or, conditions[3].Boolean)
	require.Len(t, conditions[3].Nested, 1)
	assert.Equal(t, "a.y", conditions[3].Nested[0].First.Column)

	assert.Nil(t, NewJoinWhereClauses().Conditions())
}

func TestJoinClauses(t *testing.T) {
	sub := func(q *QueryBuilder) { q.From("orders") }
	on := func(j *JoinWhereClauses) { j.OnEq("o.id", "u.id") }

	joins := NewJoinClauses().
		Join(types.LeftJoin, "orders o", "o.user_id", "=", "u.id").
		JoinNested(types.InnerJoin, "profiles", on).
		JoinSub(types.RightJoin, sub, "o", "o.user_id", "", "u.id").
		JoinSubNested(types.FullJoin, sub, "o", on).
		CrossJoin("colors", "c").
		CrossJoinSub(sub, "s").
		Clauses()

	require.Len(t, joins, 6)

	assert.Equal(t, types.JoinBasic, joins[0].Type)
	assert.Equal(t, types.LeftJoin, joins[0].Kind)
	assert.Equal(t, "orders o", joins[0].Table)
	assert.Equal(t, "o.user_id", joins[0].On.First.Column)

	assert.Equal(t, types.JoinNested, joins[1].Type)
	assert.Len(t, joins[1].Nested, 1)

	assert.Equal(t, types.JoinSub, joins[2].Type)
	assert.Equal(t, "=", joins[2].On.Operator)
	require.NotNil(t, joins[2].Query)
	assert.Equal(t, "orders", joins[2].Query.From[0].Table)

	assert.Equal(t, types.JoinSubNested, joins[3].Type)
	assert.Equal(t, "o", joins[3].Alias)
	assert.Len(t, joins[3].Nested, 1)

	for _, cross := range joins[4:] {
		assert.Equal(t, types.JoinTable, cross.Type)
		assert.Equal(t, types.CrossJoin, cross.Kind)
		assert.Equal(t, types.JoinCondition{}, cross.On)
		assert.Empty(t, cross.Nested)
	}
	assert.Nil(t, joins[4].Query)
	assert.NotNil(t, joins[5].Query)
}

func TestNormalizeToSlice(t *testing.T) {
	id := uuid.New()
	type ids []int

	tests := []struct {
		name  string
		value any
		want  []any
	}{
		{name: "nil", value: nil, want: []any{}},
		{name: "scalar", value: "a", want: []any{"a"}},
		{name: "any slice", value: []any{1, "b"}, want: []any{1, "b"}},
		{name: "typed slice", value: []string{"a", "b"}, want: []any{"a", "b"}},
		{name: "named slice", value: ids{1, 2}, want: []any{1, 2}},
		{name: "array", value: [2]int{1, 2}, want: []any{1, 2}},
		{name: "bytes", value: []byte("ab"), want: []any{[]byte("ab")}},
		{name: "uuid", value: id, want: []any{id}},
		{name: "uuid slice", value: []uuid.UUID{id}, want: []any{id}},
		{name: "empty slice", value: []int{}, want: []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeToSlice(tt.value))
		})
	}
}

func TestSplitDirection(t *testing.T) {
	tests := []struct {
		in     string
		column string
		dir    types.Direction
	}{
		{in: "a", column: "a"},
		{in: "a desc", column: "a", dir: types.Desc},
		{in: "  t.b   ASC ", column: "t.b", dir: types.Asc},
		{in: "a\tDesc", column: "a", dir: types.Desc},
		{in: "a nulls", column: "a nulls"},
	}

	for _, tt := range tests {
		column, dir := splitDirection(tt.in)
		assert.Equal(t, tt.column, column, tt.in)
		assert.Equal(t, tt.dir, dir, tt.in)
	}
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, sortedKeys(map[string]any{"c": 1, "a": 2, "b": 3}))
	assert.Empty(t, sortedKeys(nil))
}
