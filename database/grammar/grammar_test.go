package grammar

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	t.Run("returns singleton per driver", func(t *testing.T) {
		for _, driver := range Drivers() {
			first, err := Create(driver)
			require.NoError(t, err)
			second, err := Create(driver)
			require.NoError(t, err)

			assert.Same(t, first, second)
			assert.Equal(t, driver, first.Name())
		}
	})

	tests := []struct {
		name   string
		driver any
	}{
		{name: "unknown driver", driver: "oracle"},
		{name: "wrong case", driver: "Postgres"},
		{name: "empty string", driver: ""},
		{name: "integer", driver: 123},
		{name: "nil", driver: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Create(tt.driver)

			assert.Nil(t, g)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDriverNotSupported)

			var notSupported *DriverNotSupportedError
			require.True(t, errors.As(err, &notSupported))
			assert.Equal(t, tt.driver, notSupported.Driver)
		})
	}

	t.Run("error message carries the driver", func(t *testing.T) {
		_, err := Create("oracle")
		assert.Contains(t, err.Error(), "driver 'oracle' is not supported")
	})

	t.Run("MustCreate panics", func(t *testing.T) {
		assert.Panics(t, func() { MustCreate("oracle") })
		assert.NotPanics(t, func() { MustCreate("sqlite") })
	})
}

func TestSupportsOperator(t *testing.T) {
	pg := MustCreate("postgres")
	my := MustCreate("mysql")

	assert.True(t, pg.SupportsOperator("="))
	assert.True(t, pg.SupportsOperator("ILIKE"))
	assert.True(t, pg.SupportsOperator("is  not distinct   from"))
	assert.True(t, pg.SupportsOperator("@>"))
	assert.False(t, pg.SupportsOperator("sounds like"))

	assert.True(t, my.SupportsOperator("sounds like"))
	assert.True(t, my.SupportsOperator("<=>"))
	assert.False(t, my.SupportsOperator("@>"))

	ops := pg.Operators()
	ops[0] = "mutated"
	assert.Equal(t, "=", pg.Operators()[0])
}

func TestMarker(t *testing.T) {
	assert.Equal(t, "$1", MustCreate("postgres").Marker(0))
	assert.Equal(t, "$12", MustCreate("postgres").Marker(11))
	assert.Equal(t, "?", MustCreate("mysql").Marker(3))
	assert.Equal(t, "?", MustCreate("sqlite").Marker(3))
	assert.Equal(t, "@p4", MustCreate("mssql").Marker(3))
}

func TestWrapColumn(t *testing.T) {
	tests := []struct {
		driver string
		column string
		want   string
	}{
		{driver: "postgres", column: "id", want: `"id"`},
		{driver: "postgres", column: "users.id", want: `"users"."id"`},
		{driver: "postgres", column: "users.*", want: `"users".*`},
		{driver: "postgres", column: "*", want: `*`},
		{driver: "postgres", column: `"Users".id`, want: `"Users"."id"`},
		{driver: "postgres", column: "name as n", want: `"name" as "n"`},
		{driver: "postgres", column: "u.name AS n", want: `"u"."name" as "n"`},
		{driver: "postgres", column: "name n", want: `"name" as "n"`},
		{driver: "postgres", column: "price::numeric", want: `"price"::numeric`},
		{driver: "postgres", column: `we"ird`, want: `"we""ird"`},
		{driver: "mysql", column: "users.id", want: "`users`.`id`"},
		{driver: "mysql", column: "a`b", want: "`a``b`"},
		{driver: "sqlite", column: "users.id", want: `"users"."id"`},
		{driver: "mssql", column: "dbo.users", want: `[dbo].[users]`},
		{driver: "mssql", column: "[dbo].users", want: `[dbo].[users]`},
		{driver: "mssql", column: "a]b", want: `[a]]b]`},
		{driver: "postgres", column: "  ", want: ""},
		{driver: "postgres", column: "count(*)", want: "count(*)"},
		{driver: "postgres", column: "count(distinct id)", want: "count(distinct id)"},
		{driver: "postgres", column: "max(total) AS top", want: `max(total) as "top"`},
		{driver: "mysql", column: "coalesce(a, b)", want: "coalesce(a, b)"},
		{driver: "mssql", column: "sum(total) as spent", want: `sum(total) as [spent]`},
	}

	for _, tt := range tests {
		t.Run(tt.driver+"/"+tt.column, func(t *testing.T) {
			assert.Equal(t, tt.want, MustCreate(tt.driver).WrapColumn(tt.column))
		})
	}
}

func TestWrapTable(t *testing.T) {
	pg := MustCreate("postgres")

	assert.Equal(t, `"users"`, pg.WrapTable("users", ""))
	assert.Equal(t, `"public"."users" as "u"`, pg.WrapTable("public.users", "u"))
	assert.Equal(t, `"users" as "x"`, pg.WrapTable("users as x", "u"))
	assert.Equal(t, `"users" as "x"`, pg.WrapTable("users x", ""))
	assert.Equal(t, "`users` as `u`", MustCreate("mysql").WrapTable("users", "u"))
}

func TestSplitAlias(t *testing.T) {
	name, alias := SplitAlias("users as u")
	assert.Equal(t, "users", name)
	assert.Equal(t, "u", alias)

	name, alias = SplitAlias("users")
	assert.Equal(t, "users", name)
	assert.Empty(t, alias)

	name, alias = SplitAlias("a b c d")
	assert.Equal(t, "a b c d", name)
	assert.Empty(t, alias)
}

func TestRewriteMarkers(t *testing.T) {
	pg := MustCreate("postgres")

	sql, n := pg.RewriteMarkers("a = ? and b = ?", 2)
	assert.Equal(t, "a = $3 and b = $4", sql)
	assert.Equal(t, 2, n)

	sql, n = pg.RewriteMarkers("data ?? 'key' and c = ?", 0)
	assert.Equal(t, "data ? 'key' and c = $1", sql)
	assert.Equal(t, 1, n)

	sql, n = pg.RewriteMarkers("now()", 5)
	assert.Equal(t, "now()", sql)
	assert.Zero(t, n)

	sql, n = MustCreate("mysql").RewriteMarkers("a = ? and b = ?", 7)
	assert.Equal(t, "a = ? and b = ?", sql)
	assert.Equal(t, 2, n)

	sql, _ = MustCreate("mssql").RewriteMarkers("a = ?", 1)
	assert.Equal(t, "a = @p2", sql)

	sql, n = MustCreate("sqlite").RewriteMarkers("note = '??' and a = ?", 0)
	assert.Equal(t, "note = '??' and a = ?", sql)
	assert.Equal(t, 1, n)
}

func TestWithMarkerStyle(t *testing.T) {
	pg := MustCreate("postgres")
	q := pg.WithMarkerStyle(Question)

	assert.Equal(t, Question, q.MarkerStyle())
	assert.Equal(t, "?", q.Marker(4))
	assert.Equal(t, `"users"."id"`, q.WrapColumn("users.id"))
	assert.True(t, q.SupportsOperator("?|"))
	assert.Equal(t, Dollar, pg.MarkerStyle())
	assert.Equal(t, "$5", pg.Marker(4))
}

func TestEscapeQuestionMarks(t *testing.T) {
	mysql := MustCreate("mysql")
	assert.Equal(t, "`a??` ?? 'b??'", mysql.EscapeQuestionMarks("`a?` ? 'b?'"))
	assert.Equal(t, "`a?` ? 'b?'", mysql.UnescapeQuestionMarks("`a??` ?? 'b??'"))
	assert.Equal(t, "plain", mysql.EscapeQuestionMarks("plain"))

	pg := MustCreate("postgres")
	assert.Equal(t, `"data" ? $1`, pg.EscapeQuestionMarks(`"data" ? $1`))
	assert.Equal(t, `"data" ?? $1`, pg.UnescapeQuestionMarks(`"data" ?? $1`))
}

func TestShiftMarkers(t *testing.T) {
	pg := MustCreate("postgres")

	assert.Equal(t, `select * from "t" where "a" = $3 and "b" in($4,$5)`,
		pg.ShiftMarkers(`select * from "t" where "a" = $1 and "b" in($2,$3)`, 2))
	assert.Equal(t, `where "a" = '$1' and "b" = $11`,
		pg.ShiftMarkers(`where "a" = '$1' and "b" = $1`, 10))
	assert.Equal(t, `where "$1" = $2`, pg.ShiftMarkers(`where "$1" = $1`, 1))
	assert.Equal(t, "a = $1", pg.ShiftMarkers("a = $1", 0))

	assert.Equal(t, "a = @p4 and b = @p5", MustCreate("mssql").ShiftMarkers("a = @p1 and b = @p2", 3))
	assert.Equal(t, "a = ? and b = ?", MustCreate("mysql").ShiftMarkers("a = ? and b = ?", 3))
}

func TestInterpolate(t *testing.T) {
	pg := MustCreate("postgres")

	got := pg.Interpolate(`select * from "users" where "name" = $1 and "age" > $2 limit $3`, []any{"O'Hara", 18, uint64(10)})
	assert.Equal(t, `select * from "users" where "name" = 'O''Hara' and "age" > 18 limit 10`, got)

	got = MustCreate("mysql").Interpolate("select * from `t` where `a` = ? and `b` = ?", []any{true, nil})
	assert.Equal(t, "select * from `t` where `a` = true and `b` = null", got)

	got = pg.Interpolate(`where "a" = $1 and "b" = $2`, []any{1})
	assert.Equal(t, `where "a" = 1 and "b" = $2`, got)

	got = MustCreate("sqlite").Interpolate(`select "why??" from "t" where note = '??' and a = ? and b = ?`, []any{1, "x"})
	assert.Equal(t, `select "why?" from "t" where note = '?' and a = 1 and b = 'x'`, got)

	got = MustCreate("mysql").Interpolate("select `a??` from `t`", nil)
	assert.Equal(t, "select `a?` from `t`", got)
}

func TestWrapValue(t *testing.T) {
	pg := MustCreate("postgres")
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "nil", value: nil, want: "null"},
		{name: "bool", value: false, want: "false"},
		{name: "int", value: 42, want: "42"},
		{name: "float", value: 1.5, want: "1.5"},
		{name: "plain string", value: "abc", want: "'abc'"},
		{name: "quoted string", value: "it's", want: "'it''s'"},
		{name: "numeric string", value: "12.5", want: "12.5"},
		{name: "constant", value: "current_timestamp", want: "current_timestamp"},
		{name: "function", value: "now()", want: "now()"},
		{name: "star", value: "*", want: "*"},
		{name: "json path", value: "data->name", want: "data->name"},
		{name: "bytes", value: []byte("raw"), want: "'raw'"},
		{name: "time", value: ts, want: "'2024-03-01 12:30:00'"},
		{name: "stringer", value: id, want: "'6ba7b810-9dad-11d1-80b4-00c04fd430c8'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pg.WrapValue(tt.value))
		})
	}
}

func TestDialectDetails(t *testing.T) {
	assert.Equal(t, "random()", MustCreate("postgres").RandomFunction())
	assert.Equal(t, "rand()", MustCreate("mysql").RandomFunction())
	assert.Equal(t, "random()", MustCreate("sqlite").RandomFunction())
	assert.Equal(t, "newid()", MustCreate("mssql").RandomFunction())

	assert.True(t, MustCreate("postgres").SupportsDistinctOn())
	assert.False(t, MustCreate("mysql").SupportsDistinctOn())

	assert.Equal(t, Dollar, MustCreate("postgres").MarkerStyle())
	assert.Equal(t, AtP, MustCreate("mssql").MarkerStyle())
	assert.Equal(t, Question, MustCreate("sqlite").MarkerStyle())
}
