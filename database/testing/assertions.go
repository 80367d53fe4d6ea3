// Package testing provides assertion helpers for code that builds queries with
// sqlbricks: compiled SQL comparison, marker/binding correspondence and
// sqlmock expectations derived from a builder.
package testing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/gaborage/sqlbricks/database/grammar"
	"github.com/gaborage/sqlbricks/database/types"
)

// Compilable is anything that renders to SQL and bindings, such as a
// database.QueryBuilder.
type Compilable interface {
	ToSQL() (sql string, args []any, err error)
}

var (
	dollarMarker = regexp.MustCompile(`\$(\d+)`)
	atPMarker    = regexp.MustCompile(`@p(\d+)`)
)

// AssertSQL compiles q and asserts the exact SQL text and bindings.
// A nil wantArgs is treated as no bindings.
//
// Example:
//
//	qb, _ := database.NewQueryBuilder(database.Postgres)
//	qb.Select("id").From("users").Where("age", ">", 18)
//	AssertSQL(t, qb, `select "id" from "users" where "age" > $1`, 18)
func AssertSQL(t *testing.T, q Compilable, wantSQL string, wantArgs ...any) {
	t.Helper()
	sql, args, err := q.ToSQL()
	if err != nil {
		t.Errorf("query compilation failed: %v", err)
		return
	}

	if sql != wantSQL {
		t.Errorf("unexpected sql:\n  want: %s\n  got:  %s", wantSQL, sql)
	}
	if wantArgs == nil {
		wantArgs = []any{}
	}
	if fmt.Sprintf("%#v", args) != fmt.Sprintf("%#v", wantArgs) {
		t.Errorf("unexpected bindings:\n%s", formatArgs(wantArgs, args))
	}
}

// AssertCompileError asserts that q fails to compile with an error whose
// message contains substr.
func AssertCompileError(t *testing.T, q Compilable, substr string) {
	t.Helper()
	_, _, err := q.ToSQL()
	if err == nil {
		t.Errorf("expected compilation error containing %q, got none", substr)
		return
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("expected compilation error containing %q, got %q", substr, err.Error())
	}
}

// AssertMarkerCorrespondence asserts that the markers of sql refer to exactly
// the given bindings: numbered dialects must use 1..len(args) each at least
// once and nothing beyond, positional dialects must have one marker per binding.
// Markers inside quoted literals are not distinguished.
func AssertMarkerCorrespondence(t *testing.T, g *grammar.Grammar, sql string, args []any) {
	t.Helper()

	var pattern *regexp.Regexp
	switch g.MarkerStyle() {
	case grammar.Dollar:
		pattern = dollarMarker
	case grammar.AtP:
		pattern = atPMarker
	default:
		if n := types.CountMarkers(sql); n != len(args) {
			t.Errorf("%s: %d markers for %d bindings in %s", g.Name(), n, len(args), sql)
		}
		return
	}

	seen := make(map[int]bool)
	for _, m := range pattern.FindAllStringSubmatch(sql, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > len(args) {
			t.Errorf("%s: marker %s has no binding (%d bindings) in %s", g.Name(), m[0], len(args), sql)
			continue
		}
		seen[n] = true
	}
	for i := 1; i <= len(args); i++ {
		if !seen[i] {
			t.Errorf("%s: binding %d has no marker in %s", g.Name(), i, sql)
		}
	}
}

// formatArgs formats expected and actual bindings for error messages.
func formatArgs(want, got []any) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  want (%d):", len(want)))
	for _, a := range want {
		sb.WriteString(fmt.Sprintf(" %#v", a))
	}
	sb.WriteString(fmt.Sprintf("\n  got  (%d):", len(got)))
	for _, a := range got {
		sb.WriteString(fmt.Sprintf(" %#v", a))
	}
	return sb.String()
}
