// Package grammar holds the per-dialect SQL vocabulary consulted by the compiler:
// supported comparison operators, identifier quoting, positional marker syntax and
// the few function names that differ between drivers.
//
// Grammars are immutable process-wide singletons obtained through Create and are
// safe for concurrent use.
package grammar

import (
	"fmt"
	"strings"

	"github.com/gaborage/sqlbricks/database/types"
	"github.com/samber/lo"
)

// MarkerStyle selects how positional binding markers are rendered.
// Names follow the squirrel placeholder formats.
type MarkerStyle int

const (
	// Question renders every marker as "?".
	Question MarkerStyle = iota
	// Dollar renders numbered markers "$1", "$2", ...
	Dollar
	// AtP renders numbered markers "@p1", "@p2", ...
	AtP
)

// Grammar is the dialect rule bundle for one driver.
type Grammar struct {
	name       types.Vendor
	operators  []string
	lookup     map[string]struct{}
	quoteOpen  byte
	quoteClose byte
	marker     MarkerStyle
	random     string
	distinctOn bool
}

func newGrammar(name types.Vendor, operators []string, quoteOpen, quoteClose byte, marker MarkerStyle, random string, distinctOn bool) *Grammar {
	return &Grammar{
		name:       name,
		operators:  operators,
		lookup:     lo.Keyify(operators),
		quoteOpen:  quoteOpen,
		quoteClose: quoteClose,
		marker:     marker,
		random:     random,
		distinctOn: distinctOn,
	}
}

// Name returns the driver identifier.
func (g *Grammar) Name() types.Vendor {
	return g.name
}

// Operators returns a copy of the supported comparison operators.
func (g *Grammar) Operators() []string {
	out := make([]string, len(g.operators))
	copy(out, g.operators)
	return out
}

// SupportsOperator reports whether op belongs to the dialect's vocabulary.
// Matching is case-insensitive and collapses repeated whitespace.
func (g *Grammar) SupportsOperator(op string) bool {
	_, ok := g.lookup[NormalizeOperator(op)]
	return ok
}

// NormalizeOperator lower-cases op and collapses inner whitespace.
func NormalizeOperator(op string) string {
	return strings.Join(strings.Fields(strings.ToLower(op)), " ")
}

// MarkerStyle returns the dialect's positional marker style.
func (g *Grammar) MarkerStyle() MarkerStyle {
	return g.marker
}

// WithMarkerStyle returns a copy of g rendering markers in style. Quoting and
// operator vocabulary are shared with g.
func (g *Grammar) WithMarkerStyle(style MarkerStyle) *Grammar {
	out := *g
	out.marker = style
	return &out
}

// EscapeQuestionMarks doubles every "?" in s for grammars using Question markers,
// so compiled text keeps literal question marks apart from markers the way
// squirrel expects. Numbered styles return s unchanged.
func (g *Grammar) EscapeQuestionMarks(s string) string {
	if g.marker != Question || !strings.Contains(s, "?") {
		return s
	}
	return strings.ReplaceAll(s, "?", "??")
}

// UnescapeQuestionMarks reverses EscapeQuestionMarks on compiled text: every
// "??" pair becomes a single literal "?" and lone markers are kept.
func (g *Grammar) UnescapeQuestionMarks(sql string) string {
	if g.marker != Question || !strings.Contains(sql, "??") {
		return sql
	}
	return strings.ReplaceAll(sql, "??", "?")
}

// Marker renders the marker for the binding at zero-based index.
func (g *Grammar) Marker(index int) string {
	switch g.marker {
	case Dollar:
		return fmt.Sprintf("$%d", index+1)
	case AtP:
		return fmt.Sprintf("@p%d", index+1)
	default:
		return "?"
	}
}

// RandomFunction returns the expression used by "order by random".
func (g *Grammar) RandomFunction() string {
	return g.random
}

// SupportsDistinctOn reports whether "distinct on (...)" is available.
func (g *Grammar) SupportsDistinctOn() bool {
	return g.distinctOn
}

// QuoteIdentifier quotes a single identifier segment, doubling any closing quote
// character it contains.
func (g *Grammar) QuoteIdentifier(name string) string {
	closing := string(g.quoteClose)
	return string(g.quoteOpen) + strings.ReplaceAll(name, closing, closing+closing) + closing
}

// WrapAlias quotes an alias.
func (g *Grammar) WrapAlias(alias string) string {
	return g.QuoteIdentifier(strings.TrimSpace(alias))
}

// WrapColumn quotes a column reference.
//
// Qualified names are quoted per segment ("users.id" becomes "users"."id"), a "*"
// segment and segments that are already quoted are left alone, a trailing
// "::type" cast is kept verbatim and an alias written as "col as c" or "col c"
// is split off and quoted separately. A function call such as "count(*)" is
// kept verbatim; only a trailing "as alias" on it is quoted.
func (g *Grammar) WrapColumn(column string) string {
	if IsSQLFunction(column) {
		return g.wrapFunction(column)
	}

	name, alias := SplitAlias(column)
	if name == "" {
		return ""
	}

	wrapped := g.wrapSegments(name)
	if alias != "" {
		return wrapped + " as " + g.WrapAlias(alias)
	}
	return wrapped
}

// WrapTable quotes a table reference. An alias written inside table ("users as u"
// or "users u") takes precedence over the alias argument.
func (g *Grammar) WrapTable(table, alias string) string {
	name, embedded := SplitAlias(table)
	if embedded != "" {
		alias = embedded
	}

	wrapped := g.wrapSegments(name)
	if alias != "" {
		return wrapped + " as " + g.WrapAlias(alias)
	}
	return wrapped
}

func (g *Grammar) wrapFunction(column string) string {
	call := strings.TrimSpace(column)
	fields := strings.Fields(call)
	n := len(fields)
	if n < 3 || !strings.EqualFold(fields[n-2], "as") || strings.ContainsAny(fields[n-1], "()") {
		return call
	}

	alias := fields[n-1]
	call = strings.TrimSpace(call[:len(call)-len(alias)])
	call = strings.TrimSpace(call[:len(call)-len(fields[n-2])])
	return call + " as " + g.WrapAlias(alias)
}

func (g *Grammar) wrapSegments(name string) string {
	cast := ""
	if idx := strings.Index(name, "::"); idx > 0 {
		name, cast = name[:idx], name[idx:]
	}

	parts := strings.Split(name, ".")
	for i, part := range parts {
		if part == "*" || g.isQuoted(part) {
			continue
		}
		parts[i] = g.QuoteIdentifier(part)
	}

	return strings.Join(parts, ".") + cast
}

func (g *Grammar) isQuoted(part string) bool {
	return len(part) >= 2 && part[0] == g.quoteOpen && part[len(part)-1] == g.quoteClose
}

// SplitAlias separates "name as alias" and "name alias" forms.
// Anything else is returned unchanged with an empty alias.
func SplitAlias(reference string) (name, alias string) {
	fields := strings.Fields(reference)
	switch {
	case len(fields) == 3 && strings.EqualFold(fields[1], "as"):
		return fields[0], fields[2]
	case len(fields) == 2:
		return fields[0], fields[1]
	default:
		return strings.TrimSpace(reference), ""
	}
}
