package grammar

import (
	"strconv"
	"strings"
)

// RewriteMarkers renders the "?" markers of raw SQL text as positional markers,
// numbering from start (the zero-based index of the first binding). An escaped
// "??" renders a literal "?" for numbered styles and stays "??" for Question,
// see EscapeQuestionMarks. It returns the rendered text and the number of
// markers consumed.
func (g *Grammar) RewriteMarkers(sql string, start int) (rendered string, count int) {
	if !strings.Contains(sql, "?") {
		return sql, 0
	}

	var b strings.Builder
	b.Grow(len(sql) + 4)

	for i := 0; i < len(sql); i++ {
		c := sql[i]
		if c != '?' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(sql) && sql[i+1] == '?' {
			b.WriteString(g.EscapeQuestionMarks("?"))
			i++
			continue
		}
		b.WriteString(g.Marker(start + count))
		count++
	}

	return b.String(), count
}

// ShiftMarkers renumbers the positional markers of already compiled SQL by offset.
// Markers inside single-quoted literals and quoted identifiers are left alone.
// Unnumbered "?" markers need no renumbering.
func (g *Grammar) ShiftMarkers(sql string, offset int) string {
	if offset == 0 || g.marker == Question {
		return sql
	}

	return g.replaceMarkers(sql, func(n int) string {
		return g.Marker(n - 1 + offset)
	})
}

// Interpolate renders bindings into compiled SQL as literals, using WrapValue.
// The result is meant for logs and diagnostics only and must never be executed.
//
// For Question grammars sql must still be in escaped form (literal question
// marks doubled, as produced by the compiler before unescaping); otherwise a
// literal "?" cannot be told apart from a marker.
func (g *Grammar) Interpolate(sql string, bindings []any) string {
	value := func(n int) string {
		if n < 1 || n > len(bindings) {
			return g.Marker(n - 1)
		}
		return g.WrapValue(bindings[n-1])
	}

	if g.marker == Question {
		return replaceQuestionMarkers(sql, value)
	}
	if len(bindings) == 0 {
		return sql
	}
	return g.replaceMarkers(sql, value)
}

func (g *Grammar) markerPrefix() string {
	switch g.marker {
	case Dollar:
		return "$"
	case AtP:
		return "@p"
	default:
		return "?"
	}
}

// replaceQuestionMarkers calls replace with the 1-based position of every lone
// "?" in escaped text and collapses "??" pairs to a literal "?".
func replaceQuestionMarkers(sql string, replace func(n int) string) string {
	var b strings.Builder
	b.Grow(len(sql) + 8)

	seq := 0
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		if c != '?' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(sql) && sql[i+1] == '?' {
			b.WriteByte('?')
			i++
			continue
		}
		seq++
		b.WriteString(replace(seq))
	}

	return b.String()
}

// replaceMarkers calls replace with the number of every numbered marker found
// outside quoted text.
func (g *Grammar) replaceMarkers(sql string, replace func(n int) string) string {
	prefix := g.markerPrefix()

	var b strings.Builder
	b.Grow(len(sql) + 8)

	var closing byte
	for i := 0; i < len(sql); {
		c := sql[i]
		if closing != 0 {
			if c == closing {
				closing = 0
			}
			b.WriteByte(c)
			i++
			continue
		}

		switch {
		case c == '\'':
			closing = '\''
		case c == g.quoteOpen:
			closing = g.quoteClose
		case strings.HasPrefix(sql[i:], prefix):
			j := i + len(prefix)
			for j < len(sql) && sql[j] >= '0' && sql[j] <= '9' {
				j++
			}
			if j > i+len(prefix) {
				n, err := strconv.Atoi(sql[i+len(prefix) : j])
				if err == nil {
					b.WriteString(replace(n))
					i = j
					continue
				}
			}
		}

		b.WriteByte(c)
		i++
	}

	return b.String()
}
