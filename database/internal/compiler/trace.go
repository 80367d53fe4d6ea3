package compiler

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

func (c *Compiler) debugEnabled() bool {
	return c.log != nil && c.log.DebugEnabled()
}

// traceClause logs one rendered clause when tracing is on. Bindings are not part
// of the event; they are only known in full once the statement is complete.
func (c *Compiler) traceClause(cc *compileContext, kind clauseKind, sql string) {
	if !c.trace || !c.debugEnabled() {
		return
	}

	c.log.Debug().
		Str("dialect", c.grammar.Name()).
		Str("clause", string(kind)).
		Int("depth", cc.depth).
		Str("sql", truncateString(c.output(sql), c.maxQueryLength)).
		Msg("compiled clause")
}

func (c *Compiler) logSummary(cc *compileContext, sql string, elapsed time.Duration) {
	if !c.trace || !c.debugEnabled() {
		return
	}

	event := c.log.Debug().
		Str("dialect", c.grammar.Name()).
		Str("sql", truncateString(c.output(sql), c.maxQueryLength)).
		Int("bindings", len(cc.bindings)).
		Int("subqueries", cc.subqueries).
		Dur("duration", elapsed)

	if c.logBindings {
		masked := c.maskBindings(cc)
		event = event.
			Interface("values", sanitizeArgs(masked, c.maxQueryLength)).
			Str("interpolated", truncateString(c.grammar.Interpolate(sql, masked), c.maxQueryLength))
	}

	event.Msg("compiled query")
}

func (c *Compiler) logFailure(err error) {
	if c.log == nil {
		return
	}
	c.log.Warn().
		Err(err).
		Str("dialect", c.grammar.Name()).
		Msg("query compilation failed")
}

// maskBindings replaces values bound against sensitive columns.
func (c *Compiler) maskBindings(cc *compileContext) []any {
	return lo.Map(cc.bindings, func(v any, i int) any {
		if i < len(cc.labels) && cc.labels[i] != "" {
			return c.filter.FilterValue(cc.labels[i], v)
		}
		return v
	})
}

// truncateString shortens value to maxLen runes, marking the cut with "...".
func truncateString(value string, maxLen int) string {
	if maxLen <= 0 {
		return value
	}
	r := []rune(value)
	if len(r) <= maxLen {
		return value
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// sanitizeArgs formats bindings for logging: strings are truncated, byte slices
// summarized and everything else printed with %v.
func sanitizeArgs(args []any, maxLen int) []any {
	if len(args) == 0 {
		return nil
	}
	return lo.Map(args, func(arg any, _ int) any {
		switch v := arg.(type) {
		case string:
			return truncateString(v, maxLen)
		case []byte:
			return fmt.Sprintf("<bytes len=%d>", len(v))
		default:
			return truncateString(fmt.Sprintf("%v", v), maxLen)
		}
	})
}
