// Package compiler serializes a clause tree into dialect-specific SQL text and
// an ordered list of bindings.
//
// Clauses render in a fixed order (select, from, join, where, order by, group by,
// limit, offset). Placeholders are appended to the text in the same step their
// values are appended to the bindings, so the n-th marker always refers to the
// n-th binding. Subqueries compile in their own context numbered from zero and
// are renumbered when spliced into the parent.
//
// Grammars with "?" markers compile in squirrel's convention, where a literal
// question mark is written "??", so markers stay unambiguous while subqueries
// are spliced and bindings are interpolated for logs. Compile returns the
// unescaped text; CompileSqlizer returns the escaped form.
package compiler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gaborage/sqlbricks/database/grammar"
	"github.com/gaborage/sqlbricks/database/types"
	"github.com/gaborage/sqlbricks/logger"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const defaultMaxQueryLength = 1000

// Compiler renders clause trees for one Grammar. It holds no per-compilation
// state and is safe for concurrent use.
type Compiler struct {
	grammar        *grammar.Grammar
	log            logger.Logger
	filter         *logger.SensitiveDataFilter
	trace          bool
	logBindings    bool
	maxQueryLength int
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	telemetry      *telemetry
	// sqlizer renders with "?" markers and keeps literal question marks escaped.
	sqlizer *Compiler
	escaped bool
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger receiving compile traces and failures.
func WithLogger(log logger.Logger) Option {
	return func(c *Compiler) {
		c.log = log
	}
}

// WithTrace enables one debug event per rendered clause plus a summary event.
func WithTrace(enabled bool) Option {
	return func(c *Compiler) {
		c.trace = enabled
	}
}

// WithLogBindings adds masked bindings and the interpolated statement to the
// summary event. Values compared against sensitive columns are masked.
func WithLogBindings(enabled bool) Option {
	return func(c *Compiler) {
		c.logBindings = enabled
	}
}

// WithMaxQueryLength truncates logged SQL and binding values. Zero or less disables truncation.
func WithMaxQueryLength(n int) Option {
	return func(c *Compiler) {
		c.maxQueryLength = n
	}
}

// WithSensitiveFilter replaces the filter used to mask logged bindings.
func WithSensitiveFilter(f *logger.SensitiveDataFilter) Option {
	return func(c *Compiler) {
		if f != nil {
			c.filter = f
		}
	}
}

// WithTracerProvider overrides the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Compiler) {
		c.tracerProvider = tp
	}
}

// WithMeterProvider overrides the global OpenTelemetry meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Compiler) {
		c.meterProvider = mp
	}
}

// New creates a Compiler for g. It panics if g is nil.
func New(g *grammar.Grammar, opts ...Option) *Compiler {
	if g == nil {
		panic("compiler: nil grammar")
	}

	c := &Compiler{
		grammar:        g,
		filter:         logger.NewSensitiveDataFilter(nil),
		maxQueryLength: defaultMaxQueryLength,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.telemetry = newTelemetry(c.tracerProvider, c.meterProvider)

	sqlizer := *c
	sqlizer.grammar = g.WithMarkerStyle(grammar.Question)
	sqlizer.escaped = true
	c.sqlizer = &sqlizer

	return c
}

// Grammar returns the dialect grammar the compiler renders for.
func (c *Compiler) Grammar() *grammar.Grammar {
	return c.grammar
}

// Compile renders q. It is CompileContext with a background context.
func (c *Compiler) Compile(q *types.Clauses) (sql string, bindings []any, err error) {
	return c.CompileContext(context.Background(), q)
}

// CompileContext renders q into SQL text and its bindings. The context only
// carries the parent span; compilation itself never blocks.
//
// An operator outside the grammar's vocabulary yields an error wrapping
// types.ErrUnsupportedOperator; a raw expression whose marker count differs from
// its bindings yields types.ErrMarkerMismatch.
func (c *Compiler) CompileContext(ctx context.Context, q *types.Clauses) (sql string, bindings []any, err error) {
	start := time.Now()
	_, span := c.telemetry.startSpan(ctx, c.grammar.Name())

	if q == nil {
		q = &types.Clauses{}
	}

	cc := newCompileContext(c.grammar)
	sql = c.compileQuery(cc, q)
	elapsed := time.Since(start)

	c.telemetry.finish(ctx, span, c.grammar.Name(), cc, elapsed)

	if cc.err != nil {
		c.logFailure(cc.err)
		return "", nil, cc.err
	}

	bindings = cc.bindings
	if bindings == nil {
		bindings = []any{}
	}
	c.logSummary(cc, sql, elapsed)

	return c.output(sql), bindings, nil
}

// CompileSqlizer renders q for embedding in squirrel statements: every marker is
// "?" and literal question marks are written "??", whatever the dialect's own
// marker style. Identifier quoting stays the dialect's.
func (c *Compiler) CompileSqlizer(ctx context.Context, q *types.Clauses) (sql string, bindings []any, err error) {
	if c.escaped {
		return c.CompileContext(ctx, q)
	}
	return c.sqlizer.CompileContext(ctx, q)
}

// output converts escaped compiled text into the form handed to callers.
func (c *Compiler) output(sql string) string {
	if c.escaped {
		return sql
	}
	return c.grammar.UnescapeQuestionMarks(sql)
}

// compileQuery renders one query level; subqueries reenter through compileSubquery.
func (c *Compiler) compileQuery(cc *compileContext, q *types.Clauses) string {
	parts := make([]string, 0, len(statementOrder))
	for i := range statementOrder {
		st := &statementOrder[i]
		sql := st.compile(c, cc, q)
		if sql == "" {
			continue
		}
		c.traceClause(cc, st.kind, sql)
		if cc.depth == 0 {
			cc.rendered = append(cc.rendered, string(st.kind))
		}
		parts = append(parts, sql)
	}
	return strings.Join(parts, " ")
}

// compileSubquery compiles q in a fresh context and splices the result into cc.
func (c *Compiler) compileSubquery(cc *compileContext, q *types.Clauses) string {
	if q == nil {
		q = &types.Clauses{}
	}

	child := cc.child()
	sql := c.compileQuery(child, q)
	return cc.mergeChild(child, sql)
}

func (c *Compiler) compileExpr(cc *compileContext, expr types.Expression) string {
	return cc.bindRaw(strings.TrimSpace(expr.SQL()), expr.Bindings())
}

func (c *Compiler) checkOperator(cc *compileContext, op string) string {
	normalized := grammar.NormalizeOperator(op)
	if !c.grammar.SupportsOperator(normalized) {
		cc.fail(fmt.Errorf("%w: %q for %s", types.ErrUnsupportedOperator, op, c.grammar.Name()))
	}
	return c.grammar.EscapeQuestionMarks(normalized)
}

func (c *Compiler) wrapColumn(column string) string {
	return c.grammar.EscapeQuestionMarks(c.grammar.WrapColumn(column))
}

func (c *Compiler) wrapTable(table, alias string) string {
	return c.grammar.EscapeQuestionMarks(c.grammar.WrapTable(table, alias))
}

func (c *Compiler) wrapAliased(sql, alias string) string {
	if alias == "" {
		return sql
	}
	return sql + " as " + c.grammar.EscapeQuestionMarks(c.grammar.WrapAlias(alias))
}

// invariant panics for clause variants no constructor produces.
func invariant(format string, args ...any) {
	panic(fmt.Sprintf("compiler: "+format, args...))
}
