package compiler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/gaborage/sqlbricks/database/types"
	"github.com/gaborage/sqlbricks/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"golang.org/x/sync/errgroup"
)

func setupTelemetry(t *testing.T) (*tracetest.InMemoryExporter, *sdkmetric.ManualReader, []Option) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})

	return exporter, reader, []Option{WithTracerProvider(tp), WithMeterProvider(mp)}
}

func spanAttr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func findMetric(rm *metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func TestCompileRecordsSpan(t *testing.T) {
	exporter, _, opts := setupTelemetry(t)
	c := newCompiler(t, "postgres", opts...)

	_, _, err := c.CompileContext(context.Background(), &types.Clauses{
		From: from(tableUsers),
		Where: []types.WhereClause{
			basic("a", "=", 1),
			{Type: types.WhereExists, Boolean: types.And, Query: &types.Clauses{From: from(tableOrders)}},
		},
		Limit: u64(1),
	})
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, spanCompile, span.Name)
	assert.Equal(t, codes.Ok, span.Status.Code)

	system, ok := spanAttr(span.Attributes, attrDBSystem)
	require.True(t, ok)
	assert.Equal(t, "postgres", system.AsString())

	bindings, ok := spanAttr(span.Attributes, attrBindings)
	require.True(t, ok)
	assert.Equal(t, int64(2), bindings.AsInt64())

	clauses, ok := spanAttr(span.Attributes, attrClauses)
	require.True(t, ok)
	assert.Equal(t, "select,from,where,limit", clauses.AsString())

	subqueries, ok := spanAttr(span.Attributes, attrSubqueries)
	require.True(t, ok)
	assert.Equal(t, int64(1), subqueries.AsInt64())
}

func TestCompileSpanRecordsError(t *testing.T) {
	exporter, _, opts := setupTelemetry(t)
	c := newCompiler(t, "mysql", opts...)

	_, _, err := c.Compile(&types.Clauses{Where: []types.WhereClause{basic("a", "@>", 1)}})
	require.Error(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	require.NotEmpty(t, spans[0].Events)
	assert.Equal(t, "exception", spans[0].Events[0].Name)
}

func TestCompileRecordsMetrics(t *testing.T) {
	_, reader, opts := setupTelemetry(t)
	c := newCompiler(t, "sqlite", opts...)

	for range 3 {
		_, _, err := c.Compile(&types.Clauses{From: from(tableUsers)})
		require.NoError(t, err)
	}
	_, _, err := c.Compile(&types.Clauses{Where: []types.WhereClause{basic("a", "@>", 1)}})
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	calls, ok := findMetric(&rm, metricCompileCalls)
	require.True(t, ok)
	sum, ok := calls.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	counts := map[bool]int64{}
	for _, dp := range sum.DataPoints {
		failed, _ := dp.Attributes.Value(attribute.Key(attrError))
		system, _ := dp.Attributes.Value(attribute.Key(attrDBSystem))
		assert.Equal(t, "sqlite", system.AsString())
		counts[failed.AsBool()] += dp.Value
	}
	assert.Equal(t, int64(3), counts[false])
	assert.Equal(t, int64(1), counts[true])

	duration, ok := findMetric(&rm, metricCompileDuration)
	require.True(t, ok)
	hist, ok := duration.Data.(metricdata.Histogram[float64])
	require.True(t, ok)

	var total uint64
	for _, dp := range hist.DataPoints {
		total += dp.Count
	}
	assert.Equal(t, uint64(4), total)
}

func decodeEvents(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var events []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var ev map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &ev))
		events = append(events, ev)
	}
	return events
}

func TestCompileTrace(t *testing.T) {
	q := &types.Clauses{
		Select: selectColumns("id"),
		From:   from(tableUsers),
		Where: []types.WhereClause{
			basic("email", "=", "a@b.c"),
			basic("password_hash", "=", "s3cret"),
		},
		Limit: u64(1),
	}

	t.Run("disabled by default", func(t *testing.T) {
		var buf bytes.Buffer
		c := newCompiler(t, "postgres", WithLogger(logger.NewWithWriter(&buf, "debug", false, nil)))

		_, _, err := c.Compile(q)
		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("skipped when debug is off", func(t *testing.T) {
		var buf bytes.Buffer
		c := newCompiler(t, "postgres", WithTrace(true), WithLogger(logger.NewWithWriter(&buf, "info", false, nil)))

		_, _, err := c.Compile(q)
		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("clause and summary events", func(t *testing.T) {
		var buf bytes.Buffer
		c := newCompiler(t, "postgres", WithTrace(true), WithLogger(logger.NewWithWriter(&buf, "debug", false, nil)))

		sql, _, err := c.Compile(q)
		require.NoError(t, err)

		events := decodeEvents(t, &buf)
		require.Len(t, events, 5)

		clauses := make([]string, 0, 4)
		for _, ev := range events[:4] {
			assert.Equal(t, "compiled clause", ev["message"])
			clauses = append(clauses, fmt.Sprint(ev["clause"]))
		}
		assert.Equal(t, []string{"select", "from", "where", "limit"}, clauses)

		summary := events[4]
		assert.Equal(t, "compiled query", summary["message"])
		assert.Equal(t, sql, summary["sql"])
		assert.Equal(t, float64(3), summary["bindings"])
		assert.NotContains(t, summary, "interpolated")
	})

	t.Run("bindings are masked", func(t *testing.T) {
		var buf bytes.Buffer
		c := newCompiler(t, "postgres",
			WithTrace(true),
			WithLogBindings(true),
			WithLogger(logger.NewWithWriter(&buf, "debug", false, nil)),
		)

		_, _, err := c.Compile(q)
		require.NoError(t, err)

		events := decodeEvents(t, &buf)
		summary := events[len(events)-1]
		assert.Equal(t,
			`select "id" from "users" where "email" = 'a@b.c' and "password_hash" = *** limit 1`,
			summary["interpolated"])
		assert.Equal(t, []any{"a@b.c", "***", "1"}, summary["values"])
		assert.NotContains(t, buf.String(), "s3cret")
	})

	t.Run("sql is truncated", func(t *testing.T) {
		var buf bytes.Buffer
		c := newCompiler(t, "postgres",
			WithTrace(true),
			WithMaxQueryLength(10),
			WithLogger(logger.NewWithWriter(&buf, "debug", false, nil)),
		)

		_, _, err := c.Compile(q)
		require.NoError(t, err)

		events := decodeEvents(t, &buf)
		assert.Equal(t, `select ...`, events[len(events)-1]["sql"])
	})

	t.Run("failures are logged", func(t *testing.T) {
		var buf bytes.Buffer
		c := newCompiler(t, "postgres", WithLogger(logger.NewWithWriter(&buf, "info", false, nil)))

		_, _, err := c.Compile(&types.Clauses{Where: []types.WhereClause{basic("a", "sounds like", 1)}})
		require.Error(t, err)

		events := decodeEvents(t, &buf)
		require.Len(t, events, 1)
		assert.Equal(t, "warn", events[0]["level"])
		assert.Equal(t, "query compilation failed", events[0]["message"])
	})
}

func TestCompileTraceInterpolatesAroundLiteralQuestionMarks(t *testing.T) {
	var buf bytes.Buffer
	c := newCompiler(t, "mysql",
		WithTrace(true),
		WithLogBindings(true),
		WithLogger(logger.NewWithWriter(&buf, "debug", false, nil)),
	)

	q := &types.Clauses{
		From: from(tableUsers),
		Where: []types.WhereClause{
			{Type: types.WhereRaw, Boolean: types.And, Expr: raw("coalesce(nick, '??') = ?", "ann")},
			basic("age", ">", 30),
		},
	}

	sql, _, err := c.Compile(q)
	require.NoError(t, err)
	assert.Equal(t, "select * from `users` where coalesce(nick, '?') = ? and `age` > ?", sql)

	events := decodeEvents(t, &buf)
	summary := events[len(events)-1]
	assert.Equal(t, sql, summary["sql"])
	assert.Equal(t, "select * from `users` where coalesce(nick, '?') = 'ann' and `age` > 30", summary["interpolated"])
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", truncateString("abc", 0))
	assert.Equal(t, "abc", truncateString("abc", 3))
	assert.Equal(t, "ab", truncateString("abcdef", 2))
	assert.Equal(t, "a...", truncateString("abcdef", 4))
	assert.Equal(t, "日本...", truncateString("日本語テキスト", 5))
}

func TestSanitizeArgs(t *testing.T) {
	assert.Nil(t, sanitizeArgs(nil, 10))
	assert.Equal(t, []any{"ab", "<bytes len=3>", "42"}, sanitizeArgs([]any{"ab", []byte("xyz"), 42}, 10))
	assert.Equal(t, []any{"abcd..."}, sanitizeArgs([]any{"abcdefghij"}, 7))
}

func TestCompileConcurrentSharedGrammar(t *testing.T) {
	c := newCompiler(t, "postgres")

	var g errgroup.Group
	for i := range 32 {
		g.Go(func() error {
			q := &types.Clauses{
				From: from(tableUsers),
				Where: []types.WhereClause{
					basic("id", "=", i),
					{Type: types.WhereExists, Boolean: types.And, Query: &types.Clauses{
						From:  from(tableOrders),
						Where: []types.WhereClause{basic("n", ">", i*10)},
					}},
				},
			}
			sql, bindings, err := c.Compile(q)
			if err != nil {
				return err
			}
			want := `select * from "users" where "id" = $1 and exists(select * from "orders" where "n" > $2)`
			if sql != want {
				return fmt.Errorf("unexpected sql %q", sql)
			}
			if len(bindings) != 2 || bindings[0] != i || bindings[1] != i*10 {
				return fmt.Errorf("unexpected bindings %v", bindings)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
