package compiler

import (
	"fmt"

	"github.com/gaborage/sqlbricks/database/grammar"
	"github.com/gaborage/sqlbricks/database/types"
)

// compileContext is the mutable state of one compilation. Each subquery gets its
// own context; results flow back to the parent only through mergeChild.
type compileContext struct {
	grammar  *grammar.Grammar
	bindings []any
	// labels names the column each binding is compared against, for log masking.
	labels     []string
	err        error
	depth      int
	subqueries int
	rendered   []string
}

func newCompileContext(g *grammar.Grammar) *compileContext {
	return &compileContext{grammar: g}
}

func (cc *compileContext) child() *compileContext {
	return &compileContext{grammar: cc.grammar, depth: cc.depth + 1}
}

// fail records the first error; later errors are dropped.
func (cc *compileContext) fail(err error) {
	if cc.err == nil {
		cc.err = err
	}
}

// bind appends value and returns its marker.
func (cc *compileContext) bind(label string, value any) string {
	marker := cc.grammar.Marker(len(cc.bindings))
	cc.bindings = append(cc.bindings, value)
	cc.labels = append(cc.labels, label)
	return marker
}

// bindRaw rewrites the "?" markers of sql starting at the current binding count
// and appends bindings. A marker/binding count mismatch is recorded as an error.
func (cc *compileContext) bindRaw(sql string, bindings []any) string {
	rendered, markers := cc.grammar.RewriteMarkers(sql, len(cc.bindings))
	if markers != len(bindings) {
		cc.fail(fmt.Errorf("%w: %q has %d markers and %d bindings", types.ErrMarkerMismatch, sql, markers, len(bindings)))
	}

	cc.bindings = append(cc.bindings, bindings...)
	for range bindings {
		cc.labels = append(cc.labels, "")
	}
	return rendered
}

// mergeChild shifts the child's markers past the parent's bindings and appends
// the child's bindings.
func (cc *compileContext) mergeChild(child *compileContext, sql string) string {
	if child.err != nil {
		cc.fail(child.err)
	}

	shifted := cc.grammar.ShiftMarkers(sql, len(cc.bindings))
	cc.bindings = append(cc.bindings, child.bindings...)
	cc.labels = append(cc.labels, child.labels...)
	cc.subqueries += child.subqueries + 1
	return shifted
}
