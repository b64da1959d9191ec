package rewriter

import (
	"github.com/modfuse/modfuse/internal/ast"
	"github.com/modfuse/modfuse/internal/walk"
)

// queue accumulates every planned change across all modules before any
// tree is mutated. It belongs to a single Rewrite invocation; nothing
// here is shared across calls.
//
// Entries are write-once per location and are committed in the order
// they were discovered: module-list order, then pre-order within each
// module. Discovery never mutates, so an error anywhere aborts the
// batch with zero partial mutation.
type queue struct {
	items []queuedReplacement
	seen  map[ast.Node]bool
}

type queuedReplacement struct {
	path  *walk.Path
	expr  ast.Expression // direct swap, when non-nil
	build Builder        // deferred structural replacement otherwise
}

func newQueue() *queue {
	return &queue{seen: make(map[ast.Node]bool)}
}

// addSwap queues a direct expression swap at path.
func (q *queue) addSwap(path *walk.Path, expr ast.Expression) {
	if q.seen[path.Node] {
		return
	}
	q.seen[path.Node] = true
	q.items = append(q.items, queuedReplacement{path: path, expr: expr})
}

// addStructural queues a deferred statement replacement at path.
func (q *queue) addStructural(path *walk.Path, build Builder) {
	if q.seen[path.Node] {
		return
	}
	q.seen[path.Node] = true
	q.items = append(q.items, queuedReplacement{path: path, build: build})
}

// commit applies every queued replacement exactly once, in discovery
// order.
func (q *queue) commit() {
	for _, item := range q.items {
		if item.expr != nil {
			item.path.ReplaceExpression(item.expr)
			continue
		}
		item.path.SpliceStatements(item.build()...)
	}
}

// Len reports how many replacements are queued; used by callers to
// detect a no-op transform.
func (q *queue) Len() int {
	return len(q.items)
}
