package remesh

import "container/heap"

// lazyPQ is the generic squared-length-keyed priority queue spec §4.4/§4.5
// share: split pops largest-first, collapse pops smallest-first, both with
// lazy invalidation (a popped item is re-validated against the live mesh
// before being acted on; the callers drop entries whose edge is gone and
// re-queue those whose length has changed).
type lazyPQ[T any] struct {
	entries []pqEntry[T]
	max     bool
}

type pqEntry[T any] struct {
	key float64
	val T
}

func newLazyPQ[T any](max bool) *lazyPQ[T] {
	q := &lazyPQ[T]{max: max}
	heap.Init(q)
	return q
}

func (q *lazyPQ[T]) Len() int { return len(q.entries) }

func (q *lazyPQ[T]) Less(i, j int) bool {
	if q.max {
		return q.entries[i].key > q.entries[j].key
	}
	return q.entries[i].key < q.entries[j].key
}

func (q *lazyPQ[T]) Swap(i, j int) { q.entries[i], q.entries[j] = q.entries[j], q.entries[i] }

func (q *lazyPQ[T]) Push(x any) { q.entries = append(q.entries, x.(pqEntry[T])) }

func (q *lazyPQ[T]) Pop() any {
	old := q.entries
	n := len(old)
	it := old[n-1]
	q.entries = old[:n-1]
	return it
}

func (q *lazyPQ[T]) push(key float64, val T) { heap.Push(q, pqEntry[T]{key: key, val: val}) }

func (q *lazyPQ[T]) pop() (T, float64, bool) {
	if q.Len() == 0 {
		var zero T
		return zero, 0, false
	}
	e := heap.Pop(q).(pqEntry[T])
	return e.val, e.key, true
}
