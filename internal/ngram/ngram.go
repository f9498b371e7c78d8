// Package ngram implements a priority-ordered reward score over every
// distinct suffix the kapp log has ever presented, up to MaxLength kapps
// long.
package ngram

import (
	"container/heap"

	"github.com/keykapp/keykapp/internal/kapp"
)

// MaxLength caps the n-gram table: it only ever holds suffixes of length
// 1..MaxLength.
const MaxLength = 32

// entry is one row of the table: a List kapp, its cumulative score, and a
// monotonically increasing sequence number used to break score ties in
// favor of the most recently updated entry.
type entry struct {
	kapp  kapp.Kapp
	score uint64
	seq   uint64
	index int // position in the heap slice; maintained by heap.Interface
}

// Table maps a List kapp to a non-negative reward score, with an auxiliary
// max-priority structure keyed by score for O(log n) top-k extraction.
//
// Expectations:
//   - Holds only kapp.List values, never a bare Atom — single-atom
//     suffixes are wrapped as one-element lists
//   - Score for a key only ever increases via UpdateFromLogTail; Update
//     sets whatever score it is given
//   - Top returns results ordered by descending score, ties broken by most
//     recent Update call (deterministic given the same input sequence)
type Table struct {
	byKey map[string]*entry
	heap  priorityHeap
	seq   uint64
}

// New returns an empty n-gram table.
func New() *Table {
	return &Table{byKey: make(map[string]*entry)}
}

// ScoreOf returns the current score for k, or 0 if k has never been seen.
func (t *Table) ScoreOf(k kapp.Kapp) uint64 {
	if e, ok := t.byKey[k.CanonicalKey()]; ok {
		return e.score
	}
	return 0
}

// Update inserts or updates k's score. Ties for "most recently updated at
// this score" are broken by giving every Update call a fresh, strictly
// increasing sequence number — the table's one source of recency ordering.
func (t *Table) Update(k kapp.Kapp, score uint64) {
	t.seq++
	key := k.CanonicalKey()
	if e, ok := t.byKey[key]; ok {
		e.score = score
		e.seq = t.seq
		heap.Fix(&t.heap, e.index)
		return
	}
	e := &entry{kapp: k, score: score, seq: t.seq}
	t.byKey[key] = e
	heap.Push(&t.heap, e)
}

// UpdateFromLogTail runs after every append to the kapp log. For each
// length ℓ in [1, min(len(log), MaxLength)] it forms the List of the log's
// last ℓ kapps and adds that list's atom count to its previous score.
func (t *Table) UpdateFromLogTail(log []kapp.Kapp) {
	n := len(log)
	lmax := n
	if lmax > MaxLength {
		lmax = MaxLength
	}
	for l := 1; l <= lmax; l++ {
		suffix := kapp.List(append([]kapp.Kapp(nil), log[n-l:]...)...)
		prev := t.ScoreOf(suffix)
		t.Update(suffix, prev+uint64(suffix.AtomCount()))
	}
}

// Top returns the k highest-scored kapps in descending score order, ties
// broken by most recent update. Returns fewer than k if the table holds
// fewer than k entries.
func (t *Table) Top(k int) []kapp.Kapp {
	if k <= 0 || len(t.heap) == 0 {
		return nil
	}
	// Pop from a clone so Top never mutates the live heap.
	clone := make(priorityHeap, len(t.heap))
	copy(clone, t.heap)
	for i := range clone {
		clone[i] = &entry{kapp: clone[i].kapp, score: clone[i].score, seq: clone[i].seq, index: i}
	}
	heap.Init(&clone)

	if k > len(clone) {
		k = len(clone)
	}
	out := make([]kapp.Kapp, 0, k)
	for i := 0; i < k; i++ {
		e := heap.Pop(&clone).(*entry)
		out = append(out, e.kapp)
	}
	return out
}

// Len returns the number of distinct n-grams currently tracked.
func (t *Table) Len() int {
	return len(t.byKey)
}

// priorityHeap is a max-heap ordered by (score, seq) — the entry with the
// highest score wins; a tie is broken by the entry updated most recently.
type priorityHeap []*entry

func (h priorityHeap) Len() int { return len(h) }

func (h priorityHeap) Less(i, j int) bool {
	if h[i].score != h[j].score {
		return h[i].score > h[j].score
	}
	return h[i].seq > h[j].seq
}

func (h priorityHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *priorityHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *priorityHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}
