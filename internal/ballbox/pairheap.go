package ballbox

import (
	"container/heap"

	"ballbox/internal/geom"
)

// pairEntry is a predicted ball-ball collision between balls I and J, with
// I < J by construction (the "owning ball" rule of §4.4: a prediction for
// pair (i,j) lives in exactly one heap, that of min(i,j)).
type pairEntry struct {
	T       float64
	I, J    int
	Contact geom.Vector // relative displacement I->J at contact
	ZMFVelA geom.Vector // velocity of ball I in the pair's zero-momentum frame
	GenI    int
	GenJ    int
}

// pairHeap is the per-ball heap P[i] of §4.4: every entry it holds is owned
// by the ball whose heap it is.
type pairHeap []*pairEntry

func (h pairHeap) Len() int { return len(h) }
func (h pairHeap) Less(i, j int) bool {
	if h[i].T != h[j].T {
		return h[i].T < h[j].T
	}
	return h[i].J < h[j].J
}
func (h pairHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *pairHeap) Push(x any)   { *h = append(*h, x.(*pairEntry)) }
func (h *pairHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// valid reports whether e still reflects the live trajectories of both
// balls it names, per the generation-counter scheme of §4.4/§9.
func (e *pairEntry) valid(gen []int) bool {
	return e.GenI == gen[e.I] && e.GenJ == gen[e.J]
}

// dropStaleTop pops entries off the front of h that no longer match the
// live generation of either ball, leaving either an empty heap or one whose
// top is valid. This is the lazy-invalidation half of §4.4's "an entry is
// valid iff both recorded generations match the live gen[i], gen[j]".
func dropStaleTop(h *pairHeap, gen []int) {
	for h.Len() > 0 && !(*h)[0].valid(gen) {
		heap.Pop(h)
	}
}

// pushPairEntry pushes e onto *h; a nil heap is a valid empty heap, so no
// separate initialization is needed.
func pushPairEntry(h *pairHeap, e *pairEntry) {
	heap.Push(h, e)
}
