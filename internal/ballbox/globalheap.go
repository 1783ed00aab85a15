package ballbox

// gwEntry is GW's view of a ball's soonest predicted wall contact (§4.5).
type gwEntry struct {
	T    float64
	Ball int
	Gen  int
}

type gwHeap []gwEntry

func (h gwHeap) Len() int { return len(h) }
func (h gwHeap) Less(i, j int) bool {
	if h[i].T != h[j].T {
		return h[i].T < h[j].T
	}
	return h[i].Ball < h[j].Ball
}
func (h gwHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *gwHeap) Push(x any)   { *h = append(*h, x.(gwEntry)) }
func (h *gwHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// gpEntry is GP's view of an owning ball's soonest predicted pair contact.
type gpEntry struct {
	T        float64
	Owner    int
	GenOwner int
	Other    int
	GenOther int
}

type gpHeap []gpEntry

func (h gpHeap) Len() int { return len(h) }
func (h gpHeap) Less(i, j int) bool {
	if h[i].T != h[j].T {
		return h[i].T < h[j].T
	}
	return h[i].Owner < h[j].Owner
}
func (h gpHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *gpHeap) Push(x any)   { *h = append(*h, x.(gpEntry)) }
func (h *gpHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func entryFromPair(e *pairEntry) gpEntry {
	return gpEntry{T: e.T, Owner: e.I, GenOwner: e.GenI, Other: e.J, GenOther: e.GenJ}
}
