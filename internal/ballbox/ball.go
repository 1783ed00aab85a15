package ballbox

import (
	"container/heap"

	"ballbox/internal/geom"
)

// wallEvent is a predicted future contact between a ball and one of the two
// walls normal to Axis.
type wallEvent struct {
	T    float64
	Axis int
}

// wallHeap is a min-heap of wallEvent, at most one entry per axis, ordered
// by time and tie-broken by ascending axis index for determinism (§4.3).
type wallHeap []wallEvent

func (h wallHeap) Len() int { return len(h) }
func (h wallHeap) Less(i, j int) bool {
	if h[i].T != h[j].T {
		return h[i].T < h[j].T
	}
	return h[i].Axis < h[j].Axis
}
func (h wallHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *wallHeap) Push(x any)        { *h = append(*h, x.(wallEvent)) }
func (h *wallHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Ball is a single rigid sphere's kinematic record, per §3/§4.2: mass and
// radius are fixed at creation, and the only persistent state beyond them is
// the reference time/position/velocity and the private wall-collision queue.
type Ball struct {
	Mass   float64
	Radius float64

	t0 float64
	p0 geom.Vector
	v0 geom.Vector

	centerLo geom.Vector
	centerHi geom.Vector

	walls wallHeap
}

// newBall constructs a ball at reference time t0 inside a box with the given
// per-axis extents, caching its center range (§3 "Box").
func newBall(mass, radius float64, t0 float64, p0, v0 geom.Vector, boxDims geom.Vector) *Ball {
	n := len(boxDims)
	lo := make(geom.Vector, n)
	hi := make(geom.Vector, n)
	for i := 0; i < n; i++ {
		lo[i] = radius
		hi[i] = boxDims[i] - radius
	}
	return &Ball{
		Mass:     mass,
		Radius:   radius,
		t0:       t0,
		p0:       p0.Clone(),
		v0:       v0.Clone(),
		centerLo: lo,
		centerHi: hi,
	}
}

// ReferenceTime returns t0, the last time this ball's state was rebased.
// Named after the original implementation's _t_ref debug accessor.
func (b *Ball) ReferenceTime() float64 {
	return b.t0
}

// PositionAt returns p0 + v0*Δ + 0.5*g*Δ² for Δ = t - t0.
func (b *Ball) PositionAt(t float64, g geom.Vector) geom.Vector {
	dt := t - b.t0
	out := make(geom.Vector, len(b.p0))
	for i := range out {
		out[i] = b.p0[i] + b.v0[i]*dt + 0.5*g[i]*dt*dt
	}
	return out
}

// VelocityAt returns v0 + g*Δ for Δ = t - t0.
func (b *Ball) VelocityAt(t float64, g geom.Vector) geom.Vector {
	return b.v0.AddScaled(g, t-b.t0)
}

// PositionAndVelocityAt returns both at once, sharing the Δ computation.
func (b *Ball) PositionAndVelocityAt(t float64, g geom.Vector) (geom.Vector, geom.Vector) {
	return b.PositionAt(t, g), b.VelocityAt(t, g)
}

// Rebase replaces (t0, p0, v0) with (t, position(t), velocity(t)). Wall heap
// entries remain valid since they are absolute times (§4.2).
func (b *Ball) Rebase(t float64, g geom.Vector) {
	p, v := b.PositionAndVelocityAt(t, g)
	b.t0, b.p0, b.v0 = t, p, v
}

// initializeWallHeap clears W and pushes the soonest future contact for
// every axis whose motion is non-degenerate.
func (b *Ball) initializeWallHeap(g geom.Vector) {
	b.walls = b.walls[:0]
	heap.Init(&b.walls)
	for i := range b.p0 {
		b.updateWallHeapForAxis(i, g)
	}
}

// updateWallHeapForAxis predicts axis i's next contact and pushes it if one
// exists. Used both at initialization and after a bounce on that axis.
func (b *Ball) updateWallHeapForAxis(i int, g geom.Vector) {
	dt, ok := geom.PredictWallContact(b.p0[i], b.v0[i], g[i], b.centerLo[i], b.centerHi[i])
	if !ok {
		return
	}
	heap.Push(&b.walls, wallEvent{T: b.t0 + dt, Axis: i})
}

// peekWallTime returns the soonest predicted wall-contact time, if any.
func (b *Ball) peekWallTime() (float64, bool) {
	if len(b.walls) == 0 {
		return 0, false
	}
	return b.walls[0].T, true
}

// applyNextWallEvent pops the soonest wall-heap entry, rebases to its time,
// negates the bounced axis's velocity component, and re-seeds that axis.
func (b *Ball) applyNextWallEvent(g geom.Vector) (t float64, axis int) {
	ev := heap.Pop(&b.walls).(wallEvent)
	b.Rebase(ev.T, g)
	b.v0 = geom.ResolveWallVelocity(b.v0, ev.Axis)
	b.updateWallHeapForAxis(ev.Axis, g)
	return ev.T, ev.Axis
}

// OutsideBox reports the first axis (and which end, -1 near / +1 far) whose
// center has left its range, or ok=false if fully contained.
func (b *Ball) OutsideBox() (axis int, end int, ok bool) {
	for i := range b.p0 {
		if b.p0[i] < b.centerLo[i] {
			return i, -1, true
		}
		if b.p0[i] > b.centerHi[i] {
			return i, 1, true
		}
	}
	return 0, 0, false
}

// KineticEnergy returns ½·m·‖v‖².
func (b *Ball) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.v0.LengthSq()
}

// PotentialEnergy returns -m·g·p.
func (b *Ball) PotentialEnergy(g geom.Vector) float64 {
	return -b.Mass * b.p0.Dot(g)
}

// MechanicalEnergy is the sum of kinetic and potential energy.
func (b *Ball) MechanicalEnergy(g geom.Vector) float64 {
	return b.KineticEnergy() + b.PotentialEnergy(g)
}
