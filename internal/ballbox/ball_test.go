package ballbox

import (
	"testing"

	"ballbox/internal/geom"
)

func TestBallReferenceTimeTracksRebase(t *testing.T) {
	b := newBall(1, 0.5, 0, geom.Vector{5, 5}, geom.Vector{1, 0}, geom.Vector{10, 10})
	if got := b.ReferenceTime(); got != 0 {
		t.Fatalf("expected initial reference time 0, got %v", got)
	}

	g := geom.Vector{0, 0}
	b.Rebase(3, g)
	if got := b.ReferenceTime(); got != 3 {
		t.Fatalf("expected reference time 3 after rebase, got %v", got)
	}
	p := b.PositionAt(b.ReferenceTime(), g)
	if !almostEqual(p[0], 8, 1e-9) || !almostEqual(p[1], 5, 1e-9) {
		t.Fatalf("expected position (8,5) at the new reference time, got %v", p)
	}

	b.Rebase(5, g)
	if got := b.ReferenceTime(); got != 5 {
		t.Fatalf("expected reference time 5 after second rebase, got %v", got)
	}
}

func TestBallApplyNextWallEventAdvancesReferenceTime(t *testing.T) {
	b := newBall(1, 0.5, 0, geom.Vector{5, 5}, geom.Vector{3, 0}, geom.Vector{10, 10})
	g := geom.Vector{0, 0}
	b.initializeWallHeap(g)

	t0 := b.ReferenceTime()
	hitT, axis := b.applyNextWallEvent(g)
	if axis != 0 {
		t.Fatalf("expected bounce on axis 0, got %d", axis)
	}
	if !almostEqual(hitT, 1.5, 1e-9) {
		t.Fatalf("expected wall contact at t=1.5, got %v", hitT)
	}
	if got := b.ReferenceTime(); got == t0 || !almostEqual(got, hitT, 1e-9) {
		t.Fatalf("expected reference time to advance to %v, got %v", hitT, got)
	}
}
