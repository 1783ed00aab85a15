package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestPredictWallContactNoMotion(t *testing.T) {
	if _, ok := PredictWallContact(5, 0, 0, 0.5, 9.5); ok {
		t.Fatal("expected no contact for stationary ball with no acceleration")
	}
}

func TestPredictWallContactLinear(t *testing.T) {
	// scenario 2: box=(10,10), ball at x=5, v=3, radius 0.5 -> wall at 9.5
	dt, ok := PredictWallContact(5, 3, 0, 0.5, 9.5)
	if !ok {
		t.Fatal("expected a contact")
	}
	if !almostEqual(dt, 1.5, 1e-9) {
		t.Fatalf("expected dt=1.5, got %v", dt)
	}
}

func TestPredictWallContactGravityFall(t *testing.T) {
	// scenario 5: ball at y=8, v=0, a=-10, radius 0.5 -> floor at 0.5
	dt, ok := PredictWallContact(8, 0, -10, 0.5, 9.5)
	if !ok {
		t.Fatal("expected a contact")
	}
	want := math.Sqrt(2 * 7.5 / 10)
	if !almostEqual(dt, want, 1e-9) {
		t.Fatalf("expected dt=%v, got %v", want, dt)
	}
}

func TestPredictPairContactHeadOn(t *testing.T) {
	// scenario 3: A at (5,5) v=(1,0), B at (15,5) v=(-1,0), r=1 each.
	pc, ok := PredictPairContact(
		Vector{5, 5}, Vector{1, 0}, 1, 1,
		Vector{15, 5}, Vector{-1, 0}, 1, 1,
	)
	if !ok {
		t.Fatal("expected a collision")
	}
	if !almostEqual(pc.Dt, 4, 1e-9) {
		t.Fatalf("expected dt=4, got %v", pc.Dt)
	}
}

func TestPredictPairContactParallelNeverCollides(t *testing.T) {
	// scenario 6: equal parallel velocities -> relative velocity zero.
	_, ok := PredictPairContact(
		Vector{0, 0}, Vector{1, 0}, 1, 0.5,
		Vector{0, 3}, Vector{1, 0}, 1, 0.5,
	)
	if ok {
		t.Fatal("expected no collision for zero relative velocity")
	}
}

func TestPredictPairContactSeparatingNeverCollides(t *testing.T) {
	_, ok := PredictPairContact(
		Vector{0, 0}, Vector{-1, 0}, 1, 0.5,
		Vector{5, 0}, Vector{1, 0}, 1, 0.5,
	)
	if ok {
		t.Fatal("expected no collision when balls are moving apart")
	}
}

func TestResolvePairVelocitiesEqualMassHeadOn(t *testing.T) {
	contact := Vector{2, 0} // rsum = 2
	zmfVelA := Vector{1, 0} // A approaching at 1 unit/s in ZMF when masses are equal and v_A=1,v_B=-1
	dvA, dvB := ResolvePairVelocities(contact, zmfVelA, 1, 1, 1, 1)
	if !almostEqual(dvA[0], -2, 1e-9) {
		t.Fatalf("expected dvA.x=-2, got %v", dvA[0])
	}
	if !almostEqual(dvB[0], 2, 1e-9) {
		t.Fatalf("expected dvB.x=2, got %v", dvB[0])
	}
}

// scenario 4: unequal-mass 1-D elastic collision. A m=1,r=1,v=(4,0);
// B m=3,r=1,v=(0,0). After: v_A=(-2,0), v_B=(2,0).
func TestResolvePairVelocitiesUnequalMassHeadOn(t *testing.T) {
	contact := Vector{2, 0} // rsum = 2
	mA, mB := 1.0, 3.0
	com := (mA*4 + mB*0) / (mA + mB)
	zmfVelA := Vector{4 - com, 0}
	dvA, dvB := ResolvePairVelocities(contact, zmfVelA, mA, mB, 1, 1)
	vA := Vector{4 + dvA[0], 0 + dvA[1]}
	vB := Vector{0 + dvB[0], 0 + dvB[1]}
	if !almostEqual(vA[0], -2, 1e-9) {
		t.Fatalf("expected vA.x=-2, got %v", vA[0])
	}
	if !almostEqual(vB[0], 2, 1e-9) {
		t.Fatalf("expected vB.x=2, got %v", vB[0])
	}
}

func TestResolveWallVelocity(t *testing.T) {
	v := Vector{3, -4, 0}
	out := ResolveWallVelocity(v, 1)
	if out[0] != 3 || out[1] != 4 || out[2] != 0 {
		t.Fatalf("unexpected velocity after wall bounce: %v", out)
	}
	if v[1] != -4 {
		t.Fatal("ResolveWallVelocity must not mutate its input")
	}
}
