package geom

import "math"

// Tolerance absorbs floating-point jitter around exact tangential contacts:
// negative values with |x| < Tolerance are treated as zero. See spec §9.
const Tolerance = 1e-12

// solveQuadraticSmallestPositive solves A*t^2 + B*t + C = 0 for the smallest
// strictly positive real root, clamping a near-zero discriminant to zero so
// tangential contacts are not missed by floating-point error.
func solveQuadraticSmallestPositive(a, b, c float64) (float64, bool) {
	disc := b*b - 4*a*c
	if disc < 0 {
		if -disc < Tolerance {
			disc = 0
		} else {
			return 0, false
		}
	}
	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 > Tolerance {
		return t1, true
	}
	if t2 > Tolerance {
		return t2, true
	}
	return 0, false
}

// PredictWallContact returns the smallest Δ>0 at which a ball with reference
// axis-component position p and velocity v, under axis-component
// acceleration a, touches one of the two walls at centerLo/centerHi. ok is
// false when no future contact exists ("never" in spec terms).
func PredictWallContact(p, v, a, centerLo, centerHi float64) (dt float64, ok bool) {
	if a == 0 {
		if v == 0 {
			return 0, false
		}
		wall := centerLo
		if v > 0 {
			wall = centerHi
		}
		dt := (wall - p) / v
		if dt > Tolerance {
			return dt, true
		}
		return 0, false
	}

	best := math.Inf(1)
	found := false
	for _, wall := range [2]float64{centerLo, centerHi} {
		// 0.5*a*t^2 + v*t + (p-wall) = 0
		if t, ok := solveQuadraticSmallestPositive(0.5*a, v, p-wall); ok && t < best {
			best, found = t, true
		}
	}
	if !found {
		return 0, false
	}
	return best, true
}

// PairContact is the result of a successful ball-ball contact prediction.
type PairContact struct {
	Dt      float64 // time of contact, measured from the shared reference time
	Contact Vector  // relative displacement (B - A) at the moment of contact
	ZMFVelA Vector  // velocity of A in the zero-momentum frame of {A,B}
}

// PredictPairContact finds the smallest τ>0 at which two balls A, B (sharing
// reference time t0, with the given reference positions, velocities, masses
// and radii) touch, assuming free flight with no other interactions. Because
// the field is uniform it cancels in the relative frame, so the relative
// motion is linear in τ regardless of g.
func PredictPairContact(pA, vA Vector, mA, rA float64, pB, vB Vector, mB, rB float64) (PairContact, bool) {
	u := vB.Sub(vA)
	s := u.LengthSq()
	if s == 0 {
		return PairContact{}, false
	}

	d0 := pB.Sub(pA)
	rsum := rA + rB

	// Cheap axis-aligned pruning: separated on some axis with no closing motion.
	for i := range d0 {
		if d0[i] > rsum && u[i] >= 0 {
			return PairContact{}, false
		}
		if d0[i] < -rsum && u[i] <= 0 {
			return PairContact{}, false
		}
	}

	if d0.Dot(u) >= 0 {
		// Separating (or exactly tangential in velocity): never.
		return PairContact{}, false
	}

	tStar := -d0.Dot(u) / s
	c := d0.AddScaled(u, tStar)
	rsumSq := rsum * rsum
	gap := rsumSq - c.LengthSq()
	if gap < 0 {
		if -gap < Tolerance {
			gap = 0
		} else {
			return PairContact{}, false
		}
	}

	dt := tStar - math.Sqrt(gap)/math.Sqrt(s)
	if dt <= Tolerance {
		return PairContact{}, false
	}

	contact := d0.AddScaled(u, dt)

	totalMass := mA + mB
	com := vA.Scale(mA).Add(vB.Scale(mB)).Scale(1 / totalMass)
	zmfVelA := vA.Sub(com)

	return PairContact{Dt: dt, Contact: contact, ZMFVelA: zmfVelA}, true
}

// ResolveWallVelocity returns v with its axis-th component negated, the
// response to an elastic, frictionless wall contact (§4.1 Wall response).
func ResolveWallVelocity(v Vector, axis int) Vector {
	out := v.Clone()
	out[axis] = -out[axis]
	return out
}

// ResolvePairVelocities returns the post-collision velocity deltas for A and
// B given the contact displacement (from A to B, length rA+rB) and A's
// velocity in the zero-momentum frame of the pair (§4.1 Pair response).
func ResolvePairVelocities(contact Vector, zmfVelA Vector, mA, mB, rA, rB float64) (dvA, dvB Vector) {
	rsumSq := (rA + rB) * (rA + rB)
	zmfVelB := zmfVelA.Scale(-mA / mB)

	dvA = contact.Scale(-2 * zmfVelA.Dot(contact) / rsumSq)
	dvB = contact.Scale(-2 * zmfVelB.Dot(contact) / rsumSq)
	return dvA, dvB
}
