// Package ballbox implements the event-driven collision engine: an
// n-dimensional box of perfectly elastic, frictionless, rigid balls under a
// uniform gravitational field, advanced exactly from one collision to the
// next rather than by numerical time-stepping.
package ballbox

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"ballbox/internal/geom"
)

// Simulation is the facade of §4.6: it owns an arena of balls (indices, not
// pointers, cross-reference each other — the Go analogue of the cyclic
// ball<->world references the original implementation used) plus the global
// generation counters and per-ball pair heaps that back lazy invalidation.
type Simulation struct {
	boxDims geom.Vector
	g       geom.Vector

	tSim float64

	balls     []*Ball
	gen       []int
	pairHeaps []pairHeap

	advancing bool
	log       logrus.FieldLogger
}

// Option configures a Simulation at construction time.
type Option func(*Simulation)

// WithLogger overrides the default logrus.StandardLogger().
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Simulation) { s.log = l }
}

// GravityAlongLastAxis builds the §6 scalar-gravity shorthand: a vector with
// magnitude placed on the final axis, sign preserved.
func GravityAlongLastAxis(nDims int, magnitude float64) geom.Vector {
	g := geom.NewVector(nDims)
	g[nDims-1] = magnitude
	return g
}

// NewSimulation creates an empty simulation in a box with the given positive
// per-axis extents and uniform gravitational field (§3 "Box", §6
// createSimulation).
func NewSimulation(boxDims geom.Vector, g geom.Vector, opts ...Option) (*Simulation, error) {
	if len(boxDims) == 0 {
		return nil, fmt.Errorf("ballbox: box must have at least one dimension")
	}
	for i, d := range boxDims {
		if d <= 0 {
			return nil, fmt.Errorf("ballbox: box dimension %d must be positive, got %v", i, d)
		}
	}
	if len(g) != len(boxDims) {
		return nil, fmt.Errorf("ballbox: gravity vector has %d components, want %d", len(g), len(boxDims))
	}

	s := &Simulation{
		boxDims: boxDims.Clone(),
		g:       g.Clone(),
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NDims returns the dimensionality of the simulation's space.
func (s *Simulation) NDims() int { return len(s.boxDims) }

// Time returns t_sim, the simulation's current time.
func (s *Simulation) Time() float64 { return s.tSim }

// NumBalls returns the number of balls in the arena.
func (s *Simulation) NumBalls() int { return len(s.balls) }

// BoxDims returns a copy of the box's per-axis extents.
func (s *Simulation) BoxDims() geom.Vector { return s.boxDims.Clone() }

// Gravity returns a copy of the gravitational field vector.
func (s *Simulation) Gravity() geom.Vector { return s.g.Clone() }

// BallState returns ball i's position and velocity at t_sim.
func (s *Simulation) BallState(i int) (geom.Vector, geom.Vector) {
	return s.balls[i].PositionAndVelocityAt(s.tSim, s.g)
}

// BallMassRadius returns ball i's immutable mass and radius.
func (s *Simulation) BallMassRadius(i int) (mass, radius float64) {
	return s.balls[i].Mass, s.balls[i].Radius
}

// AddBall inserts a new ball at t_sim (§4.6 addBall). When checkOverlap is
// true the candidate is validated for containment and non-overlap against
// every existing ball first; on violation it is rejected (index -1, accepted
// false) and the simulation is left unchanged. An error is returned only for
// a malformed request (non-positive mass/radius, wrong-length vectors) —
// never for a rejected-but-well-formed insertion (§7).
func (s *Simulation) AddBall(mass, radius float64, p, v geom.Vector, checkOverlap bool) (int, bool, error) {
	if mass <= 0 {
		return -1, false, fmt.Errorf("ballbox: mass must be positive, got %v", mass)
	}
	if radius <= 0 {
		return -1, false, fmt.Errorf("ballbox: radius must be positive, got %v", radius)
	}
	if len(p) != s.NDims() || len(v) != s.NDims() {
		return -1, false, fmt.Errorf("ballbox: position/velocity must have %d components", s.NDims())
	}

	if checkOverlap {
		for i := range s.boxDims {
			if p[i] < radius || p[i] > s.boxDims[i]-radius {
				return -1, false, nil
			}
		}
		for _, other := range s.balls {
			op, _ := other.PositionAndVelocityAt(s.tSim, s.g)
			diff := p.Sub(op)
			minDist := radius + other.Radius
			if diff.Length() < minDist {
				return -1, false, nil
			}
		}
	}

	idx := len(s.balls)
	b := newBall(mass, radius, s.tSim, p, v, s.boxDims)
	s.balls = append(s.balls, b)
	s.gen = append(s.gen, 0)
	s.pairHeaps = append(s.pairHeaps, nil)

	b.initializeWallHeap(s.g)
	for j := 0; j < idx; j++ {
		s.predictAndStore(j, idx)
	}

	s.log.WithFields(logrus.Fields{"ball": idx, "mass": mass, "radius": radius}).Debug("ball added")
	return idx, true, nil
}

// Advance steps the simulation forward by dt, executing every intervening
// collision event in exact time order (§4.5), then consuming any remaining
// time as free flight. It returns the number of events applied. When
// checkOverlap is true, containment and overlap probes run after stepping
// and any violations found are returned (but do not roll back the step,
// per §7's "does not abort the simulation").
func (s *Simulation) Advance(dt float64, checkOverlap bool) (int, []Violation, error) {
	if dt < 0 {
		return 0, nil, fmt.Errorf("ballbox: dt must be non-negative, got %v", dt)
	}
	if s.advancing {
		panic("ballbox: Advance called re-entrantly")
	}
	s.advancing = true
	defer func() { s.advancing = false }()

	horizon := s.tSim + dt
	events := s.runDispatcher(horizon)

	for _, b := range s.balls {
		b.Rebase(horizon, s.g)
	}
	s.tSim = horizon

	var violations []Violation
	if checkOverlap {
		violations = s.probeAll()
		for _, v := range violations {
			s.log.WithField("violation", v).Warn("invariant probe failed after advance")
		}
	}
	return events, violations, nil
}

// ReverseAll negates every ball's current velocity, used by the round-trip
// reversibility test of §8: advancing by Δt, reversing, advancing by Δt
// again should return every ball to its original state up to ε.
func (s *Simulation) ReverseAll() {
	for i, b := range s.balls {
		b.v0 = b.v0.Scale(-1)
		s.gen[i]++
	}
	for _, b := range s.balls {
		b.initializeWallHeap(s.g)
	}
	for i := range s.balls {
		s.pairHeaps[i] = nil
	}
	for i := 0; i < len(s.balls); i++ {
		for j := i + 1; j < len(s.balls); j++ {
			s.predictAndStore(i, j)
		}
	}
}

// TotalKineticEnergy sums ½·m·‖v‖² over every ball at t_sim.
func (s *Simulation) TotalKineticEnergy() float64 {
	var total float64
	for _, b := range s.balls {
		total += b.KineticEnergy()
	}
	return total
}

// TotalPotentialEnergy sums -m·g·p over every ball at t_sim.
func (s *Simulation) TotalPotentialEnergy() float64 {
	var total float64
	for _, b := range s.balls {
		total += b.PotentialEnergy(s.g)
	}
	return total
}

// TotalMechanicalEnergy is kinetic plus potential energy.
func (s *Simulation) TotalMechanicalEnergy() float64 {
	return s.TotalKineticEnergy() + s.TotalPotentialEnergy()
}

// predictAndStore computes the ball-ball contact prediction for the pair
// (i,j), i<j, and pushes it into the owning heap pairHeaps[i] (§4.4's
// "owned by exactly one of P[i], P[j] — the smaller index"). It is a no-op
// push of nothing when no future contact exists.
func (s *Simulation) predictAndStore(i, j int) {
	bi, bj := s.balls[i], s.balls[j]

	tRef := bi.ReferenceTime()
	if bj.ReferenceTime() > tRef {
		tRef = bj.ReferenceTime()
	}
	pi, vi := bi.PositionAndVelocityAt(tRef, s.g)
	pj, vj := bj.PositionAndVelocityAt(tRef, s.g)

	pc, ok := geom.PredictPairContact(pi, vi, bi.Mass, bi.Radius, pj, vj, bj.Mass, bj.Radius)
	if !ok {
		return
	}

	entry := &pairEntry{
		T:       tRef + pc.Dt,
		I:       i,
		J:       j,
		Contact: pc.Contact,
		ZMFVelA: pc.ZMFVelA,
		GenI:    s.gen[i],
		GenJ:    s.gen[j],
	}
	pushPairEntry(&s.pairHeaps[i], entry)
}
