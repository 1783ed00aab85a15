package ballbox

import (
	"fmt"

	"ballbox/internal/geom"
)

// Violation is a structured invariant-probe failure (§7 "Invariant probe
// failure"): reported, never fatal, and never rolls back the step that
// produced it.
type Violation interface {
	String() string
}

// ContainmentViolation reports a ball whose center has left its center
// range on some axis (§3 invariant 1).
type ContainmentViolation struct {
	Ball int
	Axis int
	End  int // -1 near wall, +1 far wall
}

func (v ContainmentViolation) String() string {
	side := "near"
	if v.End > 0 {
		side = "far"
	}
	return fmt.Sprintf("ball %d outside box on axis %d (%s wall)", v.Ball, v.Axis, side)
}

// OverlapViolation reports a pair of balls closer together than the sum of
// their radii (§3 invariant 2), carrying the same fields the original
// implementation's anyOverlapMessage names: the pair, their separation, and
// the sum of radii.
type OverlapViolation struct {
	I, J     int
	Distance float64
	RadiiSum float64
}

func (v OverlapViolation) String() string {
	return fmt.Sprintf("balls %d and %d overlap: distance %.6g < radii sum %.6g", v.I, v.J, v.Distance, v.RadiiSum)
}

// ProbeContainment returns the first ball found outside its box, if any
// (§4.6 detectAnyBallOutsideBox).
func (s *Simulation) ProbeContainment() (ContainmentViolation, bool) {
	for i, b := range s.balls {
		p := b.PositionAt(s.tSim, s.g)
		for axis := range p {
			if p[axis] < b.centerLo[axis] {
				return ContainmentViolation{Ball: i, Axis: axis, End: -1}, true
			}
			if p[axis] > b.centerHi[axis] {
				return ContainmentViolation{Ball: i, Axis: axis, End: 1}, true
			}
		}
	}
	return ContainmentViolation{}, false
}

// ProbeOverlap returns the first overlapping pair found, if any (§4.6
// detectAnyBallsOverlap).
func (s *Simulation) ProbeOverlap() (OverlapViolation, bool) {
	positions := make([]geom.Vector, len(s.balls))
	for i, b := range s.balls {
		positions[i] = b.PositionAt(s.tSim, s.g)
	}
	for i := 0; i < len(s.balls); i++ {
		for j := i + 1; j < len(s.balls); j++ {
			dist := positions[i].Sub(positions[j]).Length()
			radiiSum := s.balls[i].Radius + s.balls[j].Radius
			if dist < radiiSum {
				return OverlapViolation{I: i, J: j, Distance: dist, RadiiSum: radiiSum}, true
			}
		}
	}
	return OverlapViolation{}, false
}

// AnyOverlapMessage is ProbeOverlap plus a human-readable message, matching
// the original implementation's anyOverlapMessage (§12 supplemented
// feature).
func (s *Simulation) AnyOverlapMessage() (OverlapViolation, string, bool) {
	v, ok := s.ProbeOverlap()
	if !ok {
		return v, "", false
	}
	return v, v.String(), true
}

// probeAll runs both invariant probes and collects every violation found,
// used by Advance when checkOverlap is set.
func (s *Simulation) probeAll() []Violation {
	var out []Violation
	if v, ok := s.ProbeContainment(); ok {
		out = append(out, v)
	}
	if v, ok := s.ProbeOverlap(); ok {
		out = append(out, v)
	}
	return out
}

