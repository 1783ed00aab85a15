package ballbox

import (
	"container/heap"

	"github.com/sirupsen/logrus"

	"ballbox/internal/geom"
)

// runDispatcher is the global event dispatcher of §4.5. It builds the two
// per-call heaps GW (soonest wall event per ball) and GP (soonest pair
// event per owning ball), then repeatedly extracts and applies the soonest
// valid event until nothing remains at or before horizon. It returns the
// number of events applied.
func (s *Simulation) runDispatcher(horizon float64) int {
	var gw gwHeap
	var gp gpHeap

	for i, b := range s.balls {
		if t, ok := b.peekWallTime(); ok && t <= horizon {
			heap.Push(&gw, gwEntry{T: t, Ball: i, Gen: s.gen[i]})
		}
	}
	for i := range s.balls {
		dropStaleTop(&s.pairHeaps[i], s.gen)
		if len(s.pairHeaps[i]) > 0 {
			top := s.pairHeaps[i][0]
			if top.T <= horizon {
				heap.Push(&gp, entryFromPair(top))
			}
		}
	}

	events := 0
	for {
		s.revalidateGP(&gp, horizon)
		s.revalidateGW(&gw)

		if gw.Len() == 0 && gp.Len() == 0 {
			break
		}

		wallSoonest := gp.Len() == 0
		if gw.Len() > 0 && gp.Len() > 0 {
			if gw[0].T != gp[0].T {
				wallSoonest = gw[0].T < gp[0].T
			} else {
				wallSoonest = true // tie-break: wall before pair (§4.5)
			}
		}

		var moved [2]int
		if wallSoonest {
			entry := heap.Pop(&gw).(gwEntry)
			s.applyWallEvent(entry.Ball, horizon, &gw, &gp)
			moved = [2]int{entry.Ball, entry.Ball}
		} else {
			entry := heap.Pop(&gp).(gpEntry)
			s.applyPairEvent(entry.Owner, entry.Other, horizon, &gw, &gp)
			moved = [2]int{entry.Owner, entry.Other}
		}
		events++

		// A refreshed prediction between a moved ball and a lower-index ball
		// lives in the lower ball's heap; push it into GP if it is now that
		// heap's soonest entry.
		for k := 0; k < moved[1]; k++ {
			dropStaleTop(&s.pairHeaps[k], s.gen)
			if len(s.pairHeaps[k]) == 0 {
				continue
			}
			if top := s.pairHeaps[k][0]; (top.J == moved[0] || top.J == moved[1]) && top.T <= horizon {
				heap.Push(&gp, entryFromPair(top))
			}
		}
	}
	return events
}

// revalidateGP discards GP tops that no longer match the live state of
// their owning ball's pair heap, replacing each with that ball's refreshed
// next candidate (if any, and if it is still within the horizon).
func (s *Simulation) revalidateGP(gp *gpHeap, horizon float64) {
	for gp.Len() > 0 {
		top := (*gp)[0]
		dropStaleTop(&s.pairHeaps[top.Owner], s.gen)

		if len(s.pairHeaps[top.Owner]) == 0 {
			heap.Pop(gp)
			continue
		}
		cur := s.pairHeaps[top.Owner][0]
		if cur.T == top.T && cur.J == top.Other && cur.GenI == top.GenOwner && cur.GenJ == top.GenOther {
			return
		}

		heap.Pop(gp)
		if cur.T <= horizon {
			heap.Push(gp, entryFromPair(cur))
		}
	}
}

// revalidateGW discards GW tops whose ball has moved on to a new generation
// since they were pushed; the ball's own event handler is responsible for
// pushing any valid replacement, so a stale top here is simply dropped.
func (s *Simulation) revalidateGW(gw *gwHeap) {
	for gw.Len() > 0 && (*gw)[0].Gen != s.gen[(*gw)[0].Ball] {
		heap.Pop(gw)
	}
}

// applyWallEvent executes a wall bounce for ball i and reseeds both global
// heaps with i's refreshed predictions.
func (s *Simulation) applyWallEvent(i int, horizon float64, gw *gwHeap, gp *gpHeap) {
	t, axis := s.balls[i].applyNextWallEvent(s.g)
	s.gen[i]++

	s.log.WithFields(logrus.Fields{"ball": i, "axis": axis, "t": t}).Debug("wall event")

	s.refreshPairsInvolving(i, -1)

	if nt, ok := s.balls[i].peekWallTime(); ok && nt <= horizon {
		heap.Push(gw, gwEntry{T: nt, Ball: i, Gen: s.gen[i]})
	}
	s.pushOwnerCandidate(i, horizon, gp)
}

// applyPairEvent executes an elastic collision between balls i and j (i
// owns the entry) and reseeds both global heaps with their refreshed
// predictions.
func (s *Simulation) applyPairEvent(i, j int, horizon float64, gw *gwHeap, gp *gpHeap) {
	entry := heap.Pop(&s.pairHeaps[i]).(*pairEntry)
	tHit := entry.T

	bi, bj := s.balls[i], s.balls[j]
	bi.Rebase(tHit, s.g)
	bj.Rebase(tHit, s.g)

	dvA, dvB := geom.ResolvePairVelocities(entry.Contact, entry.ZMFVelA, bi.Mass, bj.Mass, bi.Radius, bj.Radius)
	bi.v0 = bi.v0.Add(dvA)
	bj.v0 = bj.v0.Add(dvB)

	s.gen[i]++
	s.gen[j]++

	s.log.WithFields(logrus.Fields{"ballA": i, "ballB": j, "t": tHit}).Debug("pair event")

	bi.initializeWallHeap(s.g)
	bj.initializeWallHeap(s.g)

	s.refreshPairsInvolving(i, j)
	s.refreshPairsInvolving(j, -1)

	for _, idx := range [2]int{i, j} {
		if nt, ok := s.balls[idx].peekWallTime(); ok && nt <= horizon {
			heap.Push(gw, gwEntry{T: nt, Ball: idx, Gen: s.gen[idx]})
		}
		s.pushOwnerCandidate(idx, horizon, gp)
	}
}

// refreshPairsInvolving recomputes the pair prediction between ball i and
// every other ball k != exclude, storing each at its owning heap. Because
// this always pushes a fresh, correctly generation-tagged entry rather than
// mutating an existing one, any now-stale entry left behind in some other
// ball's heap is simply skipped later by dropStaleTop — the lazy half of
// §4.4's invalidation scheme.
func (s *Simulation) refreshPairsInvolving(i, exclude int) {
	for k := range s.balls {
		if k == i || k == exclude {
			continue
		}
		lo, hi := i, k
		if lo > hi {
			lo, hi = hi, lo
		}
		s.predictAndStore(lo, hi)
	}
}

// pushOwnerCandidate pushes ball i's current soonest owned pair prediction
// into GP, if any exists within the horizon.
func (s *Simulation) pushOwnerCandidate(i int, horizon float64, gp *gpHeap) {
	dropStaleTop(&s.pairHeaps[i], s.gen)
	if len(s.pairHeaps[i]) == 0 {
		return
	}
	top := s.pairHeaps[i][0]
	if top.T <= horizon {
		heap.Push(gp, entryFromPair(top))
	}
}
