// Command ballbox-bench times the event dispatcher under increasing ball
// counts, in the spirit of the teacher's cmd/physics_stress scaling
// sweep — but driven entirely by internal/ballbox's CPU event loop, since
// the GPU broad-phase stack that command compared against does not carry
// over to this module (see DESIGN.md).
package main

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"ballbox/internal/ballbox"
	"ballbox/internal/geom"
)

func main() {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	for _, count := range []int{10, 50, 100, 250, 500} {
		benchCount(log, count)
	}
}

// benchCount places up to count non-overlapping balls at random positions
// in a 3-dimensional box (giving up after count*50 attempts), then advances
// the simulation by a fixed simulated duration, reporting events processed
// and elapsed wall-clock time.
func benchCount(log logrus.FieldLogger, count int) {
	const nDims = 3
	const boxSize = 200.0
	const radius = 0.5

	sim, err := ballbox.NewSimulation(
		geom.Vector{boxSize, boxSize, boxSize},
		ballbox.GravityAlongLastAxis(nDims, -9.8),
		ballbox.WithLogger(log),
	)
	if err != nil {
		log.WithError(err).Error("build simulation")
		return
	}

	rng := rand.New(rand.NewSource(42))
	placed := 0
	for attempts := 0; placed < count && attempts < count*50; attempts++ {
		p := geom.Vector{
			radius + rng.Float64()*(boxSize-2*radius),
			radius + rng.Float64()*(boxSize-2*radius),
			radius + rng.Float64()*(boxSize-2*radius),
		}
		v := geom.Vector{
			rng.Float64()*4 - 2,
			rng.Float64()*4 - 2,
			rng.Float64()*4 - 2,
		}
		if _, ok, err := sim.AddBall(1, radius, p, v, true); err == nil && ok {
			placed++
		}
	}

	start := time.Now()
	const dt = 5.0
	events, _, err := sim.Advance(dt, false)
	elapsed := time.Since(start)
	if err != nil {
		log.WithError(err).Error("advance")
		return
	}

	log.WithFields(logrus.Fields{
		"balls":    placed,
		"events":   events,
		"dt":       dt,
		"elapsed":  elapsed,
		"per_ball": elapsed / time.Duration(max(placed, 1)),
	}).Info("bench sample")
}
