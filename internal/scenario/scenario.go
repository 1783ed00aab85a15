// Package scenario loads box/gravity/ball configuration from JSON files,
// the ballbox analogue of the teacher's scene-graph loader
// (internal/world/scenefile.go): a flat JSON document unmarshalled into
// plain definition structs, then turned into live engine objects by a
// second pass that can fail per-entry without aborting the whole load.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"ballbox/internal/ballbox"
	"ballbox/internal/geom"
)

// BallDef is one ball entry in a scenario file.
type BallDef struct {
	Mass     float64   `json:"mass"`
	Radius   float64   `json:"radius"`
	Position []float64 `json:"position"`
	Velocity []float64 `json:"velocity"`
}

// File is the top-level JSON document: box extents, a uniform
// gravitational field, and the initial set of balls.
type File struct {
	BoxDims []float64 `json:"boxDims"`
	Gravity []float64 `json:"gravity"`
	Balls   []BallDef `json:"balls"`
}

// Load reads and parses a scenario file without yet constructing a
// simulation from it.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scenario: parse %s: %w", path, err)
	}
	return &f, nil
}

// Build constructs a Simulation from the parsed file, adding every ball
// with containment/overlap checking enabled. It returns the simulation
// together with the indices of any balls rejected by that check, so a
// caller can decide whether a rejected entry is fatal for its use case.
func Build(f *File, opts ...ballbox.Option) (*ballbox.Simulation, []int, error) {
	sim, err := ballbox.NewSimulation(geom.Vector(f.BoxDims), geom.Vector(f.Gravity), opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("scenario: build simulation: %w", err)
	}

	var rejected []int
	for i, bd := range f.Balls {
		_, ok, err := sim.AddBall(bd.Mass, bd.Radius, geom.Vector(bd.Position), geom.Vector(bd.Velocity), true)
		if err != nil {
			return nil, nil, fmt.Errorf("scenario: ball %d: %w", i, err)
		}
		if !ok {
			rejected = append(rejected, i)
		}
	}
	return sim, rejected, nil
}

// LoadAndBuild is the common case: read the file and build the
// simulation from it in one call.
func LoadAndBuild(path string, opts ...ballbox.Option) (*ballbox.Simulation, []int, error) {
	f, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	return Build(f, opts...)
}
