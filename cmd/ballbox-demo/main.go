// Command ballbox-demo renders a 3-dimensional ballbox.Simulation with
// raylib, in the window-loop style of the teacher's cmd/test3d command:
// InitWindow once, then Update/Draw every frame until the window closes.
// It is the only place in this module that imports raylib or raygui —
// the engine itself (internal/ballbox, internal/geom) stays free of any
// rendering dependency.
package main

import (
	"flag"
	"fmt"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"

	"ballbox/internal/ballbox"
	"ballbox/internal/geom"
	"ballbox/internal/scenario"
)

func main() {
	scenePath := flag.String("scene", "", "path to a scenario JSON file (optional; a default scene is used otherwise)")
	flag.Parse()

	log := logrus.StandardLogger()

	sim, err := loadScene(*scenePath, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ballbox-demo:", err)
		os.Exit(1)
	}

	d := &demo{sim: sim, gravityMag: float32(-sim.Gravity()[2]), log: log}
	d.run()
}

func loadScene(path string, log logrus.FieldLogger) (*ballbox.Simulation, error) {
	if path == "" {
		return defaultScene(log)
	}
	sim, rejected, err := scenario.LoadAndBuild(path, ballbox.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	for _, idx := range rejected {
		log.WithField("ball", idx).Warn("scenario ball rejected: overlap or out of bounds")
	}
	return sim, nil
}

// defaultScene builds a small demonstration box when no scenario file is
// given: a handful of balls dropped under gravity into a 3-d box.
func defaultScene(log logrus.FieldLogger) (*ballbox.Simulation, error) {
	sim, err := ballbox.NewSimulation(
		geom.Vector{20, 20, 20},
		ballbox.GravityAlongLastAxis(3, -9.8),
		ballbox.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	starts := []geom.Vector{
		{5, 5, 15}, {10, 5, 16}, {15, 5, 14},
		{5, 15, 17}, {15, 15, 13},
	}
	for _, p := range starts {
		if _, _, err := sim.AddBall(1, 1, p, geom.Vector{0, 0, 0}, true); err != nil {
			return nil, fmt.Errorf("default scene: %w", err)
		}
	}
	return sim, nil
}

type demo struct {
	sim        *ballbox.Simulation
	gravityMag float32
	paused     bool
	log        logrus.FieldLogger
}

func (d *demo) run() {
	rl.InitWindow(1280, 720, "ballbox")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	boxDims := d.sim.BoxDims()
	camera := rl.Camera3D{
		Position:   rl.Vector3{X: float32(boxDims[0]) * 1.5, Y: float32(boxDims[1]) * 1.2, Z: float32(boxDims[2]) * 1.8},
		Target:     rl.Vector3{X: float32(boxDims[0]) / 2, Y: float32(boxDims[1]) / 2, Z: float32(boxDims[2]) / 2},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}

	for !rl.WindowShouldClose() {
		d.update()
		d.draw(camera)
	}
}

func (d *demo) update() {
	if rl.IsKeyPressed(rl.KeySpace) {
		d.paused = !d.paused
	}
	if !d.paused {
		dt := float64(rl.GetFrameTime())
		if _, violations, err := d.sim.Advance(dt, true); err != nil {
			d.log.WithError(err).Error("advance failed")
		} else {
			for _, v := range violations {
				d.log.WithField("violation", v.String()).Warn("invariant probe failed")
			}
		}
	}
}

func (d *demo) draw(camera rl.Camera3D) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	rl.BeginMode3D(camera)
	boxDims := d.sim.BoxDims()
	center := rl.Vector3{X: float32(boxDims[0]) / 2, Y: float32(boxDims[1]) / 2, Z: float32(boxDims[2]) / 2}
	size := rl.Vector3{X: float32(boxDims[0]), Y: float32(boxDims[1]), Z: float32(boxDims[2])}
	rl.DrawCubeWires(center, size.X, size.Y, size.Z, rl.LightGray)

	for i := 0; i < d.sim.NumBalls(); i++ {
		p, _ := d.sim.BallState(i)
		_, radius := d.sim.BallMassRadius(i)
		pos := rl.Vector3{X: float32(p[0]), Y: float32(p[1]), Z: float32(p[2])}
		rl.DrawSphere(pos, float32(radius), rl.SkyBlue)
		rl.DrawSphereWires(pos, float32(radius), 8, 8, rl.Blue)
	}
	rl.EndMode3D()

	d.drawHUD()

	rl.EndDrawing()
}

func (d *demo) drawHUD() {
	rl.DrawText(fmt.Sprintf("t = %.2f   balls = %d", d.sim.Time(), d.sim.NumBalls()), 10, 10, 20, rl.RayWhite)
	if d.paused {
		rl.DrawText("paused (space to resume)", 10, 34, 18, rl.Yellow)
	}

	newMag := gui.Slider(rl.Rectangle{X: 150, Y: 70, Width: 200, Height: 20}, "gravity", fmt.Sprintf("%.1f", d.gravityMag), d.gravityMag, 0, 30)
	if newMag != d.gravityMag {
		d.gravityMag = newMag
		g := d.sim.Gravity()
		g[len(g)-1] = -float64(newMag)
		d.applyGravity(g)
	}

	if gui.Button(rl.Rectangle{X: 150, Y: 100, Width: 100, Height: 24}, "reset") {
		d.reset()
	}
}

// applyGravity rebuilds the simulation in place with a new gravity
// vector, preserving every ball's current position and velocity. Gravity
// is fixed for the lifetime of a Simulation (§6), so changing it means
// constructing a fresh one.
func (d *demo) applyGravity(g geom.Vector) {
	boxDims := d.sim.BoxDims()
	next, err := ballbox.NewSimulation(boxDims, g, ballbox.WithLogger(d.log))
	if err != nil {
		d.log.WithError(err).Error("rebuild simulation for new gravity")
		return
	}
	for i := 0; i < d.sim.NumBalls(); i++ {
		p, v := d.sim.BallState(i)
		mass, radius := d.sim.BallMassRadius(i)
		if _, _, err := next.AddBall(mass, radius, p, v, false); err != nil {
			d.log.WithError(err).Error("re-add ball after gravity change")
			return
		}
	}
	d.sim = next
}

func (d *demo) reset() {
	sim, err := defaultScene(d.log)
	if err != nil {
		d.log.WithError(err).Error("reset scene")
		return
	}
	d.sim = sim
	d.gravityMag = float32(-sim.Gravity()[2])
}
