package scenario

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleScenario = `{
	"boxDims": [10, 10],
	"gravity": [0, -10],
	"balls": [
		{"mass": 1, "radius": 0.5, "position": [5, 5], "velocity": [1, 0]},
		{"mass": 1, "radius": 0.5, "position": [7, 5], "velocity": [-1, 0]}
	]
}`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestLoadParsesFile(t *testing.T) {
	path := writeScenario(t, sampleScenario)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(f.BoxDims) != 2 || f.BoxDims[0] != 10 {
		t.Fatalf("unexpected box dims: %v", f.BoxDims)
	}
	if len(f.Balls) != 2 {
		t.Fatalf("expected 2 balls, got %d", len(f.Balls))
	}
}

func TestLoadAndBuildConstructsSimulation(t *testing.T) {
	path := writeScenario(t, sampleScenario)
	sim, rejected, err := LoadAndBuild(path)
	if err != nil {
		t.Fatalf("LoadAndBuild: %v", err)
	}
	if len(rejected) != 0 {
		t.Fatalf("expected no rejected balls, got %v", rejected)
	}
	if sim.NumBalls() != 2 {
		t.Fatalf("expected 2 balls in simulation, got %d", sim.NumBalls())
	}
	if sim.NDims() != 2 {
		t.Fatalf("expected 2 dimensions, got %d", sim.NDims())
	}
}

func TestBuildReportsOverlapRejection(t *testing.T) {
	path := writeScenario(t, `{
		"boxDims": [10, 10],
		"gravity": [0, 0],
		"balls": [
			{"mass": 1, "radius": 1, "position": [5, 5], "velocity": [0, 0]},
			{"mass": 1, "radius": 1, "position": [5.5, 5], "velocity": [0, 0]}
		]
	}`)
	sim, rejected, err := LoadAndBuild(path)
	if err != nil {
		t.Fatalf("LoadAndBuild: %v", err)
	}
	if len(rejected) != 1 || rejected[0] != 1 {
		t.Fatalf("expected ball 1 to be rejected, got %v", rejected)
	}
	if sim.NumBalls() != 1 {
		t.Fatalf("expected 1 ball to survive, got %d", sim.NumBalls())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	path := writeScenario(t, `{not json`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}
