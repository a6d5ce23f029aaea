package geodesic

import (
	"math"
	"testing"

	"github.com/asgard/orrery/internal/spacetime"
	"github.com/asgard/orrery/internal/tensor"
	"github.com/asgard/orrery/internal/vecmath"
)

func TestSchwarzschildPhotonCaptureScenarioB(t *testing.T) {
	s := spacetime.Schwarzschild{M: 1}
	metric := spacetime.SchwarzschildTensorFunc(s)

	g := tensor.Metric(s.Metric(10, math.Pi/2))
	initial := InitNullFromDirection(g, vecmath.Vec4{T: 0, X: 10, Y: math.Pi / 2, Z: 0}, -1, 0, 0)

	cfg := DefaultPropagateConfig()
	cfg.HorizonRadius = s.HorizonRadius()
	cfg.MaxSteps = 2000
	cfg.InitialDLambda = 0.1

	result := Propagate(metric, initial, cfg)

	if result.Status != Captured {
		t.Fatalf("status = %v, want Captured", result.Status)
	}
	if r := result.Position.X; r < 2.0 || r > 2.05 {
		t.Errorf("final r = %v, want in [2.0, 2.05]", r)
	}
}

func TestSchwarzschildPhotonEscapeScenarioC(t *testing.T) {
	s := spacetime.Schwarzschild{M: 1}
	metric := spacetime.SchwarzschildTensorFunc(s)

	// Impact parameter b = L/E must exceed 3*sqrt(3)*M (~5.196) to escape;
	// a tangential dphi at r=10 with small dr gives a large b.
	g := tensor.Metric(s.Metric(10, math.Pi/2))
	initial := InitNullFromDirection(g, vecmath.Vec4{T: 0, X: 10, Y: math.Pi / 2, Z: 0}, -0.1, 0, 0.08)

	cfg := DefaultPropagateConfig()
	cfg.HorizonRadius = s.HorizonRadius()
	cfg.MaxSteps = 5000
	cfg.InitialDLambda = 0.1

	result := Propagate(metric, initial, cfg)

	if result.Status != Escaped {
		t.Fatalf("status = %v, want Escaped", result.Status)
	}
	if r := result.Position.X; r <= 100 {
		t.Errorf("final r = %v, want > 100", r)
	}
}

type fakeRecorder struct {
	statuses []string
	steps    int
}

func (f *fakeRecorder) RecordGeodesicTraced(status string) {
	f.statuses = append(f.statuses, status)
}

func (f *fakeRecorder) RecordGeodesicSteps(steps int) {
	f.steps += steps
}

func TestPropagateTracedReportsTerminalStatus(t *testing.T) {
	s := spacetime.Schwarzschild{M: 1}
	metric := spacetime.SchwarzschildTensorFunc(s)

	g := tensor.Metric(s.Metric(10, math.Pi/2))
	initial := InitNullFromDirection(g, vecmath.Vec4{T: 0, X: 10, Y: math.Pi / 2, Z: 0}, -1, 0, 0)

	cfg := DefaultPropagateConfig()
	cfg.HorizonRadius = s.HorizonRadius()
	cfg.MaxSteps = 2000
	cfg.InitialDLambda = 0.1

	rec := &fakeRecorder{}
	result := PropagateTraced(metric, initial, cfg, rec)

	if result.Status != Captured {
		t.Fatalf("status = %v, want Captured", result.Status)
	}
	if len(rec.statuses) != 1 || rec.statuses[0] != "Captured" {
		t.Errorf("rec.statuses = %v, want [\"Captured\"]", rec.statuses)
	}
	if rec.steps != result.Steps {
		t.Errorf("rec.steps = %d, want %d", rec.steps, result.Steps)
	}
}

func TestPropagateTracedWithNilRecorderDoesNotPanic(t *testing.T) {
	s := spacetime.Schwarzschild{M: 1}
	metric := spacetime.SchwarzschildTensorFunc(s)
	g := tensor.Metric(s.Metric(10, math.Pi/2))
	initial := InitNullFromDirection(g, vecmath.Vec4{T: 0, X: 10, Y: math.Pi / 2, Z: 0}, -1, 0, 0)

	cfg := DefaultPropagateConfig()
	cfg.HorizonRadius = s.HorizonRadius()
	cfg.MaxSteps = 2000
	cfg.InitialDLambda = 0.1

	PropagateTraced(metric, initial, cfg, nil)
}

func TestNullGeodesicRemainsNullInvariant1(t *testing.T) {
	s := spacetime.Schwarzschild{M: 1}
	metric := spacetime.SchwarzschildTensorFunc(s)

	g := tensor.Metric(s.Metric(20, math.Pi/2))
	state := InitNullFromDirection(g, vecmath.Vec4{T: 0, X: 20, Y: math.Pi / 2, Z: 0}, -1, 0, 0.02)

	cfg := DefaultAdaptiveStepConfig()
	dLambda := 0.05
	for i := 0; i < 50; i++ {
		newX, newU, next := AdaptiveStep(metric, state.Position, state.Velocity, dLambda, cfg)
		state.Position = newX
		state.Velocity = newU
		dLambda = next

		gNow := tensor.Metric(s.Metric(state.Position.X, state.Position.Y))
		norm := gNow.Dot(state.Velocity, state.Velocity)
		if math.Abs(norm) > 1e-3 {
			t.Fatalf("step %d: null norm drifted to %v, want ~0", i, norm)
		}
	}
}
