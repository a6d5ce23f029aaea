package conservation

import (
	"testing"

	"github.com/asgard/orrery/internal/nbody"
	"github.com/asgard/orrery/internal/vecmath"
)

func twoBodySystem() *nbody.SystemState {
	s := &nbody.SystemState{}
	s.AddBody(nbody.Body{Mass: 1, GM: 1, IsFixed: true, IsAlive: true})
	s.AddBody(nbody.Body{
		Mass:     1e-6,
		GM:       1e-6,
		IsAlive:  true,
		Position: vecmath.Vec3{X: 1, Y: 0, Z: 0},
		Velocity: vecmath.Vec3{X: 0, Y: 1, Z: 0},
	})
	return s
}

func TestDriftOKPassesForUnchangedSystem(t *testing.T) {
	s := twoBodySystem()
	inv := Compute(s, 0)
	ok, msg := DriftOK(inv, inv, 1e-10)
	if !ok {
		t.Errorf("expected DriftOK for identical snapshots, got false: %s", msg)
	}
}

func TestDriftOKFailsOnLargeEnergyChange(t *testing.T) {
	s := twoBodySystem()
	initial := Compute(s, 0)

	s.Bodies[1].Velocity = s.Bodies[1].Velocity.Scale(10)
	current := Compute(s, 0)

	ok, msg := DriftOK(initial, current, 1e-6)
	if ok {
		t.Errorf("expected DriftOK to fail after a 10x velocity change")
	}
	if msg == "" {
		t.Errorf("expected a diagnostic message on failure")
	}
}

func TestDriftUsesAbsoluteFloorNearZero(t *testing.T) {
	s := &nbody.SystemState{}
	s.AddBody(nbody.Body{Mass: 1, GM: 1, IsFixed: true, IsAlive: true})
	initial := Compute(s, 0)
	current := Invariants{
		Energy:          1e-25,
		LinearMomentum:  vecmath.Vec3{},
		AngularMomentum: vecmath.Vec3{},
	}
	ok, msg := DriftOK(initial, current, 1e-6)
	if !ok {
		t.Errorf("expected absolute-floor comparison to pass for tiny absolute drift, got false: %s", msg)
	}
}

type fakeRecorder struct {
	values map[string]float64
}

func (f *fakeRecorder) ObserveConservationDrift(component string, drift float64) {
	if f.values == nil {
		f.values = make(map[string]float64)
	}
	f.values[component] = drift
}

func TestRecordReportsAllThreeComponents(t *testing.T) {
	s := twoBodySystem()
	initial := Compute(s, 0)
	s.Bodies[1].Velocity = s.Bodies[1].Velocity.Scale(1.5)
	current := Compute(s, 0)

	rec := &fakeRecorder{}
	Record(rec, initial, current)

	for _, component := range []string{"energy", "linear_momentum", "angular_momentum"} {
		if _, ok := rec.values[component]; !ok {
			t.Errorf("Record did not report a value for %q", component)
		}
	}
	if rec.values["energy"] == 0 {
		t.Errorf("expected nonzero energy drift after perturbing velocity")
	}
}

func TestRecordWithNilRecorderDoesNotPanic(t *testing.T) {
	s := twoBodySystem()
	inv := Compute(s, 0)
	Record(nil, inv, inv)
}

func TestKahanAccumulationUnderManyBodies(t *testing.T) {
	s := &nbody.SystemState{}
	for i := 0; i < 50; i++ {
		s.AddBody(nbody.Body{
			Mass:     1e-8,
			GM:       1e-8,
			IsAlive:  true,
			Position: vecmath.Vec3{X: float64(i) + 1, Y: 0, Z: 0},
			Velocity: vecmath.Vec3{X: 0, Y: 0.1, Z: 0},
		})
	}
	inv := Compute(s, 0.5)
	if inv.Energy == 0 {
		t.Errorf("expected nonzero energy for a populated system")
	}
}
