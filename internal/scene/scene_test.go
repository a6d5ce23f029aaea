package scene

import (
	"testing"

	"github.com/asgard/orrery/internal/diskmodel"
	"github.com/asgard/orrery/internal/nbody"
	"github.com/asgard/orrery/internal/vecmath"
)

func TestUpdateAdvancesTimeAndBodies(t *testing.T) {
	s := New(nbody.DefaultConfig(), nbody.LeapfrogKDK)
	s.AddBody(nbody.Body{Mass: 1, GM: 1, IsFixed: true, IsAlive: true})
	s.AddBody(nbody.Body{
		Mass:     1e-6,
		GM:       1e-6,
		IsAlive:  true,
		Position: vecmath.Vec3{X: 1, Y: 0, Z: 0},
		Velocity: vecmath.Vec3{X: 0, Y: 1, Z: 0},
	})

	s.Update(0.01)

	if s.Time() != 0.01 {
		t.Errorf("Time() = %v, want 0.01", s.Time())
	}
	if len(s.Bodies()) != 2 {
		t.Errorf("len(Bodies()) = %v, want 2", len(s.Bodies()))
	}
}

func TestRemoveBodyCompactsIndices(t *testing.T) {
	s := New(nbody.DefaultConfig(), nbody.RK4)
	s.AddBody(nbody.Body{Name: "a", IsAlive: true})
	s.AddBody(nbody.Body{Name: "b", IsAlive: true})
	s.AddBody(nbody.Body{Name: "c", IsAlive: true})

	s.RemoveBody(0)

	bodies := s.Bodies()
	if len(bodies) != 2 || bodies[0].Name != "b" || bodies[1].Name != "c" {
		t.Errorf("after RemoveBody(0): %+v", bodies)
	}
}

type fakeInstrumentation struct {
	seconds      []float64
	driftsByName map[string]float64
}

func (f *fakeInstrumentation) ObserveSceneUpdateSeconds(seconds float64) {
	f.seconds = append(f.seconds, seconds)
}

func (f *fakeInstrumentation) ObserveConservationDrift(component string, drift float64) {
	if f.driftsByName == nil {
		f.driftsByName = make(map[string]float64)
	}
	f.driftsByName[component] = drift
}

func TestEnableTelemetryReportsUpdateDurationAndDrift(t *testing.T) {
	s := New(nbody.DefaultConfig(), nbody.LeapfrogKDK)
	s.AddBody(nbody.Body{Mass: 1, GM: 1, IsFixed: true, IsAlive: true})
	s.AddBody(nbody.Body{
		Mass:     1e-6,
		GM:       1e-6,
		IsAlive:  true,
		Position: vecmath.Vec3{X: 1, Y: 0, Z: 0},
		Velocity: vecmath.Vec3{X: 0, Y: 1, Z: 0},
	})

	fake := &fakeInstrumentation{}
	s.EnableTelemetry(fake)
	s.Update(0.01)

	if len(fake.seconds) != 1 {
		t.Fatalf("ObserveSceneUpdateSeconds called %d times, want 1", len(fake.seconds))
	}
	for _, component := range []string{"energy", "linear_momentum", "angular_momentum"} {
		if _, ok := fake.driftsByName[component]; !ok {
			t.Errorf("expected a drift observation for %q", component)
		}
	}
}

func TestDiskAndBlackHoleDescriptorsOptional(t *testing.T) {
	s := New(nbody.DefaultConfig(), nbody.Yoshida4)
	if s.Disk() != nil || s.BlackHole() != nil {
		t.Errorf("expected nil disk/black hole by default")
	}

	d := &diskmodel.Descriptor{InnerRadius: 6, OuterRadius: 20}
	bh := &BlackHole{M: 1, A: 0.5}
	s.SetDisk(d)
	s.SetBlackHole(bh)

	if s.Disk() != d || s.BlackHole() != bh {
		t.Errorf("expected descriptors to round-trip through setters")
	}
}
