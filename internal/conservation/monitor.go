// Package conservation computes energy, linear momentum, and angular
// momentum for an N-body system under Kahan accumulation, and checks
// their drift between two snapshots against a tolerance — grounded in the
// tolerance-banded assertion style of
// Pricilla/internal/physics/physics_test.go, here turned into a
// first-class runtime check rather than just a test helper.
package conservation

import (
	"fmt"
	"math"

	"github.com/asgard/orrery/internal/nbody"
	"github.com/asgard/orrery/internal/vecmath"
)

// absoluteFloor is the magnitude below which a drift check switches from
// relative to absolute comparison, avoiding division blowup near zero.
const absoluteFloor = 1e-20

// Invariants is a snapshot of the conserved quantities of a system state.
type Invariants struct {
	Energy          float64
	LinearMomentum  vecmath.Vec3
	AngularMomentum vecmath.Vec3
}

// Compute derives Invariants from s using the same softening length as
// the force model, so potential energy matches what the integrator sees.
func Compute(s *nbody.SystemState, softening float64) Invariants {
	eps2 := softening * softening

	var kinetic, potential vecmath.KahanSum
	kinetic.Init()
	potential.Init()
	var momentum, angular vecmath.KahanVec3
	momentum.Init()
	angular.Init()

	for i := 0; i < s.Count; i++ {
		bi := s.Bodies[i]
		kinetic.Add(0.5 * bi.Mass * bi.Velocity.NormSquared())
		momentum.Add(bi.Velocity.Scale(bi.Mass))
		angular.Add(bi.Position.Cross(bi.Velocity.Scale(bi.Mass)))
	}

	for i := 0; i < s.Count; i++ {
		for j := i + 1; j < s.Count; j++ {
			bi, bj := s.Bodies[i], s.Bodies[j]
			rij := bj.Position.Sub(bi.Position)
			r := math.Sqrt(rij.NormSquared() + eps2)
			if r == 0 {
				continue
			}
			potential.Add(-bi.GM * bj.Mass / r)
		}
	}

	return Invariants{
		Energy:          kinetic.Read() + potential.Read(),
		LinearMomentum:  momentum.Read(),
		AngularMomentum: angular.Read(),
	}
}

// DriftOK compares current against initial within the given relative
// tolerance, falling back to an absolute comparison when the initial
// magnitude is below absoluteFloor. It returns false and a diagnostic
// message describing the first component to exceed tolerance.
func DriftOK(initial, current Invariants, relTol float64) (bool, string) {
	if ok, msg := scalarDriftOK("energy", initial.Energy, current.Energy, relTol); !ok {
		return false, msg
	}
	if ok, msg := vecDriftOK("linear momentum", initial.LinearMomentum, current.LinearMomentum, relTol); !ok {
		return false, msg
	}
	if ok, msg := vecDriftOK("angular momentum", initial.AngularMomentum, current.AngularMomentum, relTol); !ok {
		return false, msg
	}
	return true, ""
}

func scalarDriftOK(label string, initial, current, relTol float64) (bool, string) {
	drift := driftMeasure(initial, current)
	if drift > relTol {
		return false, fmt.Sprintf("%s drifted by %.3g (tolerance %.3g): initial=%v current=%v", label, drift, relTol, initial, current)
	}
	return true, ""
}

func vecDriftOK(label string, initial, current vecmath.Vec3, relTol float64) (bool, string) {
	components := []struct {
		name           string
		initial, value float64
	}{
		{"x", initial.X, current.X},
		{"y", initial.Y, current.Y},
		{"z", initial.Z, current.Z},
	}
	for _, c := range components {
		drift := driftMeasure(c.initial, c.value)
		if drift > relTol {
			return false, fmt.Sprintf("%s.%s drifted by %.3g (tolerance %.3g): initial=%v current=%v", label, c.name, drift, relTol, c.initial, c.value)
		}
	}
	return true, ""
}

func driftMeasure(initial, current float64) float64 {
	if math.Abs(initial) < absoluteFloor {
		return math.Abs(current - initial)
	}
	return math.Abs((current - initial) / initial)
}

func vecDriftMagnitude(initial, current vecmath.Vec3) float64 {
	dx := driftMeasure(initial.X, current.X)
	dy := driftMeasure(initial.Y, current.Y)
	dz := driftMeasure(initial.Z, current.Z)
	return math.Max(dx, math.Max(dy, dz))
}

// Recorder receives the per-component relative drift measured between two
// Invariants snapshots. Satisfied by *telemetry.Metrics; narrowed here so
// this package doesn't need to import telemetry or Prometheus types.
type Recorder interface {
	ObserveConservationDrift(component string, drift float64)
}

// Record reports the drift of each conserved quantity between initial and
// current to rec: relative, or absolute for any component whose initial
// magnitude is below absoluteFloor (the same measure DriftOK uses). A nil rec is a no-op, so callers can invoke
// Record unconditionally from an optional instrumentation hook.
func Record(rec Recorder, initial, current Invariants) {
	if rec == nil {
		return
	}
	rec.ObserveConservationDrift("energy", driftMeasure(initial.Energy, current.Energy))
	rec.ObserveConservationDrift("linear_momentum", vecDriftMagnitude(initial.LinearMomentum, current.LinearMomentum))
	rec.ObserveConservationDrift("angular_momentum", vecDriftMagnitude(initial.AngularMomentum, current.AngularMomentum))
}
