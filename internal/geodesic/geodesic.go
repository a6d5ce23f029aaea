// Package geodesic integrates null and timelike geodesics through a
// curved spacetime supplied as a tensor.MetricFunc, following the same
// RK4-cascade-plus-adaptive-step shape as
// Pricilla/internal/physics/orbital_mechanics.go's Propagate, generalized
// from flat-space Cartesian dynamics to the coordinate 8-vector
// (x^mu, u^mu) of the geodesic equation.
package geodesic

import (
	"math"

	"github.com/asgard/orrery/internal/tensor"
	"github.com/asgard/orrery/internal/vecmath"
)

// Kind distinguishes null (photon) from timelike geodesics.
type Kind int

const (
	Null Kind = iota
	Timelike
)

// Status is the terminal (or in-flight) state of a geodesic's propagation.
type Status int

const (
	Propagating Status = iota
	Escaped
	Captured
	HitDisk
	Timeout
)

func (s Status) String() string {
	switch s {
	case Propagating:
		return "Propagating"
	case Escaped:
		return "Escaped"
	case Captured:
		return "Captured"
	case HitDisk:
		return "HitDisk"
	case Timeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// nearHorizonFallback is the k^t value used when the null-condition
// discriminant for photon initialization is negative.
const nearHorizonFallback = 1.0

// State is the full propagation state of a single geodesic.
type State struct {
	Position vecmath.Vec4
	Velocity vecmath.Vec4
	Kind     Kind
	Status   Status
	Affine   float64
	Steps    int
}

// InitNullFromDirection builds a photon's initial four-velocity at
// position pos given a spatial direction (dr, dtheta, dphi), solving the
// null condition g_{mu nu} k^mu k^nu = 0 for k^t.
func InitNullFromDirection(g tensor.Metric, pos vecmath.Vec4, dr, dtheta, dphi float64) State {
	numerator := -(g[1][1]*dr*dr + g[2][2]*dtheta*dtheta + g[3][3]*dphi*dphi + 2*g[0][3]*dphi)
	var kt float64
	if g[0][0] != 0 {
		discriminant := numerator / g[0][0]
		if discriminant >= 0 {
			kt = math.Sqrt(discriminant)
		} else {
			kt = nearHorizonFallback
		}
	} else {
		kt = nearHorizonFallback
	}
	return State{
		Position: pos,
		Velocity: vecmath.Vec4{T: kt, X: dr, Y: dtheta, Z: dphi},
		Kind:     Null,
		Status:   Propagating,
	}
}

// derivative evaluates (xdot, udot) = (u, -Gamma^a_{mu nu} u^mu u^nu) at
// the given 8-vector state.
func derivative(metric tensor.MetricFunc, x, u vecmath.Vec4, h float64) (vecmath.Vec4, vecmath.Vec4, error) {
	gamma, err := tensor.ComputeChristoffel(metric, x, h)
	if err != nil {
		// Recoverable numeric degradation: zero the acceleration for this
		// step rather than aborting the propagation.
		return u, vecmath.Vec4{}, err
	}
	return u, gamma.Contract(u), nil
}

// rk4Step advances (x, u) by dLambda using a single RK4 stage cascade.
func rk4Step(metric tensor.MetricFunc, x, u vecmath.Vec4, dLambda, h float64) (vecmath.Vec4, vecmath.Vec4) {
	k1x, k1u, _ := derivative(metric, x, u, h)

	x2 := x.Add(k1x.Scale(dLambda / 2))
	u2 := u.Add(k1u.Scale(dLambda / 2))
	k2x, k2u, _ := derivative(metric, x2, u2, h)

	x3 := x.Add(k2x.Scale(dLambda / 2))
	u3 := u.Add(k2u.Scale(dLambda / 2))
	k3x, k3u, _ := derivative(metric, x3, u3, h)

	x4 := x.Add(k3x.Scale(dLambda))
	u4 := u.Add(k3u.Scale(dLambda))
	k4x, k4u, _ := derivative(metric, x4, u4, h)

	dx := k1x.Add(k2x.Scale(2)).Add(k3x.Scale(2)).Add(k4x).Scale(dLambda / 6)
	du := k1u.Add(k2u.Scale(2)).Add(k3u.Scale(2)).Add(k4u).Scale(dLambda / 6)
	return x.Add(dx), u.Add(du)
}

// wrapCoordinates reflects theta into [0, pi] (shifting phi by pi on each
// reflection) and wraps phi into (-pi, pi].
func wrapCoordinates(x vecmath.Vec4) vecmath.Vec4 {
	theta := x.Y
	phi := x.Z
	if theta < 0 {
		theta = -theta
		phi += math.Pi
	}
	if theta > math.Pi {
		theta = 2*math.Pi - theta
		phi += math.Pi
	}
	for phi > math.Pi {
		phi -= 2 * math.Pi
	}
	for phi <= -math.Pi {
		phi += 2 * math.Pi
	}
	x.Y = theta
	x.Z = phi
	return x
}

// AdaptiveStepConfig configures the Richardson-extrapolation step controller.
type AdaptiveStepConfig struct {
	Tolerance   float64
	MinScale    float64
	MaxScale    float64
	Christoffel float64 // central-difference step h
}

// DefaultAdaptiveStepConfig returns the default Richardson step-size
// clamp range for geodesic integration.
func DefaultAdaptiveStepConfig() AdaptiveStepConfig {
	return AdaptiveStepConfig{
		Tolerance:   1e-8,
		MinScale:    0.1,
		MaxScale:    4.0,
		Christoffel: tensor.DefaultStep,
	}
}

// AdaptiveStep advances (x, u) by comparing one step of size dLambda
// against two of size dLambda/2, returning the accepted (finer) position
// and velocity and the suggested next step size. The error estimate only
// drives the step-size choice and is not returned.
func AdaptiveStep(metric tensor.MetricFunc, x, u vecmath.Vec4, dLambda float64, cfg AdaptiveStepConfig) (vecmath.Vec4, vecmath.Vec4, float64) {
	coarseX, _ := rk4Step(metric, x, u, dLambda, cfg.Christoffel)

	halfX, halfU := rk4Step(metric, x, u, dLambda/2, cfg.Christoffel)
	fineX, fineU := rk4Step(metric, halfX, halfU, dLambda/2, cfg.Christoffel)

	diff := fineX.Sub(coarseX)
	err := math.Sqrt(diff.T*diff.T + diff.X*diff.X + diff.Y*diff.Y + diff.Z*diff.Z)

	scale := 0.9 * math.Pow(cfg.Tolerance/(err+1e-15), 1.0/5.0)
	if scale < cfg.MinScale {
		scale = cfg.MinScale
	}
	if scale > cfg.MaxScale {
		scale = cfg.MaxScale
	}
	nextDLambda := dLambda * scale

	return wrapCoordinates(fineX), fineU, nextDLambda
}

// PropagateConfig bounds a propagation run and defines the disk geometry
// used for disk-hit detection.
type PropagateConfig struct {
	HorizonRadius   float64
	EscapeRadius    float64
	MaxSteps        int
	DiskInner       float64
	DiskOuter       float64
	DiskHalfThick   float64
	InitialDLambda  float64
	AdaptiveControl AdaptiveStepConfig
}

// DefaultPropagateConfig supplies a default escape radius and step
// budget; HorizonRadius and the disk fields must be set by the caller.
func DefaultPropagateConfig() PropagateConfig {
	return PropagateConfig{
		EscapeRadius:    100,
		MaxSteps:        10000,
		InitialDLambda:  0.01,
		AdaptiveControl: DefaultAdaptiveStepConfig(),
	}
}

func isInsideDisk(x vecmath.Vec4, cfg PropagateConfig) bool {
	r := x.X
	theta := x.Y
	if r <= cfg.DiskInner || r >= cfg.DiskOuter {
		return false
	}
	return math.Abs(r*math.Cos(theta)) < cfg.DiskHalfThick
}

// Propagate runs the full stop-condition loop, returning the geodesic's
// state once it reaches a terminal status.
func Propagate(metric tensor.MetricFunc, initial State, cfg PropagateConfig) State {
	state := initial
	dLambda := cfg.InitialDLambda

	for state.Steps < cfg.MaxSteps {
		r := state.Position.X
		if r < cfg.HorizonRadius*1.01 {
			state.Status = Captured
			return state
		}
		if r > cfg.EscapeRadius {
			state.Status = Escaped
			return state
		}
		if isInsideDisk(state.Position, cfg) {
			state.Status = HitDisk
			return state
		}

		newX, newU, nextDLambda := AdaptiveStep(metric, state.Position, state.Velocity, dLambda, cfg.AdaptiveControl)
		state.Position = newX
		state.Velocity = newU
		state.Affine += dLambda
		state.Steps++
		dLambda = nextDLambda
	}

	state.Status = Timeout
	return state
}

// Recorder receives the terminal status and step count of a completed
// propagation. Satisfied by *telemetry.Metrics; narrowed here so this
// package doesn't need to import telemetry or Prometheus types.
type Recorder interface {
	RecordGeodesicTraced(status string)
	RecordGeodesicSteps(steps int)
}

// PropagateTraced runs Propagate and reports its terminal status and step
// count to rec. This is the tracer's optional instrumentation hook: a
// renderer or HTTP route that dispatches geodesics calls this instead of
// Propagate directly to get the same result plus advisory telemetry. A
// nil rec makes this identical to calling Propagate directly.
func PropagateTraced(metric tensor.MetricFunc, initial State, cfg PropagateConfig, rec Recorder) State {
	state := Propagate(metric, initial, cfg)
	if rec != nil {
		rec.RecordGeodesicTraced(state.Status.String())
		rec.RecordGeodesicSteps(state.Steps)
	}
	return state
}
