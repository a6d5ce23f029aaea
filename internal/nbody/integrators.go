package nbody

import (
	"math"

	"github.com/asgard/orrery/internal/vecmath"
)

// Scheme identifies one of the four integration schemes.
type Scheme int

const (
	RK4 Scheme = iota
	LeapfrogKDK
	Yoshida4
	RKF45
)

// stepPositions advances the positions of non-fixed, live bodies in dst
// by vel[i]*dt.
func stepPositions(dst *SystemState, vel []vecmath.Vec3, dt float64) {
	for i := 0; i < dst.Count; i++ {
		b := &dst.Bodies[i]
		if b.IsFixed || !b.IsAlive {
			continue
		}
		b.Position = b.Position.Add(vel[i].Scale(dt))
	}
}

func stepVelocities(dst *SystemState, accel []vecmath.Vec3, dt float64) {
	for i := 0; i < dst.Count; i++ {
		b := &dst.Bodies[i]
		if b.IsFixed || !b.IsAlive {
			continue
		}
		b.Velocity = b.Velocity.Add(accel[i].Scale(dt))
	}
}

func velocities(s *SystemState) []vecmath.Vec3 {
	out := make([]vecmath.Vec3, s.Count)
	for i := 0; i < s.Count; i++ {
		out[i] = s.Bodies[i].Velocity
	}
	return out
}

// StepRK4 advances s by dt using a standard four-stage RK4 cascade,
// recomputing accelerations on scratch copies at each stage.
func StepRK4(s *SystemState, cfg Config, dt float64) {
	n := s.Count

	k1v := velocities(s)
	k1a := Accelerations(s, cfg)

	mid1 := s.Clone()
	stepPositions(&mid1, k1v, dt/2)
	stepVelocities(&mid1, k1a, dt/2)
	k2v := velocities(&mid1)
	k2a := Accelerations(&mid1, cfg)

	mid2 := s.Clone()
	stepPositions(&mid2, k2v, dt/2)
	stepVelocities(&mid2, k2a, dt/2)
	k3v := velocities(&mid2)
	k3a := Accelerations(&mid2, cfg)

	end := s.Clone()
	stepPositions(&end, k3v, dt)
	stepVelocities(&end, k3a, dt)
	k4v := velocities(&end)
	k4a := Accelerations(&end, cfg)

	for i := 0; i < n; i++ {
		b := &s.Bodies[i]
		if b.IsFixed || !b.IsAlive {
			continue
		}
		dPos := k1v[i].Add(k2v[i].Scale(2)).Add(k3v[i].Scale(2)).Add(k4v[i]).Scale(dt / 6)
		dVel := k1a[i].Add(k2a[i].Scale(2)).Add(k3a[i].Scale(2)).Add(k4a[i]).Scale(dt / 6)
		b.Position = b.Position.Add(dPos)
		b.Velocity = b.Velocity.Add(dVel)
	}
	s.Time += dt
}

// StepLeapfrogKDK advances s by dt using kick-drift-kick leapfrog,
// skipping fixed and dead bodies in both kicks and the drift.
func StepLeapfrogKDK(s *SystemState, cfg Config, dt float64) {
	accel := Accelerations(s, cfg)
	stepVelocities(s, accel, dt/2)

	vel := velocities(s)
	stepPositions(s, vel, dt)

	accel2 := Accelerations(s, cfg)
	stepVelocities(s, accel2, dt/2)

	s.Time += dt
}

// yoshida4Coefficients are the canonical 4th-order symplectic coefficients.
func yoshida4Coefficients() (c [4]float64, d [3]float64) {
	w1 := 1 / (2 - math.Cbrt(2))
	w0 := -math.Cbrt(2) * w1
	c = [4]float64{w1 / 2, (w0 + w1) / 2, (w0 + w1) / 2, w1 / 2}
	d = [3]float64{w1, w0, w1}
	return c, d
}

// StepYoshida4 advances s by dt using the 4th-order Yoshida symplectic
// integrator: seven alternating drift/kick stages.
func StepYoshida4(s *SystemState, cfg Config, dt float64) {
	c, d := yoshida4Coefficients()

	vel := velocities(s)
	stepPositions(s, vel, c[0]*dt)

	accel := Accelerations(s, cfg)
	stepVelocities(s, accel, d[0]*dt)
	vel = velocities(s)
	stepPositions(s, vel, c[1]*dt)

	accel = Accelerations(s, cfg)
	stepVelocities(s, accel, d[1]*dt)
	vel = velocities(s)
	stepPositions(s, vel, c[2]*dt)

	accel = Accelerations(s, cfg)
	stepVelocities(s, accel, d[2]*dt)
	vel = velocities(s)
	stepPositions(s, vel, c[3]*dt)

	s.Time += dt
}

// RKF45StepResult reports the outcome of one adaptive Richardson step.
type RKF45StepResult struct {
	Error  float64
	NextDt float64
}

// minDt and maxDt bound the absolute step size accepted by StepRKF45.
const (
	minDt = 1e-6
	maxDt = 1.0
)

// StepRKF45 advances s by dt, estimating error via Richardson
// extrapolation: one RK4 step of size dt is compared against two of
// size dt/2. The fine (two-half-step) result is committed; the returned
// NextDt is rescaled by the error estimate and clamped to [minDt, maxDt].
func StepRKF45(s *SystemState, cfg Config, dt float64) RKF45StepResult {
	coarse := s.Clone()
	StepRK4(&coarse, cfg, dt)

	fine := s.Clone()
	StepRK4(&fine, cfg, dt/2)
	StepRK4(&fine, cfg, dt/2)

	maxDiff := 0.0
	for i := 0; i < s.Count; i++ {
		diff := fine.Bodies[i].Position.Sub(coarse.Bodies[i].Position).Norm()
		if diff > maxDiff {
			maxDiff = diff
		}
	}

	const tol = 1e-8
	scale := 0.9 * math.Pow(tol/(maxDiff+1e-15), 0.2)
	if scale < 0.1 {
		scale = 0.1
	}
	if scale > 5.0 {
		scale = 5.0
	}
	nextDt := dt * scale
	if nextDt < minDt {
		nextDt = minDt
	}
	if nextDt > maxDt {
		nextDt = maxDt
	}

	*s = fine
	return RKF45StepResult{Error: maxDiff, NextDt: nextDt}
}

// Step dispatches to the requested scheme, advancing s by dt in place.
// RKF45 additionally returns the suggested next dt; callers using the
// other schemes should keep dt fixed.
func Step(s *SystemState, cfg Config, scheme Scheme, dt float64) float64 {
	switch scheme {
	case RK4:
		StepRK4(s, cfg, dt)
		return dt
	case LeapfrogKDK:
		StepLeapfrogKDK(s, cfg, dt)
		return dt
	case Yoshida4:
		StepYoshida4(s, cfg, dt)
		return dt
	case RKF45:
		result := StepRKF45(s, cfg, dt)
		return result.NextDt
	default:
		StepRK4(s, cfg, dt)
		return dt
	}
}
