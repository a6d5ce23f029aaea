// Package nbody implements the gravitational N-body integrator: force
// assembly (Plummer softening, 1PN, J2, tidal torque) and four stepping
// schemes (RK4, Leapfrog KDK, Yoshida4, RKF45-via-Richardson), grounded on
// Pricilla/internal/physics/orbital_mechanics.go's Propagate cascade and
// CalculateGravity's J2/J3/J4 zonal-harmonic term.
package nbody

import "github.com/asgard/orrery/internal/vecmath"

// Taxonomy classifies a body for rendering/query purposes; it has no
// effect on physics.
type Taxonomy int

const (
	Planet Taxonomy = iota
	Star
	BlackHole
	Moon
)

// MaxBodies is the default fixed capacity of a SystemState.
const MaxBodies = 128

// Body is a single gravitating point mass.
type Body struct {
	Position      vecmath.Vec3
	Velocity      vecmath.Vec3
	AngularVel    vecmath.Vec3
	Mass          float64
	GM            float64 // G * Mass, pre-cached
	Radius        float64
	J2            float64
	MomentInertia float64
	RotationAngle float64
	RotationAxis  vecmath.Vec3
	IsFixed       bool
	IsAlive       bool
	Name          string // at most 31 bytes
	Tag           Taxonomy
	BaseColor     vecmath.Vec3
}

// NewBody constructs a live, non-fixed body with GM cached from mass and G.
func NewBody(name string, mass, g float64, position, velocity vecmath.Vec3) Body {
	return Body{
		Position: position,
		Velocity: velocity,
		Mass:     mass,
		GM:       mass * g,
		IsAlive:  true,
		Name:     name,
		Tag:      Planet,
	}
}

// SystemState is a fixed-capacity snapshot of the N-body system at one
// instant. Integrators construct ephemeral copies of SystemState for RK
// stages and Richardson half-steps.
type SystemState struct {
	Bodies [MaxBodies]Body
	Count  int
	Time   float64
}

// Clone returns a deep value copy of s (Body contains no pointers, so a
// plain struct copy suffices).
func (s SystemState) Clone() SystemState {
	return s
}

// AddBody appends b to s, returning false if the system is at capacity.
func (s *SystemState) AddBody(b Body) bool {
	if s.Count >= MaxBodies {
		return false
	}
	s.Bodies[s.Count] = b
	s.Count++
	return true
}

// RemoveBody removes the body at index i, compacting the remaining bodies
// down by one slot. Indices at or after i shift; indices before i are
// unaffected.
func (s *SystemState) RemoveBody(i int) bool {
	if i < 0 || i >= s.Count {
		return false
	}
	for j := i; j < s.Count-1; j++ {
		s.Bodies[j] = s.Bodies[j+1]
	}
	s.Count--
	return true
}

func (b Body) active() bool {
	return b.IsAlive
}
