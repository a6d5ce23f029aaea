// Package scene implements the orchestrator that owns body storage, at
// most one disk descriptor, and at most one Kerr black hole descriptor,
// advancing the whole system by a single update(dt) call per tick.
// Modeled on Valkyrie/internal/simulation/interface.go's narrow
// update/query surface over internally owned state, generalized from a
// flight-simulator state machine to the physics CORE's body array.
package scene

import (
	"time"

	"github.com/asgard/orrery/internal/conservation"
	"github.com/asgard/orrery/internal/diskmodel"
	"github.com/asgard/orrery/internal/nbody"
)

// BlackHole is the scene's optional Kerr black hole descriptor.
type BlackHole struct {
	M, A float64
}

// instrumentation is the subset of telemetry.Metrics the scene's optional
// instrumentation hook uses. Satisfied by *telemetry.Metrics; narrowed
// here so this package doesn't need to import telemetry or Prometheus
// types, matching the style of internal/api's telemetryLogger interface.
type instrumentation interface {
	conservation.Recorder
	ObserveSceneUpdateSeconds(seconds float64)
}

// Scene owns the full mutable simulation state for one tick of CORE
// physics: the body array, the force-model configuration, the chosen
// integration scheme, and the optional disk and black hole descriptors.
type Scene struct {
	system    nbody.SystemState
	config    nbody.Config
	scheme    nbody.Scheme
	disk      *diskmodel.Descriptor
	blackHole *BlackHole

	metrics  instrumentation
	baseline *conservation.Invariants
}

// New creates an empty scene using the given force-model config and
// integration scheme.
func New(config nbody.Config, scheme nbody.Scheme) *Scene {
	return &Scene{config: config, scheme: scheme}
}

// EnableTelemetry wires the scene's optional instrumentation hook: every
// subsequent Update reports its wall-clock duration and the drift of each
// conserved quantity against the state captured at this call. Advisory
// only, per the module's "never required for correctness" diagnostics
// framing — a Scene with no telemetry enabled behaves identically.
func (s *Scene) EnableTelemetry(m instrumentation) {
	s.metrics = m
	baseline := conservation.Compute(&s.system, s.config.Units.SofteningDist)
	s.baseline = &baseline
}

// Update advances the scene by dt using the configured integrator. For
// RKF45, the returned suggested next dt is discarded here; callers that
// want adaptive stepping across ticks should call nbody.Step directly.
func (s *Scene) Update(dt float64) {
	start := time.Now()
	nbody.Step(&s.system, s.config, s.scheme, dt)
	nbody.ApplyTidalTorque(&s.system, s.config, dt)

	if s.metrics != nil {
		s.metrics.ObserveSceneUpdateSeconds(time.Since(start).Seconds())
		if s.baseline != nil {
			current := conservation.Compute(&s.system, s.config.Units.SofteningDist)
			conservation.Record(s.metrics, *s.baseline, current)
		}
	}
}

// Bodies returns a read-only view of the scene's current body slice. The
// returned slice is valid only until the next Update or RemoveBody call.
func (s *Scene) Bodies() []nbody.Body {
	return s.system.Bodies[:s.system.Count]
}

// Time returns the scene's current simulation time.
func (s *Scene) Time() float64 { return s.system.Time }

// AddBody appends a body to the scene, returning false if the scene is at
// capacity.
func (s *Scene) AddBody(b nbody.Body) bool {
	return s.system.AddBody(b)
}

// RemoveBody removes the body at index i, compacting trailing bodies down
// by one slot.
func (s *Scene) RemoveBody(i int) bool {
	return s.system.RemoveBody(i)
}

// SetDisk installs the scene's single disk descriptor, or clears it when
// d is nil.
func (s *Scene) SetDisk(d *diskmodel.Descriptor) { s.disk = d }

// Disk returns the scene's disk descriptor, or nil if none is set.
func (s *Scene) Disk() *diskmodel.Descriptor { return s.disk }

// SetBlackHole installs the scene's single Kerr black hole descriptor, or
// clears it when bh is nil.
func (s *Scene) SetBlackHole(bh *BlackHole) { s.blackHole = bh }

// BlackHole returns the scene's black hole descriptor, or nil if none is
// set.
func (s *Scene) BlackHole() *BlackHole { return s.blackHole }
