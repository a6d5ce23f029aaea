package nbody

import (
	"math"

	"github.com/asgard/orrery/internal/vecmath"
)

// UnitsPreset bundles the softening length, relativistic-GM threshold, and
// speed of light that together calibrate the force model to either a
// dimensionless visualization scale or real SI values. Both presets flow
// through the same Config fields rather than branching into two code
// paths.
type UnitsPreset struct {
	SofteningDist   float64
	RelativisticGM  float64
	SpeedOfLight    float64
}

// NaturalUnits is the dimensionless visualization preset.
func NaturalUnits() UnitsPreset {
	return UnitsPreset{SofteningDist: 0.5, RelativisticGM: 1.0, SpeedOfLight: 100}
}

// SIUnits is the real-world preset (meters, seconds, kilograms via G).
func SIUnits() UnitsPreset {
	return UnitsPreset{SofteningDist: 1e5, RelativisticGM: 1e25, SpeedOfLight: 299792458}
}

// Config bundles the force-model tunables used by every integration scheme.
type Config struct {
	Units             UnitsPreset
	TidalCoefficient  float64
	TidalFactorClamp  float64
}

// DefaultConfig returns NaturalUnits with the default tidal coefficient
// and clamp.
func DefaultConfig() Config {
	return Config{
		Units:            NaturalUnits(),
		TidalCoefficient: 1e-5,
		TidalFactorClamp: 1.0,
	}
}

// Accelerations computes the per-body gravitational acceleration (Plummer
// softened, with 1PN and J2 corrections) under Kahan accumulation, for
// every live body in s. Fixed and dead bodies get a zero acceleration but
// still exert gravity on others.
func Accelerations(s *SystemState, cfg Config) []vecmath.Vec3 {
	n := s.Count
	accumulators := make([]vecmath.KahanVec3, n)
	for i := range accumulators {
		accumulators[i].Init()
	}

	eps2 := cfg.Units.SofteningDist * cfg.Units.SofteningDist

	for i := 0; i < n; i++ {
		bi := s.Bodies[i]
		for j := i + 1; j < n; j++ {
			bj := s.Bodies[j]
			if !bi.active() && !bj.active() {
				continue
			}

			rij := bj.Position.Sub(bi.Position)
			dist2 := rij.NormSquared()
			denom := pow32(dist2 + eps2)

			if bi.active() && !bi.IsFixed {
				accumulators[i].Add(rij.Scale(bj.GM / denom))
			}
			if bj.active() && !bj.IsFixed {
				accumulators[j].Add(rij.Scale(-bi.GM / denom))
			}
		}
	}

	out := make([]vecmath.Vec3, n)
	for i := 0; i < n; i++ {
		out[i] = accumulators[i].Read()
	}

	apply1PN(s, cfg, out)
	applyJ2(s, cfg, out)

	return out
}

// pow32 returns x^(3/2) for x >= 0.
func pow32(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return x * math.Sqrt(x)
}

// apply1PN adds the first post-Newtonian correction to the acceleration of
// any body orbiting a partner whose GM exceeds the configured relativistic
// threshold. The correction is asymmetric: each receiver gets only the
// correction induced by its above-threshold partners, not the reverse.
func apply1PN(s *SystemState, cfg Config, accel []vecmath.Vec3) {
	c2 := cfg.Units.SpeedOfLight * cfg.Units.SpeedOfLight
	n := s.Count
	for i := 0; i < n; i++ {
		receiver := s.Bodies[i]
		if !receiver.active() || receiver.IsFixed {
			continue
		}
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			massive := s.Bodies[j]
			if massive.GM <= cfg.Units.RelativisticGM {
				continue
			}
			toMassive := massive.Position.Sub(receiver.Position)
			r := toMassive.Norm()
			if r < 1e-12 {
				continue
			}
			rHat := toMassive.Scale(1 / r)
			v := receiver.Velocity
			v2 := v.NormSquared()
			vDotR := v.Dot(rHat)

			term := rHat.Scale(4*massive.GM/r - v2).Add(v.Scale(4 * vDotR))
			correction := term.Scale(massive.GM / (r * r * c2))
			accel[i] = accel[i].Add(correction)
		}
	}
}

// applyJ2 adds the oblateness correction for any acting body with J2 > 0
// and radius > 0, in the frame where that body's equator lies in the
// xy-plane (world-z aligned; see the design notes on axis orientation).
func applyJ2(s *SystemState, cfg Config, accel []vecmath.Vec3) {
	n := s.Count
	for j := 0; j < n; j++ {
		acting := s.Bodies[j]
		if acting.J2 <= 0 || acting.Radius <= 0 {
			continue
		}
		for i := 0; i < n; i++ {
			if i == j {
				continue
			}
			receiver := s.Bodies[i]
			if !receiver.active() || receiver.IsFixed {
				continue
			}
			rel := receiver.Position.Sub(acting.Position)
			r := rel.Norm()
			if r < 1e-12 {
				continue
			}
			r2 := r * r
			r5 := r2 * r2 * r
			z2OverR2 := (rel.Z * rel.Z) / r2

			coeff := -1.5 * acting.J2 * acting.GM * acting.Radius * acting.Radius / r5
			correction := vecmath.Vec3{
				X: coeff * (5*z2OverR2 - 1) * rel.X,
				Y: coeff * (5*z2OverR2 - 1) * rel.Y,
				Z: coeff * (5*z2OverR2 - 3) * rel.Z,
			}
			accel[i] = accel[i].Add(correction)
		}
	}
}

// ApplyTidalTorque advances each body's rotation angular velocity by the
// spin-orbit tidal torque from every sufficiently massive partner, via
// explicit Euler (deliberately asymmetric to the RK4 position/velocity
// update: tidal evolution is slow compared to orbital dynamics).
func ApplyTidalTorque(s *SystemState, cfg Config, dt float64) {
	n := s.Count
	for i := 0; i < n; i++ {
		receiver := &s.Bodies[i]
		if !receiver.active() || receiver.IsFixed || receiver.MomentInertia <= 0 {
			continue
		}
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			partner := s.Bodies[j]
			if partner.Mass <= 0.1*receiver.Mass {
				continue
			}
			r := partner.Position.Sub(receiver.Position)
			dv := partner.Velocity.Sub(receiver.Velocity)
			r2 := r.NormSquared()
			if r2 < 1e-12 {
				continue
			}
			omegaOrb := r.Cross(dv).Scale(1 / r2)
			deltaOmega := receiver.AngularVel.Sub(omegaOrb)

			r3 := r2 * math.Sqrt(r2)
			r6 := r3 * r3
			factor := -cfg.TidalCoefficient * partner.GM * partner.GM / r6
			if factor > cfg.TidalFactorClamp {
				factor = cfg.TidalFactorClamp
			}
			if factor < -cfg.TidalFactorClamp {
				factor = -cfg.TidalFactorClamp
			}
			torque := deltaOmega.Scale(factor)
			receiver.AngularVel = receiver.AngularVel.Add(torque.Scale(dt / receiver.MomentInertia))
		}
	}
}
