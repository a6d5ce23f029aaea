// Package diskmodel implements the Novikov-Thorne thin accretion disk:
// ISCO-anchored temperature and flux, Keplerian orbital velocity,
// combined gravitational/Doppler redshift, and blackbody-locus coloring.
// Follows the zoned-piecewise-analytic style of
// Pricilla/internal/physics/orbital_mechanics.go's
// CalculateRadiationEnvironment (a function per radius-dependent physical
// quantity, each independently testable).
package diskmodel

import (
	"math"

	"github.com/asgard/orrery/internal/vecmath"
)

// redshiftSentinel guards the gravitational-redshift denominator from
// going non-positive near the horizon.
const redshiftSentinel = 1e30

// Descriptor is the geometric and accretion parameters of a thin disk.
type Descriptor struct {
	InnerRadius float64 // conventionally the ISCO radius
	OuterRadius float64
	Mdot        float64 // dimensionless accretion rate
	Inclination float64 // radians
}

// Params bundles the black hole parameters the disk model needs beyond
// its own descriptor: mass M, spin a, ISCO radius, and horizon radius rs.
type Params struct {
	M      float64
	A      float64
	ISCO   float64
	Rs     float64
}

// efficiencyQ returns the Novikov-Thorne efficiency factor
// Q(r) = (1 - sqrt(isco/r))^(1/4), clamped to [0,1].
func efficiencyQ(r, isco float64) float64 {
	if r <= 0 {
		return 0
	}
	inner := 1 - math.Sqrt(isco/r)
	if inner < 0 {
		return 0
	}
	q := math.Pow(inner, 0.25)
	if q < 0 {
		return 0
	}
	if q > 1 {
		return 1
	}
	return q
}

// Temperature returns the (unnormalized) temperature at radius r; zero
// outside [ISCO, outer_radius].
func Temperature(r float64, d Descriptor, p Params) float64 {
	if r < d.InnerRadius || r > d.OuterRadius {
		return 0
	}
	base := math.Pow(p.ISCO/r, 0.75)
	return base * efficiencyQ(r, p.ISCO)
}

// circularOrbitEnergy returns E(r) = (1 - 2M/r + a*sqrt(M)/r^1.5) / sqrt(1 - 3M/r + 2a*sqrt(M)/r^1.5).
// Returns (energy, ok); ok is false inside the photon orbit where the
// denominator is non-positive.
func circularOrbitEnergy(r float64, p Params) (float64, bool) {
	sqrtM := math.Sqrt(p.M)
	r15 := math.Pow(r, 1.5)
	numerator := 1 - 2*p.M/r + p.A*sqrtM/r15
	denomSq := 1 - 3*p.M/r + 2*p.A*sqrtM/r15
	if denomSq <= 0 {
		return 0, false
	}
	return numerator / math.Sqrt(denomSq), true
}

// Flux returns F(r) = (mdot / r^3) * (1/-E(r)) * Q(r); zero inside the
// photon orbit.
func Flux(r float64, d Descriptor, p Params) float64 {
	if r <= 0 {
		return 0
	}
	energy, ok := circularOrbitEnergy(r, p)
	if !ok || energy == 0 {
		return 0
	}
	q := efficiencyQ(r, p.ISCO)
	return (d.Mdot / (r * r * r)) * (1 / -energy) * q
}

// KeplerianOmega returns Omega_K(r) = sqrt(M) / (r^1.5 + a*sqrt(M)).
func KeplerianOmega(r float64, p Params) float64 {
	sqrtM := math.Sqrt(p.M)
	denom := math.Pow(r, 1.5) + p.A*sqrtM
	if denom == 0 {
		return 0
	}
	return sqrtM / denom
}

// TangentialVelocity returns v^phi = r*(Omega_K(r) - omega), the velocity
// relative to the local ZAMO frame.
func TangentialVelocity(r, omega float64, p Params) float64 {
	return r * (KeplerianOmega(r, p) - omega)
}

// GravitationalRedshift returns z_grav = 1/sqrt(1-rs/r) - 1, or the
// sentinel when (1 - rs/r) < 0.01.
func GravitationalRedshift(r float64, p Params) float64 {
	factor := 1 - p.Rs/r
	if factor < 0.01 {
		return redshiftSentinel
	}
	return 1/math.Sqrt(factor) - 1
}

// CombinedRedshift folds gravitational redshift and Doppler shift from the
// orbital motion into a single (1+z) factor, and the corresponding
// Doppler brightness factor g = 1/(1+z).
func CombinedRedshift(r, phi float64, vPhi float64, d Descriptor, p Params) (onePlusZ, dopplerG float64) {
	zGrav := GravitationalRedshift(r, p)
	if zGrav >= redshiftSentinel {
		return redshiftSentinel, 0
	}
	vLos := vPhi * math.Sin(phi) * math.Sin(d.Inclination)
	onePlusZ = (1 + zGrav) * (1 + vLos)
	if onePlusZ == 0 {
		return redshiftSentinel, 0
	}
	return onePlusZ, 1 / onePlusZ
}

// BlackbodyColor maps a normalized temperature tau in [0,1] through a
// piecewise-linear Planckian-locus approximation, then applies the
// Doppler/gravitational shift g as a bolometric-beaming brightness
// multiplier (g^4, clamped to [0.05, 5.0]) and a spectral shift of
// magnitude |z|*0.3 (reddened for z>0, blued for z<0).
func BlackbodyColor(tau float64, dopplerG float64) vecmath.Vec3 {
	if tau < 0 {
		tau = 0
	}
	if tau > 1 {
		tau = 1
	}

	base := planckianLocus(tau)

	z := 1/dopplerGOrOne(dopplerG) - 1
	shift := math.Abs(z) * 0.3
	if z > 0 {
		// redshift: push toward red, dim slightly in blue channel
		base.Z = math.Max(0, base.Z-shift)
		base.X = math.Min(1, base.X+shift*0.3)
	} else if z < 0 {
		// blueshift: push toward blue
		base.X = math.Max(0, base.X-shift)
		base.Z = math.Min(1, base.Z+shift*0.3)
	}

	brightness := math.Pow(dopplerG, 4)
	if brightness < 0.05 {
		brightness = 0.05
	}
	if brightness > 5.0 {
		brightness = 5.0
	}

	return vecmath.Vec3{
		X: clamp01(base.X * brightness),
		Y: clamp01(base.Y * brightness),
		Z: clamp01(base.Z * brightness),
	}
}

func dopplerGOrOne(g float64) float64 {
	if g <= 0 {
		return 1
	}
	return g
}

// planckianLocus returns the unshifted RGB color for normalized
// temperature tau, piecewise-linear across four bands: deep red, red to
// orange, orange to yellow, yellow to white-with-blue-bias.
func planckianLocus(tau float64) vecmath.Vec3 {
	switch {
	case tau < 0.2:
		t := tau / 0.2
		return lerp(vecmath.Vec3{X: 0.3, Y: 0.0, Z: 0.0}, vecmath.Vec3{X: 0.8, Y: 0.2, Z: 0.0}, t)
	case tau < 0.5:
		t := (tau - 0.2) / 0.3
		return lerp(vecmath.Vec3{X: 0.8, Y: 0.2, Z: 0.0}, vecmath.Vec3{X: 1.0, Y: 0.6, Z: 0.1}, t)
	case tau < 0.8:
		t := (tau - 0.5) / 0.3
		return lerp(vecmath.Vec3{X: 1.0, Y: 0.6, Z: 0.1}, vecmath.Vec3{X: 1.0, Y: 0.95, Z: 0.8}, t)
	default:
		t := (tau - 0.8) / 0.2
		return lerp(vecmath.Vec3{X: 1.0, Y: 0.95, Z: 0.8}, vecmath.Vec3{X: 0.9, Y: 0.95, Z: 1.0}, t)
	}
}

func lerp(a, b vecmath.Vec3, t float64) vecmath.Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
