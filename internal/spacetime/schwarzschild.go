// Package spacetime implements the Schwarzschild and Kerr metrics in
// Boyer-Lindquist coordinates, along with the derived quantities
// (horizons, ISCO, ergosphere, frame-drag, redshift) the geodesic tracer
// and disk model build on.
//
// Every exported function here follows the one-function-per-physical-
// quantity layout of Pricilla/internal/physics/orbital_mechanics.go
// rather than bundling everything behind a single monolithic type.
package spacetime

import "math"

// redshiftSentinel is returned by Schwarzschild gravitational redshift
// when r is at or inside the horizon, where the true value diverges.
const redshiftSentinel = 1e30

// Schwarzschild describes a non-rotating black hole of mass M (geometric
// units, G=c=1).
type Schwarzschild struct {
	M float64
}

// HorizonRadius returns rs = 2M.
func (s Schwarzschild) HorizonRadius() float64 { return 2 * s.M }

// PhotonSphereRadius returns the unstable circular photon orbit radius, 3M.
func (s Schwarzschild) PhotonSphereRadius() float64 { return 3 * s.M }

// ISCORadius returns the innermost stable circular orbit radius, 6M.
func (s Schwarzschild) ISCORadius() float64 { return 6 * s.M }

// Metric returns g_{mu nu} in (t, r, theta, phi) order at the point
// (r, theta); the result is diagonal.
func (s Schwarzschild) Metric(r, theta float64) [4][4]float64 {
	rs := s.HorizonRadius()
	f := 1 - rs/r
	sinTheta := math.Sin(theta)
	var g [4][4]float64
	g[0][0] = -f
	g[1][1] = 1 / f
	g[2][2] = r * r
	g[3][3] = r * r * sinTheta * sinTheta
	return g
}

// Redshift returns z(r) = 1/sqrt(1-rs/r) - 1, or the sentinel when r <= rs.
func (s Schwarzschild) Redshift(r float64) float64 {
	rs := s.HorizonRadius()
	if r <= rs {
		return redshiftSentinel
	}
	return 1/math.Sqrt(1-rs/r) - 1
}
