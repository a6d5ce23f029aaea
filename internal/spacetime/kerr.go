package spacetime

import "math"

// Kerr describes a rotating black hole of mass M and spin parameter a
// (geometric units). Super-extremal inputs (|a| > M) are accepted; the
// horizon-dependent quantities degrade to zero per spec rather than
// panicking, since a caller may be sweeping parameter space.
type Kerr struct {
	M, A float64
}

// sigma returns Sigma = r^2 + a^2 cos^2(theta).
func (k Kerr) sigma(r, theta float64) float64 {
	cosTheta := math.Cos(theta)
	return r*r + k.A*k.A*cosTheta*cosTheta
}

// delta returns Delta = r^2 - 2Mr + a^2.
func (k Kerr) delta(r float64) float64 {
	return r*r - 2*k.M*r + k.A*k.A
}

// discriminant returns M^2 - a^2, the quantity under the horizon square root.
func (k Kerr) discriminant() float64 {
	return k.M*k.M - k.A*k.A
}

// Horizons returns (r_plus, r_minus); both are zero when the hole is
// super-extremal (|a| > M).
func (k Kerr) Horizons() (rPlus, rMinus float64) {
	disc := k.discriminant()
	if disc < 0 {
		return 0, 0
	}
	root := math.Sqrt(disc)
	return k.M + root, k.M - root
}

// ErgosphereRadius returns r_ergo(theta) = M + sqrt(M^2 - a^2 cos^2(theta)).
// Returns 0 if the radicand is negative (super-extremal).
func (k Kerr) ErgosphereRadius(theta float64) float64 {
	cosTheta := math.Cos(theta)
	radicand := k.M*k.M - k.A*k.A*cosTheta*cosTheta
	if radicand < 0 {
		return 0
	}
	return k.M + math.Sqrt(radicand)
}

// FrameDragOmega returns omega(r, theta), the angular velocity a ZAMO is
// dragged at: 2Mar / [(r^2+a^2)^2 - a^2 Delta sin^2(theta)].
func (k Kerr) FrameDragOmega(r, theta float64) float64 {
	sinTheta := math.Sin(theta)
	num := 2 * k.M * k.A * r
	denom := math.Pow(r*r+k.A*k.A, 2) - k.A*k.A*k.delta(r)*sinTheta*sinTheta
	if denom == 0 {
		return 0
	}
	return num / denom
}

// ISCORadius returns the Bardeen-Press-Teukolsky innermost stable circular
// orbit radius for the given orbital sense.
func (k Kerr) ISCORadius(prograde bool) float64 {
	if k.M == 0 {
		return 0
	}
	chi := k.A / k.M
	z1 := 1 + math.Cbrt(1-chi*chi)*(math.Cbrt(1+chi)+math.Cbrt(1-chi))
	z2 := math.Sqrt(3*chi*chi + z1*z1)
	sign := -1.0
	if !prograde {
		sign = 1.0
	}
	return k.M * (3 + z2 + sign*math.Sqrt((3-z1)*(3+z1+2*z2)))
}

// Metric returns g_{mu nu} in (t, r, theta, phi) order at (r, theta).
func (k Kerr) Metric(r, theta float64) [4][4]float64 {
	sigma := k.sigma(r, theta)
	delta := k.delta(r)
	sinTheta := math.Sin(theta)
	sin2 := sinTheta * sinTheta

	var g [4][4]float64
	g[0][0] = -(1 - 2*k.M*r/sigma)
	g[0][3] = -2 * k.M * k.A * r * sin2 / sigma
	g[3][0] = g[0][3]
	g[1][1] = sigma / delta
	g[2][2] = sigma
	g[3][3] = (math.Pow(r*r+k.A*k.A, 2) - k.A*k.A*delta*sin2) * sin2 / sigma
	return g
}

// InverseMetric returns g^{mu nu} at (r, theta). The (t, phi) block is
// inverted analytically as a 2x2 system; the (r,r) and (theta,theta)
// entries are reciprocals of their diagonal counterparts.
func (k Kerr) InverseMetric(r, theta float64) [4][4]float64 {
	g := k.Metric(r, theta)

	var ginv [4][4]float64
	// 2x2 block [[g_tt, g_tphi],[g_tphi, g_phiphi]]; inverse of a 2x2
	// matrix [[a,b],[b,d]] is 1/(ad-b^2) * [[d,-b],[-b,a]].
	a, b, d := g[0][0], g[0][3], g[3][3]
	det := a*d - b*b
	if det != 0 {
		ginv[0][0] = d / det
		ginv[0][3] = -b / det
		ginv[3][0] = -b / det
		ginv[3][3] = a / det
	}
	if g[1][1] != 0 {
		ginv[1][1] = 1 / g[1][1]
	}
	if g[2][2] != 0 {
		ginv[2][2] = 1 / g[2][2]
	}
	return ginv
}
