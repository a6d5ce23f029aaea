package tensor

import "github.com/asgard/orrery/internal/vecmath"

// DefaultStep is the central-difference step size used when a caller does
// not supply one explicitly.
const DefaultStep = 1e-5

// MetricFunc evaluates the metric at a spacetime point. Spacetime metrics
// in internal/spacetime read r from p.X and theta from p.Y, following the
// (t, r, theta, phi) coordinate convention used throughout the geodesic
// tracer.
type MetricFunc func(p vecmath.Vec4) Metric

// Christoffel holds the 64 second-kind Christoffel symbols Gamma^alpha_{mu nu}
// at a point, indexed [alpha][mu][nu].
type Christoffel [4][4][4]float64

// ComputeChristoffel evaluates the Christoffel symbols of metric at p by
// central-difference differentiation of f with step h, symmetrizing the
// lower two indices as the analytic symbols require.
func ComputeChristoffel(f MetricFunc, p vecmath.Vec4, h float64) (Christoffel, error) {
	g := f(p)
	ginv, err := g.Inverse()
	if err != nil {
		return Christoffel{}, err
	}

	// partial[beta][mu][nu] = d g_{mu nu} / d x^beta
	var partial [4][4][4]float64
	for beta := 0; beta < 4; beta++ {
		plus := f(shift(p, beta, h))
		minus := f(shift(p, beta, -h))
		for mu := 0; mu < 4; mu++ {
			for nu := 0; nu < 4; nu++ {
				partial[beta][mu][nu] = (plus[mu][nu] - minus[mu][nu]) / (2 * h)
			}
		}
	}

	var gamma Christoffel
	for alpha := 0; alpha < 4; alpha++ {
		for mu := 0; mu < 4; mu++ {
			for nu := mu; nu < 4; nu++ {
				sum := 0.0
				for beta := 0; beta < 4; beta++ {
					sum += ginv[alpha][beta] * (partial[mu][beta][nu] + partial[nu][beta][mu] - partial[beta][mu][nu])
				}
				val := 0.5 * sum
				gamma[alpha][mu][nu] = val
				gamma[alpha][nu][mu] = val
			}
		}
	}
	return gamma, nil
}

// shift returns p with its axis-th coordinate (0=T,1=X,2=Y,3=Z) offset by delta.
func shift(p vecmath.Vec4, axis int, delta float64) vecmath.Vec4 {
	switch axis {
	case 0:
		p.T += delta
	case 1:
		p.X += delta
	case 2:
		p.Y += delta
	case 3:
		p.Z += delta
	}
	return p
}

// Contract computes the geodesic acceleration term -Gamma^alpha_{mu nu} u^mu u^nu
// for the given four-velocity u, returning the four components indexed by alpha.
func (c Christoffel) Contract(u vecmath.Vec4) vecmath.Vec4 {
	uc := [4]float64{u.T, u.X, u.Y, u.Z}
	var out [4]float64
	for alpha := 0; alpha < 4; alpha++ {
		sum := 0.0
		for mu := 0; mu < 4; mu++ {
			for nu := 0; nu < 4; nu++ {
				sum += c[alpha][mu][nu] * uc[mu] * uc[nu]
			}
		}
		out[alpha] = -sum
	}
	return vecmath.Vec4{T: out[0], X: out[1], Y: out[2], Z: out[3]}
}
