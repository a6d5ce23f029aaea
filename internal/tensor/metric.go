// Package tensor implements the 4x4 symmetric metric tensor algebra and
// the generic numerical Christoffel-symbol computation that every
// spacetime metric in internal/spacetime is built on.
//
// The dense linear algebra (determinant, inversion) is delegated to
// gonum.org/v1/gonum/mat, the same matrix library
// Valkyrie/internal/fusion/ekf.go already depends on for its covariance
// propagation — a 4x4 symmetric inverse is the same kind of small dense
// problem, just smaller.
package tensor

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/asgard/orrery/internal/simerr"
	"github.com/asgard/orrery/internal/vecmath"
)

// singularDetTolerance is the determinant magnitude below which a metric
// is considered singular, per spec.
const singularDetTolerance = 1e-15

// Metric is a 4x4 symmetric matrix g_{mu nu}, indexed [mu][nu] in
// (t, x, y, z) order.
type Metric [4][4]float64

// Minkowski is the flat spacetime metric diag(-1, +1, +1, +1).
var Minkowski = Metric{
	{-1, 0, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 1, 0},
	{0, 0, 0, 1},
}

// IsSymmetric reports whether g[mu][nu] == g[nu][mu] within tol for every
// index pair.
func (g Metric) IsSymmetric(tol float64) bool {
	for mu := 0; mu < 4; mu++ {
		for nu := mu + 1; nu < 4; nu++ {
			if math.Abs(g[mu][nu]-g[nu][mu]) > tol {
				return false
			}
		}
	}
	return true
}

func (g Metric) dense() *mat.Dense {
	data := make([]float64, 16)
	for mu := 0; mu < 4; mu++ {
		for nu := 0; nu < 4; nu++ {
			data[mu*4+nu] = g[mu][nu]
		}
	}
	return mat.NewDense(4, 4, data)
}

func fromDense(d *mat.Dense) Metric {
	var out Metric
	for mu := 0; mu < 4; mu++ {
		for nu := 0; nu < 4; nu++ {
			out[mu][nu] = d.At(mu, nu)
		}
	}
	return out
}

// Det returns the determinant of g.
func (g Metric) Det() float64 {
	return mat.Det(g.dense())
}

// Inverse returns g^{mu nu} such that g^{mu alpha} g_{alpha nu} = delta,
// or simerr.ErrSingularMetric if |det(g)| is below tolerance.
func (g Metric) Inverse() (Metric, error) {
	det := g.Det()
	if math.Abs(det) < singularDetTolerance {
		return Metric{}, simerr.ErrSingularMetric
	}

	var inv mat.Dense
	if err := inv.Inverse(g.dense()); err != nil {
		return Metric{}, simerr.Wrap(err, simerr.CodeSingularMetric, "gonum inversion failed")
	}
	return fromDense(&inv), nil
}

// Lower maps a contravariant vector v^mu to the covariant v_mu = g_{mu nu} v^nu.
func (g Metric) Lower(v vecmath.Vec4) vecmath.Vec4 {
	comp := [4]float64{v.T, v.X, v.Y, v.Z}
	var out [4]float64
	for mu := 0; mu < 4; mu++ {
		sum := 0.0
		for nu := 0; nu < 4; nu++ {
			sum += g[mu][nu] * comp[nu]
		}
		out[mu] = sum
	}
	return vecmath.Vec4{T: out[0], X: out[1], Y: out[2], Z: out[3]}
}

// Raise maps a covariant vector v_mu to the contravariant v^mu = g^{mu nu} v_nu,
// where ginv is the (pre-computed) inverse metric.
func (ginv Metric) Raise(v vecmath.Vec4) vecmath.Vec4 {
	return ginv.Lower(v)
}

// Dot computes the generalized inner product g_{mu nu} a^mu b^nu.
func (g Metric) Dot(a, b vecmath.Vec4) float64 {
	ac := [4]float64{a.T, a.X, a.Y, a.Z}
	bc := [4]float64{b.T, b.X, b.Y, b.Z}
	sum := 0.0
	for mu := 0; mu < 4; mu++ {
		for nu := 0; nu < 4; nu++ {
			sum += g[mu][nu] * ac[mu] * bc[nu]
		}
	}
	return sum
}
