package geodesic

import (
	"math"

	"github.com/asgard/orrery/internal/tensor"
	"github.com/asgard/orrery/internal/vecmath"
)

// Camera describes a pinhole camera in Cartesian spacetime coordinates,
// used to seed photon geodesics for image generation.
type Camera struct {
	Position vecmath.Vec3
	Forward  vecmath.Vec3
	Up       vecmath.Vec3
	HalfFoV  float64 // radians
}

// sphericalJacobian returns the Jacobian rows mapping a Cartesian
// direction to (dr, dtheta, dphi) at the given spherical point, i.e. the
// partial derivatives of (r, theta, phi) with respect to (x, y, z).
func sphericalJacobian(r, theta, phi float64) (drow, thetaRow, phiRow vecmath.Vec3) {
	sinTheta := math.Sin(theta)
	cosTheta := math.Cos(theta)
	sinPhi := math.Sin(phi)
	cosPhi := math.Cos(phi)

	drow = vecmath.Vec3{X: sinTheta * cosPhi, Y: sinTheta * sinPhi, Z: cosTheta}
	if r == 0 {
		return drow, vecmath.Vec3{}, vecmath.Vec3{}
	}
	thetaRow = vecmath.Vec3{
		X: cosTheta * cosPhi / r,
		Y: cosTheta * sinPhi / r,
		Z: -sinTheta / r,
	}
	if sinTheta == 0 {
		phiRow = vecmath.Vec3{}
		return drow, thetaRow, phiRow
	}
	phiRow = vecmath.Vec3{
		X: -sinPhi / (r * sinTheta),
		Y: cosPhi / (r * sinTheta),
		Z: 0,
	}
	return drow, thetaRow, phiRow
}

// Ray projects normalized pixel coordinates (u, v) in [-1, 1] through the
// camera into a photon geodesic initial state at the given coordinate time.
func (cam Camera) Ray(u, v float64, g tensor.Metric, t float64) State {
	forward := cam.Forward.Normalize()
	right := forward.Cross(cam.Up).Normalize()
	up := right.Cross(forward)

	tanHalf := math.Tan(cam.HalfFoV)
	dir := forward.Add(right.Scale(u * tanHalf)).Add(up.Scale(v * tanHalf)).Normalize()

	r, theta, phi := cam.Position.ToSpherical()
	drow, thetaRow, phiRow := sphericalJacobian(r, theta, phi)

	dr := drow.Dot(dir)
	dtheta := thetaRow.Dot(dir)
	dphi := phiRow.Dot(dir)

	pos := vecmath.Vec4{T: t, X: r, Y: theta, Z: phi}
	return InitNullFromDirection(g, pos, dr, dtheta, dphi)
}
