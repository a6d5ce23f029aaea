package vecmath

import "math"

// nullEpsilon is the tolerance used by IsNull to classify a Minkowski norm
// as zero.
const nullEpsilon = 1e-9

// Vec4 is a 4-component vector with components ordered (T, X, Y, Z), used
// throughout the geodesic tracer for spacetime coordinates and
// four-velocities.
type Vec4 struct {
	T, X, Y, Z float64
}

// Add returns the componentwise sum.
func (v Vec4) Add(o Vec4) Vec4 {
	return Vec4{v.T + o.T, v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the componentwise difference.
func (v Vec4) Sub(o Vec4) Vec4 {
	return Vec4{v.T - o.T, v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{v.T * s, v.X * s, v.Y * s, v.Z * s}
}

// Negate returns -v.
func (v Vec4) Negate() Vec4 {
	return Vec4{-v.T, -v.X, -v.Y, -v.Z}
}

// Spatial returns the (X, Y, Z) part of v as a Vec3, discarding T.
func (v Vec4) Spatial() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// MinkowskiDot returns the mostly-plus Minkowski inner product
// <a,b> = -a_t b_t + a_x b_x + a_y b_y + a_z b_z.
func MinkowskiDot(a, b Vec4) float64 {
	return -a.T*b.T + a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// MinkowskiNormSquared returns <v,v>.
func MinkowskiNormSquared(v Vec4) float64 {
	return MinkowskiDot(v, v)
}

// IsNull reports whether v is (numerically) a null vector: |<v,v>| < eps.
func IsNull(v Vec4) bool {
	return math.Abs(MinkowskiNormSquared(v)) < nullEpsilon
}

// IsTimelike reports whether v is timelike: <v,v> < 0 (mostly-plus
// convention).
func IsTimelike(v Vec4) bool {
	return MinkowskiNormSquared(v) < 0 && !IsNull(v)
}

// IsSpacelike reports whether v is spacelike: <v,v> > 0.
func IsSpacelike(v Vec4) bool {
	return MinkowskiNormSquared(v) > 0 && !IsNull(v)
}
