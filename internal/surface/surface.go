// Package surface defines the procedural planet/star/black-hole
// descriptor contract consumed by the (external) texture generator. The
// core only defines the callback shape; writing pixels is out of scope.
package surface

import (
	"math"

	"github.com/asgard/orrery/internal/vecmath"
)

// ColorFunc maps a point on the unit sphere to a color. Each channel is
// expected in [0,1]; the generator clamps before writing 8-bit RGBA.
type ColorFunc func(unitSpherePoint vecmath.Vec3) vecmath.Vec3

// Descriptor carries a base color, a few scalar physical parameters, and
// an optional surface-color callback. A nil GetSurfaceColor means the
// generator should fall back to BaseColor alone.
type Descriptor struct {
	BaseColor        vecmath.Vec3
	Albedo           float64
	Roughness        float64
	GetSurfaceColor  ColorFunc
}

// EquirectangularToUnitSphere converts normalized UV coordinates
// (u in [0,1] -> longitude in [-pi,pi], v in [0,1] -> latitude in
// [pi/2,-pi/2]) to a point on the unit sphere using the ISO convention
// (x=cos(lat)cos(lon), y=cos(lat)sin(lon), z=sin(lat)).
func EquirectangularToUnitSphere(u, v float64) vecmath.Vec3 {
	lon := u*2*math.Pi - math.Pi
	lat := math.Pi/2 - v*math.Pi
	cosLat := math.Cos(lat)
	return vecmath.Vec3{
		X: cosLat * math.Cos(lon),
		Y: cosLat * math.Sin(lon),
		Z: math.Sin(lat),
	}
}
