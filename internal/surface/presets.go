package surface

import (
	"math"

	"github.com/asgard/orrery/internal/vecmath"
)

// RockyPlanet returns a descriptor whose surface color darkens toward the
// poles and lightens near the equator, a simple illustrative stand-in for
// a latitude-banded terrain texture.
func RockyPlanet(base vecmath.Vec3) Descriptor {
	return Descriptor{
		BaseColor: base,
		Albedo:    0.3,
		Roughness: 0.8,
		GetSurfaceColor: func(p vecmath.Vec3) vecmath.Vec3 {
			latBand := 1 - math.Abs(p.Z)
			return base.Scale(0.5 + 0.5*latBand)
		},
	}
}

// StarSurface returns a descriptor whose surface color is uniform (a
// star's photosphere has no GetSurfaceColor banding — the disk model
// handles its own emission separately).
func StarSurface(base vecmath.Vec3) Descriptor {
	return Descriptor{
		BaseColor: base,
		Albedo:    1.0,
		GetSurfaceColor: func(p vecmath.Vec3) vecmath.Vec3 {
			return base
		},
	}
}
