package surface

import (
	"math"
	"testing"

	"github.com/asgard/orrery/internal/vecmath"
)

func TestEquirectangularCornersMapToPoles(t *testing.T) {
	north := EquirectangularToUnitSphere(0.5, 0)
	if math.Abs(north.Z-1) > 1e-9 {
		t.Errorf("v=0 should map to north pole, got %+v", north)
	}
	south := EquirectangularToUnitSphere(0.5, 1)
	if math.Abs(south.Z+1) > 1e-9 {
		t.Errorf("v=1 should map to south pole, got %+v", south)
	}
}

func TestRockyPlanetColorFuncStaysInUnitBall(t *testing.T) {
	d := RockyPlanet(vecmath.Vec3{X: 0.6, Y: 0.4, Z: 0.2})
	for _, v := range []float64{0, 0.25, 0.5, 0.75, 1} {
		p := EquirectangularToUnitSphere(0.3, v)
		c := d.GetSurfaceColor(p)
		if c.X < 0 || c.Y < 0 || c.Z < 0 {
			t.Errorf("GetSurfaceColor(%+v) = %+v has negative channel", p, c)
		}
		if c.Norm() > 1 {
			t.Errorf("GetSurfaceColor(%+v) = %+v lies outside the unit ball", p, c)
		}
	}
}
