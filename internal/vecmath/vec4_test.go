package vecmath

import (
	"math"
	"testing"
)

func TestMinkowskiNormInvariant(t *testing.T) {
	vs := []Vec4{
		{1, 0, 0, 0},
		{2, 1, 1, 1},
		{0.5, 3, -2, 4},
	}
	for _, v := range vs {
		got := MinkowskiNormSquared(v)
		want := -v.T*v.T + v.X*v.X + v.Y*v.Y + v.Z*v.Z
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("MinkowskiNormSquared(%+v) = %v, want %v", v, got, want)
		}
	}
}

func TestClassificationPredicates(t *testing.T) {
	null := Vec4{1, 1, 0, 0}
	if !IsNull(null) {
		t.Errorf("expected %+v to be null", null)
	}

	timelike := Vec4{1, 0.1, 0, 0}
	if !IsTimelike(timelike) {
		t.Errorf("expected %+v to be timelike", timelike)
	}

	spacelike := Vec4{0.1, 1, 0, 0}
	if !IsSpacelike(spacelike) {
		t.Errorf("expected %+v to be spacelike", spacelike)
	}
}
