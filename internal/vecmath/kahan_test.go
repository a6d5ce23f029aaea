package vecmath

import (
	"math"
	"testing"
)

func TestKahanSumBeatsNaive(t *testing.T) {
	var k KahanSum
	k.Init()

	naive := 0.0
	const n = 100000
	const term = 1.0 + 1e-10

	for i := 0; i < n; i++ {
		k.Add(term)
		naive += term
	}

	want := float64(n) * term
	kahanErr := math.Abs(k.Read() - want)
	naiveErr := math.Abs(naive - want)

	if kahanErr > naiveErr {
		t.Errorf("Kahan summation (err %v) should not be worse than naive (err %v)", kahanErr, naiveErr)
	}
}

func TestKahanVec3(t *testing.T) {
	var k KahanVec3
	k.Init()
	k.Add(Vec3{1, 2, 3})
	k.Add(Vec3{4, 5, 6})
	got := k.Read()
	want := Vec3{5, 7, 9}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
