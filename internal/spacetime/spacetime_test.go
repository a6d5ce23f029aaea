package spacetime

import (
	"math"
	"testing"
)

func TestSchwarzschildRadiiAtUnitMass(t *testing.T) {
	s := Schwarzschild{M: 1}
	if got := s.HorizonRadius(); got != 2 {
		t.Errorf("rs = %v, want 2", got)
	}
	if got := s.PhotonSphereRadius(); got != 3 {
		t.Errorf("photon sphere = %v, want 3", got)
	}
	if got := s.ISCORadius(); got != 6 {
		t.Errorf("ISCO = %v, want 6", got)
	}
}

func TestSchwarzschildRedshiftSentinel(t *testing.T) {
	s := Schwarzschild{M: 1}
	if got := s.Redshift(2); got < 1e30 {
		t.Errorf("Redshift(rs) = %v, want >= 1e30 sentinel", got)
	}
	if got := s.Redshift(1.5); got < 1e30 {
		t.Errorf("Redshift(r<rs) = %v, want >= 1e30 sentinel", got)
	}
}

func TestKerrReducesToSchwarzschildAtZeroSpin(t *testing.T) {
	s := Schwarzschild{M: 1}
	k := Kerr{M: 1, A: 0}

	for _, r := range []float64{4, 7, 20} {
		for _, theta := range []float64{0.3, math.Pi / 2, 2.5} {
			gs := s.Metric(r, theta)
			gk := k.Metric(r, theta)
			for mu := 0; mu < 4; mu++ {
				for nu := 0; nu < 4; nu++ {
					if math.Abs(gs[mu][nu]-gk[mu][nu]) > 1e-12 {
						t.Errorf("r=%v theta=%v: g[%d][%d] schwarzschild=%v kerr=%v", r, theta, mu, nu, gs[mu][nu], gk[mu][nu])
					}
				}
			}
		}
	}
}

func TestKerrHorizonSumAndProduct(t *testing.T) {
	k := Kerr{M: 2, A: 1.2}
	rPlus, rMinus := k.Horizons()
	if got, want := rPlus+rMinus, 2*k.M; math.Abs(got-want) > 1e-12 {
		t.Errorf("r+ + r- = %v, want %v", got, want)
	}
	if got, want := rPlus*rMinus, k.A*k.A; math.Abs(got-want) > 1e-12 {
		t.Errorf("r+ * r- = %v, want %v", got, want)
	}
}

func TestKerrSuperExtremalHorizonsAreZero(t *testing.T) {
	k := Kerr{M: 1, A: 1.5}
	rPlus, rMinus := k.Horizons()
	if rPlus != 0 || rMinus != 0 {
		t.Errorf("super-extremal horizons = (%v, %v), want (0, 0)", rPlus, rMinus)
	}
}

func TestKerrFrameDragPositiveAndMonotoneDecreasing(t *testing.T) {
	k := Kerr{M: 1, A: 0.8}
	theta := math.Pi / 2
	prev := math.Inf(1)
	for _, r := range []float64{3, 5, 10, 20, 50} {
		omega := k.FrameDragOmega(r, theta)
		if omega <= 0 {
			t.Errorf("omega(r=%v) = %v, want > 0", r, omega)
		}
		if omega >= prev {
			t.Errorf("omega(r=%v) = %v, want < previous %v (monotone decreasing)", r, omega, prev)
		}
		prev = omega
	}
}

func TestKerrISCOScenarioD(t *testing.T) {
	k := Kerr{M: 1, A: 0.9}
	if got, want := k.ISCORadius(true), 2.321; math.Abs(got-want) > 1e-3 {
		t.Errorf("prograde ISCO = %v, want ~%v", got, want)
	}
	if got, want := k.ISCORadius(false), 8.717; math.Abs(got-want) > 1e-3 {
		t.Errorf("retrograde ISCO = %v, want ~%v", got, want)
	}
}
