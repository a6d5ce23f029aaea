package spacetime

import (
	"github.com/asgard/orrery/internal/tensor"
	"github.com/asgard/orrery/internal/vecmath"
)

// AsTensorFunc adapts a raw (t,r,theta,phi) metric function — Schwarzschild.Metric
// or Kerr.Metric — into a tensor.MetricFunc, reading r from p.X and theta
// from p.Y per the coordinate convention used by internal/geodesic.
func AsTensorFunc(metric func(r, theta float64) [4][4]float64) tensor.MetricFunc {
	return func(p vecmath.Vec4) tensor.Metric {
		return tensor.Metric(metric(p.X, p.Y))
	}
}

// SchwarzschildTensorFunc returns s.Metric as a tensor.MetricFunc.
func SchwarzschildTensorFunc(s Schwarzschild) tensor.MetricFunc {
	return AsTensorFunc(s.Metric)
}

// KerrTensorFunc returns k.Metric as a tensor.MetricFunc.
func KerrTensorFunc(k Kerr) tensor.MetricFunc {
	return AsTensorFunc(k.Metric)
}
