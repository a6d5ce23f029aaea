package telemetry

import "testing"

func TestNewLoggerDefaultsToInfoAndStdout(t *testing.T) {
	log := NewLogger("bogus-level", "bogus-output")
	if log == nil {
		t.Fatal("NewLogger returned nil")
	}
}

func TestGetMetricsReturnsSameInstance(t *testing.T) {
	a := GetMetrics()
	b := GetMetrics()
	if a != b {
		t.Errorf("expected GetMetrics to return the same *Metrics on repeated calls")
	}
}

func TestRecordHelpersDoNotPanic(t *testing.T) {
	m := GetMetrics()
	m.RecordGeodesicTraced("Captured")
	m.RecordGeodesicSteps(42)
	m.ObserveConservationDrift("energy", 1e-9)
}
