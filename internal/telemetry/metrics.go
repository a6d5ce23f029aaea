package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the Prometheus collectors this module exposes, grouped
// by subsystem the way Pricilla/internal/metrics/prometheus.go groups its
// mission/trajectory/navigation collectors.
type Metrics struct {
	SceneUpdatesTotal   prometheus.Counter
	SceneUpdateSeconds  prometheus.Histogram
	ConservationDrifts  *prometheus.GaugeVec
	GeodesicsTraced     *prometheus.CounterVec
	GeodesicStepsTotal  prometheus.Counter
	EcsSnapshotBytes    prometheus.Histogram
	LivefeedConnections prometheus.Gauge
}

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// GetMetrics returns the process-wide Metrics registry, constructing and
// registering its collectors on first call.
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = newMetrics()
	})
	return globalMetrics
}

func newMetrics() *Metrics {
	return &Metrics{
		SceneUpdatesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "orrery",
			Subsystem: "scene",
			Name:      "updates_total",
			Help:      "Total number of scene.Update(dt) calls.",
		}),
		SceneUpdateSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "orrery",
			Subsystem: "scene",
			Name:      "update_seconds",
			Help:      "Wall-clock duration of scene.Update(dt) calls.",
			Buckets:   prometheus.DefBuckets,
		}),
		ConservationDrifts: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "orrery",
			Subsystem: "conservation",
			Name:      "drift_relative",
			Help:      "Most recent relative drift of a conserved quantity against its value when tracking began, by component.",
		}, []string{"component"}),
		GeodesicsTraced: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "orrery",
			Subsystem: "geodesic",
			Name:      "traced_total",
			Help:      "Count of completed geodesic propagations by terminal status.",
		}, []string{"status"}),
		GeodesicStepsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "orrery",
			Subsystem: "geodesic",
			Name:      "steps_total",
			Help:      "Cumulative adaptive-step count across all geodesic propagations.",
		}),
		EcsSnapshotBytes: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "orrery",
			Subsystem: "ecs",
			Name:      "snapshot_bytes",
			Help:      "Size in bytes of ECS snapshot payloads written.",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
		}),
		LivefeedConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "orrery",
			Subsystem: "livefeed",
			Name:      "connections",
			Help:      "Current number of connected telemetry websocket clients.",
		}),
	}
}

// RecordGeodesicTraced increments the geodesic-traced counter for the
// given terminal status label.
func (m *Metrics) RecordGeodesicTraced(status string) {
	m.GeodesicsTraced.WithLabelValues(status).Inc()
}

// RecordGeodesicSteps adds steps to the cumulative adaptive-step counter.
func (m *Metrics) RecordGeodesicSteps(steps int) {
	m.GeodesicStepsTotal.Add(float64(steps))
}

// ObserveSceneUpdateSeconds records the wall-clock duration of a single
// scene.Update(dt) call.
func (m *Metrics) ObserveSceneUpdateSeconds(seconds float64) {
	m.SceneUpdateSeconds.Observe(seconds)
}

// ObserveConservationDrift sets the drift gauge for the named invariant
// component ("energy", "linear_momentum", "angular_momentum") to its most
// recently measured relative drift.
func (m *Metrics) ObserveConservationDrift(component string, drift float64) {
	m.ConservationDrifts.WithLabelValues(component).Set(drift)
}

// ObserveEcsSnapshotBytes records the size of a marshaled ECS snapshot
// payload.
func (m *Metrics) ObserveEcsSnapshotBytes(bytes int) {
	m.EcsSnapshotBytes.Observe(float64(bytes))
}
