// Package api exposes a read-only HTTP surface over a scene.Scene: a JSON
// body listing, a binary ECS scene snapshot, and healthz/metrics
// endpoints. Routing follows the handler-per-route chi style of
// Pricilla/internal/access/http_handler.go.
package api

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/asgard/orrery/internal/ecs"
	"github.com/asgard/orrery/internal/nbody"
	"github.com/asgard/orrery/internal/scene"
)

// Server wraps a scene.Scene, a logger, and an optional metrics sink
// behind an http.Handler.
type Server struct {
	scene   *scene.Scene
	logger  telemetryLogger
	metrics snapshotMetrics
}

// telemetryLogger is the subset of *logrus.Logger this package uses,
// narrowed so callers can inject a test double without pulling in logrus.
type telemetryLogger interface {
	Errorf(format string, args ...interface{})
}

// snapshotMetrics is the subset of telemetry.Metrics the snapshot handler
// uses. Satisfied by *telemetry.Metrics; a nil value disables recording.
type snapshotMetrics interface {
	ObserveEcsSnapshotBytes(bytes int)
}

// NewServer builds a chi router exposing the scene's read API. metrics may
// be nil, in which case snapshot size is not recorded.
func NewServer(s *scene.Scene, logger telemetryLogger, metrics snapshotMetrics) http.Handler {
	srv := &Server{scene: s, logger: logger, metrics: metrics}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET"},
	}))

	r.Get("/healthz", srv.handleHealthz)
	r.Get("/scene", srv.handleScene)
	r.Get("/scene/snapshot", srv.handleSnapshot)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// bodyView is the JSON-serializable projection of an nbody.Body exposed
// over the read API.
type bodyView struct {
	Name     string    `json:"name"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
	Mass     float64   `json:"mass"`
	Tag      int       `json:"tag"`
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	bodies := s.scene.Bodies()
	views := make([]bodyView, len(bodies))
	for i, b := range bodies {
		views[i] = bodyView{
			Name:     b.Name,
			Position: [3]float64{b.Position.X, b.Position.Y, b.Position.Z},
			Velocity: [3]float64{b.Velocity.X, b.Velocity.Y, b.Velocity.Z},
			Mass:     b.Mass,
			Tag:      int(b.Tag),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"time":   s.scene.Time(),
		"bodies": views,
	}); err != nil {
		s.logger.Errorf("encode scene response: %v", err)
	}
}

// snapshotBodyType is the component type ID the snapshot endpoint
// registers for the fixed-size body record below.
const snapshotBodyType uint32 = 0

// snapshotNameLen is the fixed width of the name field packed into each
// snapshot record; longer names are truncated, matching nbody.Body's own
// "at most 31 bytes" convention for Name.
const snapshotNameLen = 32

// snapshotBody is the fixed-size wire record for one body's ECS
// component, encoded field-by-field via encoding/binary so its size never
// depends on platform struct padding.
type snapshotBody struct {
	Position [3]float64
	Velocity [3]float64
	Mass     float64
	Tag      int32
	Name     [snapshotNameLen]byte
}

func encodeSnapshotBody(b nbody.Body) ([]byte, error) {
	var rec snapshotBody
	rec.Position = [3]float64{b.Position.X, b.Position.Y, b.Position.Z}
	rec.Velocity = [3]float64{b.Velocity.X, b.Velocity.Y, b.Velocity.Z}
	rec.Mass = b.Mass
	rec.Tag = int32(b.Tag)
	copy(rec.Name[:], b.Name)

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// worldFromBodies builds an ecs.World with one entity per body, each
// carrying a single snapshotBodyType component.
func worldFromBodies(bodies []nbody.Body) (*ecs.World, error) {
	world := ecs.NewWorld(len(bodies) + 1)
	for _, b := range bodies {
		id, err := world.CreateEntity()
		if err != nil {
			return nil, err
		}
		data, err := encodeSnapshotBody(b)
		if err != nil {
			return nil, err
		}
		if err := world.Add(snapshotBodyType, id, data); err != nil {
			return nil, err
		}
	}
	return world, nil
}

// handleSnapshot serves the scene's bodies as a binary ECS snapshot: one
// entity per body, encoded through the ecs package's own wire codec.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	world, err := worldFromBodies(s.scene.Bodies())
	if err != nil {
		s.logger.Errorf("build snapshot world: %v", err)
		http.Error(w, "failed to build snapshot", http.StatusInternalServerError)
		return
	}

	payload, err := ecs.Marshal(world)
	if err != nil {
		s.logger.Errorf("marshal snapshot: %v", err)
		http.Error(w, "failed to marshal snapshot", http.StatusInternalServerError)
		return
	}

	if s.metrics != nil {
		s.metrics.ObserveEcsSnapshotBytes(len(payload))
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(payload)
}
