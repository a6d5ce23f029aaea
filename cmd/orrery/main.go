// Command orrery is the composition root: it wires the scene orchestrator
// behind a read-only HTTP API and a websocket telemetry feed, advancing
// the simulation on a fixed ticker. Flag layout and signal-driven
// shutdown follow Valkyrie/cmd/valkyrie/main.go.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asgard/orrery/internal/api"
	"github.com/asgard/orrery/internal/livefeed"
	"github.com/asgard/orrery/internal/nbody"
	"github.com/asgard/orrery/internal/scene"
	"github.com/asgard/orrery/internal/telemetry"
	"github.com/asgard/orrery/internal/vecmath"
)

var (
	httpPort    = flag.Int("http-port", 8420, "HTTP API and websocket port")
	logLevel    = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logOutput   = flag.String("log-output", "stdout", "Log output: stdout or stderr")
	tickRate    = flag.Float64("tick-rate-hz", 60, "Simulation ticks per second")
	dt          = flag.Float64("dt", 0.01, "Simulation time step per tick")
	scheme      = flag.String("scheme", "leapfrog", "Integration scheme: rk4, leapfrog, yoshida4, rkf45")
	units       = flag.String("units", "natural", "Units preset: natural or si")
	demoBodies  = flag.Bool("demo", true, "Seed a demo two-body Kepler system at startup")
)

func parseScheme(name string) nbody.Scheme {
	switch name {
	case "rk4":
		return nbody.RK4
	case "yoshida4":
		return nbody.Yoshida4
	case "rkf45":
		return nbody.RKF45
	default:
		return nbody.LeapfrogKDK
	}
}

func parseUnits(name string) nbody.UnitsPreset {
	if name == "si" {
		return nbody.SIUnits()
	}
	return nbody.NaturalUnits()
}

func seedDemoSystem(s *scene.Scene) {
	s.AddBody(nbody.Body{
		Name:    "primary",
		Mass:    1,
		GM:      1,
		IsFixed: true,
		IsAlive: true,
		Tag:     nbody.Star,
	})
	s.AddBody(nbody.Body{
		Name:     "orbiter",
		Mass:     1e-6,
		GM:       1e-6,
		IsAlive:  true,
		Tag:      nbody.Planet,
		Position: vecmath.Vec3{X: 1, Y: 0, Z: 0},
		Velocity: vecmath.Vec3{X: 0, Y: 1, Z: 0},
	})
}

func main() {
	flag.Parse()

	logger := telemetry.NewLogger(*logLevel, *logOutput)
	metrics := telemetry.GetMetrics()

	logger.Infof("starting orrery on port %d", *httpPort)

	config := nbody.DefaultConfig()
	config.Units = parseUnits(*units)

	sc := scene.New(config, parseScheme(*scheme))
	if *demoBodies {
		seedDemoSystem(sc)
	}
	sc.EnableTelemetry(metrics)

	streamer := livefeed.NewStreamer(metrics)

	mux := http.NewServeMux()
	mux.Handle("/", api.NewServer(sc, logger, metrics))
	mux.Handle("/ws/telemetry", streamer)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", *httpPort),
		Handler: mux,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("http server error: %v", err)
		}
	}()

	go runSimulationLoop(ctx, sc, streamer, metrics, *tickRate, *dt)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Infof("shutdown signal received")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("http shutdown error: %v", err)
	}

	logger.Infof("orrery shutdown complete")
}

func runSimulationLoop(ctx context.Context, sc *scene.Scene, streamer *livefeed.Streamer, metrics *telemetry.Metrics, tickHz, dt float64) {
	if tickHz <= 0 {
		tickHz = 60
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / tickHz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sc.Update(dt)
			metrics.SceneUpdatesTotal.Inc()
			streamer.Broadcast(sc)
		}
	}
}

