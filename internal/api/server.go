// Package api exposes the engine over HTTP/JSON.
package api

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"d2dsearch/internal/engine"
	"d2dsearch/internal/metrics"
)

// Pinger is a dependency /readyz checks, such as the Redis tour cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures a Server.
type Options struct {
	Log *logrus.Logger
	// Limiter throttles /v1 requests. Nil disables rate limiting.
	Limiter *rate.Limiter
	// Workers bounds concurrent plan evaluations per request.
	Workers int
	// Ready is pinged by /readyz when set.
	Ready Pinger
}

type Server struct {
	Engine  *engine.Engine
	Log     *logrus.Logger
	Limiter *rate.Limiter
	Workers int
	Ready   Pinger

	// routes holds every registered path; metrics label anything else "other".
	routes map[string]bool
}

// NewServer wires the HTTP handlers to e.
func NewServer(e *engine.Engine, opts Options) *Server {
	log := opts.Log
	if log == nil {
		log = logrus.New()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Server{Engine: e, Log: log, Limiter: opts.Limiter, Workers: workers, Ready: opts.Ready, routes: map[string]bool{}}
}

// Routes returns the full handler tree with middleware applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	handle := func(path string, h http.HandlerFunc) {
		s.routes[path] = true
		mux.Handle(path, h)
	}

	// Timing
	handle("/v1/timestamps/drone", s.DroneTimestampsHandler)
	handle("/v1/timestamps/technician", s.TechnicianTimestampsHandler)
	handle("/v1/waiting-time/drone", s.DroneWaitingTimeHandler)
	handle("/v1/waiting-time/technician", s.TechnicianWaitingTimeHandler)

	// Search building blocks
	handle("/v1/tsp", s.TSPHandler)
	handle("/v1/neighborhoods/swap", s.SwapHandler)
	handle("/v1/neighborhoods/insert", s.InsertHandler)
	handle("/v1/evaluate", s.EvaluateHandler)
	handle("/v1/initial", s.InitialHandler)

	// Health
	handle("/healthz", s.HealthHandler)
	handle("/readyz", s.ReadyHandler)

	// Admin
	handle("/debug", s.DebugJSON)
	handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}).ServeHTTP)

	return s.requestID(s.logMiddleware(s.rateLimit(mux)))
}

// routeLabel bounds metric label cardinality to the registered paths.
func (s *Server) routeLabel(path string) string {
	if s.routes[path] {
		return path
	}
	return "other"
}
