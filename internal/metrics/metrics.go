package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the engine
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// EngineOps counts engine calls by operation and outcome
	EngineOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "engine_ops_total", Help: "Engine operations by name and outcome."},
		[]string{"op", "outcome"},
	)
	// EngineDuration tracks engine call latency in seconds
	EngineDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "engine_op_duration_seconds", Help: "Engine operation duration in seconds.", Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5, 30}},
		[]string{"op"},
	)
	// NeighborhoodSize records how many distinct candidates a swap produced
	NeighborhoodSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "neighborhood_candidates", Help: "Distinct candidate plans per swap call.", Buckets: prometheus.ExponentialBuckets(1, 4, 9)},
	)
	// TSPSolves counts solver runs by method, plus cache hits
	TSPSolves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tsp_solves_total", Help: "TSP solves by method (held-karp, genetic, trivial, cache)."},
		[]string{"method"},
	)
)

// RegisterDefault registers collectors to the engine registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(EngineOps)
		Registry.MustRegister(EngineDuration)
		Registry.MustRegister(NeighborhoodSize)
		Registry.MustRegister(TSPSolves)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
