// Package engine is the entry point the search driver and the HTTP adapter
// call into. It wraps the pure packages with config-type tag parsing, tour
// caching, logging and metrics.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"d2dsearch/internal/cache"
	"d2dsearch/internal/config"
	"d2dsearch/internal/metrics"
	"d2dsearch/internal/model"
	"d2dsearch/internal/neighborhood"
	"d2dsearch/internal/numeric"
	"d2dsearch/internal/opt"
	"d2dsearch/internal/timing"
	"d2dsearch/internal/tsp"
)

type ctxKey string

// RequestIDKey carries the request id into engine log lines.
const RequestIDKey ctxKey = "req_id"

// Options configures an Engine.
type Options struct {
	Log *logrus.Logger
	// Cache stores solved tours. Nil disables caching.
	Cache cache.TourCache
	// Seed fixes the random stream. Zero seeds from the clock.
	Seed int64
	// Kind is the drone model used by whole-plan operations.
	Kind config.DroneKind
	TSP  config.TSPSettings
}

// Engine serves read-only computations over an imported Store. It is safe
// for concurrent use as long as nothing imports into the Store meanwhile.
type Engine struct {
	store *config.Store
	log   *logrus.Logger
	cache cache.TourCache
	kind  config.DroneKind
	tsp   config.TSPSettings

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New returns an engine over store.
func New(store *config.Store, opts Options) *Engine {
	log := opts.Log
	if log == nil {
		log = logrus.New()
	}
	return &Engine{
		store: store,
		log:   log,
		cache: opts.Cache,
		kind:  opts.Kind,
		tsp:   opts.TSP,
		rng:   numeric.NewRand(opts.Seed),
	}
}

// Store returns the configuration the engine reads.
func (e *Engine) Store() *config.Store { return e.store }

// Kind is the drone model used by Evaluate, Feasible and Initial.
func (e *Engine) Kind() config.DroneKind { return e.kind }

// track logs and records one engine call; use as defer e.track(ctx, op)(&err).
func (e *Engine) track(ctx context.Context, op string) func(errp *error) {
	start := time.Now()
	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)
		metrics.EngineDuration.WithLabelValues(op).Observe(dur.Seconds())

		entry := e.log.WithFields(logrus.Fields{"req_id": reqID, "op": op, "dur_ms": dur.Milliseconds()})
		if errp != nil && *errp != nil {
			metrics.EngineOps.WithLabelValues(op, "error").Inc()
			entry.WithError(*errp).Debug("engine op failed")
			return
		}
		metrics.EngineOps.WithLabelValues(op, "ok").Inc()
		entry.Debug("engine op")
	}
}

// childRand derives an independent generator so concurrent solves never
// share one.
func (e *Engine) childRand() *rand.Rand {
	e.rngMu.Lock()
	seed := e.rng.Int63()
	e.rngMu.Unlock()
	return rand.New(rand.NewSource(seed))
}

// DroneArrivalTimestamps takes the config-type tag 0 (linear), 1 (nonlinear)
// or 2 (endurance).
func (e *Engine) DroneArrivalTimestamps(ctx context.Context, path []int, configType int, offset float64) (out []float64, err error) {
	defer e.track(ctx, "drone_arrival_timestamps")(&err)
	kind, err := config.ParseDroneKind(configType)
	if err != nil {
		return nil, err
	}
	return timing.DroneArrivalTimestamps(e.store, path, kind, offset)
}

func (e *Engine) TechnicianArrivalTimestamps(ctx context.Context, path []int) (out []float64, err error) {
	defer e.track(ctx, "technician_arrival_timestamps")(&err)
	return timing.TechnicianArrivalTimestamps(e.store, path)
}

func (e *Engine) DroneTotalWaitingTime(ctx context.Context, path []int, arrivals []float64) (w float64, err error) {
	defer e.track(ctx, "drone_total_waiting_time")(&err)
	return timing.DroneTotalWaitingTime(e.store, path, arrivals)
}

func (e *Engine) TechnicianTotalWaitingTime(ctx context.Context, path []int, arrivals []float64) (w float64, err error) {
	defer e.track(ctx, "technician_total_waiting_time")(&err)
	return timing.TechnicianTotalWaitingTime(e.store, path, arrivals)
}

// SolveTSP solves cities starting at first. Requests without a hint are
// answered from the tour cache when possible.
func (e *Engine) SolveTSP(ctx context.Context, cities []model.Point, first int, hint []int) (res tsp.Result, err error) {
	defer e.track(ctx, "tsp_solver")(&err)

	key := ""
	if e.cache != nil && hint == nil {
		key = cache.TourKey(cities, first)
		cached, cerr := e.cache.Get(ctx, key)
		if cerr != nil {
			e.log.WithError(cerr).Warn("tour cache read failed")
		} else if cached != nil {
			metrics.TSPSolves.WithLabelValues("cache").Inc()
			return *cached, nil
		}
	}

	res, err = tsp.Solve(cities, tsp.Options{
		First:        first,
		Hint:         hint,
		Rand:         e.childRand(),
		Population:   e.tsp.Population,
		Generations:  e.tsp.Generations,
		MutationRate: e.tsp.MutationRate,
	})
	if err != nil {
		return tsp.Result{}, err
	}
	metrics.TSPSolves.WithLabelValues(res.Method).Inc()

	if key != "" {
		if cerr := e.cache.Set(ctx, key, res); cerr != nil {
			e.log.WithError(cerr).Warn("tour cache write failed")
		}
	}
	return res, nil
}

// Swap returns the distinct segment-swap neighbours of original in a
// deterministic order.
func (e *Engine) Swap(ctx context.Context, original model.Solution, firstLength, secondLength int) (out []model.Solution, err error) {
	defer e.track(ctx, "swap")(&err)
	set, err := neighborhood.Swap(original, firstLength, secondLength)
	if err != nil {
		return nil, err
	}
	metrics.NeighborhoodSize.Observe(float64(set.Len()))
	return set.Items(), nil
}

// Insert returns the distinct segment-insert neighbours of original in a
// deterministic order.
func (e *Engine) Insert(ctx context.Context, original model.Solution, length int) (out []model.Solution, err error) {
	defer e.track(ctx, "insert")(&err)
	set, err := neighborhood.Insert(e.store, original, length)
	if err != nil {
		return nil, err
	}
	metrics.NeighborhoodSize.Observe(float64(set.Len()))
	return set.Items(), nil
}

// Evaluate schedules a whole plan with the engine's drone model.
func (e *Engine) Evaluate(ctx context.Context, plan model.Solution) (ev *timing.Evaluation, err error) {
	defer e.track(ctx, "evaluate")(&err)
	return timing.Evaluate(e.store, plan, e.kind)
}

// Feasible checks a whole plan with the engine's drone model.
func (e *Engine) Feasible(ctx context.Context, plan model.Solution) (ok bool, err error) {
	defer e.track(ctx, "feasible")(&err)
	return timing.Feasible(e.store, plan, e.kind)
}

// Initial builds a greedy starting plan.
func (e *Engine) Initial(ctx context.Context, technicians, drones int) (plan model.Solution, err error) {
	defer e.track(ctx, "initial")(&err)
	return opt.Initial(e.store, technicians, drones, e.kind)
}

// String describes the engine for startup logs.
func (e *Engine) String() string {
	return fmt.Sprintf("engine(customers=%d, drone=%s)", e.store.Len(), e.kind)
}
