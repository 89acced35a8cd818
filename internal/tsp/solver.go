// Package tsp solves small travelling-salesman instances over planar points.
//
// Up to HeldKarpLimit cities the answer is exact (Held-Karp bitmask dynamic
// programming); above it a genetic algorithm searches from random
// permutations plus an optional caller-provided hint. Tours are closed: the
// cost includes the edge from the last city back to the first.
package tsp

import (
	"fmt"
	"math/rand"

	"d2dsearch/internal/model"
	"d2dsearch/internal/numeric"
)

// HeldKarpLimit is the largest instance solved exactly.
const HeldKarpLimit = 17

// Genetic algorithm defaults.
const (
	DefaultPopulation   = 100
	DefaultGenerations  = 150
	DefaultMutationRate = 0.4
)

// Solve methods reported in Result.Method.
const (
	MethodTrivial  = "trivial"
	MethodHeldKarp = "held-karp"
	MethodGenetic  = "genetic"
)

// Options tunes Solve. Zero values select the defaults.
type Options struct {
	// First is the city the returned tour starts with.
	First int
	// Hint seeds the genetic population. It must be a permutation of the
	// city indices and is ignored below the genetic threshold.
	Hint []int
	// Rand drives the genetic algorithm. Nil draws a clock-seeded generator.
	Rand *rand.Rand

	Population  int
	Generations int
	// MutationRate is the chance each child is mutated. Nil selects
	// DefaultMutationRate and 0 disables mutation.
	MutationRate *float64
}

func (o Options) withDefaults() Options {
	if o.Population <= 0 {
		o.Population = DefaultPopulation
	}
	if o.Generations <= 0 {
		o.Generations = DefaultGenerations
	}
	if o.MutationRate == nil {
		rate := DefaultMutationRate
		o.MutationRate = &rate
	}
	if o.Rand == nil {
		o.Rand = numeric.NewRand(0)
	}
	return o
}

// Result is a closed tour and its length.
type Result struct {
	Cost   float64 `json:"cost"`
	Tour   []int   `json:"tour"`
	Method string  `json:"method"`
}

// Solve returns a shortest (exact) or short (genetic) closed tour through
// cities, rotated to start at opts.First.
func Solve(cities []model.Point, opts Options) (Result, error) {
	n := len(cities)
	if n == 0 {
		return Result{}, fmt.Errorf("tsp: empty map: %w", model.ErrInvalidArgument)
	}
	if opts.First < 0 || opts.First >= n {
		return Result{}, fmt.Errorf("tsp: first city %d out of range [0, %d): %w", opts.First, n, model.ErrInvalidArgument)
	}

	dist, err := distanceMatrix(cities)
	if err != nil {
		return Result{}, fmt.Errorf("tsp: %w", err)
	}

	var res Result
	switch {
	case n == 1:
		res = Result{Cost: 0, Tour: []int{0}, Method: MethodTrivial}
	case n == 2:
		res = Result{Cost: 2 * dist[0][1], Tour: []int{0, 1}, Method: MethodTrivial}
	case n == 3:
		res = Result{Cost: dist[0][1] + dist[1][2] + dist[2][0], Tour: []int{0, 1, 2}, Method: MethodTrivial}
	case n <= HeldKarpLimit:
		cost, tour := heldKarp(dist)
		res = Result{Cost: cost, Tour: tour, Method: MethodHeldKarp}
	default:
		opts = opts.withDefaults()
		if opts.Hint != nil {
			if err := checkPermutation(opts.Hint, n); err != nil {
				return Result{}, fmt.Errorf("tsp: heuristic hint: %w", err)
			}
		}
		if r := *opts.MutationRate; r < 0 || r > 1 {
			return Result{}, fmt.Errorf("tsp: mutation rate %v outside [0, 1]: %w", r, model.ErrInvalidArgument)
		}
		if opts.Population < 2 {
			return Result{}, fmt.Errorf("tsp: population must hold at least two individuals: %w", model.ErrInvalidArgument)
		}
		cost, tour, err := genetic(dist, opts)
		if err != nil {
			return Result{}, fmt.Errorf("tsp: %w", err)
		}
		res = Result{Cost: cost, Tour: tour, Method: MethodGenetic}
	}

	if err := numeric.RotateToFirst(res.Tour, opts.First); err != nil {
		return Result{}, fmt.Errorf("tsp: %w", err)
	}
	return res, nil
}

// TourLength is the closed length of tour under dist.
func TourLength(tour []int, dist [][]float64) float64 {
	total := 0.0
	n := len(tour)
	for i := 0; i < n; i++ {
		total += dist[tour[i]][tour[(i+1)%n]]
	}
	return total
}

func distanceMatrix(cities []model.Point) ([][]float64, error) {
	n := len(cities)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d, err := numeric.Sqrt(numeric.Sqr(cities[i].X-cities[j].X) + numeric.Sqr(cities[i].Y-cities[j].Y))
			if err != nil {
				return nil, err
			}
			dist[i][j], dist[j][i] = d, d
		}
	}
	return dist, nil
}

func checkPermutation(p []int, n int) error {
	if len(p) != n {
		return fmt.Errorf("length %d != %d cities: %w", len(p), n, model.ErrInvalidArgument)
	}
	seen := make([]bool, n)
	for _, v := range p {
		if v < 0 || v >= n || seen[v] {
			return fmt.Errorf("not a permutation of 0..%d: %w", n-1, model.ErrInvalidArgument)
		}
		seen[v] = true
	}
	return nil
}
