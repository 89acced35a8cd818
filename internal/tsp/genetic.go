package tsp

import (
	"fmt"
	"math/rand"
	"slices"

	"d2dsearch/internal/model"
	"d2dsearch/internal/numeric"
)

type individual struct {
	tour []int
	cost float64
}

// genetic runs elitist truncation selection: each generation doubles the
// population with children, keeps the shortest half and remembers the best
// tour ever seen.
func genetic(dist [][]float64, opts Options) (float64, []int, error) {
	n := len(dist)
	rng := opts.Rand
	size := opts.Population
	mutation := *opts.MutationRate

	population := make([]individual, 0, 2*size)
	if opts.Hint != nil {
		hint := append([]int(nil), opts.Hint...)
		population = append(population, individual{tour: hint, cost: TourLength(hint, dist)})
	}
	for len(population) < size {
		tour := rng.Perm(n)
		population = append(population, individual{tour: tour, cost: TourLength(tour, dist)})
	}

	best := population[0]
	for _, ind := range population[1:] {
		if ind.cost < best.cost {
			best = ind
		}
	}

	for gen := 0; gen < opts.Generations; gen++ {
		for len(population) < 2*size {
			i := numeric.RandomInt(rng, 0, len(population)-1)
			j := numeric.RandomInt(rng, 0, len(population)-1)
			for i == j {
				i = numeric.RandomInt(rng, 0, len(population)-1)
				j = numeric.RandomInt(rng, 0, len(population)-1)
			}

			a, b, err := Crossover(rng, population[i].tour, population[j].tour)
			if err != nil {
				return 0, nil, err
			}
			if rng.Float64() < mutation {
				Mutate(rng, a)
			}
			if rng.Float64() < mutation {
				Mutate(rng, b)
			}
			population = append(population,
				individual{tour: a, cost: TourLength(a, dist)},
				individual{tour: b, cost: TourLength(b, dist)},
			)
		}

		slices.SortStableFunc(population, func(x, y individual) int {
			switch {
			case x.cost < y.cost:
				return -1
			case x.cost > y.cost:
				return 1
			}
			return 0
		})
		population = population[:size]

		if population[0].cost < best.cost {
			best = population[0]
		}
	}

	return best.cost, append([]int(nil), best.tour...), nil
}

// Crossover is a one-point order crossover over permutations of 0..n-1. The
// first child keeps first's prefix up to a random cut and fills the rest with
// the missing cities in second's order. The second child keeps first's
// suffix in place and fills the front with second's cities that went into
// the first child's prefix, again in second's order.
func Crossover(rng *rand.Rand, first, second []int) ([]int, []int, error) {
	n := len(first)
	if n != len(second) {
		return nil, nil, fmt.Errorf("crossover of paths with different lengths: %d and %d: %w", n, len(second), model.ErrInvalidArgument)
	}
	if err := checkPermutation(first, n); err != nil {
		return nil, nil, fmt.Errorf("crossover: first parent: %w", err)
	}
	if err := checkPermutation(second, n); err != nil {
		return nil, nil, fmt.Errorf("crossover: second parent: %w", err)
	}

	firstChild := make([]int, n)
	secondChild := make([]int, n)
	cut := numeric.RandomInt(rng, 1, n-1)

	inFirst := make([]bool, n)
	for i := 0; i < n; i++ {
		if i < cut {
			firstChild[i] = first[i]
			inFirst[first[i]] = true
		} else {
			secondChild[i] = first[i]
		}
	}

	fo, so := cut, 0
	for _, city := range second {
		if !inFirst[city] {
			firstChild[fo] = city
			fo++
		} else {
			secondChild[so] = city
			so++
		}
	}
	return firstChild, secondChild, nil
}

// Mutate swaps two distinct random positions of tour in place.
func Mutate(rng *rand.Rand, tour []int) {
	n := len(tour)
	if n < 2 {
		return
	}
	i := numeric.RandomInt(rng, 0, n-1)
	j := numeric.RandomInt(rng, 0, n-1)
	for i == j {
		i = numeric.RandomInt(rng, 0, n-1)
		j = numeric.RandomInt(rng, 0, n-1)
	}
	tour[i], tour[j] = tour[j], tour[i]
}
