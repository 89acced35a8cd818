package tsp

import (
	"fmt"

	"d2dsearch/internal/model"
)

// HeuristicHint builds a nearest-neighbour tour from city 0 and improves it
// with 2-opt. The result is a permutation suitable for Options.Hint.
func HeuristicHint(cities []model.Point, iterations int) ([]int, error) {
	if len(cities) == 0 {
		return nil, fmt.Errorf("heuristic hint: empty map: %w", model.ErrInvalidArgument)
	}
	dist, err := distanceMatrix(cities)
	if err != nil {
		return nil, fmt.Errorf("heuristic hint: %w", err)
	}
	return ImproveOrder2Opt(dist, nearestNeighbour(dist), iterations), nil
}

func nearestNeighbour(dist [][]float64) []int {
	n := len(dist)
	visited := make([]bool, n)
	order := make([]int, 0, n)
	cur := 0
	visited[0] = true
	order = append(order, 0)
	for len(order) < n {
		next := -1
		for c := 0; c < n; c++ {
			if visited[c] {
				continue
			}
			if next < 0 || dist[cur][c] < dist[cur][next] {
				next = c
			}
		}
		visited[next] = true
		order = append(order, next)
		cur = next
	}
	return order
}

// ImproveOrder2Opt applies 2-opt reversals to the closed tour order while
// they shorten it, for at most iterations passes. City order[0] stays first.
func ImproveOrder2Opt(dist [][]float64, order []int, iterations int) []int {
	if iterations <= 0 {
		iterations = 1
	}
	best := append([]int(nil), order...)
	bestDist := TourLength(best, dist)
	n := len(order)
	for it := 0; it < iterations; it++ {
		improved := false
		for i := 1; i < n-1; i++ {
			for k := i + 1; k < n; k++ {
				candidate := twoOptSwap(best, i, k)
				d := TourLength(candidate, dist)
				if d+1e-9 < bestDist {
					best = candidate
					bestDist = d
					improved = true
				}
			}
		}
		if !improved {
			break
		}
	}
	return best
}

func twoOptSwap(ord []int, i, k int) []int {
	out := make([]int, len(ord))
	copy(out, ord[:i])
	pos := i
	for j := k; j >= i; j-- {
		out[pos] = ord[j]
		pos++
	}
	copy(out[pos:], ord[k+1:])
	return out
}
