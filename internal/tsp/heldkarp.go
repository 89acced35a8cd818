package tsp

import "math"

// heldKarp solves the closed tour exactly with city 0 as the anchor. State
// (mask, last) is the cheapest path leaving 0, visiting exactly the cities
// in mask (bit i-1 for city i) and ending at last. Ties keep the first
// minimum found.
func heldKarp(dist [][]float64) (float64, []int) {
	n := len(dist)
	m := n - 1
	full := 1<<m - 1

	cost := make([][]float64, 1<<m)
	parent := make([][]int, 1<<m)
	for mask := range cost {
		cost[mask] = make([]float64, m)
		parent[mask] = make([]int, m)
		for k := range cost[mask] {
			cost[mask][k] = math.Inf(1)
			parent[mask][k] = -1
		}
	}
	for k := 0; k < m; k++ {
		cost[1<<k][k] = dist[0][k+1]
	}

	for mask := 1; mask <= full; mask++ {
		for last := 0; last < m; last++ {
			if mask&(1<<last) == 0 || math.IsInf(cost[mask][last], 1) {
				continue
			}
			base := cost[mask][last]
			for next := 0; next < m; next++ {
				if mask&(1<<next) != 0 {
					continue
				}
				nm := mask | 1<<next
				if d := base + dist[last+1][next+1]; d < cost[nm][next] {
					cost[nm][next] = d
					parent[nm][next] = last
				}
			}
		}
	}

	best, end := math.Inf(1), -1
	for last := 0; last < m; last++ {
		if d := cost[full][last] + dist[last+1][0]; d < best {
			best, end = d, last
		}
	}

	tour := make([]int, n)
	mask := full
	for pos := n - 1; pos >= 1; pos-- {
		tour[pos] = end + 1
		prev := parent[mask][end]
		mask &^= 1 << end
		end = prev
	}
	tour[0] = 0
	return best, tour
}
