// Package opt builds starting plans for the local search.
package opt

import (
	"fmt"
	"math"

	"d2dsearch/internal/config"
	"d2dsearch/internal/model"
	"d2dsearch/internal/timing"
)

// Initial builds a greedy plan. Technician-only customers are dealt to
// technicians round-robin, each technician taking the customer nearest its
// path end. Dronable customers are then dealt to drones the same way; a
// customer that would push the current trip over capacity or budget closes
// that trip and goes to the technician whose last stop is nearest instead.
// Empty drone trips are dropped.
func Initial(s *config.Store, technicians, drones int, kind config.DroneKind) (model.Solution, error) {
	if technicians < 0 || drones < 0 {
		return model.Solution{}, fmt.Errorf("initial: vehicle counts must be non-negative: %w", model.ErrInvalidArgument)
	}
	if _, err := s.Drone(kind); drones > 0 && err != nil {
		return model.Solution{}, fmt.Errorf("initial: %w", err)
	}

	var technicianOnly, dronable []int
	for i := 1; i < s.Len(); i++ {
		if s.Customer(i).Dronable && drones > 0 {
			dronable = append(dronable, i)
		} else {
			technicianOnly = append(technicianOnly, i)
		}
	}
	if technicians == 0 && len(technicianOnly) > 0 {
		return model.Solution{}, fmt.Errorf("initial: %d customers need a technician but none is available: %w", len(technicianOnly), model.ErrInvalidArgument)
	}

	techPaths := make([][]int, technicians)
	for t := range techPaths {
		techPaths[t] = []int{model.Depot}
	}
	for t := 0; len(technicianOnly) > 0; t = (t + 1) % technicians {
		path := techPaths[t]
		k := nearest(s, path[len(path)-1], technicianOnly)
		techPaths[t] = append(path, technicianOnly[k])
		technicianOnly = remove(technicianOnly, k)
	}
	for t := range techPaths {
		techPaths[t] = append(techPaths[t], model.Depot)
	}

	dronePaths := make([][][]int, drones)
	for d := range dronePaths {
		dronePaths[d] = [][]int{{model.Depot}}
	}
	for d := 0; len(dronable) > 0; d = (d + 1) % drones {
		trips := dronePaths[d]
		trip := trips[len(trips)-1]
		k := nearest(s, trip[len(trip)-1], dronable)
		idx := dronable[k]
		dronable = remove(dronable, k)

		hypothetical := append(append(append([]int(nil), trip...), idx), model.Depot)
		ok, err := timing.TripFeasible(s, hypothetical, kind)
		if err != nil {
			return model.Solution{}, fmt.Errorf("initial: %w", err)
		}
		if ok {
			trips[len(trips)-1] = append(trip, idx)
			continue
		}

		trips[len(trips)-1] = append(trip, model.Depot)
		dronePaths[d] = append(trips, []int{model.Depot})
		if technicians == 0 {
			return model.Solution{}, fmt.Errorf("initial: customer %d fits no drone trip and no technician is available: %w", idx, model.ErrInvalidArgument)
		}
		t := nearestTechnician(s, techPaths, idx)
		p := techPaths[t]
		techPaths[t] = append(append(append([]int(nil), p[:len(p)-1]...), idx), model.Depot)
	}

	out := model.Solution{TechnicianPaths: techPaths, DronePaths: make([][][]int, drones)}
	for d, trips := range dronePaths {
		trips[len(trips)-1] = append(trips[len(trips)-1], model.Depot)
		kept := [][]int{}
		for _, trip := range trips {
			if len(trip) > 2 {
				kept = append(kept, trip)
			}
		}
		out.DronePaths[d] = kept
	}
	return out, nil
}

// nearest returns the position in candidates of the customer closest to from.
func nearest(s *config.Store, from int, candidates []int) int {
	best, bestDist := 0, math.Inf(1)
	for k, c := range candidates {
		if d := s.Distance(from, c); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

// nearestTechnician picks the technician whose last customer (the node before
// the closing depot) is closest to idx.
func nearestTechnician(s *config.Store, paths [][]int, idx int) int {
	best, bestDist := 0, math.Inf(1)
	for t, p := range paths {
		if d := s.Distance(idx, p[len(p)-2]); d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}

func remove(xs []int, k int) []int {
	return append(xs[:k], xs[k+1:]...)
}
