package timing

import (
	"fmt"
	"math"

	"d2dsearch/internal/config"
	"d2dsearch/internal/model"
)

// Evaluation is the schedule of a whole plan and its two objectives.
type Evaluation struct {
	TechnicianArrivals     [][]float64   `json:"technicianArrivals"`
	DroneArrivals          [][][]float64 `json:"droneArrivals"`
	TechnicianTimespans    []float64     `json:"technicianTimespans"`
	DroneTimespans         []float64     `json:"droneTimespans"`
	TechnicianWaitingTimes []float64     `json:"technicianWaitingTimes"`
	DroneWaitingTimes      [][]float64   `json:"droneWaitingTimes"`
	Makespan               float64       `json:"makespan"`
	TotalWaiting           float64       `json:"totalWaiting"`
}

// Evaluate schedules every path of plan. Trips of one drone run back to back:
// each trip starts when the previous one lands.
func Evaluate(s *config.Store, plan model.Solution, kind config.DroneKind) (*Evaluation, error) {
	ev := &Evaluation{
		TechnicianArrivals:     make([][]float64, len(plan.TechnicianPaths)),
		DroneArrivals:          make([][][]float64, len(plan.DronePaths)),
		TechnicianTimespans:    make([]float64, len(plan.TechnicianPaths)),
		DroneTimespans:         make([]float64, len(plan.DronePaths)),
		TechnicianWaitingTimes: make([]float64, len(plan.TechnicianPaths)),
		DroneWaitingTimes:      make([][]float64, len(plan.DronePaths)),
	}

	for t, path := range plan.TechnicianPaths {
		arrivals, err := TechnicianArrivalTimestamps(s, path)
		if err != nil {
			return nil, fmt.Errorf("evaluate: technician %d: %w", t, err)
		}
		waiting, err := TechnicianTotalWaitingTime(s, path, arrivals)
		if err != nil {
			return nil, fmt.Errorf("evaluate: technician %d: %w", t, err)
		}
		ev.TechnicianArrivals[t] = arrivals
		ev.TechnicianWaitingTimes[t] = waiting
		if len(arrivals) > 0 {
			ev.TechnicianTimespans[t] = arrivals[len(arrivals)-1]
		}
		ev.TotalWaiting += waiting
	}

	for d, trips := range plan.DronePaths {
		ev.DroneArrivals[d] = make([][]float64, len(trips))
		ev.DroneWaitingTimes[d] = make([]float64, len(trips))
		offset := 0.0
		for k, trip := range trips {
			arrivals, err := DroneArrivalTimestamps(s, trip, kind, offset)
			if err != nil {
				return nil, fmt.Errorf("evaluate: drone %d trip %d: %w", d, k, err)
			}
			waiting, err := DroneTotalWaitingTime(s, trip, arrivals)
			if err != nil {
				return nil, fmt.Errorf("evaluate: drone %d trip %d: %w", d, k, err)
			}
			if len(arrivals) > 0 {
				offset = arrivals[len(arrivals)-1]
			}
			ev.DroneArrivals[d][k] = arrivals
			ev.DroneWaitingTimes[d][k] = waiting
			ev.TotalWaiting += waiting
		}
		ev.DroneTimespans[d] = offset
	}

	for _, v := range ev.TechnicianTimespans {
		ev.Makespan = math.Max(ev.Makespan, v)
	}
	for _, v := range ev.DroneTimespans {
		ev.Makespan = math.Max(ev.Makespan, v)
	}
	return ev, nil
}

// Feasible reports whether plan is a valid assignment: every path is
// depot-anchored, each customer is served exactly once, drones only serve
// dronable customers and every drone trip fits its drone's budget.
func Feasible(s *config.Store, plan model.Solution, kind config.DroneKind) (bool, error) {
	served := make(map[int]struct{}, s.Len())
	visit := func(path []int) (bool, error) {
		if err := s.CheckPath(path); err != nil {
			return false, err
		}
		if len(path) < 2 || path[0] != model.Depot || path[len(path)-1] != model.Depot {
			return false, nil
		}
		for _, idx := range path[1 : len(path)-1] {
			if _, dup := served[idx]; dup || idx == model.Depot {
				return false, nil
			}
			served[idx] = struct{}{}
		}
		return true, nil
	}

	for d, trips := range plan.DronePaths {
		for k, trip := range trips {
			ok, err := visit(trip)
			if err != nil {
				return false, fmt.Errorf("feasible: drone %d trip %d: %w", d, k, err)
			}
			if !ok {
				return false, nil
			}
			for _, idx := range trip[1 : len(trip)-1] {
				if !s.Customer(idx).Dronable {
					return false, nil
				}
			}
			ok, err = TripFeasible(s, trip, kind)
			if err != nil {
				return false, fmt.Errorf("feasible: drone %d trip %d: %w", d, k, err)
			}
			if !ok {
				return false, nil
			}
		}
	}

	for t, path := range plan.TechnicianPaths {
		ok, err := visit(path)
		if err != nil {
			return false, fmt.Errorf("feasible: technician %d: %w", t, err)
		}
		if !ok {
			return false, nil
		}
	}

	return len(served) == s.Len()-1, nil
}
