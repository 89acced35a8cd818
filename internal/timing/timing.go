// Package timing turns truck and drone paths into arrival timestamps and
// waiting times, and checks drone trips against their energy or endurance
// budget.
//
// Every function is a pure read of the configuration store and is safe for
// concurrent use once the store has been fully imported.
package timing

import (
	"fmt"
	"math"

	"d2dsearch/internal/config"
	"d2dsearch/internal/model"
)

// hour is the length of one coefficient slot in the truck speed schedule.
const hour = 3600.0

// DroneArrivalTimestamps returns one timestamp per path position, starting
// at offset. Consecutive equal indices (idling at the same node) cost nothing
// for the power-model variants.
func DroneArrivalTimestamps(s *config.Store, path []int, kind config.DroneKind, offset float64) ([]float64, error) {
	m, err := s.Drone(kind)
	if err != nil {
		return nil, fmt.Errorf("drone arrival timestamps: %w", err)
	}
	if err := s.CheckPath(path); err != nil {
		return nil, fmt.Errorf("drone arrival timestamps: %w", err)
	}
	if len(path) == 0 {
		return []float64{}, nil
	}

	result := make([]float64, 1, len(path))
	result[0] = offset

	if kind == config.Endurance {
		speed := m.Endurance.DroneSpeed
		for i := 1; i < len(path); i++ {
			result = append(result, result[i-1]+s.Distance(path[i-1], path[i])/speed)
		}
		return result, nil
	}

	base, err := m.Base()
	if err != nil {
		return nil, fmt.Errorf("drone arrival timestamps: %w", err)
	}
	vertical := base.VerticalTime()
	for i := 1; i < len(path); i++ {
		shift := 0.0
		if path[i-1] != path[i] {
			shift = s.Customer(path[i-1]).DroneServiceTime + vertical + s.Distance(path[i-1], path[i])/base.CruiseSpeed
		}
		result = append(result, result[i-1]+shift)
	}
	return result, nil
}

// TechnicianArrivalTimestamps returns one timestamp per path position,
// starting at zero. The truck's speed is maximum velocity times the
// coefficient of the current hour slot; slots advance with elapsed time and
// an edge that crosses a slot boundary is split at the boundary.
func TechnicianArrivalTimestamps(s *config.Store, path []int) ([]float64, error) {
	truck, err := s.Truck()
	if err != nil {
		return nil, fmt.Errorf("technician arrival timestamps: %w", err)
	}
	if err := s.CheckPath(path); err != nil {
		return nil, fmt.Errorf("technician arrival timestamps: %w", err)
	}
	if len(path) == 0 {
		return []float64{}, nil
	}

	result := make([]float64, 1, len(path))
	slot := 0
	within := 0.0
	velocity := func() float64 {
		return truck.MaximumVelocity * truck.Coefficients[slot%len(truck.Coefficients)]
	}

	for i := 1; i < len(path); i++ {
		service := s.Customer(path[i-1]).TechnicianServiceTime
		timestamp := result[i-1] + service
		within += service
		for within >= hour {
			within -= hour
			slot++
		}

		distance := s.Distance(path[i-1], path[i])
		for distance > 0 {
			v := velocity()
			need := distance / v
			left := hour - within
			if need <= left {
				timestamp += need
				within += need
				distance = 0
			} else {
				timestamp += left
				within += left
				distance -= v * left
			}
			if within >= hour {
				within -= hour
				slot++
			}
		}
		result = append(result, timestamp)
	}
	return result, nil
}

// DroneTotalWaitingTime sums, over the interior positions of path, the time
// between each delivery finishing and the trip ending.
func DroneTotalWaitingTime(s *config.Store, path []int, arrivals []float64) (float64, error) {
	return totalWaitingTime(s, path, arrivals, func(c model.Customer) float64 { return c.DroneServiceTime })
}

// TechnicianTotalWaitingTime is DroneTotalWaitingTime with technician
// service times.
func TechnicianTotalWaitingTime(s *config.Store, path []int, arrivals []float64) (float64, error) {
	return totalWaitingTime(s, path, arrivals, func(c model.Customer) float64 { return c.TechnicianServiceTime })
}

func totalWaitingTime(s *config.Store, path []int, arrivals []float64, service func(model.Customer) float64) (float64, error) {
	n := len(path)
	if len(arrivals) != n {
		return 0, fmt.Errorf("total waiting time: arrival_timestamps size = %d != %d = path size: %w", len(arrivals), n, model.ErrInvalidArgument)
	}
	if err := s.CheckPath(path); err != nil {
		return 0, fmt.Errorf("total waiting time: %w", err)
	}
	result := 0.0
	for i := 1; i < n-1; i++ {
		result += arrivals[n-1] - arrivals[i] - service(s.Customer(path[i]))
	}
	return result, nil
}

// TotalWeight sums the demand of every node on path.
func TotalWeight(s *config.Store, path []int) float64 {
	w := 0.0
	for _, idx := range path {
		w += s.Customer(idx).Demand
	}
	return w
}

// PathDistance is the length of path in the store's distance matrix.
func PathDistance(s *config.Store, path []int) float64 {
	d := 0.0
	for i := 1; i < len(path); i++ {
		d += s.Distance(path[i-1], path[i])
	}
	return d
}

// FlightDuration is the time between the first and last timestamp.
func FlightDuration(arrivals []float64) float64 {
	if len(arrivals) == 0 {
		return 0
	}
	return arrivals[len(arrivals)-1] - arrivals[0]
}

// DroneEnergyConsumption is the energy a power-model drone spends flying
// path. Each edge costs a takeoff, a cruise and a landing at the payload
// carried on that edge; the payload grows by the demand of each node reached.
func DroneEnergyConsumption(s *config.Store, path []int, kind config.DroneKind) (float64, error) {
	m, err := s.Drone(kind)
	if err != nil {
		return 0, fmt.Errorf("drone energy consumption: %w", err)
	}
	base, err := m.Base()
	if err != nil {
		return 0, fmt.Errorf("drone energy consumption: %w", err)
	}
	if err := s.CheckPath(path); err != nil {
		return 0, fmt.Errorf("drone energy consumption: %w", err)
	}

	takeoffTime := base.Altitude / base.TakeoffSpeed
	landingTime := base.Altitude / base.LandingSpeed

	energy, weight := 0.0, 0.0
	for i := 1; i < len(path); i++ {
		cruiseTime := s.Distance(path[i-1], path[i]) / base.CruiseSpeed
		takeoff, err := m.TakeoffPower(weight)
		if err != nil {
			return 0, err
		}
		cruise, err := m.CruisePower(weight)
		if err != nil {
			return 0, err
		}
		landing, err := m.LandingPower(weight)
		if err != nil {
			return 0, err
		}
		energy += takeoffTime*takeoff + cruiseTime*cruise + landingTime*landing
		weight += s.Customer(path[i]).Demand
	}
	if math.IsNaN(energy) {
		return 0, fmt.Errorf("drone energy consumption: power model produced NaN: %w", model.ErrDomain)
	}
	return energy, nil
}

// TripFeasible reports whether one drone trip is depot-anchored, within
// capacity, and within the battery (power models) or the fixed time and
// distance budget (endurance).
func TripFeasible(s *config.Store, path []int, kind config.DroneKind) (bool, error) {
	m, err := s.Drone(kind)
	if err != nil {
		return false, fmt.Errorf("trip feasible: %w", err)
	}
	if err := s.CheckPath(path); err != nil {
		return false, fmt.Errorf("trip feasible: %w", err)
	}
	if len(path) < 2 || path[0] != model.Depot || path[len(path)-1] != model.Depot {
		return false, nil
	}
	if TotalWeight(s, path) > m.Capacity() {
		return false, nil
	}

	if kind == config.Endurance {
		arrivals, err := DroneArrivalTimestamps(s, path, kind, 0)
		if err != nil {
			return false, err
		}
		return FlightDuration(arrivals) <= m.Endurance.FixedTime && PathDistance(s, path) <= m.Endurance.FixedDistance, nil
	}

	energy, err := DroneEnergyConsumption(s, path, kind)
	if err != nil {
		return false, err
	}
	base, _ := m.Base()
	return energy <= base.Battery, nil
}
