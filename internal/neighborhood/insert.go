package neighborhood

import (
	"fmt"

	"d2dsearch/internal/model"
)

// Customers is the read side of the configuration the insert moves need:
// dronability decides which truck segments may move onto a drone.
type Customers interface {
	Len() int
	Customer(i int) model.Customer
}

// Insert is the union of every insert family. A move cuts the interior
// segment of length nodes starting at some position of one path and places it
// before some interior position of another path. Moves onto a drone may also
// open a new trip for the segment.
func Insert(c Customers, original model.Solution, length int) (*Set, error) {
	if err := checkInsert(c, original, length); err != nil {
		return nil, err
	}
	out := NewSet()
	out.Merge(insertTechnicianTechnician(original, length))
	out.Merge(insertTechnicianDrone(c, original, length))
	out.Merge(insertDroneTechnician(original, length))
	out.Merge(insertDroneDrone(original, length))
	return out, nil
}

// TechnicianTechnicianInsert moves a segment from one truck path into
// another, for every ordered pair of distinct trucks.
func TechnicianTechnicianInsert(c Customers, original model.Solution, length int) (*Set, error) {
	if err := checkInsert(c, original, length); err != nil {
		return nil, err
	}
	return insertTechnicianTechnician(original, length), nil
}

// TechnicianDroneInsert moves a fully dronable truck segment onto a drone,
// either into one of its trips or as a new trip appended to it.
func TechnicianDroneInsert(c Customers, original model.Solution, length int) (*Set, error) {
	if err := checkInsert(c, original, length); err != nil {
		return nil, err
	}
	return insertTechnicianDrone(c, original, length), nil
}

// DroneTechnicianInsert moves a segment of a drone trip into a truck path.
func DroneTechnicianInsert(c Customers, original model.Solution, length int) (*Set, error) {
	if err := checkInsert(c, original, length); err != nil {
		return nil, err
	}
	return insertDroneTechnician(original, length), nil
}

// DroneDroneInsert moves a segment of a trip of one drone onto another drone,
// into one of its trips or as a new trip. A new trip is only opened when the
// source trip keeps at least one customer.
func DroneDroneInsert(c Customers, original model.Solution, length int) (*Set, error) {
	if err := checkInsert(c, original, length); err != nil {
		return nil, err
	}
	return insertDroneDrone(original, length), nil
}

func insertTechnicianTechnician(original model.Solution, length int) *Set {
	out := NewSet()
	paths := original.TechnicianPaths
	for i := range paths {
		for j := range paths {
			if i == j {
				continue
			}
			moveSegment(paths[i], paths[j], length, func(from, to []int) {
				c := original.Clone()
				c.TechnicianPaths[i] = from
				c.TechnicianPaths[j] = to
				out.Add(c)
			})
		}
	}
	return out
}

func insertTechnicianDrone(cs Customers, original model.Solution, length int) *Set {
	out := NewSet()
	for t, path := range original.TechnicianPaths {
		for d := range original.DronePaths {
			for at := 1; at < len(path)-length; at++ {
				if !allDronable(cs, path[at:at+length]) {
					continue
				}
				rest, seg := cutSegment(path, at, length)

				c := original.Clone()
				c.TechnicianPaths[t] = rest
				c.DronePaths[d] = append(c.DronePaths[d], newTrip(seg))
				out.Add(c)

				for k, trip := range original.DronePaths[d] {
					for loc := 1; loc < len(trip)-1; loc++ {
						c := original.Clone()
						c.TechnicianPaths[t] = append([]int(nil), rest...)
						c.DronePaths[d][k] = placeSegment(trip, loc, seg)
						out.Add(c)
					}
				}
			}
		}
	}
	return out
}

func insertDroneTechnician(original model.Solution, length int) *Set {
	out := NewSet()
	for d, trips := range original.DronePaths {
		for k, trip := range trips {
			for t, path := range original.TechnicianPaths {
				moveSegment(trip, path, length, func(from, to []int) {
					c := original.Clone()
					c.DronePaths[d][k] = from
					c.TechnicianPaths[t] = to
					out.Add(c)
				})
			}
		}
	}
	return out
}

func insertDroneDrone(original model.Solution, length int) *Set {
	out := NewSet()
	drones := original.DronePaths
	for d1 := range drones {
		for d2 := range drones {
			if d1 == d2 {
				continue
			}
			for k1, trip := range drones[d1] {
				if len(trip)-2 > length {
					for at := 1; at < len(trip)-length; at++ {
						rest, seg := cutSegment(trip, at, length)
						c := original.Clone()
						c.DronePaths[d1][k1] = rest
						c.DronePaths[d2] = append(c.DronePaths[d2], newTrip(seg))
						out.Add(c)
					}
				}
				for k2, target := range drones[d2] {
					moveSegment(trip, target, length, func(from, to []int) {
						c := original.Clone()
						c.DronePaths[d1][k1] = from
						c.DronePaths[d2][k2] = to
						out.Add(c)
					})
				}
			}
		}
	}
	return out
}

// moveSegment emits (from, to) for every cut of length nodes out of from's
// interior placed before every interior position of to.
func moveSegment(from, to []int, length int, emit func([]int, []int)) {
	for at := 1; at < len(from)-length; at++ {
		for loc := 1; loc < len(to)-1; loc++ {
			rest, seg := cutSegment(from, at, length)
			emit(rest, placeSegment(to, loc, seg))
		}
	}
}

func cutSegment(path []int, at, length int) (rest, seg []int) {
	seg = append([]int(nil), path[at:at+length]...)
	rest = make([]int, 0, len(path)-length)
	rest = append(rest, path[:at]...)
	rest = append(rest, path[at+length:]...)
	return rest, seg
}

func placeSegment(path []int, at int, seg []int) []int {
	out := make([]int, 0, len(path)+len(seg))
	out = append(out, path[:at]...)
	out = append(out, seg...)
	out = append(out, path[at:]...)
	return out
}

func newTrip(seg []int) []int {
	trip := make([]int, 0, len(seg)+2)
	trip = append(trip, model.Depot)
	trip = append(trip, seg...)
	return append(trip, model.Depot)
}

func allDronable(cs Customers, seg []int) bool {
	for _, idx := range seg {
		if !cs.Customer(idx).Dronable {
			return false
		}
	}
	return true
}

func checkInsert(cs Customers, original model.Solution, length int) error {
	if length < 1 {
		return fmt.Errorf("insert: segment length must be positive, got %d: %w", length, model.ErrInvalidArgument)
	}
	n := cs.Len()
	check := func(path []int) error {
		for _, idx := range path {
			if idx < 0 || idx >= n {
				return fmt.Errorf("insert: customer %d out of range [0, %d): %w", idx, n, model.ErrInvalidArgument)
			}
		}
		return nil
	}
	for _, p := range original.TechnicianPaths {
		if err := check(p); err != nil {
			return err
		}
	}
	for _, trips := range original.DronePaths {
		for _, p := range trips {
			if err := check(p); err != nil {
				return err
			}
		}
	}
	return nil
}
