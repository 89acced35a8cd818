package model

// Depot is the customer index every path starts and ends at.
const Depot = 0

// Customer is one imported delivery point. Index 0 is the depot.
type Customer struct {
	X                     float64 `json:"x"`
	Y                     float64 `json:"y"`
	Demand                float64 `json:"demand"`
	Dronable              bool    `json:"dronable"`
	DroneServiceTime      float64 `json:"droneServiceTime"`
	TechnicianServiceTime float64 `json:"technicianServiceTime"`
}

// Point is a bare planar coordinate used by the TSP solver.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Solution is a full delivery plan: one path per truck and, for each drone,
// its ordered trips. Every path is a sequence of customer indices anchored at
// the depot on both ends.
type Solution struct {
	TechnicianPaths [][]int   `json:"technicianPaths"`
	DronePaths      [][][]int `json:"dronePaths"`
}

// Clone returns a deep copy so that mutations never leak into the original.
func (s Solution) Clone() Solution {
	out := Solution{
		TechnicianPaths: make([][]int, len(s.TechnicianPaths)),
		DronePaths:      make([][][]int, len(s.DronePaths)),
	}
	for i, p := range s.TechnicianPaths {
		out.TechnicianPaths[i] = append([]int(nil), p...)
	}
	for d, trips := range s.DronePaths {
		out.DronePaths[d] = make([][]int, len(trips))
		for t, p := range trips {
			out.DronePaths[d][t] = append([]int(nil), p...)
		}
	}
	return out
}

// Equal reports structural equality of the two plans.
func (s Solution) Equal(o Solution) bool {
	return Compare(s, o) == 0
}

// Compare is a total order over plans: technician paths first, then drone
// paths, each compared lexicographically with shorter prefixes first.
func Compare(a, b Solution) int {
	if c := compareNested(a.TechnicianPaths, b.TechnicianPaths); c != 0 {
		return c
	}
	n := min(len(a.DronePaths), len(b.DronePaths))
	for i := 0; i < n; i++ {
		if c := compareNested(a.DronePaths[i], b.DronePaths[i]); c != 0 {
			return c
		}
	}
	return cmpInt(len(a.DronePaths), len(b.DronePaths))
}

func compareNested(a, b [][]int) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := comparePath(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmpInt(len(a), len(b))
}

func comparePath(a, b []int) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return cmpInt(a[i], b[i])
		}
	}
	return cmpInt(len(a), len(b))
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
