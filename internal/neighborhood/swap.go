// Package neighborhood enumerates segment-swap moves over delivery plans.
//
// A move exchanges a contiguous interior segment of firstLength nodes with
// one of secondLength nodes, either inside one path or across two paths.
// Position 0 and the last position are never touched, so every candidate
// keeps its depot anchors.
package neighborhood

import (
	"fmt"

	"d2dsearch/internal/model"
)

// Swap is the union of every swap family.
func Swap(original model.Solution, firstLength, secondLength int) (*Set, error) {
	if err := checkLengths(firstLength, secondLength); err != nil {
		return nil, err
	}
	out := NewSet()
	for _, family := range []func(model.Solution, int, int) (*Set, error){
		TechnicianTechnicianSwap,
		TechnicianDroneSwap,
		DroneDroneSwap,
	} {
		set, err := family(original, firstLength, secondLength)
		if err != nil {
			return nil, err
		}
		out.Merge(set)
	}
	return out, nil
}

// TechnicianTechnicianSwap swaps segments inside each truck path and between
// every unordered pair of truck paths.
func TechnicianTechnicianSwap(original model.Solution, firstLength, secondLength int) (*Set, error) {
	if err := checkLengths(firstLength, secondLength); err != nil {
		return nil, err
	}
	out := NewSet()
	paths := original.TechnicianPaths

	for a := range paths {
		withinPath(paths[a], firstLength, secondLength, func(moved []int) {
			c := original.Clone()
			c.TechnicianPaths[a] = moved
			out.Add(c)
		})

		for b := a + 1; b < len(paths); b++ {
			betweenPaths(paths[a], paths[b], firstLength, secondLength, func(movedA, movedB []int) {
				c := original.Clone()
				c.TechnicianPaths[a] = movedA
				c.TechnicianPaths[b] = movedB
				out.Add(c)
			})
		}
	}
	return out, nil
}

// TechnicianDroneSwap would exchange segments between a truck path and a
// drone trip. It yields no candidates.
func TechnicianDroneSwap(_ model.Solution, firstLength, secondLength int) (*Set, error) {
	if err := checkLengths(firstLength, secondLength); err != nil {
		return nil, err
	}
	return NewSet(), nil
}

// DroneDroneSwap swaps segments inside each drone trip and between every
// ordered pair of distinct trips, whether or not they belong to one drone.
func DroneDroneSwap(original model.Solution, firstLength, secondLength int) (*Set, error) {
	if err := checkLengths(firstLength, secondLength); err != nil {
		return nil, err
	}
	out := NewSet()
	drones := original.DronePaths

	for d1 := range drones {
		for p1 := range drones[d1] {
			withinPath(drones[d1][p1], firstLength, secondLength, func(moved []int) {
				c := original.Clone()
				c.DronePaths[d1][p1] = moved
				out.Add(c)
			})

			for d2 := range drones {
				for p2 := range drones[d2] {
					if d1 == d2 && p1 == p2 {
						continue
					}
					betweenPaths(drones[d1][p1], drones[d2][p2], firstLength, secondLength, func(movedA, movedB []int) {
						c := original.Clone()
						c.DronePaths[d1][p1] = movedA
						c.DronePaths[d2][p2] = movedB
						out.Add(c)
					})
				}
			}
		}
	}
	return out, nil
}

// withinPath emits path with the segment [i, i+l1) exchanged for the later,
// non-overlapping segment [j, j+l2).
func withinPath(path []int, l1, l2 int, emit func([]int)) {
	n := len(path)
	if n < 2+l1+l2 {
		return
	}
	for i := 1; i < n-l1; i++ {
		for j := i + l1; j < n-l2; j++ {
			moved := make([]int, 0, n)
			moved = append(moved, path[:i]...)
			moved = append(moved, path[j:j+l2]...)
			moved = append(moved, path[i+l1:j]...)
			moved = append(moved, path[i:i+l1]...)
			moved = append(moved, path[j+l2:]...)
			emit(moved)
		}
	}
}

// betweenPaths emits both paths after exchanging a[i:i+l1] with b[j:j+l2].
// The paths grow or shrink when the segment lengths differ.
func betweenPaths(a, b []int, l1, l2 int, emit func([]int, []int)) {
	for i := 1; i < len(a)-l1; i++ {
		for j := 1; j < len(b)-l2; j++ {
			movedA := make([]int, 0, len(a)-l1+l2)
			movedA = append(movedA, a[:i]...)
			movedA = append(movedA, b[j:j+l2]...)
			movedA = append(movedA, a[i+l1:]...)

			movedB := make([]int, 0, len(b)-l2+l1)
			movedB = append(movedB, b[:j]...)
			movedB = append(movedB, a[i:i+l1]...)
			movedB = append(movedB, b[j+l2:]...)
			emit(movedA, movedB)
		}
	}
}

func checkLengths(firstLength, secondLength int) error {
	if firstLength < 0 || secondLength < 0 {
		return fmt.Errorf("swap: segment lengths must be non-negative, got %d and %d: %w", firstLength, secondLength, model.ErrInvalidArgument)
	}
	return nil
}
