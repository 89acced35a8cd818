package neighborhood

import (
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"

	"d2dsearch/internal/model"
)

// Set holds structurally distinct plans. Plans are bucketed by a hash of
// their nested shape and compared for equality inside a bucket.
type Set struct {
	buckets map[uint64][]model.Solution
	n       int
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{buckets: make(map[uint64][]model.Solution)}
}

// Add inserts sol unless an equal plan is already present.
func (s *Set) Add(sol model.Solution) bool {
	k := Key(sol)
	for _, existing := range s.buckets[k] {
		if existing.Equal(sol) {
			return false
		}
	}
	s.buckets[k] = append(s.buckets[k], sol)
	s.n++
	return true
}

// Contains reports whether an equal plan is in the set.
func (s *Set) Contains(sol model.Solution) bool {
	for _, existing := range s.buckets[Key(sol)] {
		if existing.Equal(sol) {
			return true
		}
	}
	return false
}

// Merge adds every plan of o.
func (s *Set) Merge(o *Set) {
	for _, bucket := range o.buckets {
		for _, sol := range bucket {
			s.Add(sol)
		}
	}
}

// Len is the number of distinct plans.
func (s *Set) Len() int { return s.n }

// Items returns the plans ordered by model.Compare.
func (s *Set) Items() []model.Solution {
	out := make([]model.Solution, 0, s.n)
	for _, bucket := range s.buckets {
		out = append(out, bucket...)
	}
	slices.SortFunc(out, model.Compare)
	return out
}

// Key hashes the nested shape of sol. Lengths are mixed in so that
// [[1,2],[3]] and [[1],[2,3]] differ.
func Key(sol model.Solution) uint64 {
	d := xxhash.New()
	var buf [8]byte
	put := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = d.Write(buf[:])
	}
	path := func(p []int) {
		put(len(p))
		for _, v := range p {
			put(v)
		}
	}

	put(len(sol.TechnicianPaths))
	for _, p := range sol.TechnicianPaths {
		path(p)
	}
	put(len(sol.DronePaths))
	for _, trips := range sol.DronePaths {
		put(len(trips))
		for _, p := range trips {
			path(p)
		}
	}
	return d.Sum64()
}
