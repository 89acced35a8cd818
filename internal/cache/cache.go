// Package cache stores solved TSP tours keyed by their input, so repeated
// sub-tour requests skip the solver.
package cache

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"d2dsearch/internal/model"
	"d2dsearch/internal/tsp"
)

// TourCache is a store of solved tours. A miss is (nil, nil).
type TourCache interface {
	Get(ctx context.Context, key string) (*tsp.Result, error)
	Set(ctx context.Context, key string, res tsp.Result) error
}

// TourKey identifies a TSP request by its cities and start city.
func TourKey(cities []model.Point, first int) string {
	d := xxhash.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	put(uint64(len(cities)))
	put(uint64(first))
	for _, c := range cities {
		put(math.Float64bits(c.X))
		put(math.Float64bits(c.Y))
	}
	return fmt.Sprintf("tsp:tour:%016x", d.Sum64())
}

// Memory is an in-process LRU cache. Entries expire after the TTL and the
// least recently used tour is evicted once the size bound is reached.
type Memory struct {
	lru *expirable.LRU[string, tsp.Result]
}

// DefaultMemorySize bounds NewMemory when the caller passes size <= 0.
const DefaultMemorySize = 4096

// NewMemory returns an empty cache holding at most size tours for ttl each.
// A zero ttl keeps entries until they are evicted.
func NewMemory(size int, ttl time.Duration) *Memory {
	if size <= 0 {
		size = DefaultMemorySize
	}
	return &Memory{lru: expirable.NewLRU[string, tsp.Result](size, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, key string) (*tsp.Result, error) {
	res, ok := m.lru.Get(key)
	if !ok {
		return nil, nil
	}
	res.Tour = append([]int(nil), res.Tour...)
	return &res, nil
}

func (m *Memory) Set(_ context.Context, key string, res tsp.Result) error {
	res.Tour = append([]int(nil), res.Tour...)
	m.lru.Add(key, res)
	return nil
}

// Len is the number of cached tours.
func (m *Memory) Len() int { return m.lru.Len() }
