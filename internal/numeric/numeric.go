// Package numeric holds the small math and randomness helpers shared by the
// timing engine and the TSP solver.
package numeric

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"d2dsearch/internal/model"
)

// NewRand returns a generator for seed. A zero seed draws one from the clock,
// so runs are only reproducible when the caller fixes the seed.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomInt returns a uniform integer in the closed range [l, r].
func RandomInt(rng *rand.Rand, l, r int) int {
	if r <= l {
		return l
	}
	return l + rng.Intn(r-l+1)
}

// RandomFloat returns a uniform float in [l, r).
func RandomFloat(rng *rand.Rand, l, r float64) float64 {
	return l + rng.Float64()*(r-l)
}

// Sqrt computes the square root by bisection on [0, max(1, value)]. The
// bracket shrinks until its ends are adjacent floats, and the end whose
// square is closer to value wins, so perfect squares come back exact.
func Sqrt(value float64) (float64, error) {
	if value < 0 || math.IsNaN(value) {
		return 0, fmt.Errorf("sqrt of %g: %w", value, model.ErrDomain)
	}
	if value == 0 {
		return 0, nil
	}
	low, high := 0.0, math.Max(1, value)
	for {
		mid := low + (high-low)/2
		if mid == low || mid == high {
			break
		}
		if mid*mid < value {
			low = mid
		} else {
			high = mid
		}
	}
	if math.Abs(low*low-value) < math.Abs(high*high-value) {
		return low, nil
	}
	return high, nil
}

// Sqr returns value squared.
func Sqr(value float64) float64 { return value * value }

// Round rounds value to the given number of decimal places.
func Round(value float64, precision int) float64 {
	factor := math.Pow(10, float64(precision))
	return math.Round(value*factor) / factor
}

// RotateToFirst rotates path in place so it begins with first.
func RotateToFirst(path []int, first int) error {
	at := -1
	for i, v := range path {
		if v == first {
			at = i
			break
		}
	}
	if at < 0 {
		return fmt.Errorf("rotate: first city %d not found in path: %w", first, model.ErrInvalidArgument)
	}
	rotated := append(append(make([]int, 0, len(path)), path[at:]...), path[:at]...)
	copy(path, rotated)
	return nil
}

// FormatPath renders a path as "[0, 3, 1, 0]" for log lines.
func FormatPath(path []int) string {
	parts := make([]string, len(path))
	for i, v := range path {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
