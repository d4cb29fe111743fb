// Package sampling provides the seeded randomness primitives shared by
// the fixture generators: weighted choice, inclusive ranges, and a small
// Beta sampler for grade-like values. Every helper takes an explicit
// *rand.Rand so a generator's output is fully determined by its seed.
package sampling

import (
	"math/rand"
	"sort"
	"time"
)

// Weighted draws items with probability proportional to their weight.
// Zero-weight items stay in the table but are never selected.
type Weighted[T any] struct {
	items []T
	cum   []float64
}

// NewWeighted builds a weighted chooser over parallel item and weight
// slices. It panics if the lengths differ, a weight is negative, or the
// weights sum to zero, since the tables are compile-time literals.
func NewWeighted[T any](items []T, weights []float64) *Weighted[T] {
	if len(items) == 0 || len(items) != len(weights) {
		panic("sampling: items and weights must be non-empty and equal length")
	}
	cum := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w < 0 {
			panic("sampling: weights must not be negative")
		}
		total += w
		cum[i] = total
	}
	if total <= 0 {
		panic("sampling: weights must not all be zero")
	}
	return &Weighted[T]{items: items, cum: cum}
}

// Pick draws one item.
func (w *Weighted[T]) Pick(rng *rand.Rand) T {
	r := rng.Float64() * w.cum[len(w.cum)-1]
	idx := sort.Search(len(w.cum), func(i int) bool { return w.cum[i] > r })
	return w.items[idx]
}

// Pick returns a uniformly chosen element. It panics on an empty slice.
func Pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

// IntBetween returns a uniform integer in [lo, hi], both ends inclusive.
// Bounds may arrive in either order.
func IntBetween(rng *rand.Rand, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// TimeBetween returns a uniform whole-second instant in [a, b], both ends
// inclusive. Bounds may arrive in either order; equal bounds return a.
func TimeBetween(rng *rand.Rand, a, b time.Time) time.Time {
	if b.Before(a) {
		a, b = b, a
	}
	span := int64(b.Sub(a) / time.Second)
	if span <= 0 {
		return a
	}
	return a.Add(time.Duration(rng.Int63n(span+1)) * time.Second)
}

// Chance reports true with probability p.
func Chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

// Beta draws from Beta(alpha, beta) for positive integer shapes using the
// order-statistic identity: the alpha-th smallest of alpha+beta-1
// independent uniforms. The shapes used here are tiny, so the extra
// draws are cheaper than carrying a numerics dependency.
func Beta(rng *rand.Rand, alpha, beta int) float64 {
	if alpha < 1 || beta < 1 {
		panic("sampling: Beta shapes must be positive integers")
	}
	u := make([]float64, alpha+beta-1)
	for i := range u {
		u[i] = rng.Float64()
	}
	sort.Float64s(u)
	return u[alpha-1]
}
