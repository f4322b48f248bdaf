package core

import "math/rand/v2"

const passStride = 0x9e3779b97f4a7c15

// RNG is a small deterministic generator backed by a PCG source. It is a
// value type so hot loops can keep one on the stack and reseed it per cell.
type RNG struct {
	pcg rand.PCG
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	r := &RNG{}
	r.pcg.Seed(uint64(seed), 0)
	return r
}

// Reseed restarts the generator for one cell of one pass. Any goroutine that
// reseeds with the same triple observes the same sequence, so work split
// across goroutines stays reproducible.
func (r *RNG) Reseed(seed int64, pass uint64, index int) {
	r.pcg.Seed(uint64(seed)+pass*passStride, uint64(index))
}

// Uint64 returns a uniformly distributed 64-bit value.
func (r *RNG) Uint64() uint64 { return r.pcg.Uint64() }

// IntN returns a value in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.pcg.Uint64() % uint64(n))
}

// Range returns a value in [lo, hi). It returns lo when the range is empty.
func (r *RNG) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo)
}

// OneIn reports true with probability 1/n. n <= 1 is always true.
func (r *RNG) OneIn(n int) bool {
	if n <= 1 {
		return true
	}
	return r.IntN(n) == 0
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.pcg.Uint64()&1 == 1
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.pcg.Uint64()>>11) / (1 << 53)
}

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}
