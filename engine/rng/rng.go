// Package rng wraps math/rand.Rand with deterministic position tracking.
// Position increments with every draw, so a build can be reproduced exactly
// by reseeding and replaying.
package rng

import "math/rand"

// RNG is a seeded random source. Callers own exactly one per generation
// pass; it is never cloned or reseeded mid-build.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// New creates a deterministic RNG from a seed.
func New(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Float32 returns a random float in [0, 1).
func (r *RNG) Float32() float32 {
	r.pos++
	return r.src.Float32()
}

// Range returns a random float in [min, max). Degenerate spans where
// max <= min return min without consuming entropy position-visibly
// beyond the single draw.
func (r *RNG) Range(min, max float32) float32 {
	r.pos++
	if max <= min {
		return min
	}
	return min + r.src.Float32()*(max-min)
}

// Intn returns a random int in [0, n). n must be positive.
func (r *RNG) Intn(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// Seed returns the seed this RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

// Restore creates an RNG and advances it to the given position,
// reproducing the exact state of a previous source.
func Restore(seed int64, position int64) *RNG {
	r := New(seed)
	for i := int64(0); i < position; i++ {
		r.src.Int63()
	}
	r.pos = position
	return r
}
