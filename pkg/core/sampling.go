package core

import "math/rand"

// NewRandom returns a random generator for one independent stream of a render.
// Every worker owns its generator so sampling needs no locking and a
// given (seed, stream) pair always reproduces the same sequence.
func NewRandom(seed int64, stream int) *rand.Rand {
	// +42 to avoid seed 0 for the first stream
	return rand.New(rand.NewSource(seed + int64(stream)*7919 + 42))
}
