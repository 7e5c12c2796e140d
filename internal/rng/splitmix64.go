package rng

import (
	"encoding/binary"

	"decisionengine/internal/decision"
)

// Source is a splitmix64 generator. The zero value is not valid; use NewSource.
type Source struct {
	state uint64
}

// NewSource builds a Source from a caller-supplied seed. An empty seed
// yields the fixed default seed 0, which is a valid, reproducible stream,
// not an error: algorithms that are seed-free never construct a Source.
func NewSource(seed []byte) *Source {
	return &Source{state: seedToState(seed)}
}

func seedToState(seed []byte) uint64 {
	if len(seed) == 0 {
		return 0
	}
	var buf [8]byte
	var acc uint64
	for i := 0; i < len(seed); i += 8 {
		for j := range buf {
			buf[j] = 0
		}
		copy(buf[:], seed[i:min(i+8, len(seed))])
		acc ^= binary.LittleEndian.Uint64(buf[:])
		acc = splitmix64Step(acc)
	}
	return acc
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Next advances the state and returns the next 64-bit output.
func (s *Source) Next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	return splitmix64Step(s.state)
}

func splitmix64Step(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Float64 returns a deterministic value in [0, 1).
func (s *Source) Float64() float64 {
	// 53 bits of entropy, matching the mantissa width of float64.
	return float64(s.Next()>>11) / (1 << 53)
}

// Split derives an independent sub-stream for sub-index i, deterministically
// and without consuming from s. Used when an iterative algorithm wants
// per-branch streams that do not depend on OS-scheduled evaluation order.
func (s *Source) Split(subIndex int) *Source {
	child := splitmix64Step(s.state ^ uint64(subIndex)*0xd6e8feb86659fd93)
	return &Source{state: child}
}

// Seed validates and normalizes a caller-supplied seed, rejecting the empty
// slice for callers that require an explicit, present seed (seed-bearing
// algorithms only; most callers just pass the optional seed straight to
// NewSource and accept the default-zero stream).
func RequireSeed(seed []byte) error {
	if len(seed) == 0 {
		return decision.NewInvalidParams("rng.missing_seed", "algorithm requires a seed but none was supplied")
	}
	return nil
}
