// Package random owns the process-wide pseudo-random engine.
//
// The engine is seeded deterministically at start-up so that runs are
// reproducible, and it can be reseeded on demand. All access goes through a
// mutex: Rand holds it for a single draw, while Acquire returns a Guard that
// keeps it for a whole batch of draws.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Never retain the *rand.Rand from a
//     Guard after Release.
//   - Derive creates independent deterministic streams for callers that want
//     their own generator.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
)

// DefaultSeed is the seed used at start-up and by ReseedWithDefault.
const DefaultSeed int64 = 1

var (
	mu     sync.Mutex
	engine = rngFromSeed(DefaultSeed)
)

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use DefaultSeed; otherwise use the provided seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// Rand returns a uniform value in [0, n) using a single locked draw.
// It returns 0 for n <= 0.
func Rand(n int) int {
	if n <= 0 {
		return 0
	}
	mu.Lock()
	defer mu.Unlock()
	return engine.Intn(n)
}

// Reseed replaces the engine state with a deterministic seed.
func Reseed(seed int64) {
	mu.Lock()
	defer mu.Unlock()
	engine = rngFromSeed(seed)
}

// ReseedWithDefault restores the start-up state.
func ReseedWithDefault() { Reseed(DefaultSeed) }

// ReseedWithHardware seeds the engine from the operating system's entropy
// source. It falls back to DefaultSeed if no entropy is available.
func ReseedWithHardware() {
	var buf [8]byte
	seed := DefaultSeed
	if _, err := crand.Read(buf[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(buf[:]))
	}
	Reseed(seed)
}

// Guard holds the engine lock until Release is called.
type Guard struct {
	r        *rand.Rand
	released bool
}

// Acquire locks the engine for a batch of draws. Callers must Release.
func Acquire() *Guard {
	mu.Lock()
	return &Guard{r: engine}
}

// Intn draws a uniform value in [0, n).
func (g *Guard) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.r.Intn(n)
}

// Perm returns a uniformly random permutation of 0..n-1.
func (g *Guard) Perm(n int) []int { return g.r.Perm(n) }

// Release unlocks the engine. Extra calls are ignored.
func (g *Guard) Release() {
	if g.released {
		return
	}
	g.released = true
	mu.Unlock()
}

// deriveSeed mixes a parent seed and a stream identifier with a
// SplitMix64-style finalizer.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// Derive returns an independent deterministic generator for the given
// seed and stream. The result is owned by the caller and needs no lock.
func Derive(seed int64, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(deriveSeed(seed, stream)))
}
