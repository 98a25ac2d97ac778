// Package chance wraps the random sources the scoring and sampling code draws from
package chance

import (
	"math/rand/v2"
	"sync"
)

// Rand is the randomness surface consumers need
// *rand.Rand satisfies it but is not safe for concurrent use; prefer Seeded for shared sources
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type global struct{}

func (global) Float64() float64 { return rand.Float64() }
func (global) IntN(n int) int   { return rand.IntN(n) }

// Global returns a Rand backed by the process-wide source
func Global() Rand { return global{} }

type locked struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// Seeded returns a reproducible Rand that may be shared across goroutines
func Seeded(seed uint64) Rand {
	return &locked{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Uniform returns a value in [lo, hi)
func Uniform(r Rand, lo, hi float64) float64 { return lo + r.Float64()*(hi-lo) }

// Between returns an int in [lo, hi] inclusive
func Between(r Rand, lo, hi int) int { return lo + r.IntN(hi-lo+1) }

// Sample picks k distinct indexes from [0, n) in selection order, k is clamped to n
func Sample(r Rand, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + r.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

// Pick returns a uniformly chosen element of xs, xs must not be empty
func Pick[T any](r Rand, xs []T) T { return xs[r.IntN(len(xs))] }
