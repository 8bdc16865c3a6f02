// internal/gesture/random.go
package gesture

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Source is the uniform random stream every stochastic step draws from.
// *rand.Rand satisfies it; tests substitute scripted sequences.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform integer in [0, n). n must be positive.
	Intn(n int) int
}

// lockedSource serializes access to a *rand.Rand, which is not safe for concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLockedSource returns a goroutine-safe Source seeded with seed.
func NewLockedSource(seed int64) Source {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

// NewTimeSeededSource returns a goroutine-safe Source seeded from the wall clock.
func NewTimeSeededSource() Source {
	return NewLockedSource(time.Now().UnixNano())
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

func (l *lockedSource) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}

// Gaussian draws from N(mean, stdDev²) with the Box-Muller transform over two
// uniform draws. The result is unbounded; callers clamp where they need to.
func Gaussian(src Source, mean, stdDev float64) float64 {
	// Float64 is in [0,1); flip it so the log argument is in (0,1].
	u1 := 1.0 - src.Float64()
	u2 := src.Float64()
	z := math.Sqrt(-2.0*math.Log(u1)) * math.Cos(2.0*math.Pi*u2)
	return mean + z*stdDev
}

// UniformInt draws an integer uniformly from the closed range [min, max].
func UniformInt(src Source, min, max int) int {
	if max <= min {
		return min
	}
	return min + src.Intn(max-min+1)
}

// UniformFloat draws a real number uniformly from [min, max).
func UniformFloat(src Source, min, max float64) float64 {
	return min + src.Float64()*(max-min)
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
