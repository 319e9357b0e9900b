package pacing

import (
	"math/rand"
	"sync"
	"time"
)

// Source is a seedable random source safe for use from multiple goroutines.
// A zero seed derives one from the wall clock.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource builds a source from the given seed.
func NewSource(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Intn returns a uniform int in [0, n).
func (s *Source) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// IntBetween returns a uniform int in [min, max].
func (s *Source) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Intn(max-min+1)
}

// Float64 returns a uniform float in [0, 1).
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// Pick returns one element of pool chosen uniformly at random.
// Empty pools yield the empty string.
func (s *Source) Pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[s.Intn(len(pool))]
}

// Pacer simulates inference/typing latency. Engine code never calls
// time.Sleep directly; it asks the pacer, so tests can run with zero delay.
type Pacer interface {
	// Sleep pauses for the given duration.
	Sleep(d time.Duration)
	// SleepBetween pauses for a uniform duration in [min, max].
	SleepBetween(min, max time.Duration)
}

// Real sleeps on the wall clock with jitter drawn from src.
type Real struct {
	src *Source
}

// NewReal builds a wall-clock pacer.
func NewReal(src *Source) *Real {
	if src == nil {
		src = NewSource(0)
	}
	return &Real{src: src}
}

func (p *Real) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

func (p *Real) SleepBetween(min, max time.Duration) {
	if max < min {
		max = min
	}
	d := min
	if max > min {
		d = min + time.Duration(p.src.Intn(int(max-min)+1))
	}
	p.Sleep(d)
}

// Zero never sleeps. Used in tests and when latency simulation is disabled.
type Zero struct{}

func (Zero) Sleep(time.Duration)                       {}
func (Zero) SleepBetween(time.Duration, time.Duration) {}
