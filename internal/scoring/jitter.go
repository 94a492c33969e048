package scoring

import (
	"math/rand/v2"
	"sync"
)

// Jitter draws a bounded random adjustment centred on zero.
type Jitter interface {
	// Draw returns a value in [-width/2, width/2].
	Draw(width float64) float64
}

// RandomJitter draws from the process-wide generator.
type RandomJitter struct{}

func (RandomJitter) Draw(width float64) float64 {
	return (rand.Float64() - 0.5) * width
}

// NoJitter always returns zero.
type NoJitter struct{}

func (NoJitter) Draw(float64) float64 { return 0 }

// SeededJitter is a reproducible source, safe for concurrent use.
type SeededJitter struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSeededJitter(seed uint64) *SeededJitter {
	return &SeededJitter{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *SeededJitter) Draw(width float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return (s.rng.Float64() - 0.5) * width
}
