// Package rng provides the random sources threaded through spawners and
// particle systems, so tests can pin the sequence.
package rng

import (
	"math/rand/v2"
	"sync"
)

type Source interface {
	Float64() float64
}

// New returns a seeded source. Two sources built with the same seed produce
// the same sequence.
func New(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type global struct{}

func (global) Float64() float64 { return rand.Float64() }

// Default draws from the process-wide generator.
func Default() Source { return global{} }

// Sequence replays a fixed list of values, wrapping around at the end.
type Sequence struct {
	mu     sync.Mutex
	values []float64
	next   int
}

func NewSequence(values ...float64) *Sequence {
	if len(values) == 0 {
		values = []float64{0.5}
	}
	return &Sequence{values: values}
}

func (s *Sequence) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}
