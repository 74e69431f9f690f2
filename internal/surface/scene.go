package surface

import (
	"slices"
	"sync"

	"aimlab/internal/vecmath"
)

// Scene is a retained-mode Surface kept in memory. It backs headless runs and
// tests, and concrete renderers embed it and draw from Each.
type Scene[V vecmath.Vector[V]] struct {
	mu         sync.Mutex
	arena      vecmath.Box[V]
	primitives map[Handle]Primitive[V]
	next       Handle
}

func NewScene[V vecmath.Vector[V]](arena vecmath.Box[V]) *Scene[V] {
	return &Scene[V]{
		arena:      arena,
		primitives: make(map[Handle]Primitive[V]),
		next:       1,
	}
}

func (s *Scene[V]) Arena() vecmath.Box[V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arena
}

// SetArena records new bounds, e.g. after a terminal or window resize.
func (s *Scene[V]) SetArena(arena vecmath.Box[V]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arena = arena
}

func (s *Scene[V]) Add(p Primitive[V]) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.next
	s.next++
	p.Points = slices.Clone(p.Points)
	s.primitives[h] = p
	return h
}

func (s *Scene[V]) Remove(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.primitives, h)
}

func (s *Scene[V]) Move(h Handle, pos V) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.primitives[h]; ok {
		p.Position = pos
		s.primitives[h] = p
	}
}

func (s *Scene[V]) Update(h Handle, p Primitive[V]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.primitives[h]; ok {
		p.Points = slices.Clone(p.Points)
		s.primitives[h] = p
	}
}

func (s *Scene[V]) Get(h Handle) (Primitive[V], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.primitives[h]
	return p, ok
}

func (s *Scene[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.primitives)
}

// Count returns how many primitives of the given kind are placed.
func (s *Scene[V]) Count(k Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.primitives {
		if p.Kind == k {
			n++
		}
	}
	return n
}

// Each visits primitives in creation order, so later primitives draw on top.
func (s *Scene[V]) Each(fn func(h Handle, p Primitive[V])) {
	s.mu.Lock()
	handles := make([]Handle, 0, len(s.primitives))
	for h := range s.primitives {
		handles = append(handles, h)
	}
	slices.Sort(handles)
	snapshot := make([]Primitive[V], len(handles))
	for i, h := range handles {
		snapshot[i] = s.primitives[h]
	}
	s.mu.Unlock()

	for i, h := range handles {
		fn(h, snapshot[i])
	}
}

func (s *Scene[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.primitives = make(map[Handle]Primitive[V])
}
