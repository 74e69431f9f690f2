package targets

import (
	"slices"
	"sync"

	"aimlab/internal/surface"
	"aimlab/internal/vecmath"
)

// Store owns the live targets in spawn order. Removing a target from the
// store also releases its primitive on the surface.
type Store[V vecmath.Vector[V]] struct {
	mu      sync.Mutex
	surf    surface.Surface[V]
	targets []*Target[V]
	byID    map[int]*Target[V]
	nextID  int
}

func NewStore[V vecmath.Vector[V]](surf surface.Surface[V]) *Store[V] {
	return &Store[V]{
		surf:   surf,
		byID:   make(map[int]*Target[V]),
		nextID: 1,
	}
}

// Add assigns the next ID to t and appends it.
func (s *Store[V]) Add(t *Target[V]) *Target[V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	s.targets = append(s.targets, t)
	s.byID[t.ID] = t
	return t
}

func (s *Store[V]) Get(id int) *Target[V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byID[id]
}

// Kill tombstones a target. It reports false when the target is unknown or
// already dead.
func (s *Store[V]) Kill(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.byID[id]
	if !ok || t.Dead {
		return false
	}
	t.Dead = true
	return true
}

// GetList returns the live targets in spawn order.
func (s *Store[V]) GetList() []*Target[V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*Target[V], 0, len(s.targets))
	for _, t := range s.targets {
		if !t.Dead {
			list = append(list, t)
		}
	}
	return list
}

// All returns every stored target, tombstoned ones included.
func (s *Store[V]) All() []*Target[V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.targets)
}

func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.targets)
}

// Sweep purges dead targets and returns how many were removed.
func (s *Store[V]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.targets[:0]
	removed := 0
	for _, t := range s.targets {
		if t.Dead {
			s.release(t)
			delete(s.byID, t.ID)
			removed++
			continue
		}
		kept = append(kept, t)
	}
	clear(s.targets[len(kept):])
	s.targets = kept
	return removed
}

func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.targets {
		s.release(t)
	}
	s.targets = nil
	s.byID = make(map[int]*Target[V])
	s.nextID = 1
}

func (s *Store[V]) release(t *Target[V]) {
	if s.surf != nil && t.Handle != 0 {
		s.surf.Remove(t.Handle)
		t.Handle = 0
	}
}
