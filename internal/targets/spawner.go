package targets

import (
	"errors"
	"time"

	"aimlab/internal/rng"
	"aimlab/internal/settings"
	"aimlab/internal/surface"
	"aimlab/internal/vecmath"
)

// ErrArenaNotReady is returned when the arena has no usable extent yet, e.g.
// the surface has not been laid out. The caller skips this spawn cycle.
var ErrArenaNotReady = errors.New("arena not ready")

type Spawner[V vecmath.Vector[V]] struct {
	space Space[V]
	store *Store[V]
	surf  surface.Surface[V]
	rand  rng.Source
	now   func() time.Time
}

func NewSpawner[V vecmath.Vector[V]](space Space[V], store *Store[V], surf surface.Surface[V], src rng.Source) *Spawner[V] {
	if src == nil {
		src = rng.Default()
	}
	return &Spawner[V]{
		space: space,
		store: store,
		surf:  surf,
		rand:  src,
		now:   time.Now,
	}
}

// Spawn creates a target inside arena from the current settings, places its
// primitive on the surface and adds it to the store.
func (s *Spawner[V]) Spawn(cfg settings.Settings, arena vecmath.Box[V]) (*Target[V], error) {
	radius := s.space.Radius(cfg.TargetSize)
	if !arena.Valid() || !arena.Fits(radius) {
		return nil, ErrArenaNotReady
	}

	pos := arena.Min
	for axis := range pos.Dim() {
		lo := arena.Min.At(axis) + radius
		span := arena.Max.At(axis) - arena.Min.At(axis) - 2*radius
		pos = pos.With(axis, lo+s.rand.Float64()*span)
	}

	vel, moving := s.velocity(cfg.GameMode, cfg.MoveSpeed, pos)

	t := &Target[V]{
		Position:  pos,
		Velocity:  vel,
		Radius:    radius,
		Color:     cfg.TargetColor,
		Moving:    moving,
		SpawnedAt: s.now(),
	}
	if s.surf != nil {
		t.Handle = s.surf.Add(surface.Primitive[V]{
			Kind:     surface.KindTarget,
			Position: pos,
			Radius:   radius,
			Color:    cfg.TargetColor,
			Alpha:    1,
		})
	}
	return s.store.Add(t), nil
}

func (s *Spawner[V]) velocity(mode settings.GameMode, speed float64, like V) (V, bool) {
	zero := vecmath.Fill(like, 0)
	switch mode {
	case settings.ModeRandom:
		return s.randomVelocity(speed, like), true
	case settings.ModeMixed:
		if s.rand.Float64() > 0.5 {
			return zero, false
		}
		return s.randomVelocity(speed, like), true
	default:
		return zero, false
	}
}

func (s *Spawner[V]) randomVelocity(speed float64, like V) V {
	v := like
	for axis := range v.Dim() {
		v = v.With(axis, (s.rand.Float64()-0.5)*speed)
	}
	return vecmath.Mul(v, s.space.VelocityScale)
}
