// Package sim drives one target-practice simulation: motion, particles, the
// spawn timer and pointer hits. A Simulation is not safe for concurrent use;
// callers serialize Frame, Fire and Aim onto one goroutine (see package loop).
package sim

import (
	"errors"
	"log"
	"time"

	"aimlab/internal/crosshair"
	"aimlab/internal/events"
	"aimlab/internal/hit"
	"aimlab/internal/particles"
	"aimlab/internal/rng"
	"aimlab/internal/settings"
	"aimlab/internal/surface"
	"aimlab/internal/targets"
	"aimlab/internal/vecmath"
)

// DefaultMaxFrameDelta is the largest frame, in seconds, that is integrated.
// Longer gaps (a suspended tab, a stalled terminal) are dropped.
const DefaultMaxFrameDelta = 0.1

var (
	ErrFrameDropped = errors.New("frame dropped")
	ErrTornDown     = errors.New("simulation torn down")
)

type Config struct {
	MaxFrameDelta float64
	Random        rng.Source
	Logger        *log.Logger
	Crosshair     *crosshair.State
}

type Stats struct {
	Targets        int `json:"targets"`
	ParticleGroups int `json:"particleGroups"`
	Dropped        int `json:"dropped"`
}

type Simulation[V vecmath.Vector[V]] struct {
	space      targets.Space[V]
	surf       surface.Surface[V]
	settings   settings.Provider
	detector   hit.Detector[V]
	sink       events.Sink
	store      *targets.Store[V]
	spawner    *targets.Spawner[V]
	integrator *targets.Integrator[V]
	particles  *particles.System[V]
	crosshair  *crosshair.State
	logger     *log.Logger
	now        func() time.Time

	maxDelta   float64
	spawnTimer float64
	dropped    int
	tornDown   bool
}

func New[V vecmath.Vector[V]](space targets.Space[V], surf surface.Surface[V], provider settings.Provider, detector hit.Detector[V], sink events.Sink, cfg Config) *Simulation[V] {
	if cfg.MaxFrameDelta <= 0 {
		cfg.MaxFrameDelta = DefaultMaxFrameDelta
	}
	if cfg.Random == nil {
		cfg.Random = rng.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if sink == nil {
		sink = events.Discard{}
	}
	store := targets.NewStore(surf)
	return &Simulation[V]{
		space:      space,
		surf:       surf,
		settings:   provider,
		detector:   detector,
		sink:       sink,
		store:      store,
		spawner:    targets.NewSpawner(space, store, surf, cfg.Random),
		integrator: targets.NewIntegrator(space, surf),
		particles:  particles.NewSystem(space, surf, cfg.Random),
		crosshair:  cfg.Crosshair,
		logger:     cfg.Logger,
		now:        time.Now,
		maxDelta:   cfg.MaxFrameDelta,
	}
}

// NewPlane builds the screen-space simulation with first-match hit testing.
func NewPlane(surf surface.Surface[vecmath.Vec2], provider settings.Provider, sink events.Sink, cfg Config) *Simulation[vecmath.Vec2] {
	return New(targets.Plane(), surf, provider, hit.Planar{}, sink, cfg)
}

// NewVolume builds the world-space simulation with nearest-hit ray casting
// through cam.
func NewVolume(surf surface.Surface[vecmath.Vec3], cam vecmath.Camera, provider settings.Provider, sink events.Sink, cfg Config) *Simulation[vecmath.Vec3] {
	return New(targets.Volume(), surf, provider, hit.NewRayCaster(cam), sink, cfg)
}

// Frame advances the simulation by dt seconds: targets move and reflect,
// dead targets are swept, particles age, and the density timer may spawn a
// new target. Oversized frames are dropped whole with ErrFrameDropped.
func (s *Simulation[V]) Frame(dt float64) error {
	if s.tornDown {
		return ErrTornDown
	}
	if dt < 0 || dt > s.maxDelta {
		s.dropped++
		return ErrFrameDropped
	}

	arena := s.surf.Arena()
	s.integrator.Advance(s.store, dt, arena)
	s.particles.Update(dt)

	s.spawnTimer += dt
	cfg := s.settings.Snapshot()
	if s.spawnTimer >= cfg.SpawnInterval() {
		s.spawnTimer = 0
		if _, err := s.spawner.Spawn(cfg, arena); err != nil && !errors.Is(err, targets.ErrArenaNotReady) {
			s.logger.Printf("[Sim] spawn: %v\n", err)
		}
	}
	return nil
}

// Spawn places one target immediately, outside the density timer.
func (s *Simulation[V]) Spawn() (*targets.Target[V], error) {
	if s.tornDown {
		return nil, ErrTornDown
	}
	return s.spawner.Spawn(s.settings.Snapshot(), s.surf.Arena())
}

// Fire resolves a pointer press against the targets' latest positions. A
// hit destroys the target, sets off a burst in its color and reports to the
// sink; a miss is only reported and logged.
func (s *Simulation[V]) Fire(p hit.Pointer) *targets.Target[V] {
	if s.tornDown {
		return nil
	}
	t := s.detector.CheckHit(p, s.store.GetList())
	if t == nil || !s.store.Kill(t.ID) {
		local := p.Local()
		s.logger.Printf("[Sim] miss at (%.0f, %.0f)\n", local.X, local.Y)
		s.sink.OnMiss(events.MissEvent{Pointer: vecmath.Components(local), At: s.now()})
		return nil
	}
	s.store.Sweep()
	s.particles.Explode(t.Position, t.Color, particles.Burst)
	s.sink.OnHit(events.HitEvent{
		TargetID:  t.ID,
		Position:  vecmath.Components(t.Position),
		Radius:    t.Radius,
		Color:     t.Color,
		SpawnedAt: t.SpawnedAt,
		At:        s.now(),
	})
	return t
}

// Aim moves the crosshair, if one is attached, to the pointer.
func (s *Simulation[V]) Aim(p hit.Pointer) {
	if s.crosshair == nil || s.tornDown {
		return
	}
	local := p.Local()
	s.crosshair.UpdatePosition(local.X, local.Y)
}

// ApplySettings restyles the crosshair from the current settings snapshot.
func (s *Simulation[V]) ApplySettings() {
	if s.crosshair == nil || s.tornDown {
		return
	}
	s.crosshair.UpdateStyle(crosshair.StyleFrom(s.settings.Snapshot()))
}

// Reset clears targets and particles and restarts the spawn timer, keeping
// the simulation usable.
func (s *Simulation[V]) Reset() {
	s.store.Clear()
	s.particles.Clear()
	s.spawnTimer = 0
}

// Teardown releases every primitive the simulation owns. Later calls to
// Frame return ErrTornDown.
func (s *Simulation[V]) Teardown() {
	if s.tornDown {
		return
	}
	s.Reset()
	if s.crosshair != nil {
		s.crosshair.Destroy()
	}
	s.tornDown = true
}

func (s *Simulation[V]) Targets() []*targets.Target[V] { return s.store.GetList() }

func (s *Simulation[V]) Particles() []*particles.Group[V] { return s.particles.Groups() }

func (s *Simulation[V]) Space() targets.Space[V] { return s.space }

func (s *Simulation[V]) Stats() Stats {
	return Stats{
		Targets:        len(s.store.GetList()),
		ParticleGroups: s.particles.Len(),
		Dropped:        s.dropped,
	}
}
