// Package particles drives the short-lived explosion effects shown on a hit.
package particles

import (
	"math"
	"sync"

	"aimlab/internal/rng"
	"aimlab/internal/surface"
	"aimlab/internal/targets"
	"aimlab/internal/utility"
	"aimlab/internal/vecmath"
)

type Kind uint8

const (
	// Burst is the destruction explosion: particles fly out in every
	// direction, fall under gravity and carry jittered colors.
	Burst Kind = iota + 1
	// Marker is a ring of particles in the exact hit color.
	Marker
)

func (k Kind) String() string {
	switch k {
	case Burst:
		return "burst"
	case Marker:
		return "marker"
	}
	return "unknown"
}

const (
	BurstCount  = 30
	MarkerCount = 15

	BurstLifetime  = 1.0
	MarkerLifetime = 0.5

	Drag = 0.98

	burstSpread      = 0.25
	burstColorJitter = 0.15
	burstSpeed       = 5.0
	burstGravity     = 9.8 * 0.5

	markerMinSpeed = 2.0
	markerMaxSpeed = 5.0
	markerDepth    = 1.0

	// expiryEpsilon keeps ten 0.1s steps from leaving a 1.0s particle at
	// 1e-16 remaining.
	expiryEpsilon = 1e-9
)

type Particle[V vecmath.Vector[V]] struct {
	Position  V
	Velocity  V
	Remaining float64
	Color     string
}

func (p Particle[V]) Active() bool { return p.Remaining > 0 }

type Group[V vecmath.Vector[V]] struct {
	Kind        Kind
	Color       string
	MaxLifetime float64
	Particles   []Particle[V]
	Handle      surface.Handle
}

// Active counts particles that still have lifetime left.
func (g *Group[V]) Active() int {
	n := 0
	for _, p := range g.Particles {
		if p.Active() {
			n++
		}
	}
	return n
}

// Opacity is the group-wide fade: the average remaining lifetime fraction
// across every particle, expired ones counting as zero.
func (g *Group[V]) Opacity() float64 {
	if len(g.Particles) == 0 || g.MaxLifetime <= 0 {
		return 0
	}
	sum := 0.0
	for _, p := range g.Particles {
		sum += math.Max(0, p.Remaining)
	}
	return sum / float64(len(g.Particles)) / g.MaxLifetime
}

func (g *Group[V]) primitive() surface.Primitive[V] {
	pts := make([]surface.Point[V], 0, len(g.Particles))
	for _, p := range g.Particles {
		if p.Active() {
			pts = append(pts, surface.Point[V]{Position: p.Position, Color: p.Color})
		}
	}
	var origin V
	if len(g.Particles) > 0 {
		origin = g.Particles[0].Position
	}
	return surface.Primitive[V]{
		Kind:     surface.KindParticles,
		Position: origin,
		Color:    g.Color,
		Alpha:    g.Opacity(),
		Points:   pts,
	}
}

// System owns every live particle group of one simulation.
type System[V vecmath.Vector[V]] struct {
	mu     sync.Mutex
	unit   float64
	down   V
	surf   surface.Surface[V]
	src    rng.Source
	groups []*Group[V]
}

// NewSystem scales effect distances by space.Unit and pulls bursts along
// space.Down. A nil src draws from the process-wide generator. A nil surf
// simulates particles without drawing them.
func NewSystem[V vecmath.Vector[V]](space targets.Space[V], surf surface.Surface[V], src rng.Source) *System[V] {
	if src == nil {
		src = rng.Default()
	}
	unit := space.Unit
	if unit <= 0 {
		unit = 1
	}
	return &System[V]{unit: unit, down: space.Down, surf: surf, src: src}
}

// Explode starts a new group at pos.
func (s *System[V]) Explode(pos V, color string, kind Kind) *Group[V] {
	s.mu.Lock()
	defer s.mu.Unlock()

	var g *Group[V]
	switch kind {
	case Marker:
		g = s.marker(pos, color)
	default:
		g = s.burst(pos, color)
	}
	if s.surf != nil {
		g.Handle = s.surf.Add(g.primitive())
	}
	s.groups = append(s.groups, g)
	return g
}

func (s *System[V]) spread(like V, amount float64) V {
	out := like
	for axis := range like.Dim() {
		out = out.With(axis, (s.src.Float64()*2-1)*amount*s.unit)
	}
	return out
}

func (s *System[V]) burst(pos V, color string) *Group[V] {
	g := &Group[V]{Kind: Burst, Color: color, MaxLifetime: BurstLifetime}
	g.Particles = make([]Particle[V], BurstCount)
	for i := range g.Particles {
		g.Particles[i] = Particle[V]{
			Position:  pos.Add(s.spread(pos, burstSpread)),
			Velocity:  s.spread(pos, burstSpeed),
			Remaining: BurstLifetime,
			Color:     utility.JitterHex(color, burstColorJitter, s.src),
		}
	}
	return g
}

func (s *System[V]) marker(pos V, color string) *Group[V] {
	g := &Group[V]{Kind: Marker, Color: color, MaxLifetime: MarkerLifetime}
	g.Particles = make([]Particle[V], MarkerCount)
	zero := vecmath.Fill(pos, 0)
	for i := range g.Particles {
		angle := float64(i) / MarkerCount * 2 * math.Pi
		speed := (markerMinSpeed + s.src.Float64()*(markerMaxSpeed-markerMinSpeed)) * s.unit
		vel := zero.With(0, math.Cos(angle)*speed).With(1, math.Sin(angle)*speed)
		for axis := 2; axis < pos.Dim(); axis++ {
			vel = vel.With(axis, (s.src.Float64()*2-1)*markerDepth*s.unit)
		}
		g.Particles[i] = Particle[V]{
			Position:  pos,
			Velocity:  vel,
			Remaining: MarkerLifetime,
			Color:     color,
		}
	}
	return g
}

// Update integrates every active particle by dt seconds and purges groups
// with nothing left alive, releasing their primitives in the same pass.
func (s *System[V]) Update(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gravity := s.down.Scale(burstGravity * s.unit * dt)
	kept := s.groups[:0]
	for _, g := range s.groups {
		for i := range g.Particles {
			p := &g.Particles[i]
			if !p.Active() {
				continue
			}
			p.Position = p.Position.Add(p.Velocity.Scale(dt))
			p.Velocity = p.Velocity.Scale(Drag)
			if g.Kind == Burst {
				p.Velocity = p.Velocity.Add(gravity)
			}
			p.Remaining -= dt
			if p.Remaining <= expiryEpsilon {
				p.Remaining = 0
			}
		}
		if g.Active() == 0 {
			s.release(g)
			continue
		}
		if s.surf != nil && g.Handle != 0 {
			s.surf.Update(g.Handle, g.primitive())
		}
		kept = append(kept, g)
	}
	clear(s.groups[len(kept):])
	s.groups = kept
}

// Clear drops every group and releases its primitive.
func (s *System[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.groups {
		s.release(g)
	}
	s.groups = nil
}

func (s *System[V]) release(g *Group[V]) {
	if s.surf != nil && g.Handle != 0 {
		s.surf.Remove(g.Handle)
		g.Handle = 0
	}
}

// Groups returns the live groups, oldest first.
func (s *System[V]) Groups() []*Group[V] {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Group[V], len(s.groups))
	copy(out, s.groups)
	return out
}

func (s *System[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.groups)
}
