package particles

import (
	"math"
	"testing"

	"aimlab/internal/rng"
	"aimlab/internal/surface"
	"aimlab/internal/targets"
	"aimlab/internal/vecmath"
)

func newPlaneSystem(src rng.Source) (*System[vecmath.Vec2], *surface.Scene[vecmath.Vec2]) {
	scene := surface.NewScene(vecmath.Rect(800, 600))
	return NewSystem(targets.Plane(), scene, src), scene
}

func TestExplode_Counts(t *testing.T) {
	s, scene := newPlaneSystem(rng.New(1))

	burst := s.Explode(vecmath.V2(400, 300), "#00d4ff", Burst)
	marker := s.Explode(vecmath.V2(400, 300), "#00d4ff", Marker)

	if len(burst.Particles) != BurstCount {
		t.Errorf("burst particles = %d, want %d", len(burst.Particles), BurstCount)
	}
	if len(marker.Particles) != MarkerCount {
		t.Errorf("marker particles = %d, want %d", len(marker.Particles), MarkerCount)
	}
	if burst.MaxLifetime != 1.0 || marker.MaxLifetime != 0.5 {
		t.Errorf("lifetimes = %v, %v; want 1.0, 0.5", burst.MaxLifetime, marker.MaxLifetime)
	}
	if got := scene.Count(surface.KindParticles); got != 2 {
		t.Errorf("particle primitives = %d, want 2", got)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestExplode_MarkerKeepsExactColor(t *testing.T) {
	s, _ := newPlaneSystem(rng.New(3))
	g := s.Explode(vecmath.V2(0, 0), "#ff0000", Marker)
	for i, p := range g.Particles {
		if p.Color != "#ff0000" {
			t.Fatalf("marker particle %d color = %q, want #ff0000", i, p.Color)
		}
	}
}

func TestExplode_MarkerRing(t *testing.T) {
	s, _ := newPlaneSystem(rng.NewSequence(0.5))
	g := s.Explode(vecmath.V2(0, 0), "#ffffff", Marker)

	unit := targets.Plane().Unit
	want := 3.5 * unit
	for i, p := range g.Particles {
		speed := math.Sqrt(p.Velocity.LengthSq())
		if math.Abs(speed-want) > 1e-9 {
			t.Errorf("particle %d speed = %v, want %v", i, speed, want)
		}
	}
	first := g.Particles[0].Velocity
	if first.Y != 0 || first.X <= 0 {
		t.Errorf("first ring particle velocity = %+v, want along +X", first)
	}
}

func TestExplode_BurstJittersColorWithinRange(t *testing.T) {
	s, _ := newPlaneSystem(rng.New(9))
	g := s.Explode(vecmath.V2(0, 0), "#808080", Burst)
	varied := false
	for _, p := range g.Particles {
		if p.Color != "#808080" {
			varied = true
		}
	}
	if !varied {
		t.Error("burst particles should carry jittered colors")
	}
}

func TestExplode_VolumeStaysInWorldUnits(t *testing.T) {
	scene := surface.NewScene(targets.VolumeArena())
	s := NewSystem(targets.Volume(), scene, rng.NewSequence(0, 0.999999))
	g := s.Explode(vecmath.V3(1, 2, 3), "#00d4ff", Burst)
	for i, p := range g.Particles {
		for axis := range 3 {
			if d := math.Abs(p.Position.At(axis) - vecmath.V3(1, 2, 3).At(axis)); d > burstSpread+1e-9 {
				t.Fatalf("particle %d axis %d offset %v exceeds %v", i, axis, d, burstSpread)
			}
			if v := math.Abs(p.Velocity.At(axis)); v > burstSpeed+1e-9 {
				t.Fatalf("particle %d axis %d speed %v exceeds %v", i, axis, v, burstSpeed)
			}
		}
	}
}

func TestUpdate_TenSmallStepsPurge(t *testing.T) {
	s, scene := newPlaneSystem(rng.New(5))
	s.Explode(vecmath.V2(400, 300), "#00d4ff", Burst)

	for i := 0; i < 9; i++ {
		s.Update(0.1)
	}
	if s.Len() != 1 {
		t.Fatalf("group purged early after 9 steps")
	}
	s.Update(0.1)

	if s.Len() != 0 {
		t.Errorf("Len() after 10×0.1s = %d, want 0", s.Len())
	}
	if scene.Count(surface.KindParticles) != 0 {
		t.Error("purged group left its primitive on the surface")
	}
}

func TestUpdate_OneLargeStepPurges(t *testing.T) {
	s, scene := newPlaneSystem(rng.New(5))
	g := s.Explode(vecmath.V2(400, 300), "#00d4ff", Burst)

	s.Update(1.1)

	if s.Len() != 0 {
		t.Errorf("Len() after 1.1s = %d, want 0", s.Len())
	}
	for i, p := range g.Particles {
		if p.Remaining < 0 {
			t.Errorf("particle %d remaining = %v, want no negative lifetimes", i, p.Remaining)
		}
	}
	if scene.Len() != 0 {
		t.Errorf("surface still holds %d primitives", scene.Len())
	}
}

func TestUpdate_MarkerOutlivedByBurst(t *testing.T) {
	s, _ := newPlaneSystem(rng.New(5))
	s.Explode(vecmath.V2(0, 0), "#ffffff", Burst)
	s.Explode(vecmath.V2(0, 0), "#ffffff", Marker)

	s.Update(0.6)

	groups := s.Groups()
	if len(groups) != 1 || groups[0].Kind != Burst {
		t.Fatalf("after 0.6s want only the burst, got %d groups", len(groups))
	}
}

func TestUpdate_DragAndGravity(t *testing.T) {
	s, _ := newPlaneSystem(rng.NewSequence(0.5))
	burst := s.Explode(vecmath.V2(0, 0), "#ffffff", Burst)
	marker := s.Explode(vecmath.V2(0, 0), "#ffffff", Marker)

	markerBefore := marker.Particles[0].Velocity
	s.Update(0.1)

	// Sequence(0.5) gives bursts zero velocity; only gravity acts.
	unit := targets.Plane().Unit
	wantY := burstGravity * unit * 0.1
	got := burst.Particles[0].Velocity
	if got.X != 0 || math.Abs(got.Y-wantY) > 1e-9 {
		t.Errorf("burst velocity = %+v, want (0, %v)", got, wantY)
	}
	if want := markerBefore.Scale(Drag); marker.Particles[0].Velocity != want {
		t.Errorf("marker velocity = %+v, want %+v (drag only)", marker.Particles[0].Velocity, want)
	}
	wantX := markerBefore.X * 0.1
	if math.Abs(marker.Particles[0].Position.X-wantX) > 1e-9 {
		t.Errorf("marker position X = %v, want %v", marker.Particles[0].Position.X, wantX)
	}
}

func TestOpacity_AverageRemaining(t *testing.T) {
	g := &Group[vecmath.Vec2]{
		MaxLifetime: 1,
		Particles: []Particle[vecmath.Vec2]{
			{Remaining: 1},
			{Remaining: 0.5},
			{Remaining: 0},
			{Remaining: 0.5},
		},
	}
	if got := g.Opacity(); got != 0.5 {
		t.Errorf("Opacity() = %v, want 0.5", got)
	}
	if got := g.Active(); got != 3 {
		t.Errorf("Active() = %d, want 3", got)
	}
}

func TestUpdate_PushesFadeToSurface(t *testing.T) {
	s, scene := newPlaneSystem(rng.New(11))
	g := s.Explode(vecmath.V2(100, 100), "#00d4ff", Burst)

	s.Update(0.25)

	prim, ok := scene.Get(g.Handle)
	if !ok {
		t.Fatal("live group has no primitive")
	}
	if math.Abs(prim.Alpha-0.75) > 1e-9 {
		t.Errorf("primitive alpha = %v, want 0.75", prim.Alpha)
	}
	if len(prim.Points) != BurstCount {
		t.Errorf("primitive points = %d, want %d", len(prim.Points), BurstCount)
	}
}

func TestClear(t *testing.T) {
	s, scene := newPlaneSystem(rng.New(1))
	s.Explode(vecmath.V2(1, 1), "#00d4ff", Burst)
	s.Explode(vecmath.V2(2, 2), "#00d4ff", Marker)

	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", s.Len())
	}
	if scene.Len() != 0 {
		t.Errorf("surface holds %d primitives after Clear, want 0", scene.Len())
	}
	s.Update(0.1)
}

func TestSystem_WithoutSurface(t *testing.T) {
	s := NewSystem[vecmath.Vec2](targets.Plane(), nil, rng.New(1))
	g := s.Explode(vecmath.V2(1, 1), "#00d4ff", Burst)
	if g.Handle != 0 {
		t.Errorf("Handle = %d without a surface, want 0", g.Handle)
	}
	s.Explode(vecmath.V2(2, 2), "#00d4ff", Marker)

	s.Update(0.1)
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	s.Update(BurstLifetime)
	if s.Len() != 0 {
		t.Errorf("Len() after expiry = %d, want 0", s.Len())
	}
	s.Explode(vecmath.V2(3, 3), "#00d4ff", Burst)
	s.Clear()
}
