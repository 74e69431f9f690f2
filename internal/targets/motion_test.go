package targets

import (
	"testing"

	"aimlab/internal/rng"
	"aimlab/internal/settings"
	"aimlab/internal/surface"
	"aimlab/internal/vecmath"

	"pgregory.net/rapid"
)

func TestStep_ReflectsAtRightWall(t *testing.T) {
	scene := surface.NewScene(vecmath.Rect(800, 600))
	in := NewIntegrator(Plane(), scene)

	tg := &Target[vecmath.Vec2]{
		Position: vecmath.V2(780, 300),
		Velocity: vecmath.V2(3, 0),
		Radius:   20,
		Moving:   true,
	}
	in.Step([]*Target[vecmath.Vec2]{tg}, 1.0/60, scene.Arena())

	if tg.Velocity.X != -3 {
		t.Errorf("Velocity.X = %v, want -3", tg.Velocity.X)
	}
	if tg.Position.X != 780 {
		t.Errorf("Position.X = %v, want 780", tg.Position.X)
	}
}

func TestStep_PlaneNormalizesToSixtyHz(t *testing.T) {
	in := NewIntegrator[vecmath.Vec2](Plane(), nil)
	tg := &Target[vecmath.Vec2]{
		Position: vecmath.V2(100, 100),
		Velocity: vecmath.V2(1, -2),
		Radius:   10,
		Moving:   true,
	}
	in.Step([]*Target[vecmath.Vec2]{tg}, 0.05, vecmath.Rect(800, 600))

	// 0.05s at 60 Hz is three frames
	if tg.Position != vecmath.V2(103, 94) {
		t.Errorf("Position = %+v, want {103 94}", tg.Position)
	}
}

func TestStep_VolumeUsesSeconds(t *testing.T) {
	in := NewIntegrator[vecmath.Vec3](Volume(), nil)
	tg := &Target[vecmath.Vec3]{
		Position: vecmath.V3(0, 0, 0),
		Velocity: vecmath.V3(1, 2, -1),
		Radius:   0.5,
		Moving:   true,
	}
	in.Step([]*Target[vecmath.Vec3]{tg}, 0.5, VolumeArena())

	if tg.Position != vecmath.V3(0.5, 1, -0.5) {
		t.Errorf("Position = %+v, want {0.5 1 -0.5}", tg.Position)
	}
}

func TestStep_CornerBounce(t *testing.T) {
	in := NewIntegrator[vecmath.Vec3](Volume(), nil)
	tg := &Target[vecmath.Vec3]{
		Position: vecmath.V3(9.4, -6.9, 0),
		Velocity: vecmath.V3(2, -2, 0),
		Radius:   0.5,
		Moving:   true,
	}
	in.Step([]*Target[vecmath.Vec3]{tg}, 0.1, VolumeArena())

	if tg.Position.X != 9.5 || tg.Position.Y != -7 {
		t.Errorf("Position = %+v, want clamped to {9.5 -7}", tg.Position)
	}
	if tg.Velocity.X != -2 || tg.Velocity.Y != 2 {
		t.Errorf("Velocity = %+v, want both axes reflected", tg.Velocity)
	}
}

func TestStep_SkipsDeadAndStatic(t *testing.T) {
	in := NewIntegrator[vecmath.Vec2](Plane(), nil)
	dead := &Target[vecmath.Vec2]{Position: vecmath.V2(50, 50), Velocity: vecmath.V2(5, 5), Radius: 10, Moving: true, Dead: true}
	still := &Target[vecmath.Vec2]{Position: vecmath.V2(60, 60), Velocity: vecmath.V2(5, 5), Radius: 10, Moving: false}

	in.Step([]*Target[vecmath.Vec2]{dead, still, nil}, 0.016, vecmath.Rect(800, 600))

	if dead.Position != vecmath.V2(50, 50) {
		t.Errorf("dead target moved to %+v", dead.Position)
	}
	if still.Position != vecmath.V2(60, 60) {
		t.Errorf("static target moved to %+v", still.Position)
	}
}

func TestStep_MovesPrimitive(t *testing.T) {
	scene := surface.NewScene(vecmath.Rect(800, 600))
	in := NewIntegrator(Plane(), scene)
	h := scene.Add(surface.Primitive[vecmath.Vec2]{Kind: surface.KindTarget, Position: vecmath.V2(100, 100)})
	tg := &Target[vecmath.Vec2]{Position: vecmath.V2(100, 100), Velocity: vecmath.V2(1, 0), Radius: 10, Moving: true, Handle: h}

	in.Step([]*Target[vecmath.Vec2]{tg}, 1.0/60, scene.Arena())

	p, _ := scene.Get(h)
	if p.Position != tg.Position {
		t.Errorf("primitive at %+v, target at %+v", p.Position, tg.Position)
	}
}

func TestAdvance_SweepsDead(t *testing.T) {
	scene := surface.NewScene(vecmath.Rect(800, 600))
	store := NewStore[vecmath.Vec2](scene)
	sp := NewSpawner(Plane(), store, scene, rng.New(1))
	in := NewIntegrator(Plane(), scene)

	cfg := settings.Defaults()
	a, _ := sp.Spawn(cfg, scene.Arena())
	sp.Spawn(cfg, scene.Arena())
	store.Kill(a.ID)

	if removed := in.Advance(store, 0.016, scene.Arena()); removed != 1 {
		t.Errorf("Advance() removed %d, want 1", removed)
	}
	if store.Len() != 1 || scene.Count(surface.KindTarget) != 1 {
		t.Errorf("store=%d surface=%d, want 1 and 1", store.Len(), scene.Count(surface.KindTarget))
	}
}

func TestStep_BoundaryContainment(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.Float64Range(100, 2000).Draw(t, "w")
		h := rapid.Float64Range(100, 2000).Draw(t, "h")
		arena := vecmath.Rect(w, h)
		r := rapid.Float64Range(6, 40).Draw(t, "r")
		tg := &Target[vecmath.Vec2]{
			Position: vecmath.V2(
				rapid.Float64Range(r, w-r).Draw(t, "x"),
				rapid.Float64Range(r, h-r).Draw(t, "y"),
			),
			Velocity: vecmath.V2(
				rapid.Float64Range(-50, 50).Draw(t, "vx"),
				rapid.Float64Range(-50, 50).Draw(t, "vy"),
			),
			Radius: r,
			Moving: true,
		}
		in := NewIntegrator[vecmath.Vec2](Plane(), nil)
		steps := rapid.IntRange(1, 200).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			dt := rapid.Float64Range(0, 0.1).Draw(t, "dt")
			in.Step([]*Target[vecmath.Vec2]{tg}, dt, arena)
			if !arena.Contains(tg.Position, tg.Radius) {
				t.Fatalf("step %d: target at %+v (r=%v) escaped %vx%v", i, tg.Position, r, w, h)
			}
		}
	})
}

func TestStep_VolumeContainment(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		arena := VolumeArena()
		r := rapid.Float64Range(0.2, 1.0).Draw(t, "r")
		tg := &Target[vecmath.Vec3]{
			Position: vecmath.V3(0, 0, 0),
			Velocity: vecmath.V3(
				rapid.Float64Range(-20, 20).Draw(t, "vx"),
				rapid.Float64Range(-20, 20).Draw(t, "vy"),
				rapid.Float64Range(-20, 20).Draw(t, "vz"),
			),
			Radius: r,
			Moving: true,
		}
		in := NewIntegrator[vecmath.Vec3](Volume(), nil)
		for i := 0; i < 100; i++ {
			in.Step([]*Target[vecmath.Vec3]{tg}, 0.1, arena)
			if !arena.Contains(tg.Position, tg.Radius) {
				t.Fatalf("step %d: target at %+v escaped", i, tg.Position)
			}
		}
	})
}
