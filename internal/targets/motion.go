package targets

import (
	"aimlab/internal/surface"
	"aimlab/internal/vecmath"
)

type Integrator[V vecmath.Vector[V]] struct {
	space Space[V]
	surf  surface.Surface[V]
}

func NewIntegrator[V vecmath.Vector[V]](space Space[V], surf surface.Surface[V]) *Integrator[V] {
	return &Integrator[V]{space: space, surf: surf}
}

// Step moves every live, moving target by velocity*dt and reflects it off
// the arena walls. Dead and static targets are left alone.
func (in *Integrator[V]) Step(list []*Target[V], dt float64, arena vecmath.Box[V]) {
	scale := dt * in.space.TimeScale
	for _, t := range list {
		if t == nil || t.Dead || !t.Moving {
			continue
		}
		t.Position = t.Position.Add(t.Velocity.Scale(scale))
		Reflect(t, arena)
		if in.surf != nil && t.Handle != 0 {
			in.surf.Move(t.Handle, t.Position)
		}
	}
}

// Advance steps the store's targets and then sweeps out the dead ones.
func (in *Integrator[V]) Advance(store *Store[V], dt float64, arena vecmath.Box[V]) int {
	in.Step(store.All(), dt, arena)
	return store.Sweep()
}

// Reflect clamps t inside arena axis by axis. On each wall it touches, the
// velocity component on that axis is turned back into the arena.
func Reflect[V vecmath.Vector[V]](t *Target[V], arena vecmath.Box[V]) {
	for axis := range t.Position.Dim() {
		lo := arena.Min.At(axis) + t.Radius
		hi := arena.Max.At(axis) - t.Radius
		if lo > hi {
			mid := (arena.Min.At(axis) + arena.Max.At(axis)) / 2
			lo, hi = mid, mid
		}
		x := t.Position.At(axis)
		v := t.Velocity.At(axis)
		switch {
		case x < lo:
			t.Position = t.Position.With(axis, lo)
			if v < 0 {
				t.Velocity = t.Velocity.With(axis, -v)
			}
		case x > hi:
			t.Position = t.Position.With(axis, hi)
			if v > 0 {
				t.Velocity = t.Velocity.With(axis, -v)
			}
		}
	}
}
