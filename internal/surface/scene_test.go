package surface

import (
	"testing"

	"aimlab/internal/vecmath"
)

func TestScene_AddMoveRemove(t *testing.T) {
	s := NewScene(vecmath.Rect(800, 600))

	h := s.Add(Primitive[vecmath.Vec2]{Kind: KindTarget, Position: vecmath.V2(10, 20), Radius: 8})
	if h == 0 {
		t.Fatal("Add() returned the zero handle")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}

	s.Move(h, vecmath.V2(30, 40))
	p, ok := s.Get(h)
	if !ok {
		t.Fatal("Get() lost the primitive")
	}
	if p.Position != vecmath.V2(30, 40) {
		t.Errorf("Position = %+v, want {30 40}", p.Position)
	}
	if p.Radius != 8 {
		t.Errorf("Radius = %v, want 8 (Move must not touch the descriptor)", p.Radius)
	}

	s.Remove(h)
	if _, ok := s.Get(h); ok {
		t.Error("primitive still present after Remove()")
	}
}

func TestScene_UnknownHandleIsNoop(t *testing.T) {
	s := NewScene(vecmath.Rect(10, 10))
	s.Move(99, vecmath.V2(1, 1))
	s.Update(99, Primitive[vecmath.Vec2]{Kind: KindDot})
	s.Remove(99)
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestScene_EachInCreationOrder(t *testing.T) {
	s := NewScene(vecmath.Rect(10, 10))
	var want []Handle
	for i := 0; i < 5; i++ {
		want = append(want, s.Add(Primitive[vecmath.Vec2]{Kind: KindDot}))
	}
	var got []Handle
	s.Each(func(h Handle, _ Primitive[vecmath.Vec2]) { got = append(got, h) })
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Each order = %v, want %v", got, want)
		}
	}
}

func TestScene_CountAndClear(t *testing.T) {
	s := NewScene(vecmath.Centered(vecmath.V3(10, 7.5, 5)))
	s.Add(Primitive[vecmath.Vec3]{Kind: KindTarget})
	s.Add(Primitive[vecmath.Vec3]{Kind: KindTarget})
	s.Add(Primitive[vecmath.Vec3]{Kind: KindParticles})

	if got := s.Count(KindTarget); got != 2 {
		t.Errorf("Count(target) = %d, want 2", got)
	}
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", s.Len())
	}
}

func TestScene_AddCopiesPoints(t *testing.T) {
	s := NewScene(vecmath.Rect(10, 10))
	pts := []Point[vecmath.Vec2]{{Position: vecmath.V2(1, 1)}}
	h := s.Add(Primitive[vecmath.Vec2]{Kind: KindParticles, Points: pts})
	pts[0].Position = vecmath.V2(9, 9)

	p, _ := s.Get(h)
	if p.Points[0].Position != vecmath.V2(1, 1) {
		t.Error("Scene must not alias the caller's point slice")
	}
}
