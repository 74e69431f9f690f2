// Package hit resolves a pointer press against the live targets.
package hit

import (
	"aimlab/internal/targets"
	"aimlab/internal/vecmath"
)

// Rect is the on-screen rectangle of the render surface.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Pointer is a pointer position in screen coordinates together with the
// rectangle of the surface it was pressed on.
type Pointer struct {
	X, Y float64
	Rect Rect
}

// Local converts the pointer into the surface's own coordinates.
func (p Pointer) Local() vecmath.Vec2 {
	return vecmath.V2(p.X-p.Rect.Left, p.Y-p.Rect.Top)
}

// NDC converts the pointer into normalized device coordinates, +Y up.
// It reports false for an empty rectangle.
func (p Pointer) NDC() (float64, float64, bool) {
	if p.Rect.Width <= 0 || p.Rect.Height <= 0 {
		return 0, 0, false
	}
	x := (p.X-p.Rect.Left)/p.Rect.Width*2 - 1
	y := -((p.Y-p.Rect.Top)/p.Rect.Height*2 - 1)
	return x, y, true
}

type Detector[V vecmath.Vector[V]] interface {
	CheckHit(p Pointer, live []*targets.Target[V]) *targets.Target[V]
}

// Planar hits the first target, in store order, whose disc contains the
// pointer.
type Planar struct{}

func (Planar) CheckHit(p Pointer, live []*targets.Target[vecmath.Vec2]) *targets.Target[vecmath.Vec2] {
	at := p.Local()
	for _, t := range live {
		if t == nil || t.Dead {
			continue
		}
		if at.DistanceSq(t.Position) <= t.Radius*t.Radius {
			return t
		}
	}
	return nil
}

// RayCaster casts the pointer through a camera and hits the sphere nearest
// to the camera along that ray.
type RayCaster struct {
	Camera vecmath.Camera
}

func NewRayCaster(cam vecmath.Camera) RayCaster {
	return RayCaster{Camera: cam}
}

func (rc RayCaster) Ray(p Pointer) (vecmath.Ray, bool) {
	nx, ny, ok := p.NDC()
	if !ok {
		return vecmath.Ray{}, false
	}
	return rc.Camera.Unproject(nx, ny, p.Rect.Width/p.Rect.Height), true
}

func (rc RayCaster) CheckHit(p Pointer, live []*targets.Target[vecmath.Vec3]) *targets.Target[vecmath.Vec3] {
	ray, ok := rc.Ray(p)
	if !ok {
		return nil
	}
	var best *targets.Target[vecmath.Vec3]
	bestDist := 0.0
	for _, t := range live {
		if t == nil || t.Dead {
			continue
		}
		d, ok := ray.IntersectSphere(t.Position, t.Radius)
		if !ok {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}
