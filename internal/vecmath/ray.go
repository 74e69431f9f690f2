package vecmath

import "math"

type Ray struct {
	Origin    Vec3
	Direction Vec3 // unit length
}

func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// IntersectSphere returns the distance along the ray to the first surface
// point of the sphere. An origin inside the sphere reports the exit point.
func (r Ray) IntersectSphere(center Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.LengthSq() - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Camera is a perspective camera. FovY is the vertical field of view in degrees.
type Camera struct {
	Position Vec3
	LookAt   Vec3
	Up       Vec3
	FovY     float64
}

// DefaultCamera sits ten units back on +Z looking at the origin.
func DefaultCamera() Camera {
	return Camera{
		Position: Vec3{Z: 10},
		Up:       Vec3{Y: 1},
		FovY:     75,
	}
}

// Unproject turns normalized device coordinates (both in [-1, 1], +Y up)
// into a world-space ray leaving the camera.
func (c Camera) Unproject(nx, ny, aspect float64) Ray {
	forward := c.LookAt.Sub(c.Position).Normalize()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward)

	tanHalf := math.Tan(c.FovY * math.Pi / 360)
	dir := forward.
		Add(right.Scale(nx * tanHalf * aspect)).
		Add(up.Scale(ny * tanHalf)).
		Normalize()
	return Ray{Origin: c.Position, Direction: dir}
}

// Project maps a world point to normalized device coordinates. The second
// result is false for points behind the camera.
func (c Camera) Project(p Vec3, aspect float64) (Vec2, bool) {
	forward := c.LookAt.Sub(c.Position).Normalize()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward)

	rel := p.Sub(c.Position)
	depth := rel.Dot(forward)
	if depth <= 0 {
		return Vec2{}, false
	}
	tanHalf := math.Tan(c.FovY * math.Pi / 360)
	return Vec2{
		X: rel.Dot(right) / (depth * tanHalf * aspect),
		Y: rel.Dot(up) / (depth * tanHalf),
	}, true
}
