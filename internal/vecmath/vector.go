package vecmath

import "math"

// Vector is the set of operations the simulation needs from a point type.
// Vec2 and Vec3 satisfy it; generic code is written once against it.
type Vector[V any] interface {
	comparable
	Dim() int
	At(axis int) float64
	With(axis int, x float64) V
	Add(o V) V
	Sub(o V) V
	Scale(s float64) V
	Dot(o V) float64
}

type Vec2 struct {
	X, Y float64
}

func V2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Dim() int { return 2 }

func (v Vec2) At(axis int) float64 {
	if axis == 0 {
		return v.X
	}
	return v.Y
}

func (v Vec2) With(axis int, x float64) Vec2 {
	if axis == 0 {
		v.X = x
	} else {
		v.Y = x
	}
	return v
}

func (v Vec2) Add(o Vec2) Vec2           { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2           { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2      { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64        { return v.X*o.X + v.Y*o.Y }
func (v Vec2) LengthSq() float64         { return v.Dot(v) }
func (v Vec2) DistanceSq(o Vec2) float64 { return v.Sub(o).LengthSq() }

type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Dim() int { return 3 }

func (v Vec3) At(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func (v Vec3) With(axis int, x float64) Vec3 {
	switch axis {
	case 0:
		v.X = x
	case 1:
		v.Y = x
	default:
		v.Z = x
	}
	return v
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) LengthSq() float64    { return v.Dot(v) }
func (v Vec3) Length() float64      { return math.Sqrt(v.LengthSq()) }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Normalize returns the unit vector, or the zero vector when v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Mul multiplies two vectors component-wise.
func Mul[V Vector[V]](a, b V) V {
	for axis := range a.Dim() {
		a = a.With(axis, a.At(axis)*b.At(axis))
	}
	return a
}

// Fill returns a vector of the same dimension as like with every component set to x.
func Fill[V Vector[V]](like V, x float64) V {
	for axis := range like.Dim() {
		like = like.With(axis, x)
	}
	return like
}

// Components flattens v for wire encoding.
func Components[V Vector[V]](v V) []float64 {
	out := make([]float64, v.Dim())
	for axis := range out {
		out[axis] = v.At(axis)
	}
	return out
}
