package vecmath

// Box is an axis-aligned arena: a rectangle for Vec2, a cuboid for Vec3.
type Box[V Vector[V]] struct {
	Min V
	Max V
}

// Rect returns the screen-space arena of a w x h surface, origin top-left.
func Rect(w, h float64) Box[Vec2] {
	return Box[Vec2]{Max: Vec2{X: w, Y: h}}
}

// Centered returns a cuboid spanning [-half, +half] on every axis.
func Centered(half Vec3) Box[Vec3] {
	return Box[Vec3]{Min: half.Scale(-1), Max: half}
}

// Valid reports whether every axis has a positive extent.
func (b Box[V]) Valid() bool {
	for axis := range b.Min.Dim() {
		if !(b.Max.At(axis) > b.Min.At(axis)) {
			return false
		}
	}
	return true
}

func (b Box[V]) Size() V {
	return b.Max.Sub(b.Min)
}

// Fits reports whether a sphere of radius r centred anywhere inside the box
// can stay fully inside it.
func (b Box[V]) Fits(r float64) bool {
	for axis := range b.Min.Dim() {
		if b.Max.At(axis)-b.Min.At(axis) < 2*r {
			return false
		}
	}
	return true
}

// containTolerance absorbs the rounding of a clamp to (max-r) followed by +r.
const containTolerance = 1e-9

// Contains reports whether a sphere of radius r at p lies inside the box.
func (b Box[V]) Contains(p V, r float64) bool {
	for axis := range p.Dim() {
		x := p.At(axis)
		if x-r < b.Min.At(axis)-containTolerance || x+r > b.Max.At(axis)+containTolerance {
			return false
		}
	}
	return true
}
