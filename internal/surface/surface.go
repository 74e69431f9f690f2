// Package surface defines the capability the simulation draws through. The
// simulation places, moves and removes primitives; it never reads anything
// back except the arena bounds.
package surface

import "aimlab/internal/vecmath"

//go:generate go tool mockgen -destination=./mocks/surface_mock.go -package=mocks . Surface

// Handle identifies a primitive on a surface. The zero Handle is never issued.
type Handle uint32

type Kind uint8

const (
	KindTarget Kind = iota + 1
	KindParticles
	KindBar
	KindDot
)

func (k Kind) String() string {
	switch k {
	case KindTarget:
		return "target"
	case KindParticles:
		return "particles"
	case KindBar:
		return "bar"
	case KindDot:
		return "dot"
	}
	return "unknown"
}

type Point[V any] struct {
	Position V
	Color    string
}

// Primitive describes one visual. Which fields matter depends on Kind:
// targets and dots use Radius, bars use Width and Height, particle groups use
// Points and Alpha.
type Primitive[V any] struct {
	Kind     Kind
	Position V
	Radius   float64
	Width    float64
	Height   float64
	Color    string
	Alpha    float64
	Points   []Point[V]
}

type Surface[V vecmath.Vector[V]] interface {
	Arena() vecmath.Box[V]
	Add(p Primitive[V]) Handle
	Remove(h Handle)
	Move(h Handle, pos V)
	Update(h Handle, p Primitive[V])
}
