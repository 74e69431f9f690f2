package targets

import (
	"math"

	"aimlab/internal/vecmath"
)

const (
	minPlaneRadius  = 6
	planeRadiusUnit = 16
	planeFrameRate  = 60
)

// Space is the coordinate-space strategy a simulation is built over.
type Space[V vecmath.Vector[V]] struct {
	Name string

	// Radius converts the targetSize setting into a collision/hit radius.
	Radius func(targetSize float64) float64

	// TimeScale multiplies velocity*dt. The plane keeps its velocities in
	// distance per 60 Hz frame, the volume in distance per second.
	TimeScale float64

	// VelocityScale weights each axis of a random spawn velocity.
	VelocityScale V

	// Unit is the size of one effect unit in arena coordinates.
	Unit float64

	// Down points the way gravity pulls particles.
	Down V
}

// Plane is the screen-space variant: pixels, origin top-left, +Y down.
func Plane() Space[vecmath.Vec2] {
	return Space[vecmath.Vec2]{
		Name: "plane",
		Radius: func(size float64) float64 {
			return math.Max(minPlaneRadius, math.Round(size*planeRadiusUnit))
		},
		TimeScale:     planeFrameRate,
		VelocityScale: vecmath.V2(1, 1),
		Unit:          planeRadiusUnit,
		Down:          vecmath.V2(0, 1),
	}
}

// Volume is the world-space variant: a cuboid centred on the origin, +Y up.
// Depth drift is halved.
func Volume() Space[vecmath.Vec3] {
	return Space[vecmath.Vec3]{
		Name:          "volume",
		Radius:        func(size float64) float64 { return size },
		TimeScale:     1,
		VelocityScale: vecmath.V3(1, 1, 0.5),
		Unit:          1,
		Down:          vecmath.V3(0, -1, 0),
	}
}

// VolumeArena is the default cuboid for the volume variant.
func VolumeArena() vecmath.Box[vecmath.Vec3] {
	return vecmath.Centered(vecmath.V3(10, 7.5, 5))
}
