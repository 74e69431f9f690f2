package targets

import (
	"time"

	"aimlab/internal/surface"
	"aimlab/internal/vecmath"
)

type Target[V vecmath.Vector[V]] struct {
	ID        int
	Position  V
	Velocity  V // distance per second, before the space's time scale
	Radius    float64
	Color     string
	Moving    bool
	Dead      bool
	Handle    surface.Handle
	SpawnedAt time.Time
}
