// Package paint turns scenes into flat drawing calls in screen pixels for
// immediate-mode renderers.
package paint

import (
	"cmp"
	"image/color"
	"math"
	"slices"

	"aimlab/internal/surface"
	"aimlab/internal/utility"
	"aimlab/internal/vecmath"
)

// ParticleRadius is the on-screen size of one particle.
const ParticleRadius = 2

// Painter receives drawing calls in screen pixels, origin top left.
type Painter interface {
	Circle(x, y, r float32, c color.Color)
	Rect(x, y, w, h float32, c color.Color)
}

// RGBA converts a #rrggbb color with an alpha in [0, 1]. Unparseable colors
// come out white.
func RGBA(hex string, alpha float64) color.NRGBA {
	r, g, b, ok := utility.RGB8(hex)
	if !ok {
		r, g, b = 0xff, 0xff, 0xff
	}
	a := math.Round(math.Min(math.Max(alpha, 0), 1) * 255)
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}
}

// Plane paints a screen-space scene, oldest primitive first. Scene units
// are pixels.
func Plane(p Painter, scene *surface.Scene[vecmath.Vec2]) {
	scene.Each(func(_ surface.Handle, pr surface.Primitive[vecmath.Vec2]) {
		x, y := float32(pr.Position.X), float32(pr.Position.Y)
		switch pr.Kind {
		case surface.KindTarget, surface.KindDot:
			p.Circle(x, y, float32(pr.Radius), RGBA(pr.Color, pr.Alpha))
		case surface.KindBar:
			w, h := float32(pr.Width), float32(pr.Height)
			p.Rect(x-w/2, y-h/2, w, h, RGBA(pr.Color, pr.Alpha))
		case surface.KindParticles:
			for _, pt := range pr.Points {
				p.Circle(float32(pt.Position.X), float32(pt.Position.Y), ParticleRadius, RGBA(pt.Color, pr.Alpha))
			}
		}
	})
}

// Viewport maps world points through a camera onto a width by height
// pixel screen.
type Viewport struct {
	Camera        vecmath.Camera
	Width, Height float64
}

func (v Viewport) aspect() float64 {
	if v.Height <= 0 {
		return 1
	}
	return v.Width / v.Height
}

// Pixel projects p. ok is false for points behind the camera.
func (v Viewport) Pixel(p vecmath.Vec3) (x, y float64, ok bool) {
	ndc, ok := v.Camera.Project(p, v.aspect())
	if !ok {
		return 0, 0, false
	}
	return (ndc.X + 1) / 2 * v.Width, (1 - ndc.Y) / 2 * v.Height, true
}

// Radius is the on-screen radius of a sphere at p.
func (v Viewport) Radius(p vecmath.Vec3, r float64) float64 {
	_, y0, ok := v.Pixel(p)
	if !ok {
		return 0
	}
	_, y1, ok := v.Pixel(p.Add(v.Camera.Up.Normalize().Scale(r)))
	if !ok {
		return 0
	}
	return math.Abs(y1 - y0)
}

// Volume paints a world-space scene through vp, farthest first so nearer
// targets cover the ones behind.
func Volume(p Painter, scene *surface.Scene[vecmath.Vec3], vp Viewport) {
	type item struct {
		depth float64
		prim  surface.Primitive[vecmath.Vec3]
	}
	var items []item
	scene.Each(func(_ surface.Handle, pr surface.Primitive[vecmath.Vec3]) {
		d := pr.Position.Sub(vp.Camera.Position).LengthSq()
		items = append(items, item{depth: d, prim: pr})
	})
	slices.SortStableFunc(items, func(a, b item) int { return cmp.Compare(b.depth, a.depth) })

	for _, it := range items {
		pr := it.prim
		switch pr.Kind {
		case surface.KindTarget, surface.KindDot:
			x, y, ok := vp.Pixel(pr.Position)
			if !ok {
				continue
			}
			p.Circle(float32(x), float32(y), float32(vp.Radius(pr.Position, pr.Radius)), RGBA(pr.Color, pr.Alpha))
		case surface.KindParticles:
			for _, pt := range pr.Points {
				if x, y, ok := vp.Pixel(pt.Position); ok {
					p.Circle(float32(x), float32(y), ParticleRadius, RGBA(pt.Color, pr.Alpha))
				}
			}
		}
	}
}
