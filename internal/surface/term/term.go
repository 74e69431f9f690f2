// Package term draws a plane scene into a character terminal. Scene units
// are pseudo-pixels: each cell covers CellWidth by CellHeight of them, so
// the simulation keeps its screen-space scale.
package term

import (
	"math"

	"aimlab/internal/hit"
	"aimlab/internal/surface"
	"aimlab/internal/vecmath"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	CellWidth  = 8
	CellHeight = 16
)

const (
	runeTarget   = '█'
	runeSmall    = '●'
	runeParticle = '·'
	runeVBar     = '│'
	runeHBar     = '─'
	runeDot      = '┼'
)

// Canvas is the part of tcell.Screen drawing needs.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

// Surface is a plane scene sized to a terminal.
type Surface struct {
	*surface.Scene[vecmath.Vec2]
	Background colorful.Color
}

func New(cols, rows int) *Surface {
	return &Surface{Scene: surface.NewScene(arena(cols, rows))}
}

func arena(cols, rows int) vecmath.Box[vecmath.Vec2] {
	return vecmath.Rect(float64(cols*CellWidth), float64(rows*CellHeight))
}

// Resize follows a terminal resize.
func (s *Surface) Resize(cols, rows int) {
	s.SetArena(arena(cols, rows))
}

// Rect is the surface rectangle pointers are resolved against.
func (s *Surface) Rect() hit.Rect {
	size := s.Arena().Size()
	return hit.Rect{Width: size.X, Height: size.Y}
}

// Pointer places a pointer at the centre of a cell.
func (s *Surface) Pointer(col, row int) hit.Pointer {
	return hit.Pointer{
		X:    float64(col*CellWidth) + CellWidth/2,
		Y:    float64(row*CellHeight) + CellHeight/2,
		Rect: s.Rect(),
	}
}

// Mouse converts a tcell mouse event. pressed reports the primary button.
func (s *Surface) Mouse(ev *tcell.EventMouse) (p hit.Pointer, pressed bool) {
	col, row := ev.Position()
	return s.Pointer(col, row), ev.Buttons()&tcell.Button1 != 0
}

// Draw paints every primitive, oldest first. It does not clear c.
func (s *Surface) Draw(c Canvas) {
	cols, rows := c.Size()
	set := func(col, row int, r rune, style tcell.Style) {
		if col >= 0 && row >= 0 && col < cols && row < rows {
			c.SetContent(col, row, r, nil, style)
		}
	}

	s.Each(func(_ surface.Handle, p surface.Primitive[vecmath.Vec2]) {
		style := s.style(p.Color, p.Alpha)
		switch p.Kind {
		case surface.KindTarget:
			s.disc(p.Position, p.Radius, style, set)
		case surface.KindParticles:
			for _, pt := range p.Points {
				col, row := cell(pt.Position)
				set(col, row, runeParticle, s.style(pt.Color, p.Alpha))
			}
		case surface.KindBar:
			r := runeHBar
			if p.Height > p.Width {
				r = runeVBar
			}
			c0, c1 := span(p.Position.X, p.Width, CellWidth)
			r0, r1 := span(p.Position.Y, p.Height, CellHeight)
			for row := r0; row <= r1; row++ {
				for col := c0; col <= c1; col++ {
					set(col, row, r, style)
				}
			}
		case surface.KindDot:
			col, row := cell(p.Position)
			set(col, row, runeDot, style)
		}
	})
}

// disc fills the cells whose centres fall inside the circle. A circle
// smaller than a cell still gets its centre cell.
func (s *Surface) disc(at vecmath.Vec2, radius float64, style tcell.Style, set func(int, int, rune, tcell.Style)) {
	c0, c1 := span(at.X, radius*2, CellWidth)
	r0, r1 := span(at.Y, radius*2, CellHeight)
	filled := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			centre := vecmath.V2(float64(col*CellWidth)+CellWidth/2, float64(row*CellHeight)+CellHeight/2)
			if centre.DistanceSq(at) <= radius*radius {
				set(col, row, runeTarget, style)
				filled = true
			}
		}
	}
	if !filled {
		col, row := cell(at)
		set(col, row, runeSmall, style)
	}
}

// style fades hex toward the background by alpha.
func (s *Surface) style(hex string, alpha float64) tcell.Style {
	c, err := colorful.Hex(hex)
	if err != nil {
		c = colorful.Color{R: 1, G: 1, B: 1}
	}
	if alpha < 1 {
		c = s.Background.BlendRgb(c, math.Max(alpha, 0)).Clamped()
	}
	r, g, b := c.RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

func cell(p vecmath.Vec2) (col, row int) {
	return int(math.Floor(p.X / CellWidth)), int(math.Floor(p.Y / CellHeight))
}

// span returns the cells covered by a segment of the given length centred
// on centre. Segments thinner than a cell cover the one cell under centre.
func span(centre, length, size float64) (first, last int) {
	if length < size {
		i := int(math.Floor(centre / size))
		return i, i
	}
	first = int(math.Floor((centre - length/2) / size))
	last = int(math.Ceil((centre+length/2)/size)) - 1
	if last < first {
		last = first
	}
	return first, last
}
