// Package ebiten runs a round in a desktop window.
package ebiten

import (
	"image/color"

	"aimlab/internal/hit"
	"aimlab/internal/surface/paint"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var background = color.RGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff}

// Round is the part of a session the window drives.
type Round interface {
	Frame(dt float64) error
	Fire(p hit.Pointer) bool
	Aim(p hit.Pointer)
	TogglePause()
	Reset()
	Status() string
}

// painter draws onto an ebiten image with anti-aliased vector shapes.
type painter struct{ dst *ebiten.Image }

func (p painter) Circle(x, y, r float32, c color.Color) {
	vector.DrawFilledCircle(p.dst, x, y, r, c, true)
}

func (p painter) Rect(x, y, w, h float32, c color.Color) {
	vector.FillRect(p.dst, x, y, w, h, c, false)
}

// Game adapts a Round to ebiten.Game.
type Game struct {
	Round Round
	// Paint draws the scenes; it receives the current window size.
	Paint func(p paint.Painter, width, height int)
	// Resize is called whenever the window size changes.
	Resize func(width, height int)

	width, height int
	cursorX       int
	cursorY       int
}

func (g *Game) rect() hit.Rect {
	return hit.Rect{Width: float64(g.width), Height: float64(g.height)}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.Round.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Round.Reset()
	}

	x, y := ebiten.CursorPosition()
	p := hit.Pointer{X: float64(x), Y: float64(y), Rect: g.rect()}
	if x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		g.Round.Aim(p)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.Round.Fire(p)
	}

	return g.Round.Frame(1 / float64(ebiten.TPS()))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	if g.Paint != nil {
		g.Paint(painter{dst: screen}, g.width, g.height)
	}
	ebitenutil.DebugPrintAt(screen, g.Round.Status(), 8, 8)
	ebitenutil.DebugPrintAt(screen, "space start/pause  r reset  esc quit", 8, g.height-20)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		if g.Resize != nil {
			g.Resize(g.width, g.height)
		}
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string, width, height int) error {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}
