// Package crosshair keeps the pointer reticle's position and style and
// mirrors them onto a surface.
package crosshair

import (
	"sync"

	"aimlab/internal/settings"
	"aimlab/internal/surface"
	"aimlab/internal/vecmath"
)

type Style struct {
	Color     string  `json:"color"`
	Size      float64 `json:"size"`
	Thickness float64 `json:"thickness"`
}

func DefaultStyle() Style {
	return StyleFrom(settings.Defaults())
}

// StyleFrom projects the crosshair fields out of a settings snapshot.
func StyleFrom(s settings.Settings) Style {
	return Style{Color: s.CrosshairColor, Size: s.CrosshairSize, Thickness: s.CrosshairThickness}
}

// primitives builds the vertical bar, horizontal bar and centre dot.
func (s Style) primitives(at vecmath.Vec2) []surface.Primitive[vecmath.Vec2] {
	return []surface.Primitive[vecmath.Vec2]{
		{Kind: surface.KindBar, Position: at, Width: s.Thickness, Height: s.Size, Color: s.Color, Alpha: 1},
		{Kind: surface.KindBar, Position: at, Width: s.Size, Height: s.Thickness, Color: s.Color, Alpha: 1},
		{Kind: surface.KindDot, Position: at, Radius: s.Thickness, Color: s.Color, Alpha: 1},
	}
}

// State is the crosshair. Position updates are event driven and independent
// of the simulation frame clock.
type State struct {
	mu       sync.Mutex
	surf     surface.Surface[vecmath.Vec2]
	style    Style
	position vecmath.Vec2
	visible  bool
	handles  []surface.Handle
}

func New(surf surface.Surface[vecmath.Vec2], style Style) *State {
	return &State{surf: surf, style: style}
}

// UpdateStyle replaces the style and rebuilds the visual if it is shown.
func (c *State) UpdateStyle(style Style) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.style = style
	if c.visible {
		c.release()
		c.build()
	}
}

func (c *State) UpdatePosition(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = vecmath.V2(x, y)
	for _, h := range c.handles {
		c.surf.Move(h, c.position)
	}
}

func (c *State) Show() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.visible {
		return
	}
	c.visible = true
	c.build()
}

func (c *State) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.visible {
		return
	}
	c.visible = false
	c.release()
}

// Destroy hides the crosshair and resets it to the default style at the
// origin.
func (c *State) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.release()
	c.visible = false
	c.style = DefaultStyle()
	c.position = vecmath.Vec2{}
}

func (c *State) Style() Style {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.style
}

func (c *State) Position() vecmath.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *State) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

func (c *State) build() {
	for _, p := range c.style.primitives(c.position) {
		c.handles = append(c.handles, c.surf.Add(p))
	}
}

func (c *State) release() {
	for _, h := range c.handles {
		c.surf.Remove(h)
	}
	c.handles = c.handles[:0]
}
