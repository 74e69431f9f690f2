package main

import (
	"context"

	"aimlab/internal/session"
	"aimlab/internal/surface/term"
	"aimlab/internal/vecmath"

	"github.com/gdamore/tcell/v2"
)

const help = "space start/pause  r reset  q quit"

// terminal owns the screen. Its methods run on the loop goroutine.
type terminal struct {
	screen  tcell.Screen
	surf    *term.Surface
	round   *session.Session[vecmath.Vec2]
	quit    context.CancelFunc
	buttons tcell.ButtonMask
}

func (t *terminal) frame(dt float64) error {
	if err := t.round.Frame(dt); err != nil {
		return err
	}
	t.draw()
	return nil
}

func (t *terminal) handle(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		t.surf.Resize(cols, rows-1)
		t.screen.Sync()
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
			t.quit()
		case ev.Rune() == ' ':
			t.round.TogglePause()
		case ev.Rune() == 'r':
			t.round.Reset()
		}
	case *tcell.EventMouse:
		p, pressed := t.surf.Mouse(ev)
		t.round.Aim(p)
		// tcell repeats the button mask while it is held
		if pressed && t.buttons&tcell.Button1 == 0 {
			t.round.Fire(p)
		}
		t.buttons = ev.Buttons()
	}
	return nil
}

func (t *terminal) draw() {
	t.screen.Clear()
	t.surf.Draw(t.screen)

	_, rows := t.screen.Size()
	status := tcell.StyleDefault.Reverse(true)
	t.print(0, rows-1, t.round.Status()+"   "+help, status)
	t.screen.Show()
}

func (t *terminal) print(x, y int, s string, style tcell.Style) {
	cols, _ := t.screen.Size()
	for _, r := range s {
		if x >= cols {
			return
		}
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
