package wshub

import (
	"aimlab/internal/surface"
	"aimlab/internal/vecmath"
)

// Server message types for primitive operations.
const (
	MsgArena  = "arena"
	MsgAdd    = "add"
	MsgRemove = "remove"
	MsgUpdate = "update"
	MsgHUD    = "hud"
	MsgState  = "state"
	MsgRound  = "session"
	MsgConfig = "settings"
	MsgHello  = "hello"
)

// RemoteSurface is a Surface whose primitives live in the browser. Every
// operation is applied to a local Scene, which answers Arena, and mirrored
// to the client as a ServerMessage. Layer tells the client which of its
// canvases the primitive belongs to.
//
// arena, add and remove must reach the client or the two scenes disagree
// for good, so failing to queue one drops the client. move and update are
// resent every frame and may be skipped.
type RemoteSurface[V vecmath.Vector[V]] struct {
	scene  *surface.Scene[V]
	client *Client
	layer  string
}

func NewRemoteSurface[V vecmath.Vector[V]](client *Client, layer string, arena vecmath.Box[V]) *RemoteSurface[V] {
	return &RemoteSurface[V]{
		scene:  surface.NewScene(arena),
		client: client,
		layer:  layer,
	}
}

func (r *RemoteSurface[V]) Arena() vecmath.Box[V] {
	return r.scene.Arena()
}

// SetArena records the client's new bounds and echoes them back.
func (r *RemoteSurface[V]) SetArena(arena vecmath.Box[V]) {
	r.scene.SetArena(arena)
	r.client.SendRequired(ServerMessage{
		Type:  MsgArena,
		Layer: r.layer,
		Min:   vecmath.Components(arena.Min),
		Max:   vecmath.Components(arena.Max),
	})
}

func (r *RemoteSurface[V]) Add(p surface.Primitive[V]) surface.Handle {
	h := r.scene.Add(p)
	r.client.SendRequired(r.encode(MsgAdd, h, p))
	return h
}

func (r *RemoteSurface[V]) Remove(h surface.Handle) {
	if _, ok := r.scene.Get(h); !ok {
		return
	}
	r.scene.Remove(h)
	r.client.SendRequired(ServerMessage{Type: MsgRemove, Layer: r.layer, Handle: uint32(h)})
}

func (r *RemoteSurface[V]) Move(h surface.Handle, pos V) {
	if _, ok := r.scene.Get(h); !ok {
		return
	}
	r.scene.Move(h, pos)
	r.client.SendMessage(ServerMessage{Type: MsgMove, Layer: r.layer, Handle: uint32(h), Position: vecmath.Components(pos)})
}

func (r *RemoteSurface[V]) Update(h surface.Handle, p surface.Primitive[V]) {
	if _, ok := r.scene.Get(h); !ok {
		return
	}
	r.scene.Update(h, p)
	r.client.SendMessage(r.encode(MsgUpdate, h, p))
}

// Scene is the local copy of what the client should be showing.
func (r *RemoteSurface[V]) Scene() *surface.Scene[V] { return r.scene }

func (r *RemoteSurface[V]) encode(typ string, h surface.Handle, p surface.Primitive[V]) ServerMessage {
	msg := ServerMessage{
		Type:     typ,
		Layer:    r.layer,
		Handle:   uint32(h),
		Kind:     p.Kind.String(),
		Position: vecmath.Components(p.Position),
		Radius:   p.Radius,
		Width:    p.Width,
		Height:   p.Height,
		Color:    p.Color,
		Alpha:    p.Alpha,
	}
	if len(p.Points) > 0 {
		msg.Points = make([]PointMessage, len(p.Points))
		for i, pt := range p.Points {
			msg.Points[i] = PointMessage{Position: vecmath.Components(pt.Position), Color: pt.Color}
		}
	}
	return msg
}
