package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"aimlab/internal/config"
	"aimlab/internal/gamedata"
	"aimlab/internal/hit"
	"aimlab/internal/loop"
	"aimlab/internal/session"
	"aimlab/internal/settings"
	"aimlab/internal/targets"
	"aimlab/internal/vecmath"
	"aimlab/internal/wshub"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	layerWorld   = "world"
	layerOverlay = "overlay"

	sendBuffer = 1024
)

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Printf("[Play] accept: %v\n", err)
		return
	}
	defer conn.CloseNow()

	client := wshub.NewClient(uuid.NewString(), conn, sendBuffer)
	s.Hub.Register(client)
	defer s.Hub.Unregister(client.ID)
	log.Printf("[Play] client %s connected\n", client.ID)

	switch s.Config.Variant {
	case config.VariantVolume:
		err = newVolumeSession(s, client).run(r.Context())
	default:
		err = newPlaneSession(s, client).run(r.Context())
	}
	if err != nil {
		log.Printf("[Play] client %s: %v\n", client.ID, err)
	}
	log.Printf("[Play] client %s disconnected\n", client.ID)
}

// playSession is one websocket player: a round drawing into the browser and
// the loop it runs on.
type playSession[V vecmath.Vector[V]] struct {
	srv     *Server
	client  *wshub.Client
	world   *wshub.RemoteSurface[V]
	overlay *wshub.RemoteSurface[vecmath.Vec2]
	round   *session.Session[V]
	loop    *loop.Loop
	camera  *vecmath.Camera

	// resize maps the client's canvas to a world arena. nil keeps the
	// arena fixed.
	resize func(hit.Rect) vecmath.Box[V]

	lastHUD gamedata.GameData
}

func newPlaySession[V vecmath.Vector[V]](srv *Server, client *wshub.Client, arena vecmath.Box[V]) *playSession[V] {
	return &playSession[V]{
		srv:     srv,
		client:  client,
		world:   wshub.NewRemoteSurface(client, layerWorld, arena),
		overlay: wshub.NewRemoteSurface(client, layerOverlay, vecmath.Box[vecmath.Vec2]{}),
		loop:    loop.New(loop.Config{}),
	}
}

func newPlaneSession(srv *Server, client *wshub.Client) *playSession[vecmath.Vec2] {
	ps := newPlaySession(srv, client, vecmath.Box[vecmath.Vec2]{})
	ps.resize = func(r hit.Rect) vecmath.Box[vecmath.Vec2] {
		return vecmath.Rect(r.Width, r.Height)
	}
	ps.round = session.NewPlane(ps.world, ps.overlay, srv.Settings, ps.roundConfig())
	return ps
}

func newVolumeSession(srv *Server, client *wshub.Client) *playSession[vecmath.Vec3] {
	cam := vecmath.DefaultCamera()
	ps := newPlaySession(srv, client, targets.VolumeArena())
	ps.camera = &cam
	ps.round = session.NewVolume(ps.world, ps.overlay, cam, srv.Settings, ps.roundConfig())
	return ps
}

func (ps *playSession[V]) roundConfig() session.Config {
	return session.Config{
		RoundDuration: ps.srv.Config.RoundDuration,
		MaxFrameDelta: ps.srv.Config.MaxFrameDeltaSeconds(),
		History:       ps.srv.History,
		DB:            ps.srv.DB,
		Metrics:       ps.srv.Metrics,
		Bus:           ps.srv.Bus,
		OnFinish:      ps.finish,
	}
}

// run serves the connection until either side closes it. Reading, ticking
// and writing each get a goroutine; everything that touches the round goes
// through the loop.
func (ps *playSession[V]) run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	if err := ps.loop.Start(ctx); err != nil {
		return err
	}
	ps.hello()

	eg.Go(func() error { return ps.client.WritePump(ctx) })
	eg.Go(func() error {
		return loop.Tick(ctx, ps.loop, ps.srv.Config.FrameInterval(), ps.frame)
	})
	eg.Go(func() error { return ps.readPump(ctx) })

	err := eg.Wait()
	<-ps.loop.Done()
	ps.round.Teardown()

	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, loop.ErrStopped):
		return nil
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return nil
	}
	return err
}

func (ps *playSession[V]) readPump(ctx context.Context) error {
	for {
		var msg wshub.ClientMessage
		if err := wsjson.Read(ctx, ps.client.Conn, &msg); err != nil {
			return err
		}
		if err := ps.loop.Submit(ctx, func() error { return ps.handle(msg) }); err != nil {
			return err
		}
	}
}

func (ps *playSession[V]) hello() {
	data, err := json.Marshal(struct {
		Variant       string            `json:"variant"`
		RoundDuration int               `json:"roundDuration"`
		Settings      settings.Settings `json:"settings"`
		Camera        *vecmath.Camera   `json:"camera,omitempty"`
	}{
		Variant:       ps.srv.Config.Variant,
		RoundDuration: ps.srv.Config.RoundDuration,
		Settings:      ps.srv.Settings.Snapshot(),
		Camera:        ps.camera,
	})
	if err != nil {
		log.Println(err)
		return
	}
	ps.client.SendRequired(wshub.ServerMessage{Type: wshub.MsgHello, ClientID: ps.client.ID, Data: data})
	if ps.resize == nil {
		ps.world.SetArena(ps.world.Arena())
	}
	ps.pushHUD()
}

// handle runs one client message on the loop goroutine.
func (ps *playSession[V]) handle(msg wshub.ClientMessage) error {
	switch msg.Type {
	case wshub.MsgDown:
		ps.round.Fire(msg.Pointer())
	case wshub.MsgMove:
		ps.round.Aim(msg.Pointer())
	case wshub.MsgResize:
		ps.overlay.SetArena(vecmath.Rect(msg.Rect.Width, msg.Rect.Height))
		if ps.resize != nil {
			ps.world.SetArena(ps.resize(msg.Rect))
		}
	case wshub.MsgStart:
		ps.round.Start()
	case wshub.MsgPause:
		ps.round.Pause()
	case wshub.MsgResume:
		ps.round.Resume()
	case wshub.MsgReset:
		ps.round.Reset()
	default:
		return fmt.Errorf("unknown client message %q", msg.Type)
	}
	ps.pushHUD()
	return nil
}

func (ps *playSession[V]) frame(dt float64) error {
	if err := ps.round.Frame(dt); err != nil {
		return err
	}
	ps.pushHUD()
	return nil
}

func (ps *playSession[V]) pushHUD() {
	d := ps.round.HUD()
	if d == ps.lastHUD {
		return
	}
	data, err := json.Marshal(d)
	if err != nil {
		log.Println(err)
		return
	}
	if ps.client.SendMessage(wshub.ServerMessage{Type: wshub.MsgHUD, Data: data}) {
		ps.lastHUD = d
	}
}

// finish tells the player how the round went. It runs on the loop
// goroutine once the round has been recorded.
func (ps *playSession[V]) finish(res session.Result) {
	data, err := json.Marshal(res)
	if err != nil {
		log.Println(err)
		return
	}
	ps.client.SendRequired(wshub.ServerMessage{Type: wshub.MsgRound, Data: data})
}
