// Package session drives one player's rounds: a simulation, the game clock
// scoring it, and the recording of each finished round. A Session is not
// safe for concurrent use; the caller owns the goroutine it runs on.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"aimlab/internal/analytics"
	"aimlab/internal/crosshair"
	"aimlab/internal/db"
	"aimlab/internal/events"
	"aimlab/internal/gamedata"
	"aimlab/internal/history"
	"aimlab/internal/hit"
	"aimlab/internal/metrics"
	"aimlab/internal/rng"
	"aimlab/internal/settings"
	"aimlab/internal/sim"
	"aimlab/internal/surface"
	"aimlab/internal/vecmath"
)

const recordTimeout = 5 * time.Second

type Config struct {
	RoundDuration int     // seconds
	MaxFrameDelta float64 // seconds

	History history.Store    // nil keeps finished rounds nowhere
	DB      *db.DB           // nil if no database configured
	Metrics *metrics.Metrics // nil to skip
	Bus     *events.Bus      // nil to skip
	Sinks   []events.Sink    // extra listeners, e.g. audio
	Random  rng.Source
	Logger  *log.Logger

	// OnFinish is called after a round ran out of time and was recorded.
	OnFinish func(Result)
}

// Result is a recorded round.
type Result struct {
	Session gamedata.Session  `json:"session"`
	Badges  []analytics.Badge `json:"badges"`
	Err     error             `json:"-"`
}

type Session[V vecmath.Vector[V]] struct {
	Sim       *sim.Simulation[V]
	Game      *gamedata.Game
	Crosshair *crosshair.State

	provider settings.Provider
	applied  settings.Settings
	shots    *history.ShotLog
	cfg      Config
	logger   *log.Logger

	gauge *metrics.SceneGauge
	last  *Result
}

func newSession[V vecmath.Vector[V]](overlay surface.Surface[vecmath.Vec2], provider settings.Provider, cfg Config) *Session[V] {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	s := &Session[V]{
		Game:     gamedata.NewGame(cfg.Bus, gamedata.Config{RoundDuration: cfg.RoundDuration}),
		provider: provider,
		applied:  provider.Snapshot(),
		shots:    &history.ShotLog{},
		cfg:      cfg,
		logger:   cfg.Logger,
	}
	if overlay != nil {
		s.Crosshair = crosshair.New(overlay, crosshair.StyleFrom(s.applied))
	}
	if cfg.Metrics != nil {
		s.gauge = cfg.Metrics.NewSceneGauge()
	}
	s.Game.OnFinish = s.finish
	return s
}

// NewPlane builds a screen-space session. overlay carries the crosshair; it
// may be surf itself, or nil for none.
func NewPlane(surf, overlay surface.Surface[vecmath.Vec2], provider settings.Provider, cfg Config) *Session[vecmath.Vec2] {
	s := newSession[vecmath.Vec2](overlay, provider, cfg)
	s.Sim = sim.NewPlane(surf, provider, s.sink(), s.simConfig())
	return s
}

// NewVolume builds a world-space session. overlay carries the crosshair in
// screen space, or is nil for none.
func NewVolume(surf surface.Surface[vecmath.Vec3], overlay surface.Surface[vecmath.Vec2], cam vecmath.Camera, provider settings.Provider, cfg Config) *Session[vecmath.Vec3] {
	s := newSession[vecmath.Vec3](overlay, provider, cfg)
	s.Sim = sim.NewVolume(surf, cam, provider, s.sink(), s.simConfig())
	return s
}

func (s *Session[V]) sink() events.Sink {
	sinks := events.Sinks{s.Game, s.shots}
	if s.cfg.Metrics != nil {
		sinks = append(sinks, s.cfg.Metrics)
	}
	return append(sinks, s.cfg.Sinks...)
}

func (s *Session[V]) simConfig() sim.Config {
	return sim.Config{
		MaxFrameDelta: s.cfg.MaxFrameDelta,
		Random:        s.cfg.Random,
		Logger:        s.logger,
		Crosshair:     s.Crosshair,
	}
}

// Frame advances one display frame. Settings changes are picked up here.
// The simulation and the countdown only run while a round is being played,
// and a dropped frame leaves the countdown alone.
func (s *Session[V]) Frame(dt float64) error {
	if cur := s.provider.Snapshot(); cur != s.applied {
		s.applied = cur
		s.Sim.ApplySettings()
	}
	if s.Game.State() == gamedata.StatePlaying {
		switch err := s.Sim.Frame(dt); {
		case err == nil:
			s.Game.Advance(dt)
		case !errors.Is(err, sim.ErrFrameDropped):
			return err
		}
	}
	s.observe()
	return nil
}

func (s *Session[V]) observe() {
	if s.gauge == nil {
		return
	}
	st := s.Sim.Stats()
	s.gauge.Observe(st.Targets, st.ParticleGroups, st.Dropped)
}

// Fire shoots at p. Presses outside a playing round do nothing.
func (s *Session[V]) Fire(p hit.Pointer) bool {
	if s.Game.State() != gamedata.StatePlaying {
		return false
	}
	return s.Sim.Fire(p) != nil
}

func (s *Session[V]) Aim(p hit.Pointer) {
	s.Sim.Aim(p)
}

// Start begins a fresh round, dropping anything left from the last one.
func (s *Session[V]) Start() {
	s.Sim.Reset()
	s.shots.Take("")
	s.last = nil
	s.Game.Start()
	s.showCrosshair(true)
}

func (s *Session[V]) Pause() bool {
	if !s.Game.Pause() {
		return false
	}
	s.showCrosshair(false)
	return true
}

func (s *Session[V]) Resume() bool {
	if !s.Game.Resume() {
		return false
	}
	s.showCrosshair(true)
	return true
}

// TogglePause starts a round when none is running.
func (s *Session[V]) TogglePause() {
	switch s.Game.State() {
	case gamedata.StatePlaying:
		s.Pause()
	case gamedata.StatePaused:
		s.Resume()
	default:
		s.Start()
	}
}

// Reset abandons the round without recording it.
func (s *Session[V]) Reset() {
	s.Game.Reset()
	s.Sim.Reset()
	s.shots.Take("")
	s.showCrosshair(false)
}

func (s *Session[V]) Teardown() {
	s.Sim.Teardown()
	if s.gauge != nil {
		s.gauge.Release()
	}
}

func (s *Session[V]) HUD() gamedata.GameData {
	return s.Game.Get()
}

// Status is the HUD as one line of text. A finished round adds the badges
// it earned.
func (s *Session[V]) Status() string {
	d := s.Game.Get()
	line := fmt.Sprintf("%-8s score %d  hits %d/%d  acc %d%%  time %ds",
		d.State, d.Score, d.Hits, d.Shots, d.Accuracy, d.TimeLeft)
	if res, ok := s.Last(); ok && d.State == gamedata.StateFinished && len(res.Badges) > 0 {
		names := make([]string, len(res.Badges))
		for i, b := range res.Badges {
			names[i] = b.Name
		}
		line += "  badges: " + strings.Join(names, ", ")
	}
	return line
}

// Last returns the most recently recorded round.
func (s *Session[V]) Last() (Result, bool) {
	if s.last == nil {
		return Result{}, false
	}
	return *s.last, true
}

func (s *Session[V]) showCrosshair(on bool) {
	if s.Crosshair == nil {
		return
	}
	if on {
		s.Crosshair.Show()
	} else {
		s.Crosshair.Hide()
	}
}

// finish runs from Game.Finish on the session's goroutine.
func (s *Session[V]) finish(gs gamedata.Session) {
	s.showCrosshair(false)
	s.Sim.Reset()

	res := Result{Session: gs}
	if s.cfg.History != nil {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		rec := history.Recorder{Store: s.cfg.History, DB: s.cfg.DB, Shots: s.shots}
		res.Badges, res.Err = rec.Record(ctx, gs)
		if res.Err != nil {
			s.logger.Printf("[Session] recording %s: %v\n", gs.ID, res.Err)
		}
	} else {
		s.shots.Take("")
		res.Badges = analytics.StatsFor(gs).Badges
	}
	if s.cfg.Metrics != nil {
		s.cfg.Metrics.ObserveSession(gs)
	}
	s.last = &res
	if s.cfg.OnFinish != nil {
		s.cfg.OnFinish(res)
	}
}
