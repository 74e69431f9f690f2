package session

import (
	"context"
	"io"
	"log"
	"testing"

	"aimlab/internal/gamedata"
	"aimlab/internal/history"
	"aimlab/internal/hit"
	"aimlab/internal/metrics"
	"aimlab/internal/rng"
	"aimlab/internal/settings"
	"aimlab/internal/surface"
	"aimlab/internal/vecmath"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

var screen = hit.Rect{Width: 800, Height: 600}

// fixedSettings spawns a static radius-20 target at the centre every 0.4s.
func fixedSettings() settings.Settings {
	s := settings.Defaults()
	s.TargetSize = 1.25
	s.GameMode = settings.ModeFixed
	s.SpawnDensity = 5
	return s
}

func testConfig() Config {
	return Config{
		RoundDuration: 1,
		MaxFrameDelta: 1,
		History:       history.NewMemory(10),
		Random:        rng.NewSequence(0.5),
		Logger:        log.New(io.Discard, "", 0),
	}
}

func newPlane(t *testing.T, provider settings.Provider, cfg Config) (*Session[vecmath.Vec2], *surface.Scene[vecmath.Vec2]) {
	t.Helper()
	scene := surface.NewScene(vecmath.Rect(800, 600))
	return NewPlane(scene, scene, provider, cfg), scene
}

func TestSession_RoundIsScoredAndRecorded(t *testing.T) {
	cfg := testConfig()
	var finished []Result
	cfg.OnFinish = func(r Result) { finished = append(finished, r) }
	s, scene := newPlane(t, settings.Static(fixedSettings()), cfg)

	s.Start()
	if err := s.Frame(0.5); err != nil {
		t.Fatalf("Frame() error: %v", err)
	}
	if n := scene.Count(surface.KindTarget); n != 1 {
		t.Fatalf("targets after first frame = %d, want 1", n)
	}
	if !s.Fire(hit.Pointer{X: 400, Y: 300, Rect: screen}) {
		t.Fatal("Fire() at the centre should hit")
	}
	s.Fire(hit.Pointer{X: 5, Y: 5, Rect: screen})

	if d := s.HUD(); d.Score != 1 || d.Shots != 2 || d.Accuracy != 50 {
		t.Errorf("HUD = %+v, want score 1, 2 shots, 50%%", d)
	}

	s.Frame(0.5)
	if len(finished) != 1 {
		t.Fatalf("OnFinish calls = %d, want 1", len(finished))
	}
	res := finished[0]
	if res.Err != nil || res.Session.Score != 1 || res.Session.Duration != 1 {
		t.Errorf("result = %+v, want score 1 over 1s", res)
	}
	if last, ok := s.Last(); !ok || last.Session.ID != res.Session.ID {
		t.Errorf("Last() = %+v, %v, want the finished round", last, ok)
	}
	if s.Game.State() != gamedata.StateFinished {
		t.Errorf("state = %q, want finished", s.Game.State())
	}
	if n := scene.Count(surface.KindTarget); n != 0 {
		t.Errorf("targets after the round = %d, want 0", n)
	}

	recent, _ := cfg.History.Recent(context.Background())
	if len(recent) != 1 || recent[0].ID != res.Session.ID {
		t.Errorf("history = %+v, want the finished round", recent)
	}
}

func TestSession_IdleIgnoresInput(t *testing.T) {
	s, scene := newPlane(t, settings.Static(fixedSettings()), testConfig())

	if s.Fire(hit.Pointer{X: 400, Y: 300, Rect: screen}) {
		t.Error("Fire() before Start should not hit")
	}
	s.Frame(0.5)
	if n := scene.Count(surface.KindTarget); n != 0 {
		t.Errorf("targets while idle = %d, want 0", n)
	}
	if d := s.HUD(); d.Shots != 0 || d.State != gamedata.StateIdle {
		t.Errorf("HUD = %+v, want an untouched idle round", d)
	}
}

func TestSession_TogglePause(t *testing.T) {
	s, _ := newPlane(t, settings.Static(fixedSettings()), testConfig())

	steps := []struct {
		state     gamedata.State
		crosshair bool
	}{
		{gamedata.StatePlaying, true},
		{gamedata.StatePaused, false},
		{gamedata.StatePlaying, true},
	}
	for i, want := range steps {
		s.TogglePause()
		if got := s.Game.State(); got != want.state {
			t.Errorf("step %d: state = %q, want %q", i, got, want.state)
		}
		if got := s.Crosshair.Visible(); got != want.crosshair {
			t.Errorf("step %d: crosshair visible = %v, want %v", i, got, want.crosshair)
		}
	}

	s.Reset()
	if s.Game.State() != gamedata.StateIdle || s.Crosshair.Visible() {
		t.Error("Reset() should return to idle with the crosshair hidden")
	}
	if _, ok := s.Last(); ok {
		t.Error("an abandoned round should not be recorded")
	}
}

func TestSession_PicksUpSettingsEachFrame(t *testing.T) {
	store := settings.NewStore(fixedSettings())
	s, _ := newPlane(t, store, testConfig())
	s.Start()

	next := store.Snapshot()
	next.CrosshairColor = "#ff00ff"
	if err := store.Set(next); err != nil {
		t.Fatal(err)
	}
	s.Frame(0.01)

	if got := s.Crosshair.Style().Color; got != "#ff00ff" {
		t.Errorf("crosshair color = %q, want #ff00ff", got)
	}
}

func TestSession_ReportsMetrics(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics = metrics.New()
	s, _ := newPlane(t, settings.Static(fixedSettings()), cfg)

	s.Start()
	s.Frame(0.5)
	s.Fire(hit.Pointer{X: 400, Y: 300, Rect: screen})
	s.Frame(2) // dropped, over MaxFrameDelta
	s.Frame(2)

	if got := testutil.ToFloat64(cfg.Metrics.Hits); got != 1 {
		t.Errorf("hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(cfg.Metrics.DroppedFrames); got != 2 {
		t.Errorf("dropped frames = %v, want 2", got)
	}
}

func TestSession_SharedMetricsSumRounds(t *testing.T) {
	m := metrics.New()
	cfgA, cfgB := testConfig(), testConfig()
	cfgA.Metrics, cfgB.Metrics = m, m
	a, _ := newPlane(t, settings.Static(fixedSettings()), cfgA)
	b, _ := newPlane(t, settings.Static(fixedSettings()), cfgB)

	a.Start()
	b.Start()
	a.Frame(0.5)
	b.Frame(0.5)

	ta, tb := a.Sim.Stats().Targets, b.Sim.Stats().Targets
	if ta == 0 || tb == 0 {
		t.Fatalf("targets = %d and %d, want both rounds populated", ta, tb)
	}
	if got := testutil.ToFloat64(m.LiveTargets); got != float64(ta+tb) {
		t.Errorf("live targets = %v, want %d", got, ta+tb)
	}

	a.Teardown()
	if got := testutil.ToFloat64(m.LiveTargets); got != float64(tb) {
		t.Errorf("live targets after teardown = %v, want %d", got, tb)
	}
}

func TestSession_Status(t *testing.T) {
	s, _ := newPlane(t, settings.Static(fixedSettings()), testConfig())
	if got, want := s.Status(), "idle     score 0  hits 0/0  acc 0%  time 1s"; got != want {
		t.Errorf("Status() = %q, want %q", got, want)
	}
}
