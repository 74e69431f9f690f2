package gamedata

import (
	"testing"
	"time"

	"aimlab/internal/events"
)

func newTestGame() *Game {
	return NewGame(events.NewBus(), DefaultConfig())
}

func TestNewGame_StartsIdle(t *testing.T) {
	g := newTestGame()
	if g.State() != StateIdle {
		t.Errorf("initial state = %q, want %q", g.State(), StateIdle)
	}
	if g.TimeLeft() != 60 {
		t.Errorf("TimeLeft = %d, want 60", g.TimeLeft())
	}
}

func TestGame_Start_SendsEvent(t *testing.T) {
	g := newTestGame()

	g.Start()

	select {
	case ev := <-g.Events.StateChanges:
		if ev.State != string(StatePlaying) {
			t.Errorf("event state = %q, want %q", ev.State, StatePlaying)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for state change event")
	}
	if g.Get().RoundID == "" {
		t.Error("Start() should assign a round id")
	}
}

func TestGame_EventsCarryRoundID(t *testing.T) {
	bus := events.NewBus()
	a := NewGame(bus, DefaultConfig())
	b := NewGame(bus, DefaultConfig())

	a.Start()
	b.Start()
	idA, idB := a.Get().RoundID, b.Get().RoundID
	if idA == idB {
		t.Fatalf("two rounds share id %q", idA)
	}
	for _, want := range []string{idA, idB} {
		ev := <-bus.StateChanges
		if ev.RoundID != want || ev.State != string(StatePlaying) {
			t.Errorf("state event = %+v, want playing for %s", ev, want)
		}
		if sc := <-bus.Scores; sc.RoundID != want {
			t.Errorf("score event round = %q, want %q", sc.RoundID, want)
		}
	}

	a.Reset()
	if ev := <-bus.StateChanges; ev.RoundID != idA || ev.State != string(StateIdle) {
		t.Errorf("reset event = %+v, want idle for %s", ev, idA)
	}
	if sc := <-bus.Scores; sc.RoundID != idA {
		t.Errorf("reset score round = %q, want %q", sc.RoundID, idA)
	}
}

func TestGame_ScoringOnlyWhilePlaying(t *testing.T) {
	g := newTestGame()

	g.OnHit(events.HitEvent{})
	g.OnMiss(events.MissEvent{})
	if d := g.Get(); d.Shots != 0 || d.Score != 0 {
		t.Fatalf("idle game counted shots: %+v", d)
	}

	g.Start()
	g.OnHit(events.HitEvent{})
	g.OnHit(events.HitEvent{})
	g.OnMiss(events.MissEvent{})

	d := g.Get()
	if d.Score != 2 || d.Hits != 2 || d.Shots != 3 {
		t.Errorf("score, hits, shots = %d, %d, %d; want 2, 2, 3", d.Score, d.Hits, d.Shots)
	}
	if d.Accuracy != 67 {
		t.Errorf("Accuracy = %d, want 67", d.Accuracy)
	}

	g.Pause()
	g.OnHit(events.HitEvent{})
	if g.Get().Score != 2 {
		t.Error("paused game should ignore hits")
	}
}

func TestAccuracy(t *testing.T) {
	cases := []struct {
		hits, shots, want int
	}{
		{0, 0, 0},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{5, 5, 100},
	}
	for _, c := range cases {
		if got := Accuracy(c.hits, c.shots); got != c.want {
			t.Errorf("Accuracy(%d, %d) = %d, want %d", c.hits, c.shots, got, c.want)
		}
	}
}

func TestGame_PauseResume(t *testing.T) {
	g := newTestGame()
	if g.Pause() {
		t.Error("Pause() from idle should fail")
	}
	g.Start()
	if !g.Pause() || g.State() != StatePaused {
		t.Fatalf("Pause() failed, state = %q", g.State())
	}
	if _, done := g.Tick(); done || g.TimeLeft() != 60 {
		t.Error("paused clock should not tick")
	}
	if !g.Resume() || g.State() != StatePlaying {
		t.Errorf("Resume() failed, state = %q", g.State())
	}
	if g.Resume() {
		t.Error("Resume() while playing should fail")
	}
}

func TestGame_TickFinishesRound(t *testing.T) {
	g := NewGame(events.NewBus(), Config{RoundDuration: 3})
	var recorded []Session
	g.OnFinish = func(s Session) { recorded = append(recorded, s) }
	g.Start()
	g.OnHit(events.HitEvent{})
	g.OnMiss(events.MissEvent{})

	for i := 0; i < 2; i++ {
		if _, done := g.Tick(); done {
			t.Fatalf("round finished after %d ticks", i+1)
		}
	}
	s, done := g.Tick()
	if !done {
		t.Fatal("round should finish when the clock reaches zero")
	}
	if g.State() != StateFinished {
		t.Errorf("state = %q, want %q", g.State(), StateFinished)
	}
	if s.Score != 1 || s.Hits != 1 || s.Shots != 2 || s.Accuracy != 50 || s.Duration != 3 {
		t.Errorf("session = %+v", s)
	}
	if s.ID == "" || s.Timestamp.IsZero() {
		t.Errorf("session missing id or timestamp: %+v", s)
	}
	if len(recorded) != 1 || recorded[0].ID != s.ID {
		t.Errorf("OnFinish calls = %d, want 1 with the session", len(recorded))
	}
	if _, done := g.Tick(); done {
		t.Error("finished round ticked again")
	}
}

func TestGame_AdvanceAccumulates(t *testing.T) {
	g := NewGame(nil, Config{RoundDuration: 2})
	g.Start()

	for i := 0; i < 3; i++ {
		g.Advance(0.25)
	}
	if g.TimeLeft() != 2 {
		t.Fatalf("TimeLeft after 0.75s = %d, want 2", g.TimeLeft())
	}
	g.Advance(0.25)
	if g.TimeLeft() != 1 {
		t.Fatalf("TimeLeft after 1s = %d, want 1", g.TimeLeft())
	}
	s, done := g.Advance(1.5)
	if !done || s.Duration != 2 {
		t.Errorf("Advance past the end = (%+v, %v), want finished after 2s", s, done)
	}
}

func TestGame_FinishEarly(t *testing.T) {
	g := newTestGame()
	if _, ok := g.Finish(); ok {
		t.Error("Finish() from idle should fail")
	}
	g.Start()
	g.Tick()
	g.Pause()
	s, ok := g.Finish()
	if !ok || s.Duration != 1 {
		t.Errorf("Finish() = (%+v, %v), want a 1s session", s, ok)
	}
}

func TestGame_Reset(t *testing.T) {
	g := newTestGame()
	g.Start()
	g.OnHit(events.HitEvent{})
	g.Tick()

	g.Reset()

	d := g.Get()
	if d.State != StateIdle || d.Score != 0 || d.TimeLeft != 60 || d.RoundID != "" {
		t.Errorf("after Reset: %+v", d)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.RoundDuration != 60 {
		t.Errorf("RoundDuration = %d, want 60", cfg.RoundDuration)
	}
}
