package gamedata

import (
	"math"
	"sync"
	"time"

	"aimlab/internal/events"

	"github.com/google/uuid"
)

type State string

const (
	StateIdle     = State("idle")
	StatePlaying  = State("playing")
	StatePaused   = State("paused")
	StateFinished = State("finished")
)

type Config struct {
	RoundDuration int // seconds
}

func DefaultConfig() Config {
	return Config{RoundDuration: 60}
}

// Session is the record of one finished round.
type Session struct {
	ID        string    `json:"id"`
	Score     int       `json:"score"`
	Hits      int       `json:"hits"`
	Shots     int       `json:"shots"`
	Accuracy  int       `json:"accuracy"`
	Duration  int       `json:"duration"` // seconds played
	Timestamp time.Time `json:"timestamp"`
}

// GameData is a point-in-time view of the round for the HUD.
type GameData struct {
	State    State  `json:"state"`
	Score    int    `json:"score"`
	Hits     int    `json:"hits"`
	Shots    int    `json:"shots"`
	Accuracy int    `json:"accuracy"`
	TimeLeft int    `json:"timeLeft"`
	RoundID  string `json:"roundId,omitempty"`
}

// Accuracy is hits over shots as a rounded percentage, 0 with no shots.
func Accuracy(hits, shots int) int {
	if shots <= 0 {
		return 0
	}
	return int(math.Round(float64(hits) / float64(shots) * 100))
}

// Game tracks one player's round: score, shots and the countdown. It
// implements events.Sink so a simulation can report into it directly.
type Game struct {
	mu       sync.Mutex
	state    State
	score    int
	hits     int
	shots    int
	timeLeft int
	carry    float64
	roundID  string

	Events   *events.Bus
	Config   Config
	OnFinish func(Session)

	now func() time.Time
}

func NewGame(bus *events.Bus, cfg Config) *Game {
	if cfg.RoundDuration <= 0 {
		cfg.RoundDuration = DefaultConfig().RoundDuration
	}
	return &Game{
		state:    StateIdle,
		timeLeft: cfg.RoundDuration,
		Events:   bus,
		Config:   cfg,
		now:      time.Now,
	}
}

func (g *Game) Get() GameData {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dataLocked()
}

func (g *Game) dataLocked() GameData {
	return GameData{
		State:    g.state,
		Score:    g.score,
		Hits:     g.hits,
		Shots:    g.shots,
		Accuracy: Accuracy(g.hits, g.shots),
		TimeLeft: g.timeLeft,
		RoundID:  g.roundID,
	}
}

func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Game) TimeLeft() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.timeLeft
}

// Start begins a fresh round from any state.
func (g *Game) Start() {
	g.mu.Lock()
	g.state = StatePlaying
	g.score, g.hits, g.shots = 0, 0, 0
	g.timeLeft = g.Config.RoundDuration
	g.carry = 0
	g.roundID = uuid.NewString()
	id := g.roundID
	g.mu.Unlock()
	g.publish(StatePlaying, id)
}

func (g *Game) Pause() bool {
	return g.transition(StatePlaying, StatePaused)
}

func (g *Game) Resume() bool {
	return g.transition(StatePaused, StatePlaying)
}

func (g *Game) transition(from, to State) bool {
	g.mu.Lock()
	if g.state != from {
		g.mu.Unlock()
		return false
	}
	g.state = to
	id := g.roundID
	g.mu.Unlock()
	g.publish(to, id)
	return true
}

// Reset returns to idle without recording a session.
func (g *Game) Reset() {
	g.mu.Lock()
	g.state = StateIdle
	g.score, g.hits, g.shots = 0, 0, 0
	g.timeLeft = g.Config.RoundDuration
	g.carry = 0
	id := g.roundID
	g.roundID = ""
	g.mu.Unlock()
	g.publish(StateIdle, id)
}

// Tick counts down one second. When the clock reaches zero the round
// finishes and its session is returned.
func (g *Game) Tick() (Session, bool) {
	g.mu.Lock()
	if g.state != StatePlaying {
		g.mu.Unlock()
		return Session{}, false
	}
	if g.timeLeft > 0 {
		g.timeLeft--
	}
	if g.timeLeft > 0 {
		g.mu.Unlock()
		g.publishScore()
		return Session{}, false
	}
	g.mu.Unlock()
	return g.Finish()
}

// Advance feeds elapsed frame time into the countdown, ticking once per
// whole second.
func (g *Game) Advance(dt float64) (Session, bool) {
	g.mu.Lock()
	if g.state != StatePlaying || dt <= 0 {
		g.mu.Unlock()
		return Session{}, false
	}
	g.carry += dt
	ticks := int(g.carry)
	g.carry -= float64(ticks)
	g.mu.Unlock()

	for range ticks {
		if s, done := g.Tick(); done {
			return s, true
		}
	}
	return Session{}, false
}

// Finish ends a playing or paused round and returns its session.
func (g *Game) Finish() (Session, bool) {
	g.mu.Lock()
	if g.state != StatePlaying && g.state != StatePaused {
		g.mu.Unlock()
		return Session{}, false
	}
	g.state = StateFinished
	s := Session{
		ID:        g.roundID,
		Score:     g.score,
		Hits:      g.hits,
		Shots:     g.shots,
		Accuracy:  Accuracy(g.hits, g.shots),
		Duration:  g.Config.RoundDuration - g.timeLeft,
		Timestamp: g.now(),
	}
	onFinish := g.OnFinish
	g.mu.Unlock()

	g.publish(StateFinished, s.ID)
	if onFinish != nil {
		onFinish(s)
	}
	return s, true
}

// OnHit scores a hit. Shots outside a playing round are ignored.
func (g *Game) OnHit(events.HitEvent) {
	g.mu.Lock()
	if g.state != StatePlaying {
		g.mu.Unlock()
		return
	}
	g.score++
	g.hits++
	g.shots++
	g.mu.Unlock()
	g.publishScore()
}

func (g *Game) OnMiss(events.MissEvent) {
	g.mu.Lock()
	if g.state != StatePlaying {
		g.mu.Unlock()
		return
	}
	g.shots++
	g.mu.Unlock()
	g.publishScore()
}

// publish announces a state change of round id. A reset round is announced
// under the id it had before the reset.
func (g *Game) publish(s State, id string) {
	if g.Events == nil {
		return
	}
	select {
	case g.Events.StateChanges <- events.StateChangeEvent{RoundID: id, State: string(s)}:
	default:
	}
	g.publishScoreFor(id)
}

func (g *Game) publishScore() {
	g.publishScoreFor(g.Get().RoundID)
}

func (g *Game) publishScoreFor(id string) {
	if g.Events == nil {
		return
	}
	d := g.Get()
	g.Events.PublishScore(events.ScoreEvent{
		RoundID:  id,
		Score:    d.Score,
		Hits:     d.Hits,
		Shots:    d.Shots,
		Accuracy: d.Accuracy,
		TimeLeft: d.TimeLeft,
	})
}
