package events

import (
	"sync"
	"time"
)

// HitEvent is reported once per target destroyed by the pointer.
type HitEvent struct {
	TargetID  int       `json:"targetId"`
	Position  []float64 `json:"position"`
	Radius    float64   `json:"radius"`
	Color     string    `json:"color"`
	SpawnedAt time.Time `json:"spawnedAt"`
	At        time.Time `json:"at"`
}

// Reaction is the time the target was alive before it was hit.
func (ev HitEvent) Reaction() time.Duration {
	if ev.SpawnedAt.IsZero() || ev.At.Before(ev.SpawnedAt) {
		return 0
	}
	return ev.At.Sub(ev.SpawnedAt)
}

// MissEvent is reported for a pointer press that hit nothing. Pointer is in
// surface-local coordinates.
type MissEvent struct {
	Pointer []float64 `json:"pointer"`
	At      time.Time `json:"at"`
}

// Sink receives score notifications from a running simulation. Calls arrive
// on the simulation's own goroutine and must not block.
type Sink interface {
	OnHit(HitEvent)
	OnMiss(MissEvent)
}

// Sinks fans every notification out to each member in order.
type Sinks []Sink

func (s Sinks) OnHit(ev HitEvent) {
	for _, sink := range s {
		if sink != nil {
			sink.OnHit(ev)
		}
	}
}

func (s Sinks) OnMiss(ev MissEvent) {
	for _, sink := range s {
		if sink != nil {
			sink.OnMiss(ev)
		}
	}
}

// Discard drops every notification.
type Discard struct{}

func (Discard) OnHit(HitEvent)   {}
func (Discard) OnMiss(MissEvent) {}

// Recorder keeps every notification it receives.
type Recorder struct {
	mu     sync.Mutex
	hits   []HitEvent
	misses []MissEvent
}

func (r *Recorder) OnHit(ev HitEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hits = append(r.hits, ev)
}

func (r *Recorder) OnMiss(ev MissEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.misses = append(r.misses, ev)
}

func (r *Recorder) Hits() []HitEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]HitEvent(nil), r.hits...)
}

func (r *Recorder) Misses() []MissEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]MissEvent(nil), r.misses...)
}

// StateChangeEvent and ScoreEvent carry the round they belong to, since
// one bus serves every player on the server.
type StateChangeEvent struct {
	RoundID string `json:"roundId,omitempty"`
	State   string `json:"state"`
}

type ScoreEvent struct {
	RoundID  string `json:"roundId,omitempty"`
	Score    int    `json:"score"`
	Hits     int    `json:"hits"`
	Shots    int    `json:"shots"`
	Accuracy int    `json:"accuracy"`
	TimeLeft int    `json:"timeLeft"`
}

// Bus carries session updates from the game state to the broadcaster.
type Bus struct {
	StateChanges chan StateChangeEvent
	Scores       chan ScoreEvent
}

func NewBus() *Bus {
	return &Bus{
		StateChanges: make(chan StateChangeEvent, 10),
		Scores:       make(chan ScoreEvent, 10),
	}
}

// PublishScore queues a score update, dropping it if the bus is backed up.
func (b *Bus) PublishScore(ev ScoreEvent) bool {
	select {
	case b.Scores <- ev:
		return true
	default:
		return false
	}
}
