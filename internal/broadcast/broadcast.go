// Package broadcast fans HUD events out to server-sent event subscribers.
package broadcast

import (
	"encoding/json"
	"log"
	"sync"

	"aimlab/internal/events"
)

// SubscriberBuffer is how many events a slow subscriber may fall behind
// before further events are dropped for it.
const SubscriberBuffer = 10

// Message is one server-sent event: Event names it, Data is the JSON body.
type Message struct {
	Event string
	Data  string
}

type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan Message]struct{}
}

// NewBroadcaster fans HUD updates from bus out to every subscriber. A nil
// bus gives a broadcaster that only carries what is sent to it directly.
func NewBroadcaster(bus *events.Bus) *Broadcaster {
	b := &Broadcaster{subs: make(map[chan Message]struct{})}
	if bus != nil {
		go b.forward(bus)
	}
	return b
}

// forward runs until both bus channels are closed.
func (b *Broadcaster) forward(bus *events.Bus) {
	states, scores := bus.StateChanges, bus.Scores
	for states != nil || scores != nil {
		select {
		case ev, ok := <-states:
			if !ok {
				states = nil
				continue
			}
			b.BroadcastJSON("state", ev)
		case ev, ok := <-scores:
			if !ok {
				scores = nil
				continue
			}
			b.BroadcastJSON("score", ev)
		}
	}
}

func (b *Broadcaster) Subscribe() chan Message {
	ch := make(chan Message, SubscriberBuffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe closes ch. Unknown or already removed channels are ignored.
func (b *Broadcaster) Unsubscribe(ch chan Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
}

// Len reports the number of live subscribers.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Broadcast queues the event for every subscriber and returns how many
// accepted it.
func (b *Broadcaster) Broadcast(event string, data string) int {
	msg := Message{Event: event, Data: data}
	sent := 0
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- msg:
			sent++
		default:
		}
	}
	return sent
}

func (b *Broadcaster) BroadcastJSON(event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[Broadcast] marshal %s: %v\n", event, err)
		return
	}
	b.Broadcast(event, string(data))
}
