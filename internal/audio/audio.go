// Package audio plays short tones on hit and miss.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"aimlab/internal/events"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const SampleRate = beep.SampleRate(44100)

type Tone struct {
	Freq     float64
	Duration time.Duration
	Volume   float64 // linear gain, 0 is silent
}

var (
	HitTone  = Tone{Freq: 880, Duration: 50 * time.Millisecond, Volume: 0.5}
	MissTone = Tone{Freq: 220, Duration: 30 * time.Millisecond, Volume: 0.35}
)

// Streamer renders t as a finite sine burst.
func (t Tone) Streamer(sr beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, t.Freq)
	if err != nil {
		return nil, fmt.Errorf("building %v Hz tone: %w", t.Freq, err)
	}
	return newVolume(beep.Take(sr.N(t.Duration), sine), t.Volume), nil
}

// newVolume maps a linear gain onto effects.Volume, which works in log2.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Player accepts finished streamers for playback.
type Player interface {
	Play(s beep.Streamer)
}

// Speaker plays through the system audio device via a shared mixer.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSpeaker() *Speaker {
	return &Speaker{mixer: &beep.Mixer{}}
}

func (s *Speaker) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

func (s *Speaker) Play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}

// Sink turns score notifications into tones. It implements events.Sink.
type Sink struct {
	Player Player
	Hit    Tone
	Miss   Tone
	Rate   beep.SampleRate
}

func NewSink(p Player) *Sink {
	return &Sink{Player: p, Hit: HitTone, Miss: MissTone, Rate: SampleRate}
}

func (s *Sink) OnHit(events.HitEvent) { s.play(s.Hit) }

func (s *Sink) OnMiss(events.MissEvent) { s.play(s.Miss) }

func (s *Sink) play(t Tone) {
	if s.Player == nil || t.Duration <= 0 {
		return
	}
	st, err := t.Streamer(s.Rate)
	if err != nil {
		return
	}
	s.Player.Play(st)
}
