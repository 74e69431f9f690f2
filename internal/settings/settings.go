package settings

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sync"
)

type GameMode string

const (
	ModeFixed  = GameMode("fixed")
	ModeMixed  = GameMode("mixed")
	ModeRandom = GameMode("random")
)

func (m GameMode) Valid() bool {
	switch m {
	case ModeFixed, ModeMixed, ModeRandom:
		return true
	}
	return false
}

// Settings is the read-only snapshot the simulation samples at spawn time and
// the crosshair samples at style-update time.
type Settings struct {
	TargetColor        string   `json:"targetColor"`
	TargetSize         float64  `json:"targetSize"`
	SpawnDensity       float64  `json:"spawnDensity"`
	CrosshairColor     string   `json:"crosshairColor"`
	CrosshairSize      float64  `json:"crosshairSize"`
	CrosshairThickness float64  `json:"crosshairThickness"`
	GameMode           GameMode `json:"gameMode"`
	MoveSpeed          float64  `json:"moveSpeed"`
}

type bounds struct{ min, max float64 }

var (
	targetSizeRange   = bounds{0.2, 1.0}
	spawnDensityRange = bounds{1, 5}
	moveSpeedRange    = bounds{0.5, 5}
	crossSizeRange    = bounds{10, 40}
	crossThickRange   = bounds{1, 4}
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var ErrInvalid = errors.New("invalid settings")

func Defaults() Settings {
	return Settings{
		TargetColor:        "#00d4ff",
		TargetSize:         0.5,
		SpawnDensity:       3,
		CrosshairColor:     "#00ff88",
		CrosshairSize:      20,
		CrosshairThickness: 2,
		GameMode:           ModeMixed,
		MoveSpeed:          2,
	}
}

// SpawnInterval is the time between density-driven spawns, in seconds.
func (s Settings) SpawnInterval() float64 {
	if s.SpawnDensity <= 0 {
		return math.Inf(1)
	}
	return 2 / s.SpawnDensity
}

func (s Settings) Validate() error {
	if !hexColor.MatchString(s.TargetColor) {
		return fmt.Errorf("%w: targetColor %q", ErrInvalid, s.TargetColor)
	}
	if !hexColor.MatchString(s.CrosshairColor) {
		return fmt.Errorf("%w: crosshairColor %q", ErrInvalid, s.CrosshairColor)
	}
	if !s.GameMode.Valid() {
		return fmt.Errorf("%w: gameMode %q", ErrInvalid, s.GameMode)
	}
	checks := []struct {
		name string
		v    float64
		r    bounds
	}{
		{"targetSize", s.TargetSize, targetSizeRange},
		{"spawnDensity", s.SpawnDensity, spawnDensityRange},
		{"moveSpeed", s.MoveSpeed, moveSpeedRange},
		{"crosshairSize", s.CrosshairSize, crossSizeRange},
		{"crosshairThickness", s.CrosshairThickness, crossThickRange},
	}
	for _, c := range checks {
		if math.IsNaN(c.v) || c.v < c.r.min || c.v > c.r.max {
			return fmt.Errorf("%w: %s %v outside [%v, %v]", ErrInvalid, c.name, c.v, c.r.min, c.r.max)
		}
	}
	return nil
}

// Clamp pulls every numeric field into range and replaces malformed colors
// and modes with their defaults.
func (s Settings) Clamp() Settings {
	def := Defaults()
	if !hexColor.MatchString(s.TargetColor) {
		s.TargetColor = def.TargetColor
	}
	if !hexColor.MatchString(s.CrosshairColor) {
		s.CrosshairColor = def.CrosshairColor
	}
	if !s.GameMode.Valid() {
		s.GameMode = def.GameMode
	}
	s.TargetSize = clamp(s.TargetSize, targetSizeRange, def.TargetSize)
	s.SpawnDensity = clamp(s.SpawnDensity, spawnDensityRange, def.SpawnDensity)
	s.MoveSpeed = clamp(s.MoveSpeed, moveSpeedRange, def.MoveSpeed)
	s.CrosshairSize = clamp(s.CrosshairSize, crossSizeRange, def.CrosshairSize)
	s.CrosshairThickness = clamp(s.CrosshairThickness, crossThickRange, def.CrosshairThickness)
	return s
}

func clamp(v float64, r bounds, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return math.Max(r.min, math.Min(r.max, v))
}

// Provider hands out settings snapshots.
type Provider interface {
	Snapshot() Settings
}

type Store struct {
	mu       sync.Mutex
	settings Settings
}

func NewStore(initial Settings) *Store {
	return &Store{settings: initial.Clamp()}
}

func (s *Store) Snapshot() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Store) Set(next Settings) error {
	if err := next.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = next
	return nil
}

func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = Defaults()
}

// Static is a Provider that always returns the same snapshot.
type Static Settings

func (s Static) Snapshot() Settings { return Settings(s) }
