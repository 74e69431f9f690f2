package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	VariantPlane  = "plane"
	VariantVolume = "volume"
)

type Config struct {
	Port          string
	DatabaseURL   string
	RoundDuration int // seconds
	FrameRate     int // simulation ticks per second
	MaxFrameDelta time.Duration
	HistoryLimit  int
	Audio         bool
	Variant       string
}

func Load() Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RoundDuration: getEnvInt("ROUND_DURATION", 60),
		FrameRate:     getEnvInt("FRAME_RATE", 60),
		MaxFrameDelta: time.Duration(getEnvFloat("MAX_FRAME_DELTA_MS", 100) * float64(time.Millisecond)),
		HistoryLimit:  getEnvInt("HISTORY_LIMIT", 10),
		Audio:         getEnvBool("AUDIO", true),
		Variant:       strings.ToLower(getEnv("VARIANT", VariantPlane)),
	}
	if cfg.RoundDuration <= 0 {
		cfg.RoundDuration = 60
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 60
	}
	if cfg.MaxFrameDelta <= 0 {
		cfg.MaxFrameDelta = 100 * time.Millisecond
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 10
	}
	if cfg.Variant != VariantVolume {
		cfg.Variant = VariantPlane
	}
	return cfg
}

// FrameInterval is the wall-clock time between simulation ticks.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

// MaxFrameDeltaSeconds is MaxFrameDelta in the unit the simulation takes.
func (c Config) MaxFrameDeltaSeconds() float64 {
	return c.MaxFrameDelta.Seconds()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
