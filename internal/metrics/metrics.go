// Package metrics exports simulation counters to Prometheus.
package metrics

import (
	"net/http"

	"aimlab/internal/events"
	"aimlab/internal/gamedata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aimlab"

// Metrics implements events.Sink.
type Metrics struct {
	Hits           prometheus.Counter
	Misses         prometheus.Counter
	Reaction       prometheus.Histogram
	LiveTargets    prometheus.Gauge
	ParticleGroups prometheus.Gauge
	DroppedFrames  prometheus.Counter
	Sessions       prometheus.Counter
	SessionScore   prometheus.Histogram

	registry *prometheus.Registry
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Hits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "hits_total", Help: "Targets destroyed by the pointer.",
		}),
		Misses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "misses_total", Help: "Pointer presses that hit nothing.",
		}),
		Reaction: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "reaction_seconds", Help: "Time from spawn to hit.",
			Buckets: []float64{0.15, 0.25, 0.35, 0.5, 0.75, 1, 1.5, 2, 3, 5},
		}),
		LiveTargets: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "live_targets", Help: "Targets currently in the arena.",
		}),
		ParticleGroups: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "particle_groups", Help: "Explosion groups still fading.",
		}),
		DroppedFrames: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "dropped_frames_total", Help: "Frames skipped for an oversized delta.",
		}),
		Sessions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "sessions_total", Help: "Rounds played to the end.",
		}),
		SessionScore: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "session_score", Help: "Final score of each round.",
			Buckets: prometheus.LinearBuckets(0, 20, 8),
		}),
		registry: reg,
	}
}

func (m *Metrics) OnHit(ev events.HitEvent) {
	m.Hits.Inc()
	if r := ev.Reaction(); r > 0 {
		m.Reaction.Observe(r.Seconds())
	}
}

func (m *Metrics) OnMiss(events.MissEvent) {
	m.Misses.Inc()
}

// SceneGauge is one round's share of the scene gauges. Rounds running side
// by side each hold their own, so the gauges read as the sum over rounds.
type SceneGauge struct {
	m                        *Metrics
	targets, groups, dropped int
}

func (m *Metrics) NewSceneGauge() *SceneGauge {
	return &SceneGauge{m: m}
}

// Observe moves the gauges by the change since the previous call. dropped
// is the round's running count of dropped frames.
func (g *SceneGauge) Observe(targets, groups, dropped int) {
	g.m.LiveTargets.Add(float64(targets - g.targets))
	g.m.ParticleGroups.Add(float64(groups - g.groups))
	if d := dropped - g.dropped; d > 0 {
		g.m.DroppedFrames.Add(float64(d))
	}
	g.targets, g.groups, g.dropped = targets, groups, dropped
}

// Release withdraws the round's targets and particle groups.
func (g *SceneGauge) Release() {
	g.Observe(0, 0, g.dropped)
}

func (m *Metrics) ObserveSession(s gamedata.Session) {
	m.Sessions.Inc()
	m.SessionScore.Observe(float64(s.Score))
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
