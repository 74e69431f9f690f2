package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"aimlab/internal/events"
	"aimlab/internal/gamedata"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsShots(t *testing.T) {
	m := New()
	spawned := time.Now()
	m.OnHit(events.HitEvent{SpawnedAt: spawned, At: spawned.Add(300 * time.Millisecond)})
	m.OnHit(events.HitEvent{})
	m.OnMiss(events.MissEvent{})

	if got := testutil.ToFloat64(m.Hits); got != 2 {
		t.Errorf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Misses); got != 1 {
		t.Errorf("misses = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.Reaction); got != 1 {
		t.Errorf("reaction series = %d, want 1", got)
	}
}

func TestSceneGauge_SumsRounds(t *testing.T) {
	m := New()
	a, b := m.NewSceneGauge(), m.NewSceneGauge()

	a.Observe(5, 2, 1)
	b.Observe(1, 0, 0)
	if got := testutil.ToFloat64(m.LiveTargets); got != 6 {
		t.Errorf("live targets = %v, want 6 across both rounds", got)
	}

	a.Observe(3, 1, 3)
	b.Observe(1, 1, 1)
	if got := testutil.ToFloat64(m.LiveTargets); got != 4 {
		t.Errorf("live targets = %v, want 4", got)
	}
	if got := testutil.ToFloat64(m.ParticleGroups); got != 2 {
		t.Errorf("particle groups = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.DroppedFrames); got != 4 {
		t.Errorf("dropped frames = %v, want 4", got)
	}

	a.Release()
	if got := testutil.ToFloat64(m.LiveTargets); got != 1 {
		t.Errorf("live targets after release = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ParticleGroups); got != 1 {
		t.Errorf("particle groups after release = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.DroppedFrames); got != 4 {
		t.Errorf("dropped frames after release = %v, want 4", got)
	}
}

func TestSceneGauge_DroppedCountRestarts(t *testing.T) {
	m := New()
	g := m.NewSceneGauge()
	g.Observe(0, 0, 3)
	g.Observe(0, 0, 0)
	g.Observe(0, 0, 2)
	if got := testutil.ToFloat64(m.DroppedFrames); got != 5 {
		t.Errorf("dropped frames = %v, want 5", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveSession(gamedata.Session{Score: 42})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{"aimlab_sessions_total 1", "aimlab_session_score_count 1"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
