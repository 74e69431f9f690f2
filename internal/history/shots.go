package history

import (
	"context"
	"sync"
	"time"

	"aimlab/internal/db"
	"aimlab/internal/events"
)

// ShotLog buffers every shot of the current round so they can be written in
// one batch when the round ends. It implements events.Sink.
type ShotLog struct {
	mu    sync.Mutex
	shots []db.ShotEvent
}

func (l *ShotLog) OnHit(ev events.HitEvent) {
	shot := db.ShotEvent{
		TargetID:     ev.TargetID,
		Hit:          true,
		TargetRadius: ev.Radius,
		FiredAt:      ev.At,
		ReactionMs:   int(ev.Reaction() / time.Millisecond),
	}
	if !ev.SpawnedAt.IsZero() {
		spawned := ev.SpawnedAt
		shot.SpawnedAt = &spawned
	}
	setXYZ(&shot, ev.Position)
	l.append(shot)
}

func (l *ShotLog) OnMiss(ev events.MissEvent) {
	shot := db.ShotEvent{FiredAt: ev.At}
	setXYZ(&shot, ev.Pointer)
	l.append(shot)
}

func setXYZ(shot *db.ShotEvent, c []float64) {
	dst := []*float64{&shot.X, &shot.Y, &shot.Z}
	for i := 0; i < len(c) && i < len(dst); i++ {
		*dst[i] = c[i]
	}
}

func (l *ShotLog) append(shot db.ShotEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shots = append(l.shots, shot)
}

// Take returns the buffered shots stamped with sessionID and empties the
// log.
func (l *ShotLog) Take(sessionID string) []db.ShotEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.shots
	l.shots = nil
	for i := range out {
		out[i].SessionID = sessionID
	}
	return out
}

func (l *ShotLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.shots)
}

// Flush writes the buffered shots for sessionID. A nil database just drops
// them.
func (l *ShotLog) Flush(ctx context.Context, database *db.DB, sessionID string) error {
	shots := l.Take(sessionID)
	if database == nil || len(shots) == 0 {
		return nil
	}
	return database.BatchRecordShots(ctx, shots)
}
