// Package history keeps the record of finished rounds: the most recent
// sessions, newest first, and the best score ever reached.
package history

import (
	"context"
	"sync"

	"aimlab/internal/gamedata"
)

const DefaultLimit = 10

type Store interface {
	Add(ctx context.Context, s gamedata.Session) error
	// Recent returns at most the store's limit of sessions, newest first.
	Recent(ctx context.Context) ([]gamedata.Session, error)
	Best(ctx context.Context) (int, error)
}

// Memory is a Store that lives only as long as the process.
type Memory struct {
	mu       sync.Mutex
	limit    int
	sessions []gamedata.Session
	best     int
}

func NewMemory(limit int) *Memory {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Memory{limit: limit}
}

func (m *Memory) Add(_ context.Context, s gamedata.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = append([]gamedata.Session{s}, m.sessions...)
	if len(m.sessions) > m.limit {
		m.sessions = m.sessions[:m.limit]
	}
	if s.Score > m.best {
		m.best = s.Score
	}
	return nil
}

func (m *Memory) Recent(context.Context) ([]gamedata.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]gamedata.Session, len(m.sessions))
	copy(out, m.sessions)
	return out, nil
}

func (m *Memory) Best(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, nil
}
