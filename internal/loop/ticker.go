package loop

import (
	"context"
	"time"
)

// FrameFunc advances a simulation by dt seconds.
type FrameFunc func(dt float64) error

// Tick submits fn to l every interval with the measured time since the
// previous tick, until ctx is cancelled or the loop stops. A tick that
// cannot be queued is skipped and its time folds into the next one.
func Tick(ctx context.Context, l *Loop, interval time.Duration, fn FrameFunc) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.Done():
			return ErrStopped
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if l.TrySubmit(func() error { return fn(dt) }) {
				last = now
			}
		}
	}
}
