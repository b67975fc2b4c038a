package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type Task func(ctx context.Context) error

// Every runs task on every tick until ctx is done. The interval is
// re-read after each tick, so a config change takes effect without a
// restart. Task errors are logged, never fatal.
func Every(ctx context.Context, interval func() time.Duration, name string, log *zap.Logger, task Task) {
	if log == nil {
		log = zap.NewNop()
	}

	d := interval()
	t := time.NewTicker(d)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if next := interval(); next != d && next > 0 {
				d = next
				t.Reset(d)
			}
			if err := task(ctx); err != nil {
				log.Error("scheduled task failed", zap.String("task", name), zap.Error(err))
			}
		}
	}
}
