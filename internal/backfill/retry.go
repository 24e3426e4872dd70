package backfill

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// withRetry runs fn until it succeeds, retrying up to maxRetries times with
// a doubling delay that starts at baseDelay.
func withRetry(ctx context.Context, clock clockwork.Clock, maxRetries int, baseDelay time.Duration, fn func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	delay := baseDelay
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries {
			return err
		}

		timer := clock.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.Chan():
		}

		delay *= 2
	}
}
