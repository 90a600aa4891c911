package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

type retrySender struct {
	next     Sender
	attempts int
	backoff  time.Duration
}

// WithRetry wraps next so that ErrNetwork failures are retried up to attempts
// times in total, waiting backoff, 2*backoff, ... between tries. Decode
// failures and ErrInFlight are returned immediately. When every attempt fails
// the returned error aggregates all of them.
func WithRetry(next Sender, attempts int, backoff time.Duration) Sender {
	if attempts <= 1 {
		return next
	}
	return &retrySender{next: next, attempts: attempts, backoff: backoff}
}

func (r *retrySender) Send(ctx context.Context, in PredictionInput) (*PredictionResult, error) {
	var errs *multierror.Error
	wait := r.backoff

	for attempt := 1; attempt <= r.attempts; attempt++ {
		res, err := r.next.Send(ctx, in)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, ErrNetwork) {
			return nil, err
		}
		errs = multierror.Append(errs, fmt.Errorf("attempt %d: %w", attempt, err))

		if attempt == r.attempts {
			break
		}
		if err := sleepContext(ctx, wait); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%w: %w", ErrNetwork, err))
			break
		}
		wait *= 2
	}

	return nil, errs.ErrorOrNil()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Clear forwards to the wrapped sender so a restart still drops its result.
func (r *retrySender) Clear() {
	if c, ok := r.next.(interface{ Clear() }); ok {
		c.Clear()
	}
}
