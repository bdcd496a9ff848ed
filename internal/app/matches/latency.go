package matches

import (
	"context"
	"time"
)

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// simulateCall applies the artificial network delay and failure roll that
// precede every façade call. It never runs once the store has been reached.
func (s *Service) simulateCall(ctx context.Context) error {
	if err := s.sleep(ctx, s.nextDelay()); err != nil {
		return err
	}
	if s.cfg.FailureRate > 0 && s.roll() < s.cfg.FailureRate {
		return ErrUnavailable
	}
	return nil
}

func (s *Service) nextDelay() time.Duration {
	lo, hi := s.cfg.MinLatency, s.cfg.MaxLatency
	if hi < lo {
		hi = lo
	}
	if hi <= 0 {
		return 0
	}
	if hi == lo {
		return lo
	}
	return lo + time.Duration(s.jitter(int64(hi-lo)+1))
}
