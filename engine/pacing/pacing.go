// Package pacing reports progress through a batched action with an optional
// simulated delay between attempts.
package pacing

import (
	"context"
	"time"
)

// Tick is one progress report.
type Tick struct {
	Done    int
	Total   int
	Percent float64
}

// Pacer drives progress ticks. The zero value runs without delay and without
// reporting.
type Pacer struct {
	// Delay maps the simulated per-attempt duration to a real wait.
	// Nil means no waiting.
	Delay func(time.Duration) time.Duration
	// OnTick is called at every reported tick. Nil disables reporting.
	OnTick func(Tick)
}

// Scaled returns a Delay function that multiplies the simulated duration by
// factor. A factor <= 0 yields nil.
func Scaled(factor float64) func(time.Duration) time.Duration {
	if factor <= 0 {
		return nil
	}
	return func(d time.Duration) time.Duration {
		return time.Duration(float64(d) * factor)
	}
}

// Interval returns how often progress is reported for total attempts.
func Interval(total int) int {
	return max(1, total/10)
}

// Run walks total attempts, waiting between them and reporting every
// Interval(total) attempts and on the last one. Cancelling ctx stops further
// waiting and reporting and returns ctx.Err().
func (p Pacer) Run(ctx context.Context, total int, perAttempt time.Duration) error {
	if total <= 0 {
		return nil
	}
	var wait time.Duration
	if p.Delay != nil {
		wait = p.Delay(perAttempt)
	}
	every := Interval(total)
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.OnTick != nil && (i%every == 0 || i == total-1) {
			p.OnTick(Tick{
				Done:    i + 1,
				Total:   total,
				Percent: float64(i+1) / float64(total) * 100,
			})
		}
		if wait > 0 {
			if err := sleep(ctx, wait); err != nil {
				return err
			}
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
