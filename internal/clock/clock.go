// Package clock paces the animation loop and measures frame deltas.
package clock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Clock hands out frame ticks at a fixed rate. It is not safe for
// concurrent use; one goroutine owns the animation loop.
type Clock struct {
	fps     int
	limiter *rate.Limiter

	now     func() time.Time
	last    time.Time
	started bool
}

// New creates a clock for the given frame rate. Rates below 1 are raised to 1.
func New(fps int) *Clock {
	if fps < 1 {
		fps = 1
	}
	return &Clock{
		fps: fps,
		// Burst of 1: a slow frame is never followed by a catch-up burst.
		limiter: rate.NewLimiter(rate.Limit(fps), 1),
		now:     time.Now,
	}
}

// FPS returns the target frame rate.
func (c *Clock) FPS() int {
	return c.fps
}

// Interval returns the target time between frames.
func (c *Clock) Interval() time.Duration {
	return time.Second / time.Duration(c.fps)
}

// Elapsed returns the seconds since the previous call. The first call
// returns 0.
func (c *Clock) Elapsed() float64 {
	now := c.now()
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	return dt
}

// Reset makes the next Elapsed return 0, so time spent paused is not
// replayed.
func (c *Clock) Reset() {
	c.started = false
}

// Next blocks until the next frame is due and returns the elapsed seconds
// since the previous frame.
func (c *Clock) Next(ctx context.Context) (float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("frame clock: %w", err)
	}
	return c.Elapsed(), nil
}

// Run calls fn once per frame until ctx is done or fn returns an error.
// Cancellation is a normal exit and returns nil.
func (c *Clock) Run(ctx context.Context, fn func(elapsed float64) error) error {
	for {
		elapsed, err := c.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := fn(elapsed); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
}

// ErrStop can be returned from a Run callback to end the loop cleanly.
var ErrStop = errors.New("stop frame loop")
