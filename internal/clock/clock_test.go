package clock

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeNow returns a clock function that steps through the given offsets.
func fakeNow(offsets ...time.Duration) func() time.Time {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	i := 0
	return func() time.Time {
		t := base.Add(offsets[i])
		if i < len(offsets)-1 {
			i++
		}
		return t
	}
}

func TestElapsed(t *testing.T) {
	c := New(30)
	c.now = fakeNow(0, 33*time.Millisecond, 83*time.Millisecond, 80*time.Millisecond)

	want := []float64{0, 0.033, 0.05, 0}
	for i, w := range want {
		got := c.Elapsed()
		if diff := got - w; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("frame %d: Elapsed() = %v, want %v", i, got, w)
		}
	}
}

func TestReset(t *testing.T) {
	c := New(30)
	c.now = fakeNow(0, time.Second, 10*time.Second, 11*time.Second)

	c.Elapsed()
	c.Elapsed()
	c.Reset()
	if got := c.Elapsed(); got != 0 {
		t.Errorf("Elapsed() after Reset = %v, want 0", got)
	}
	if got := c.Elapsed(); got != 1 {
		t.Errorf("Elapsed() = %v, want 1", got)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		fps      int
		wantFPS  int
		interval time.Duration
	}{
		{30, 30, time.Second / 30},
		{60, 60, time.Second / 60},
		{0, 1, time.Second},
		{-5, 1, time.Second},
	}

	for _, tt := range tests {
		c := New(tt.fps)
		if c.FPS() != tt.wantFPS || c.Interval() != tt.interval {
			t.Errorf("New(%d): fps %d interval %v, want %d %v", tt.fps, c.FPS(), c.Interval(), tt.wantFPS, tt.interval)
		}
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	c := New(1000)
	ctx, cancel := context.WithCancel(context.Background())

	frames := 0
	err := c.Run(ctx, func(elapsed float64) error {
		if elapsed < 0 {
			t.Errorf("negative elapsed %v", elapsed)
		}
		frames++
		if frames == 5 {
			cancel()
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run() = %v, want nil on cancel", err)
	}
	if frames != 5 {
		t.Errorf("ran %d frames, want 5", frames)
	}
}

func TestRunStop(t *testing.T) {
	c := New(1000)
	frames := 0
	err := c.Run(context.Background(), func(float64) error {
		frames++
		if frames == 3 {
			return ErrStop
		}
		return nil
	})
	if err != nil || frames != 3 {
		t.Errorf("Run() = %v after %d frames", err, frames)
	}
}

func TestRunPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := New(1000).Run(context.Background(), func(float64) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("Run() = %v, want %v", err, boom)
	}
}

func TestRunPaces(t *testing.T) {
	c := New(50)
	start := time.Now()
	frames := 0
	c.Run(context.Background(), func(float64) error {
		frames++
		if frames == 6 {
			return ErrStop
		}
		return nil
	})
	// The first token is free; five more at 20ms each.
	if d := time.Since(start); d < 80*time.Millisecond {
		t.Errorf("6 frames at 50fps took %v, limiter not pacing", d)
	}
}

func TestNextCanceled(t *testing.T) {
	c := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	if _, err := c.Next(ctx); err != nil {
		t.Fatalf("first frame: %v", err)
	}
	cancel()
	if _, err := c.Next(ctx); err == nil {
		t.Error("Next on canceled context returned no error")
	}
}
