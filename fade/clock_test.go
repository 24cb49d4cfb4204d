package fade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/planefade/terminal"
)

func TestManualClock(t *testing.T) {
	c := NewManualClock(epoch)

	c.Advance(5 * time.Millisecond)
	c.Advance(-time.Second)
	if got := c.Now().Sub(epoch); got != 5*time.Millisecond {
		t.Errorf("after Advance: %v, want 5ms", got)
	}

	c.Set(epoch)
	if got := c.Now().Sub(epoch); got != 5*time.Millisecond {
		t.Errorf("Set moved clock backwards to %v", got)
	}

	if err := c.SleepUntil(context.Background(), epoch.Add(20*time.Millisecond)); err != nil {
		t.Fatalf("SleepUntil: %v", err)
	}
	if got := c.Now().Sub(epoch); got != 20*time.Millisecond {
		t.Errorf("after SleepUntil: %v, want 20ms", got)
	}

	// Past deadline: counted, no time change
	if err := c.SleepUntil(context.Background(), epoch); err != nil {
		t.Fatalf("SleepUntil past: %v", err)
	}
	if c.Sleeps() != 2 {
		t.Errorf("Sleeps() = %d, want 2", c.Sleeps())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.SleepUntil(ctx, epoch.Add(time.Hour)); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled SleepUntil = %v", err)
	}
	if c.Sleeps() != 2 {
		t.Errorf("canceled sleep was counted")
	}
}

func TestSystemClockSleepUntil(t *testing.T) {
	var c SystemClock

	t.Run("Past deadline returns immediately", func(t *testing.T) {
		start := time.Now()
		if err := c.SleepUntil(context.Background(), start.Add(-time.Second)); err != nil {
			t.Fatalf("SleepUntil: %v", err)
		}
		if time.Since(start) > 50*time.Millisecond {
			t.Error("past deadline blocked")
		}
	})

	t.Run("Waits for deadline", func(t *testing.T) {
		start := time.Now()
		if err := c.SleepUntil(context.Background(), start.Add(15*time.Millisecond)); err != nil {
			t.Fatalf("SleepUntil: %v", err)
		}
		if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
			t.Errorf("woke after %v, before deadline", elapsed)
		}
	})

	t.Run("Context cancel interrupts", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		start := time.Now()
		err := c.SleepUntil(ctx, start.Add(time.Minute))
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("SleepUntil = %v, want DeadlineExceeded", err)
		}
		if time.Since(start) > 5*time.Second {
			t.Error("cancel did not interrupt the wait")
		}
	})
}

func TestFadeInRealClock(t *testing.T) {
	p := filledPlane(3, 3, terminal.RGB{R: 4, G: 2}, terminal.RGBBlack)
	host := newMockHost(terminal.ColorModeTrueColor)

	start := time.Now()
	if err := FadeIn(context.Background(), host, p, 20*time.Millisecond); err != nil {
		t.Fatalf("FadeIn: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("finished after %v, before the duration", elapsed)
	}
	if n := host.Renders(); n < 1 || n > 4 {
		t.Errorf("renders = %d, want 1..4", n)
	}
	// Waking on deadlines paints every other iteration; the last one may be skipped
	if got := p.Channels(2, 2).Fg; got.R > 4 || got.G > 2 || got.B != 0 {
		t.Errorf("final fg = %+v exceeds original", got)
	}
}
