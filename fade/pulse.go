package fade

import (
	"context"
	"time"
)

// Pulse fades s in and out repeatedly, each phase lasting duration
//
// Colors are captured once: every cycle swings between black and the colors
// present when Pulse was called. Each phase restarts its own timing. Pulse only
// returns on failure: a callback error, a render or wait error, or a cancelled ctx.
func Pulse(ctx context.Context, host Host, s Surface, duration time.Duration, opts ...Option) error {
	o := newOptions(opts)
	if !host.ColorMode().CanFade() {
		return ErrUnsupportedColorMode
	}

	snap, err := capture(s, duration, o)
	if err != nil {
		return err
	}

	d := newDriver(host, s, o)
	phase := snap
	for {
		if err := d.run(ctx, phase, TowardOriginal); err != nil {
			return err
		}
		if err := d.run(ctx, snap.restarted(o.clock.Now()), TowardZero); err != nil {
			return err
		}
		d.meter.cycle()
		phase = snap.restarted(o.clock.Now())
	}
}
