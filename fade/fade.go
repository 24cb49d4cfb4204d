package fade

import (
	"context"
	"errors"
	"time"
)

// FadeIn raises every explicit color on s from black to its current value over duration
//
// On a host without RGB or palette support the plane is painted once as is
// and ErrUnsupportedColorMode is returned.
func FadeIn(ctx context.Context, host Host, s Surface, duration time.Duration, opts ...Option) error {
	o := newOptions(opts)
	d := newDriver(host, s, o)

	if !host.ColorMode().CanFade() {
		o.logger.Warn("fade-in degraded to a single paint", "color_mode", host.ColorMode().String())
		if err := d.paintOnce(); err != nil {
			return errors.Join(ErrUnsupportedColorMode, err)
		}
		return ErrUnsupportedColorMode
	}

	snap, err := capture(s, duration, o)
	if err != nil {
		return err
	}
	return d.run(ctx, snap, TowardOriginal)
}

// FadeOut lowers every explicit color on s from its current value to black over duration
func FadeOut(ctx context.Context, host Host, s Surface, duration time.Duration, opts ...Option) error {
	o := newOptions(opts)
	if !host.ColorMode().CanFade() {
		return ErrUnsupportedColorMode
	}

	snap, err := capture(s, duration, o)
	if err != nil {
		return err
	}
	return newDriver(host, s, o).run(ctx, snap, TowardZero)
}

// capture takes the snapshot and logs the derived schedule
func capture(s Surface, duration time.Duration, o *options) (*Snapshot, error) {
	snap, err := Capture(s, duration, o.clock)
	if err != nil {
		o.logger.Error("palette snapshot failed", "error", err)
		return nil, err
	}
	newMeter(o.stats).calibrated(snap)
	o.logger.Debug("palette captured",
		"rows", snap.Rows(),
		"cols", snap.Cols(),
		"max_steps", snap.MaxSteps(),
		"step", snap.StepDuration(),
		"max_fg", snap.MaxFg().Hex(),
		"max_bg", snap.MaxBg().Hex(),
	)
	return snap, nil
}
