package fade

import (
	"context"
	"fmt"
	"time"
)

// driver is the single stepped interpolation loop shared by every effect
type driver struct {
	host    Host
	surface Surface
	opts    *options
	meter   *meter
}

func newDriver(host Host, s Surface, o *options) *driver {
	return &driver{
		host:    host,
		surface: s,
		opts:    o,
		meter:   newMeter(o.stats),
	}
}

// run drives one fade to completion against snap
// Returns nil once the clock passes the last iteration; the first failure otherwise
// A failed tick keeps the colors it already wrote
func (d *driver) run(ctx context.Context, snap *Snapshot, dir Direction) error {
	d.meter.run(dir)
	previous := 0

	for {
		if err := ctx.Err(); err != nil {
			return d.abort(fmt.Errorf("%w: %w", ErrCanceled, err), dir, previous)
		}

		now := d.opts.clock.Now()
		iteration := snap.IterationAt(now)
		if iteration > snap.MaxSteps() {
			d.meter.finished(now.Sub(snap.Start()))
			return nil
		}

		snap.Apply(d.surface, dir, iteration)
		d.meter.tick(iteration, previous)
		previous = iteration

		if err := d.yield(ctx, snap.Deadline(iteration)); err != nil {
			return d.abort(err, dir, iteration)
		}
	}
}

// yield hands control to the callback, or renders and sleeps until deadline
func (d *driver) yield(ctx context.Context, deadline time.Time) error {
	if d.opts.callback != nil {
		return d.opts.callback(d.host, d.surface, deadline)
	}

	if err := d.host.Render(); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	if err := d.opts.clock.SleepUntil(ctx, deadline); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrCanceled, ctxErr)
		}
		return fmt.Errorf("%w: %w", ErrWait, err)
	}
	return nil
}

func (d *driver) abort(err error, dir Direction, iteration int) error {
	d.meter.abort(err)
	d.opts.logger.Warn("fade aborted",
		"direction", dir.String(),
		"iteration", iteration,
		"error", err,
	)
	return err
}

// paintOnce is the degraded path for hosts that cannot fade: one frame, stamped with now
func (d *driver) paintOnce() error {
	if d.opts.callback != nil {
		return d.opts.callback(d.host, d.surface, d.opts.clock.Now())
	}
	return d.host.Render()
}
