package fade

import (
	"log/slog"

	"github.com/lixenwraith/planefade/status"
)

// Option configures an animation call
type Option func(*options)

type options struct {
	callback Callback
	clock    Clock
	logger   *slog.Logger
	stats    *status.Registry
}

func newOptions(opts []Option) *options {
	o := &options{
		clock:  SystemClock{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithCallback runs cb at the end of every tick instead of rendering and sleeping
func WithCallback(cb Callback) Option {
	return func(o *options) { o.callback = cb }
}

// WithClock replaces the system clock
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger for calibration and abort messages
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStats records tick telemetry into r
func WithStats(r *status.Registry) Option {
	return func(o *options) { o.stats = r }
}
