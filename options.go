// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue

// options configures queue construction. Generalizes the teacher's
// producer/consumer Builder to this package's domain: everything here is
// ambient configuration (clock, logging) rather than algorithm selection,
// since the event-queue core has only one algorithm.
type options struct {
	clock  Clock
	logger Logger
}

// Option configures a [Queue] at construction time via [New]/[NewInPlace].
type Option func(*options)

// WithClock overrides the queue's tick source. Tests use this to drive
// delay/period/wraparound scenarios deterministically instead of sleeping.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger attaches a structured logger for dispatch-loop lifecycle
// diagnostics. The default is a no-op logger.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func resolveOptions(opts []Option) *options {
	cfg := &options{
		clock:  newSystemClock(),
		logger: noopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}
