// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue

import (
	"time"
	"unsafe"
)

// ID is the opaque, stable identifier returned by [Queue.Post] and the
// [Queue.Call] family. The zero ID is never returned by a successful post
// and always denotes "invalid" — see §4.3 of the design.
type ID uint32

// Callback is the function invoked when an event dispatches. The argument
// is the event's payload pointer, exactly as returned by [Queue.Alloc], or
// the Payload field of a [UserEvent].
type Callback func(payload unsafe.Pointer)

// BackgroundUpdater is notified of the queue's next deadline so an
// external one-shot timer can drive [Queue.Dispatch] without polling.
//
// The queue calls update(timer, ms) under queuelock whenever the head of
// the ready queue changes while backgrounding is active. The implementation
// agrees to call Dispatch(q, 0) no later than ms milliseconds later.
// ms == -1 means "cancel any pending timer" (teardown, or no events left).
type BackgroundUpdater func(timer any, ms int)

// Clock supplies the queue's monotonically advancing tick source. Ticks
// are unsigned and wraparound is expected and handled correctly; see
// [tickDiff]. The default clock, used unless [WithClock] overrides it,
// derives ticks from [time.Since] an internal epoch, truncated to
// milliseconds and wrapped into 32 bits — a ~49.7 day wraparound period.
//
// Tests substitute a manually advanced [Clock] to exercise wraparound and
// periodic/delay scenarios without sleeping.
type Clock interface {
	// Tick returns the current tick value, in milliseconds, as observed
	// by the queue. Must be monotonically non-decreasing modulo 2^32.
	Tick() uint32
}

// clockFunc adapts a plain function to [Clock].
type clockFunc func() uint32

func (f clockFunc) Tick() uint32 { return f() }

// systemClock is the default [Clock]: wall-clock milliseconds since an
// internal epoch, truncated to a uint32.
type systemClock struct {
	epoch time.Time
}

func newSystemClock() *systemClock {
	return &systemClock{epoch: time.Now()}
}

func (c *systemClock) Tick() uint32 {
	return uint32(time.Since(c.epoch).Milliseconds())
}

// Logger receives structured lifecycle diagnostics from the queue: queue
// creation/destruction (Debugf) and recovered destructor/callback panics
// (Errorf). Background (de)registration and breaks are not logged. The
// zero value of [noopLogger]
// is used when no logger is configured.
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Errorf(string, ...any) {}
