// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue_test

import (
	"errors"
	"testing"
	"unsafe"

	"code.hybscloud.com/equeue"
)

// TestUserAllocatedLifecycle exercises the full caller-owned-event
// lifecycle: Done() false while enqueued, true once dispatched, and the
// destructor runs exactly once.
func TestUserAllocatedLifecycle(t *testing.T) {
	clock := newManualClock(0)
	q, err := equeue.New(2048, equeue.WithClock(clock))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer q.Destroy()

	var payload int
	ue := equeue.NewUserEvent()
	ue.Payload = unsafe.Pointer(&payload)
	ue.SetDelay(10)

	var dtorRan, cbRan bool
	ue.SetDtor(func(p unsafe.Pointer) { dtorRan = true })

	if ue.Done() {
		t.Fatalf("Done() = true before post")
	}

	q.PostUserAllocated(ue, func(p unsafe.Pointer) {
		cbRan = true
		if (*int)(p) != &payload {
			t.Fatalf("callback payload pointer mismatch")
		}
	})

	if ue.Done() {
		t.Fatalf("Done() = true while still pending")
	}

	clock.Advance(10)
	q.Dispatch(0)

	if !cbRan {
		t.Fatalf("callback never ran")
	}
	if !dtorRan {
		t.Fatalf("destructor never ran")
	}
	if !ue.Done() {
		t.Fatalf("Done() = false after dispatch")
	}
}

// TestCancelUserAllocated verifies cancellation prevents dispatch and
// marks the event done, running its destructor exactly once.
func TestCancelUserAllocated(t *testing.T) {
	clock := newManualClock(0)
	q, err := equeue.New(2048, equeue.WithClock(clock))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer q.Destroy()

	ue := equeue.NewUserEvent()
	ue.SetDelay(10)

	var dtorCount int
	ue.SetDtor(func(unsafe.Pointer) { dtorCount++ })

	var cbRan bool
	q.PostUserAllocated(ue, func(unsafe.Pointer) { cbRan = true })

	if err := q.CancelUserAllocated(ue); err != nil {
		t.Fatalf("CancelUserAllocated: got %v, want success", err)
	}
	if !ue.Done() {
		t.Fatalf("Done() = false after cancel")
	}
	if dtorCount != 1 {
		t.Fatalf("dtorCount = %d, want 1", dtorCount)
	}

	clock.Advance(10)
	q.Dispatch(0)

	if cbRan {
		t.Fatalf("callback ran after cancel")
	}
	if dtorCount != 1 {
		t.Fatalf("dtorCount = %d after dispatch, want 1 (no double-run)", dtorCount)
	}
}

// TestCancelUserAllocatedAlreadyDone verifies CancelUserAllocated rejects
// a nil event and an already-done event (§9: id doubles as state tag).
func TestCancelUserAllocatedAlreadyDone(t *testing.T) {
	q, err := equeue.New(2048)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer q.Destroy()

	if err := q.CancelUserAllocated(nil); !errors.Is(err, equeue.ErrStaleOrInFlight) {
		t.Fatalf("CancelUserAllocated(nil): got %v, want ErrStaleOrInFlight", err)
	}

	ue := equeue.NewUserEvent()
	q.PostUserAllocated(ue, func(unsafe.Pointer) {})
	q.Dispatch(0)

	if !ue.Done() {
		t.Fatalf("event not done after immediate dispatch")
	}
	if err := q.CancelUserAllocated(ue); !errors.Is(err, equeue.ErrStaleOrInFlight) {
		t.Fatalf("CancelUserAllocated(done): got %v, want ErrStaleOrInFlight", err)
	}
}

// TestTimeLeftUserAllocatedWithoutIDDecoding verifies TimeLeftUserAllocated
// computes its answer directly from the event rather than id decoding,
// and that it reports -1 for a nil event.
func TestTimeLeftUserAllocatedWithoutIDDecoding(t *testing.T) {
	clock := newManualClock(0)
	q, err := equeue.New(2048, equeue.WithClock(clock))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer q.Destroy()

	if got := q.TimeLeftUserAllocated(nil); got != -1 {
		t.Fatalf("TimeLeftUserAllocated(nil) = %d, want -1", got)
	}

	ue := equeue.NewUserEvent()
	ue.SetDelay(40)
	q.PostUserAllocated(ue, func(unsafe.Pointer) {})

	if got := q.TimeLeftUserAllocated(ue); got != 40 {
		t.Fatalf("TimeLeftUserAllocated = %d, want 40", got)
	}

	clock.Advance(25)
	if got := q.TimeLeftUserAllocated(ue); got != 15 {
		t.Fatalf("TimeLeftUserAllocated after +25 = %d, want 15", got)
	}
}

// TestUserAllocatedPeriodic verifies a caller-owned event can repeat just
// like a queue-owned one.
func TestUserAllocatedPeriodic(t *testing.T) {
	clock := newManualClock(0)
	q, err := equeue.New(2048, equeue.WithClock(clock))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer q.Destroy()

	ue := equeue.NewUserEvent()
	ue.SetDelay(10)
	ue.SetPeriod(10)

	var n int
	q.PostUserAllocated(ue, func(unsafe.Pointer) { n++ })

	for range 5 {
		clock.Advance(10)
		q.Dispatch(0)
	}

	if n != 5 {
		t.Fatalf("n = %d, want 5", n)
	}
	if ue.Done() {
		t.Fatalf("periodic event reported Done() while still repeating")
	}
}
