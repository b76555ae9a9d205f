// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue

import "unsafe"

// Post schedules payload (previously returned by [Queue.Alloc]) for
// dispatch, using the delay/period/destructor already set via
// [EventDelay]/[EventPeriod]/[EventDtor], and signals the dispatcher.
// Returns the event's stable [ID]; the zero ID is never returned by a
// successful post.
func (q *Queue) Post(payload unsafe.Pointer, cb Callback) ID {
	e := eventFromPayload(payload)
	tick := q.clock.Tick()
	e.callback = cb
	e.target = tick + e.target

	q.enqueue(e, tick)
	id := q.eventID(e)
	q.sema.signal()
	return id
}

// PostUserAllocated schedules a caller-owned [UserEvent] for dispatch.
// The event's id field becomes its in-progress/done state tag (§9); the
// caller is responsible for ue's storage for as long as it may be
// enqueued or dispatching.
func (q *Queue) PostUserAllocated(ue *UserEvent, cb Callback) {
	e := &ue.ev
	tick := q.clock.Tick()
	e.callback = cb
	e.target = tick + e.target
	e.id = userEventStateInProgress

	q.enqueue(e, tick)
	q.sema.signal()
}

// Cancel attempts to prevent id's event from dispatching. Returns nil iff
// the cancel succeeded, in which case the callback is guaranteed never to
// run. Returns [ErrStaleOrInFlight] if id is zero, stale, or its event's
// dispatch is already in flight or complete — this is a documented race
// outcome, not a failure (§5 "Cancellation semantics"). Cancel is
// idempotent: canceling an already-canceled id returns [ErrStaleOrInFlight].
func (q *Queue) Cancel(id ID) error {
	if id == 0 {
		return ErrStaleOrInFlight
	}
	e := q.unqueueByID(id)
	if e == nil {
		return ErrStaleOrInFlight
	}
	q.Dealloc(eventPayload(e))
	return nil
}

// CancelUserAllocated attempts to cancel a caller-owned event posted via
// [Queue.PostUserAllocated]. Returns nil iff the cancel succeeded.
// Returns [ErrStaleOrInFlight] if ue is nil, already done, or its dispatch
// is already in flight.
func (q *Queue) CancelUserAllocated(ue *UserEvent) error {
	if ue == nil || ue.ev.id == userEventStateDone {
		return ErrStaleOrInFlight
	}
	if !q.unqueueByAddress(&ue.ev) {
		return ErrStaleOrInFlight
	}
	q.runDtorSafe(&ue.ev)
	ue.ev.id = userEventStateDone
	return nil
}

// TimeLeft returns the milliseconds remaining until id's event dispatches,
// clamped to zero, or -1 if id is zero or stale.
func (q *Queue) TimeLeft(id ID) int {
	if id == 0 {
		return -1
	}
	e, localID := q.decodeID(id)

	q.queuelock.Lock()
	defer q.queuelock.Unlock()
	if e.id != localID {
		return -1
	}
	return int(tickDiffClamp(e.target, q.clock.Tick()))
}

// TimeLeftUserAllocated returns the milliseconds remaining until ue
// dispatches, clamped to zero, computed directly from ue without id
// decoding (§9 DESIGN NOTES). Returns -1 if ue is nil.
func (q *Queue) TimeLeftUserAllocated(ue *UserEvent) int {
	if ue == nil {
		return -1
	}
	q.queuelock.Lock()
	defer q.queuelock.Unlock()
	return int(tickDiffClamp(ue.ev.target, q.clock.Tick()))
}
