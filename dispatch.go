// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue

import "unsafe"

// Dispatch drains and invokes ready events, waiting between rounds for
// the next deadline or the next post, for up to ms milliseconds. ms < 0
// dispatches indefinitely, returning only on [Queue.Break]. ms == 0 is
// non-blocking: it drains everything ready now and returns immediately,
// even if the queue is non-empty (§8 boundary behavior).
//
// Periodic events are rescheduled on their own grid (target += period,
// never now+period) so backlog does not cause period drift. One-shot
// queue-owned events are freed; one-shot user-allocated events are marked
// done. Destructors never run while queuelock is held.
func (q *Queue) Dispatch(ms int) {
	tick := q.clock.Tick()
	var timeout uint32
	if ms >= 0 {
		timeout = tick + uint32(ms)
	}
	q.backgroundActive.StoreRelease(false)

	for {
		es := q.dequeueReady(tick)

		for es != nil {
			e := es
			es = e.next

			cb := e.callback
			if cb != nil {
				q.invoke(cb, q.payloadOf(e))
			}

			if e.period >= 0 {
				e.target += uint32(e.period)
				q.enqueue(e, q.clock.Tick())
			} else {
				q.dispatchFree(e)
			}
		}

		var deadline int32 = -1
		tick = q.clock.Tick()

		if ms >= 0 {
			deadline = tickDiff(timeout, tick)
			if deadline <= 0 {
				q.queuelock.Lock()
				if q.backgroundUpdate != nil && q.queue != nil {
					q.backgroundUpdate(q.backgroundTimer, int(tickDiffClamp(q.queue.target, tick)))
				}
				q.backgroundActive.StoreRelease(true)
				q.queuelock.Unlock()
				q.breakRequested.StoreRelease(false)
				return
			}
		}

		q.queuelock.Lock()
		if q.queue != nil {
			diff := tickDiffClamp(q.queue.target, tick)
			if uint32(diff) < uint32(deadline) {
				deadline = diff
			}
		}
		q.queuelock.Unlock()

		q.sema.wait(deadline)

		if q.breakRequested.LoadAcquire() {
			q.queuelock.Lock()
			if q.breakRequested.LoadAcquire() {
				q.breakRequested.StoreRelease(false)
				q.queuelock.Unlock()
				return
			}
			q.queuelock.Unlock()
		}

		tick = q.clock.Tick()
	}
}

// dispatchFree completes a non-periodic event's lifecycle after
// dispatch: queue-owned events have their local id incremented (so a
// losing cancel race can never reuse the id) and their header returned
// to the allocator; user-allocated events are simply marked done. In
// both cases the destructor, if any, runs exactly once, outside any lock.
func (q *Queue) dispatchFree(e *event) {
	if q.owns(e) {
		q.incID(e)
		q.runDtorSafe(e)
		q.memDealloc(e)
	} else {
		q.runDtorSafe(e)
		e.id = userEventStateDone
	}
}

func (q *Queue) invoke(cb Callback, payload unsafe.Pointer) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.Errorf("equeue: callback panic: %v", r)
		}
	}()
	cb(payload)
}

func (q *Queue) runDtorSafe(e *event) {
	if e.dtor == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			q.logger.Errorf("equeue: destructor panic: %v", r)
		}
	}()
	e.dtor(q.payloadOf(e))
}

// payloadOf returns the pointer handed to e's callback and destructor:
// the bytes after the header for a queue-owned event, or the Payload
// field of a caller-owned [UserEvent].
func (q *Queue) payloadOf(e *event) unsafe.Pointer {
	if q.owns(e) {
		return eventPayload(e)
	}
	return (*UserEvent)(unsafe.Pointer(e)).Payload
}
