// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue

// enqueue inserts e into the ready queue, sorted by target with
// wraparound-correct comparison. A same-deadline event is pushed at the
// head of its slot's sibling chain (newest first); dequeueReady reverses
// each chain to restore post order. Clamps e.target up to now (never past-due on
// arrival) and snapshots the current generation into e.generation (§4.4).
func (q *Queue) enqueue(e *event, now uint32) {
	e.target = now + uint32(tickDiffClamp(e.target, now))
	e.generation = q.generation

	q.queuelock.Lock()

	p := &q.queue
	for *p != nil && tickDiff((*p).target, e.target) < 0 {
		p = &(*p).next
	}

	if *p != nil && (*p).target == e.target {
		e.next = (*p).next
		if e.next != nil {
			e.next.ref = &e.next
		}
		e.sibling = *p
		e.sibling.next = nil
		e.sibling.ref = &e.sibling
	} else {
		e.next = *p
		if e.next != nil {
			e.next.ref = &e.next
		}
		e.sibling = nil
	}

	*p = e
	e.ref = p

	if q.backgroundUpdate != nil && q.backgroundActive.LoadAcquire() && q.queue == e && e.sibling == nil {
		q.backgroundUpdate(q.backgroundTimer, int(tickDiffClamp(e.target, now)))
	}

	q.queuelock.Unlock()
}

// unqueueByAddress clears e's callback and marks it one-shot so a racing
// dispatch observes it as canceled, then detaches e from its slot unless
// the dispatcher has already committed to dispatching it (§4.4's
// cancel-vs-dispatch race resolution). Reports whether e was detached.
func (q *Queue) unqueueByAddress(e *event) bool {
	q.queuelock.Lock()

	e.callback = nil
	e.period = -1

	diff := tickDiff(e.target, q.tick)
	if diff < 0 || (diff == 0 && e.generation != q.generation) {
		q.queuelock.Unlock()
		return false
	}

	if e.sibling != nil {
		e.sibling.next = e.next
		if e.sibling.next != nil {
			e.sibling.next.ref = &e.sibling.next
		}
		*e.ref = e.sibling
		e.sibling.ref = e.ref
	} else {
		*e.ref = e.next
		if e.next != nil {
			e.next.ref = e.ref
		}
	}

	q.queuelock.Unlock()
	return true
}

// unqueueByID decodes id, validates its local id under queuelock, then
// delegates to unqueueByAddress and increments the header's local id so
// the now-stale id can never be reused. These are three sequential,
// independent lock acquisitions — not one nested acquisition — per the
// literal reading of §4.4 adopted for this design (see DESIGN.md).
func (q *Queue) unqueueByID(id ID) *event {
	e, localID := q.decodeID(id)

	q.queuelock.Lock()
	if e.id != localID {
		q.queuelock.Unlock()
		return nil
	}
	q.queuelock.Unlock()

	if !q.unqueueByAddress(e) {
		return nil
	}

	q.queuelock.Lock()
	q.incID(e)
	q.queuelock.Unlock()

	return e
}

// dequeueReady detaches the entire prefix of slots due at or before
// target, advances the queue's notion of now to target (never backwards),
// bumps generation iff a slot was actually removed, and returns the
// detached events flattened into a single next-linked run in original
// post (FIFO) order.
func (q *Queue) dequeueReady(target uint32) *event {
	q.queuelock.Lock()

	if tickDiff(q.tick, target) <= 0 {
		q.tick = target
	}

	head := q.queue
	p := &head
	for *p != nil && tickDiff((*p).target, target) <= 0 {
		p = &(*p).next
	}

	q.queue = *p
	if q.queue != nil {
		q.queue.ref = &q.queue
	}
	*p = nil

	if head != nil {
		q.generation++
	}

	q.queuelock.Unlock()

	// Reverse and flatten each slot's sibling chain into a next-linked
	// run so the original post order is restored.
	tail := &head
	ess := head
	for ess != nil {
		es := ess
		ess = es.next

		var prev *event
		for e := es; e != nil; e = e.sibling {
			e.next = prev
			prev = e
		}

		*tail = prev
		tail = &es.next
	}

	return head
}
