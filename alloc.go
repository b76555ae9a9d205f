// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue

import "unsafe"

// memAlloc returns a chunk satisfying size (header included), by first
// attempting a freelist fit and falling back to carving fresh bytes off
// the slab. Runs under memlock (§4.2). Grounded in the bucketed
// free-list-over-a-byte-slab technique used by the cznic memory package's
// page/slab allocator (see DESIGN.md), adapted to this arena's single
// forward-only slab cursor.
func (q *Queue) memAlloc(payloadSize uintptr) *event {
	size := payloadSize + headerSize
	size = (size + ptrSize - 1) &^ (ptrSize - 1)

	q.memlock.Lock()
	defer q.memlock.Unlock()

	for p := &q.chunks; *p != nil; p = &(*p).next {
		if (*p).size >= size {
			e := *p
			if e.sibling != nil {
				*p = e.sibling
				(*p).next = e.next
			} else {
				*p = e.next
			}
			return e
		}
	}

	if q.slabRemaining >= size {
		e := (*event)(q.slabData)
		q.slabData = unsafe.Add(q.slabData, size)
		q.slabRemaining -= size
		e.size = size
		e.id = 1
		return e
	}

	return nil
}

// memDealloc returns e to the freelist, collapsing equal-size chunks into
// a sibling chain at the head of that size class (§4.2). Runs under
// memlock.
func (q *Queue) memDealloc(e *event) {
	q.memlock.Lock()
	defer q.memlock.Unlock()

	p := &q.chunks
	for *p != nil && (*p).size < e.size {
		p = &(*p).next
	}

	if *p != nil && (*p).size == e.size {
		e.sibling = *p
		e.next = (*p).next
	} else {
		e.sibling = nil
		e.next = *p
	}
	*p = e
}

// Alloc returns size bytes of zero-initialized-at-the-header payload,
// reusing a freed chunk of sufficient bucket size when available.
// Returns [ErrAllocFailure] if the slab is exhausted and no freelist
// chunk is large enough.
func (q *Queue) Alloc(size int) (unsafe.Pointer, error) {
	e := q.memAlloc(uintptr(size))
	if e == nil {
		return nil, ErrAllocFailure
	}
	e.target = 0
	e.period = -1
	e.callback = nil
	e.dtor = nil
	return eventPayload(e), nil
}

// Dealloc runs payload's destructor, if set, then returns its storage to
// the allocator's freelist. payload must have come from [Queue.Alloc] on
// this queue and must not already be posted (use [Queue.Cancel] first for
// posted queue-owned events).
func (q *Queue) Dealloc(payload unsafe.Pointer) {
	e := eventFromPayload(payload)
	q.runDtorSafe(e)
	if q.owns(e) {
		q.memDealloc(e)
	}
}
