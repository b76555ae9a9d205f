// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue

import "unsafe"

// event is the fixed-layout header prefixing every payload in the arena.
// Fields are exactly those enumerated in §3 of the design.
//
// callback and dtor are themselves Go closures living inside the raw
// []byte arena: keep a
// reference to anything a callback or destructor must outlive reachable
// from outside the closure too — the arena's own bytes are kept alive by
// q.buf regardless, but the Go runtime does not scan byte slices for
// pointers, so a captured value reachable *only* through one of these
// fields is not a safe assumption to make.
type event struct {
	size       uintptr   // allocation bucket size (header + padded payload)
	id         uint32    // per-slot rolling counter, never 0 for queue-owned events; a UserEvent's state tag (0 = not enqueued)
	generation uint64    // snapshot of queue generation at enqueue time
	target     uint32    // absolute tick at which dispatch is due
	period     int32     // repeat interval in ticks; negative = one-shot
	callback   Callback  // cleared to mark an event canceled
	dtor       Callback  // destructor run before return to the allocator
	next       *event    // next deadline slot (strictly greater target)
	sibling    *event    // next event within the same deadline slot
	ref        **event   // back-pointer to the slot holding this event's address
}

const headerSize = unsafe.Sizeof(event{})
const ptrSize = unsafe.Sizeof(uintptr(0))

// EventSizeMin is the bucket size of a header plus a function+data pair
// of pointers. The [Queue.Call] family does not allocate this size: its
// closure lives in the header, so it allocates a zero-byte payload.
const EventSizeMin = headerSize + 2*ptrSize

// eventPayload returns the payload pointer for a queue-owned event: the
// header plus one header width, satisfying invariant 6 (§3) by real
// pointer arithmetic.
func eventPayload(e *event) unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(e), headerSize)
}

// eventFromPayload recovers a queue-owned event's header by subtracting
// one header width from its payload pointer.
func eventFromPayload(p unsafe.Pointer) *event {
	return (*event)(unsafe.Add(p, -int(headerSize)))
}

// UserEvent is a caller-owned event: its storage is the caller's
// responsibility, never the slab allocator's. Posting it via
// [Queue.PostUserAllocated] uses its Payload pointer directly rather than
// requiring the payload to be physically contiguous with the header — the
// departure from the C flexible-array-member layout recorded in
// SPEC_FULL.md's DATA MODEL section, since Go gives no ABI guarantee that
// an arbitrary caller pointer is addressable by subtracting a header width.
//
// A UserEvent's id doubles as its state tag: nonzero means "enqueued",
// zero means "completed or canceled" (§9 DESIGN NOTES).
type UserEvent struct {
	ev      event
	Payload unsafe.Pointer
}

const (
	userEventStateDone       uint32 = 0
	userEventStateInProgress uint32 = 1
)

// NewUserEvent returns a zeroed, one-shot [UserEvent] ready for [EventDelay]/
// [EventPeriod]/[EventDtor]-style configuration via its Set*
// methods and posting via [Queue.PostUserAllocated]. Storage for a
// UserEvent is always the caller's; the queue never allocates or frees it.
func NewUserEvent() *UserEvent {
	return &UserEvent{ev: event{period: -1}}
}

// EventDelay sets a millisecond delay before dispatching a queue-owned
// event previously returned by [Queue.Alloc]. Must be called before
// [Queue.Post].
func EventDelay(payload unsafe.Pointer, ms int) {
	eventFromPayload(payload).target = uint32(int32(ms))
}

// EventPeriod sets a millisecond repeat period for a queue-owned event.
// A negative value (the default) marks the event one-shot.
func EventPeriod(payload unsafe.Pointer, ms int) {
	eventFromPayload(payload).period = int32(ms)
}

// EventDtor sets the destructor run once, before the header returns to
// the allocator or a user-allocated event is marked done.
func EventDtor(payload unsafe.Pointer, dtor Callback) {
	eventFromPayload(payload).dtor = dtor
}

// SetDelay sets a millisecond delay before dispatching e. Must be called
// before [Queue.PostUserAllocated].
func (e *UserEvent) SetDelay(ms int) { e.ev.target = uint32(int32(ms)) }

// SetPeriod sets a millisecond repeat period for e. A negative value (the
// default set by [NewUserEvent]) marks e one-shot.
func (e *UserEvent) SetPeriod(ms int) { e.ev.period = int32(ms) }

// SetDtor sets the destructor run once, when e is dequeued for the last
// time (canceled or naturally completed, non-periodic).
func (e *UserEvent) SetDtor(dtor Callback) { e.ev.dtor = dtor }

// Done reports whether e has completed or been canceled — the caller may
// now reuse or free e's storage.
func (e *UserEvent) Done() bool { return e.ev.id == userEventStateDone }
