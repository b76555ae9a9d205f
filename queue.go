// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue

import (
	"unsafe"

	"code.hybscloud.com/atomix"
)

// Queue is a flexible, embedded-friendly event queue: a fixed-arena,
// size-bucketed allocator feeding a time-ordered ready queue, dispatched
// by [Queue.Dispatch]. Every exported method is safe to call concurrently
// with a running dispatcher and with other callers, per §5.
type Queue struct {
	buf     []byte         // the arena (owned or caller-provided)
	bufBase unsafe.Pointer // pointer-aligned start of the usable arena
	bufSize uintptr        // usable arena size, pointer-aligned
	owned   bool           // true if this Queue allocated buf itself
	shift   uint           // npw2: bit-length of bufSize
	offMask uint32         // mask selecting the offset bits of a packed id

	memlock       spinlock
	chunks        *event // freelist head, ordered by ascending bucket size
	slabData      unsafe.Pointer
	slabRemaining uintptr

	queuelock  spinlock
	queue      *event // ready queue head, sorted by target
	generation uint64
	tick       uint32

	breakRequested   atomix.Bool
	backgroundActive atomix.Bool
	backgroundUpdate BackgroundUpdater
	backgroundTimer  any

	chainCtx *chainContext // non-nil iff this queue chains into another

	sema   *semaphore
	clock  Clock
	logger Logger
}

// New creates a queue with a heap-allocated arena of the given size.
// Returns [ErrPlatformInit] if size is too small to hold even a single
// pointer-aligned byte.
func New(size int, opts ...Option) (*Queue, error) {
	return newQueue(make([]byte, size), true, opts...)
}

// NewInPlace creates a queue around a caller-provided, preallocated
// buffer. The buffer is aligned up to pointer size; residual leading
// bytes are ignored, matching the platform's `equeue_create_inplace`
// buffer-alignment contract.
func NewInPlace(buf []byte, opts ...Option) (*Queue, error) {
	return newQueue(buf, false, opts...)
}

func alignUp(p unsafe.Pointer, align uintptr) unsafe.Pointer {
	return unsafe.Pointer((uintptr(p) + align - 1) &^ (align - 1))
}

func newQueue(buf []byte, owned bool, opts ...Option) (*Queue, error) {
	if len(buf) == 0 {
		return nil, ErrPlatformInit
	}

	cfg := resolveOptions(opts)

	size := uintptr(len(buf))
	raw := unsafe.Pointer(&buf[0])
	var base unsafe.Pointer
	if size >= ptrSize {
		base = alignUp(raw, ptrSize)
		skip := uintptr(base) - uintptr(raw)
		size -= skip
		size &^= ptrSize - 1
	} else {
		// Don't align when size is less than pointer size (e.g. a
		// minimal static queue used only for its allocator-free paths).
		base = raw
	}
	if size == 0 {
		return nil, ErrPlatformInit
	}

	q := &Queue{
		buf:           buf,
		bufBase:       base,
		bufSize:       size,
		owned:         owned,
		shift:         npw2(size),
		slabData:      base,
		slabRemaining: size,
		sema:          newSemaphore(),
		clock:         cfg.clock,
		logger:        cfg.logger,
	}
	q.offMask = offsetMask(q.shift)
	q.tick = q.clock.Tick()
	q.logger.Debugf("equeue: created queue size=%d owned=%v", size, owned)
	return q, nil
}

// owns reports whether header h was carved out of q's own arena (a
// queue-owned event) as opposed to being caller-allocated storage — an
// address-range test, not a type tag, per §6. §6 bounds this by the slab
// cursor (the arena bytes actually carved so far); this checks against
// the full static arena instead, since slabData mutates under memlock
// and owns is called without it. The wider bound is equivalent in
// practice: unlike the cursor, h is always either nil, caller-provided
// storage, or a pointer this allocator itself handed out, so it can
// never land in the arena's not-yet-carved tail.
func (q *Queue) owns(h *event) bool {
	p := uintptr(unsafe.Pointer(h))
	base := uintptr(q.bufBase)
	return p >= base && p < base+q.bufSize
}

// Destroy runs every pending event's destructor exactly once (including
// slot heads, per the §9 DESIGN NOTES subtlety that a slot is "an event
// with zero or more siblings"), notifies any background updater with -1,
// and releases the owned buffer. No callback is invoked. The queue must
// not be used after Destroy returns.
func (q *Queue) Destroy() {
	for slot := q.queue; slot != nil; slot = slot.next {
		for sib := slot.sibling; sib != nil; sib = sib.sibling {
			q.runDtorSafe(sib)
		}
		q.runDtorSafe(slot)
	}

	if q.backgroundUpdate != nil {
		q.backgroundUpdate(q.backgroundTimer, -1)
	}

	q.buf = nil
	q.bufBase = nil
	q.queue = nil
	q.chunks = nil
	q.sema.signal()
	q.logger.Debugf("equeue: destroyed queue")
}

// Break causes the nearest call to [Queue.Dispatch] — whether already
// waiting or about to enter a wait — to return. At most one pending
// break is honored (break is edge-triggered, idempotent); repeated calls
// before the next Dispatch observes it have no additional effect.
func (q *Queue) Break() {
	q.queuelock.Lock()
	q.breakRequested.StoreRelease(true)
	q.queuelock.Unlock()
	q.sema.signal()
}
