// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue

import "unsafe"

// npw2 is the bit-length of the buffer size, sufficient to encode any
// offset within it.
func npw2(size uintptr) uint {
	var n uint
	for s := size; s != 0; s >>= 1 {
		n++
	}
	return n
}

// offsetMask returns the mask selecting the offset bits of a packed id.
func offsetMask(shift uint) uint32 {
	return uint32(1)<<shift - 1
}

// incID increments e's local id, wrapping to 1 (never 0) when the shifted
// value overflows, so the "nonzero ⇒ valid" contract always holds (§4.3).
func (q *Queue) incID(e *event) {
	e.id++
	if e.id<<q.shift == 0 {
		e.id = 1
	}
}

// eventID packs e's local id with its offset within q's buffer into the
// opaque public identifier.
func (q *Queue) eventID(e *event) ID {
	off := uint32(uintptr(unsafe.Pointer(e)) - uintptr(q.bufBase))
	return ID(e.id<<q.shift | off)
}

// decodeID recovers the candidate event header addressed by id within q's
// buffer. The caller must still compare the header's current id against
// the decoded local id under queuelock to detect staleness.
func (q *Queue) decodeID(id ID) (*event, uint32) {
	off := uint32(id) & q.offMask
	localID := uint32(id) >> q.shift
	return (*event)(unsafe.Add(q.bufBase, off)), localID
}
