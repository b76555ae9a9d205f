// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue

import "unsafe"

// Call, CallIn, and CallEvery are the thin callback-binding wrappers
// spec.md's PURPOSE & SCOPE names as out-of-core collaborators, supplied
// here (per SPEC_FULL.md §4.9) because the TESTABLE PROPERTIES scenarios
// are written entirely in their terms. Each reserves a minimally sized
// event purely to participate in the allocator/ready-queue lifecycle and
// id accounting; fn and arg travel to the dispatcher as an ordinary Go
// closure rather than a C function-pointer-plus-data-word pair, since Go
// closures make the data word unnecessary.

// Call immediately posts fn(arg) to the queue's dispatch loop. Returns
// the post's [ID], or 0 with an error if the allocator is exhausted.
func (q *Queue) Call(fn func(arg any), arg any) (ID, error) {
	payload, err := q.Alloc(0)
	if err != nil {
		return 0, err
	}
	return q.Post(payload, callbackOf(fn, arg)), nil
}

// CallIn posts fn(arg) to run after ms milliseconds.
func (q *Queue) CallIn(ms int, fn func(arg any), arg any) (ID, error) {
	payload, err := q.Alloc(0)
	if err != nil {
		return 0, err
	}
	EventDelay(payload, ms)
	return q.Post(payload, callbackOf(fn, arg)), nil
}

// CallEvery posts fn(arg) to run every ms milliseconds, starting ms
// milliseconds from now.
func (q *Queue) CallEvery(ms int, fn func(arg any), arg any) (ID, error) {
	payload, err := q.Alloc(0)
	if err != nil {
		return 0, err
	}
	EventDelay(payload, ms)
	EventPeriod(payload, ms)
	return q.Post(payload, callbackOf(fn, arg)), nil
}

func callbackOf(fn func(arg any), arg any) Callback {
	return func(unsafe.Pointer) { fn(arg) }
}
