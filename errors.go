// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrAllocFailure indicates the slab allocator has no chunk large enough
// to satisfy the request and the slab itself has no remaining bytes.
//
// ErrAllocFailure is a control flow signal, not a hard failure: the caller
// may free other events and retry, or grow the arena on the next [New]
// call. [IsWouldBlock] reports true for it, matching the ecosystem's
// convention that "would need to wait/retry" conditions classify as
// ErrWouldBlock-like rather than as unrecoverable errors.
var ErrAllocFailure = errors.New("equeue: allocation failed")

// ErrPlatformInit is returned by [New] and [NewInPlace] when the buffer
// leaves no usable bytes after pointer alignment; no queue is returned
// with it. The semaphore and locks themselves cannot fail to initialize.
var ErrPlatformInit = errors.New("equeue: platform initialization failed")

// ErrStaleOrInFlight indicates a cancel was attempted against an id that
// is unknown, already stale, or whose event the dispatcher has already
// committed to invoking. This is not a failure; it is one of the two
// possible outcomes of a cancel/dispatch race documented in §4.5.
var ErrStaleOrInFlight = errors.New("equeue: id stale or event in flight")

// IsWouldBlock reports whether err indicates the operation would block or
// should be retried, mirroring the ecosystem's [iox.IsWouldBlock]. It
// returns true for [ErrAllocFailure] in addition to [iox.ErrWouldBlock].
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err) || errors.Is(err, ErrAllocFailure)
}

// IsSemantic reports whether err is a control flow signal rather than a
// bug, delegating to [iox.IsSemantic] and additionally covering
// [ErrStaleOrInFlight], which is a documented race outcome.
func IsSemantic(err error) bool {
	return iox.IsSemantic(err) || errors.Is(err, ErrStaleOrInFlight)
}

// IsNonFailure reports whether err represents a non-failure condition:
// nil, [ErrAllocFailure], or [ErrStaleOrInFlight].
func IsNonFailure(err error) bool {
	if err == nil {
		return true
	}
	return IsWouldBlock(err) || IsSemantic(err)
}
