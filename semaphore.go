// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue

import "time"

// semaphore is the dispatcher's timed signaling primitive (§5, §6
// "sema_create/destroy/wait(ms)/signal"). It is realized as a capacity-1
// channel: Post, Break, and Destroy all signal it; Dispatch waits on it
// with a timeout derived from the next deadline.
//
// This is the one component of the design with no direct analogue in the
// teacher's lock-free-queue domain (see DESIGN.md): the teacher's queues
// never block a goroutine, while a dispatch loop fundamentally must sleep
// until the next deadline or the next post. A buffered channel plus
// [time.Timer] is the idiomatic Go substitute for a platform binary
// semaphore with timed wait.
type semaphore struct {
	ch chan struct{}
}

func newSemaphore() *semaphore {
	return &semaphore{ch: make(chan struct{}, 1)}
}

// signal wakes one pending (or the next) wait. Signaling is coalesced:
// multiple signals before a wait still only wake it once, matching a
// binary (not counting) semaphore.
func (s *semaphore) signal() {
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// wait blocks until signaled, until ms milliseconds elapse, or returns
// immediately if ms == 0. ms < 0 waits forever.
func (s *semaphore) wait(ms int32) {
	switch {
	case ms == 0:
		select {
		case <-s.ch:
		default:
		}
		return
	case ms < 0:
		<-s.ch
		return
	}

	t := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer t.Stop()
	select {
	case <-s.ch:
	case <-t.C:
	}
}
