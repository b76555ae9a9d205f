// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package equeue provides a flexible, embedded-friendly event queue: a
// fixed-arena allocator feeding a tick-ordered dispatch loop, safe to post
// to and cancel from any goroutine while another goroutine dispatches.
//
// # Quick Start
//
//	q, err := equeue.New(2048)
//	if err != nil {
//	    // arena too small to hold even one pointer-aligned byte
//	}
//	defer q.Destroy()
//
//	id, err := q.CallIn(50, func(arg any) {
//	    fmt.Println("fired:", arg)
//	}, "hello")
//
//	go q.Dispatch(-1) // run until Break
//	// ...
//	q.Break()
//
// # Basic Usage
//
// The allocator and the Call family cover most uses. Call/CallIn/CallEvery
// bind a Go closure to the dispatch loop directly:
//
//	q.Call(fn, arg)                    // dispatch fn(arg) as soon as possible
//	id, _ := q.CallIn(100, fn, arg)    // after 100ms
//	id, _ := q.CallEvery(100, fn, arg) // every 100ms, starting in 100ms
//
//	q.Cancel(id) // best-effort; returns ErrStaleOrInFlight if too late
//
// For payloads with their own layout, allocate directly and set the
// callback on Post:
//
//	payload, err := q.Alloc(int(unsafe.Sizeof(myEvent{})))
//	ev := (*myEvent)(payload)
//	ev.Field = 42
//	equeue.EventDelay(payload, 20)
//	id := q.Post(payload, func(p unsafe.Pointer) {
//	    ev := (*myEvent)(p)
//	    handle(ev)
//	})
//
// # Caller-Owned Events
//
// [UserEvent] avoids the allocator entirely — its storage is whatever the
// caller gives it, stack or heap, reused across many posts:
//
//	ue := equeue.NewUserEvent()
//	ue.SetPeriod(10)
//	q.PostUserAllocated(ue, callback)
//	// ...
//	if !ue.Done() {
//	    q.CancelUserAllocated(ue)
//	}
//
// # Dispatch
//
// Dispatch(ms) runs ready events and returns once ms milliseconds have
// elapsed since it was called; ms == -1 runs forever (until [Queue.Break]), ms == 0 drains
// whatever is ready right now without waiting. It is ordinarily the body
// of a dedicated goroutine:
//
//	go q.Dispatch(-1)
//
// # Backgrounding
//
// [Queue.Background] lets an event-driven host (an existing timer wheel, a
// platform one-shot timer) drive Dispatch without a dedicated goroutine
// polling it — the queue calls back into the host with "arm a timer for
// ms milliseconds" each time the head of the ready queue changes:
//
//	q.Background(func(timer any, ms int) {
//	    if ms < 0 {
//	        hostTimer.Stop()
//	        return
//	    }
//	    hostTimer.Reset(time.Duration(ms) * time.Millisecond)
//	}, hostTimer)
//
// [Queue.Chain] composes two queues this way automatically, so posting to
// a leaf queue wakes a single root dispatcher:
//
//	leaf.Chain(root)
//	go root.Dispatch(-1)
//
// # Concurrency
//
// Every exported [Queue] method is safe to call from any goroutine,
// concurrently with a running Dispatch and with each other. Two internal
// spinlocks (allocator state, ready-queue state) stand in for the
// platform's IRQ-disabling critical sections; see the cancel-versus-dispatch
// race documented on [Queue.Cancel].
//
// # Race Detection
//
// Unlike this module's sibling lock-free queues, equeue's critical
// sections are ordinary mutual exclusion (a CAS-guarded spinlock), not
// lock-free algorithms verified by memory-ordering reasoning alone.
// No source file is excluded via //go:build !race; only the concurrent
// stress tests skip under -race, guarded by [RaceEnabled], since the race
// detector does not always treat the spinlock's CAS as a synchronizing
// edge and they drive the spinlock hard enough to trip false positives.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit memory
// ordering, and [code.hybscloud.com/spin] for the spinlock's CPU pause
// backoff.
package equeue
