// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue

// chainContext holds the state a chained queue needs to drive itself
// through its target's dispatch loop: the target queue and the id of the
// currently pending call_in posted on it, if any.
//
// Departure from the C original (recorded in DESIGN.md): the platform
// source carves this context out of the slab allocator, because in C any
// memory, including one holding pointers, is opaque bytes. In Go, a byte
// arena ([]byte) carries no type information for the garbage collector,
// so storing a live *Queue pointer inside it would hide that pointer from
// the collector. chainContext is therefore an ordinary Go-allocated
// struct referenced by a Queue field — "allocate on q, free on q" is
// preserved (q.chainCtx is part of q, and clearing the field is q's own
// "free"), but it is Go's garbage collector doing the bookkeeping rather
// than q's slab.
type chainContext struct {
	target    *Queue
	pendingID ID
}

// Chain registers q to be driven by target's dispatch loop: it installs a
// background updater on q which, each time it fires, cancels q's previously pending
// call_in on target (if any) and, unless told "cancel" (ms < 0), posts a
// new call_in on target that invokes q.Dispatch(0) when it fires.
// Passing target == nil unregisters chaining.
func (q *Queue) Chain(target *Queue) error {
	if target == nil {
		q.chainCtx = nil
		q.Background(nil, nil)
		return nil
	}

	ctx := &chainContext{target: target}
	q.chainCtx = ctx

	q.Background(func(_ any, ms int) {
		if ctx.pendingID != 0 {
			_ = ctx.target.Cancel(ctx.pendingID)
			ctx.pendingID = 0
		}
		if ms < 0 {
			return
		}
		id, err := ctx.target.CallIn(ms, func(any) {
			q.Dispatch(0)
		}, nil)
		if err == nil {
			ctx.pendingID = id
		}
	}, ctx)

	return nil
}
