// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue

// Background registers an external one-shot timer to drive this queue's
// dispatch loop without polling (§4.6). The queue calls
// update(timer, ms) under queuelock:
//   - immediately, if the queue is already non-empty, with the time to
//     the current head;
//   - whenever a new head is installed by [Queue.Post] while
//     backgrounding is active;
//   - at the tail of a bounded [Queue.Dispatch] call, with the new
//     head's relative deadline.
//
// update is called with ms == -1 exactly once whenever a previously
// registered updater is replaced (including by Background(nil, nil)) and
// once more during [Queue.Destroy], to let the external timer release its
// resources. Passing update == nil disables backgrounding.
func (q *Queue) Background(update BackgroundUpdater, timer any) {
	q.queuelock.Lock()

	if q.backgroundUpdate != nil {
		q.backgroundUpdate(q.backgroundTimer, -1)
	}

	q.backgroundUpdate = update
	q.backgroundTimer = timer

	if q.backgroundUpdate != nil && q.queue != nil {
		q.backgroundUpdate(q.backgroundTimer, int(tickDiffClamp(q.queue.target, q.clock.Tick())))
	}
	q.backgroundActive.StoreRelease(true)

	q.queuelock.Unlock()
}
