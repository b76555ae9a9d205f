// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue_test

import "sync"

// manualClock is an injectable [equeue.Clock] tests advance explicitly,
// so delay/period/wraparound scenarios run instantly instead of sleeping.
type manualClock struct {
	mu sync.Mutex
	t  uint32
}

func newManualClock(start uint32) *manualClock {
	return &manualClock{t: start}
}

func (c *manualClock) Tick() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *manualClock) Advance(ms int) {
	c.mu.Lock()
	c.t += uint32(ms)
	c.mu.Unlock()
}
