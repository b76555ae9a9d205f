// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// spinlock is the IRQ-safe critical section primitive backing memlock and
// queuelock (§5). It never parks a goroutine on a channel or OS futex, so
// it is safe to take from a goroutine standing in for "interrupt context"
// (a timer callback, a cancellation handler) provided the critical section
// stays short — exactly the constraint §5 imposes on memlock/queuelock.
//
// Contention backoff mirrors the CAS retry loops in the teacher's
// FAA-based consumer paths: spin.Wait{}.Once() between attempts.
type spinlock struct {
	held atomix.Bool
}

func (l *spinlock) Lock() {
	var sw spin.Wait
	for !l.held.CompareAndSwapAcqRel(false, true) {
		sw.Once()
	}
}

func (l *spinlock) Unlock() {
	l.held.StoreRelease(false)
}
