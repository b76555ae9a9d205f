// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package equeue

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent stress tests that drive the spinlock
// hard enough to trigger false positives: the race detector cannot always
// observe the CAS on the lock's atomix.Bool as a synchronizing edge for
// the plain struct fields the lock protects.
const RaceEnabled = true
