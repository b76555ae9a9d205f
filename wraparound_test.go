// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue_test

import (
	"testing"

	"code.hybscloud.com/equeue"
)

// TestTickWraparoundDoesNotReorderDispatch posts an event whose target
// crosses the uint32 wraparound boundary and verifies it neither fires
// early nor fails to fire once the clock actually wraps past it (§8
// boundary behavior: "tick wraparound across an event's target does not
// reorder dispatch").
func TestTickWraparoundDoesNotReorderDispatch(t *testing.T) {
	const start = uint32(0xFFFFFFF0) // 16 ticks from wraparound
	clock := newManualClock(start)
	q, err := equeue.New(2048, equeue.WithClock(clock))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer q.Destroy()

	var n int
	if _, err := q.CallIn(32, func(any) { n++ }, nil); err != nil {
		t.Fatalf("CallIn: %v", err)
	}

	// 10 ticks in: still 22 ticks short of the wrapped deadline.
	clock.Advance(10)
	q.Dispatch(0)
	if n != 0 {
		t.Fatalf("fired early at +10 ticks: n = %d", n)
	}

	// 22 ticks in (6 past wraparound): still short of the 32-tick delay.
	clock.Advance(12)
	q.Dispatch(0)
	if n != 0 {
		t.Fatalf("fired early at +22 ticks (post-wraparound): n = %d", n)
	}

	// 32 ticks in: due.
	clock.Advance(10)
	q.Dispatch(0)
	if n != 1 {
		t.Fatalf("n = %d at +32 ticks, want 1", n)
	}
}

// TestTickWraparoundPeriodicGrid verifies a periodic event keeps its
// original grid across a wraparound boundary rather than drifting.
func TestTickWraparoundPeriodicGrid(t *testing.T) {
	start := uint32(0xFFFFFFF6) // 10 ticks from wraparound
	clock := newManualClock(start)
	q, err := equeue.New(2048, equeue.WithClock(clock))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer q.Destroy()

	var fireTicks []uint32
	if _, err := q.CallEvery(10, func(any) { fireTicks = append(fireTicks, clock.Tick()) }, nil); err != nil {
		t.Fatalf("CallEvery: %v", err)
	}

	for i := 0; i < 3; i++ {
		clock.Advance(10)
		q.Dispatch(0)
	}

	if len(fireTicks) != 3 {
		t.Fatalf("fireTicks = %v, want 3 entries", fireTicks)
	}
	want := [3]uint32{start + 10, start + 20, start + 30}
	for i, got := range fireTicks {
		if got != want[i] {
			t.Fatalf("fireTicks[%d] = %d, want %d", i, got, want[i])
		}
	}
}
