// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue_test

import (
	"testing"

	"code.hybscloud.com/equeue"
)

// TestBackgroundImmediateUpdate verifies Background invokes the updater
// right away with the time to the current head when the queue is already
// non-empty (§4.6, first bullet).
func TestBackgroundImmediateUpdate(t *testing.T) {
	clock := newManualClock(0)
	q, err := equeue.New(2048, equeue.WithClock(clock))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer q.Destroy()

	if _, err := q.CallIn(40, func(any) {}, nil); err != nil {
		t.Fatalf("CallIn: %v", err)
	}

	var gotMS []int
	q.Background(func(_ any, ms int) { gotMS = append(gotMS, ms) }, nil)

	if len(gotMS) != 1 || gotMS[0] != 40 {
		t.Fatalf("gotMS = %v, want [40]", gotMS)
	}
}

// TestBackgroundReplacementNotifiesMinusOne verifies replacing a
// registered updater (including via Background(nil, nil)) notifies the
// outgoing updater with -1 exactly once (§4.6).
func TestBackgroundReplacementNotifiesMinusOne(t *testing.T) {
	q, err := equeue.New(2048)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer q.Destroy()

	var first []int
	q.Background(func(_ any, ms int) { first = append(first, ms) }, nil)
	q.Background(nil, nil)

	if len(first) != 1 || first[0] != -1 {
		t.Fatalf("outgoing updater calls = %v, want [-1]", first)
	}
}

// TestBackgroundDestroyNotifiesMinusOne verifies Destroy notifies a
// registered updater with -1 exactly once.
func TestBackgroundDestroyNotifiesMinusOne(t *testing.T) {
	q, err := equeue.New(2048)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var calls []int
	q.Background(func(_ any, ms int) { calls = append(calls, ms) }, nil)
	if len(calls) != 0 {
		t.Fatalf("registration on an empty queue notified %v, want none", calls)
	}

	q.Destroy()

	if len(calls) != 1 || calls[0] != -1 {
		t.Fatalf("Destroy notified updater with %v, want [-1]", calls)
	}
}

// TestBackgroundNewHeadWhileActive verifies a newly-posted earlier
// deadline re-notifies the updater only while backgrounding is active
// (i.e. after a bounded Dispatch handed control back to the background
// driver), per §4.6's second bullet.
func TestBackgroundNewHeadWhileActive(t *testing.T) {
	clock := newManualClock(0)
	q, err := equeue.New(2048, equeue.WithClock(clock))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer q.Destroy()

	var calls []int
	q.Background(func(_ any, ms int) { calls = append(calls, ms) }, nil)

	// Dispatch(0) with nothing ready marks backgroundActive and reports
	// "nothing due" (no call, since the queue is empty).
	calls = nil
	q.Dispatch(0)
	if len(calls) != 0 {
		t.Fatalf("Dispatch(0) on empty queue notified %v, want none", calls)
	}

	// Posting a new head while backgroundActive must re-notify.
	if _, err := q.CallIn(30, func(any) {}, nil); err != nil {
		t.Fatalf("CallIn: %v", err)
	}
	if len(calls) != 1 || calls[0] != 30 {
		t.Fatalf("calls after posting while active = %v, want [30]", calls)
	}
}

// TestBackgroundDispatchTailNotifies verifies a bounded Dispatch that
// times out with events still pending notifies the updater with the new
// head's relative deadline at its tail (§4.6's third bullet).
func TestBackgroundDispatchTailNotifies(t *testing.T) {
	clock := newManualClock(0)
	q, err := equeue.New(2048, equeue.WithClock(clock))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer q.Destroy()

	if _, err := q.CallIn(100, func(any) {}, nil); err != nil {
		t.Fatalf("CallIn: %v", err)
	}

	var calls []int
	q.Background(func(_ any, ms int) { calls = append(calls, ms) }, nil)
	if len(calls) != 1 || calls[0] != 100 {
		t.Fatalf("initial registration calls = %v, want [100]", calls)
	}

	calls = nil
	q.Dispatch(0)
	if len(calls) != 1 || calls[0] != 100 {
		t.Fatalf("Dispatch(0) tail notification = %v, want [100]", calls)
	}
}
