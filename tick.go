// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package equeue

// tickDiff returns the signed relative difference a-b, correct across a
// single wraparound window (half the uint32 domain). Every deadline
// comparison in this package goes through this helper or [tickDiffClamp];
// raw subtraction and wall-clock absolute compares never appear elsewhere.
func tickDiff(a, b uint32) int32 {
	return int32(a - b)
}

// tickDiffClamp is tickDiff clamped to a minimum of zero.
func tickDiffClamp(a, b uint32) int32 {
	diff := tickDiff(a, b)
	if diff > 0 {
		return diff
	}
	return 0
}
