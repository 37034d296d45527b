// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blend

import "math"

// unit converts an 8-bit channel to [0, 1].
func unit(v uint8) float64 {
	return float64(v) / 255
}

// to8 rounds x to the nearest 8-bit value, clamping to [0, 255].
func to8(x float64) uint8 {
	if x <= 0 || math.IsNaN(x) {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(math.Round(x))
}

// clamp01 restricts x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
