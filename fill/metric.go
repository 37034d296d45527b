// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fill

import "image/color"

const (
	// Sensitivity scales the squared colour delta in Similarity.
	Sensitivity = 0.015

	// Epsilon is the machine epsilon for float64 (2^-52). Mix amounts below
	// it end a walk; probe similarities must exceed it to open a span.
	Epsilon = 0x1p-52
)

// Similarity returns how strongly a fill seeded on seed should paint over
// sample, in [0, 1].
//
// The delta is the signed sum of the per-channel differences (alpha
// included) divided by four, and the result is max(0, 1 - k*delta²) with
// k = Sensitivity. Differences of opposite sign cancel out, so two
// different colours can score 1.
func Similarity(seed, sample color.NRGBA) float64 {
	sum := int(seed.R) - int(sample.R) +
		int(seed.G) - int(sample.G) +
		int(seed.B) - int(sample.B) +
		int(seed.A) - int(sample.A)
	delta := float64(sum) / 4
	return max(0, 1-Sensitivity*delta*delta)
}
