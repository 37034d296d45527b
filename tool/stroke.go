// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tool

import "math"

// stampPath calls stamp for every point and for evenly spaced positions on
// the segments between them, interpolating the radius linearly.
func stampPath(points []Point, spacing float64, stamp func(x, y, r float64)) {
	if spacing <= 0 {
		spacing = 1
	}
	for i, p := range points {
		if i > 0 {
			last := points[i-1]
			dx, dy := p.X-last.X, p.Y-last.Y
			length := math.Hypot(dx, dy)
			cos, sin := dx/length, dy/length
			lr := last.Radius()
			for d := 0.0; d < length; d += spacing {
				stamp(last.X+cos*d, last.Y+sin*d, lr+(p.Radius()-lr)*(d/length))
			}
		}
		stamp(p.X, p.Y, p.Radius())
	}
}
