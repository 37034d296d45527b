// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image/color"
	"math"
)

// FillCircle paints an anti-aliased disc of radius r centred on (cx, cy).
// Pixel centres sit at half-integer coordinates. coverage scales c's alpha.
func (p *Pixmap) FillCircle(cx, cy, r float64, c color.NRGBA, coverage float64, mode BlendMode) {
	p.FillCapsule(cx, cy, cx, cy, r, c, coverage, mode)
}

// FillCapsule paints the anti-aliased set of points within r of the
// segment (x0, y0)-(x1, y1): a line of width 2r with round caps.
func (p *Pixmap) FillCapsule(x0, y0, x1, y1, r float64, c color.NRGBA, coverage float64, mode BlendMode) {
	if r <= 0 || coverage <= 0 || p.width == 0 || p.height == 0 {
		return
	}

	minX := max(int(math.Floor(min(x0, x1)-r-1)), 0)
	maxX := min(int(math.Ceil(max(x0, x1)+r+1)), p.width-1)
	minY := max(int(math.Floor(min(y0, y1)-r-1)), 0)
	maxY := min(int(math.Ceil(max(y0, y1)+r+1)), p.height-1)

	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5

			// Distance from the pixel centre to the closest point of the segment.
			t := 0.0
			if lenSq > 0 {
				t = math.Max(0, math.Min(1, ((px-x0)*dx+(py-y0)*dy)/lenSq))
			}
			d := math.Hypot(px-(x0+t*dx), py-(y0+t*dy))

			cov := r + 0.5 - d
			if cov <= 0 {
				continue
			}
			p.BlendPixel(x, y, c, math.Min(cov, 1)*coverage, mode)
		}
	}
}
