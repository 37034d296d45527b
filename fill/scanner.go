// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fill

// span tracks one neighbour row while a scanline is probed.
// An open span with a nil seed covers pixels that were already queued by
// an earlier scan; it absorbs columns without extending anything.
type span struct {
	open bool
	seed *ScanSeed
}

// scanRow grows seed s horizontally, paints the covered pixels and queues
// the similar runs found on the rows above and below.
func (e *Engine) scanRow(s ScanSeed) {
	y := s.Y
	fx := s.Entry()

	right := fx - 1
	mix := s.Mix
	for x := fx; x < e.width; x++ {
		mix *= Similarity(e.seed, e.src.NRGBAAt(x, y))
		if mix < Epsilon {
			break
		}
		e.blend(x, y, mix)
		right = x
	}

	left := fx
	mix = s.Mix
	for x := fx; x >= 0; x-- {
		mix *= Similarity(e.seed, e.src.NRGBAAt(x, y))
		if mix < Epsilon {
			break
		}
		// The entry column was painted by the rightward walk.
		if x != fx {
			e.blend(x, y, mix)
		}
		left = x
	}
	if right < fx {
		return
	}

	// Painted columns form the contiguous run left..right.

	var above, below span
	for x := left; x <= right; x++ {
		if y > 0 {
			e.probe(&above, x, y-1)
		}
		if y+1 < e.height {
			e.probe(&below, x, y+1)
		}
	}
}

func (e *Engine) probe(sp *span, x, y int) {
	m := Similarity(e.seed, e.src.NRGBAAt(x, y))
	switch {
	case !sp.open && m > Epsilon:
		sp.open = true
		sp.seed = nil
		if e.visited.Add(x, y) {
			sp.seed = &ScanSeed{X: x, Y: y, Mix: m, EndX: x}
			e.queue.Push(sp.seed)
			e.stats.Enqueued++
		}
	case sp.open && m <= Epsilon:
		sp.open = false
		sp.seed = nil
	case sp.seed != nil:
		sp.seed.Mix = max(sp.seed.Mix, m)
		sp.seed.EndX = x
	}
}

func (e *Engine) blend(x, y int, mix float64) {
	e.dst.BlendNRGBA(x, y, e.paint, e.color.A*mix)
	e.stats.Painted++
}
