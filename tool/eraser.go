// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tool

import (
	"github.com/gogpu/paint/surface"
)

// Eraser removes paint along the stroke with destination-out stamps.
type Eraser struct {
	size float64

	ctx    *Context
	points []Point
}

// NewEraser returns an eraser of size 30.
func NewEraser() *Eraser {
	return &Eraser{size: 30}
}

// Name returns "eraser".
func (e *Eraser) Name() string { return "eraser" }

// Size returns the eraser diameter.
func (e *Eraser) Size() float64 { return e.size }

// SetSize sets the eraser diameter.
func (e *Eraser) SetSize(s float64) { e.size = max(s, 0) }

// Flow returns 1.
func (e *Eraser) Flow() float64 { return 1 }

// PreviewColor returns the background colour.
func (e *Eraser) PreviewColor(ctx *Context) surface.Color { return ctx.Background }

// RoughPreview returns true.
func (e *Eraser) RoughPreview() bool { return true }

// Start begins a stroke at p.
func (e *Eraser) Start(ctx *Context, p Point) error {
	e.ctx = ctx
	e.points = append(e.points[:0], p)
	return nil
}

// Move adds p to the stroke.
func (e *Eraser) Move(p Point) error {
	e.points = append(e.points, p)
	return nil
}

// End adds p and erases the stroke from the layer.
func (e *Eraser) End(p Point) error {
	if e.ctx == nil {
		return nil
	}
	e.points = append(e.points, p)
	if dst := e.ctx.Layer; dst != nil {
		c := e.ctx.Background.Opaque().NRGBA()
		stampPath(e.points, 1, func(x, y, r float64) {
			dst.FillCapsule(x, y, x, y, r, c, 1, surface.BlendDestinationOut)
		})
	}
	e.ctx = nil
	return nil
}
