// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tool

import (
	"github.com/gogpu/paint/surface"
)

// Brush paints round stamps along the stroke.
//
// Stamps accumulate in a stroke mask at the brush flow; the mask is then
// composited onto the layer with the paint colour's alpha, so overlapping
// stamps never exceed the colour alpha.
type Brush struct {
	size    float64
	flow    float64
	spacing float64

	ctx    *Context
	points []Point
}

// NewBrush returns a brush of size 10, flow 1 and spacing 1.
func NewBrush() *Brush {
	return &Brush{size: 10, flow: 1, spacing: 1}
}

// Name returns "brush".
func (b *Brush) Name() string { return "brush" }

// Size returns the brush diameter.
func (b *Brush) Size() float64 { return b.size }

// SetSize sets the brush diameter.
func (b *Brush) SetSize(s float64) { b.size = max(s, 0) }

// Flow returns the alpha of a single stamp.
func (b *Brush) Flow() float64 { return b.flow }

// SetFlow sets the stamp alpha, clamped to [0, 1].
func (b *Brush) SetFlow(f float64) { b.flow = min(max(f, 0), 1) }

// Spacing returns the distance between interpolated stamps.
func (b *Brush) Spacing() float64 { return b.spacing }

// SetSpacing sets the distance between interpolated stamps. Non-positive
// values are ignored.
func (b *Brush) SetSpacing(s float64) {
	if s > 0 {
		b.spacing = s
	}
}

// PreviewColor returns the paint colour.
func (b *Brush) PreviewColor(ctx *Context) surface.Color { return ctx.Color }

// RoughPreview returns true.
func (b *Brush) RoughPreview() bool { return true }

// Start begins a stroke at p.
func (b *Brush) Start(ctx *Context, p Point) error {
	b.ctx = ctx
	b.points = append(b.points[:0], p)
	return nil
}

// Move adds p to the stroke. A move to the last position only updates its
// widths.
func (b *Brush) Move(p Point) error {
	if n := len(b.points); n > 0 && b.points[n-1].X == p.X && b.points[n-1].Y == p.Y {
		b.points[n-1].Left = p.Left
		b.points[n-1].Right = p.Right
		return nil
	}
	b.points = append(b.points, p)
	return nil
}

// End adds p and paints the stroke onto the layer.
func (b *Brush) End(p Point) error {
	if b.ctx == nil {
		return nil
	}
	_ = b.Move(p)
	b.stroke()
	b.ctx = nil
	return nil
}

func (b *Brush) stroke() {
	dst := b.ctx.Layer
	if dst == nil {
		return
	}
	mask := surface.NewPixmap(dst.Width(), dst.Height())
	c := b.ctx.Color.Opaque().NRGBA()

	stampPath(b.points, b.spacing, func(x, y, r float64) {
		mask.FillCircle(x, y, r, c, b.flow, surface.BlendSourceOver)
	})
	dst.Composite(mask, b.ctx.Color.A, surface.BlendSourceOver)
}
