// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package tool

import (
	"math"

	"github.com/gogpu/paint/fill"
	"github.com/gogpu/paint/surface"
)

// Fill is the bucket tool. While the pointer is down it previews the fill
// from the pointer position into the preview layer; on release it commits
// the fill to the layer.
type Fill struct {
	sched *fill.Scheduler

	// OnCommit, if set, is called once per committed fill when it finishes.
	OnCommit func(fill.Stats)

	ctx      *Context
	snapshot *surface.Pixmap
}

// NewFill returns a bucket tool driven by sched.
func NewFill(sched *fill.Scheduler) *Fill {
	return &Fill{sched: sched}
}

// Name returns "fill".
func (f *Fill) Name() string { return "fill" }

// Size returns 1.
func (f *Fill) Size() float64 { return 1 }

// Flow returns 1.
func (f *Fill) Flow() float64 { return 1 }

// PreviewColor returns the paint colour.
func (f *Fill) PreviewColor(ctx *Context) surface.Color { return ctx.Color }

// RoughPreview returns false: the fill draws its own preview.
func (f *Fill) RoughPreview() bool { return false }

// Start snapshots the layer and starts previewing at p.
func (f *Fill) Start(ctx *Context, p Point) error {
	// A commit still running would be missing from the snapshot.
	f.sched.Flush()
	f.ctx = ctx
	if ctx.Layer != nil {
		f.snapshot = ctx.Layer.Snapshot()
	}
	return f.preview(p)
}

// Move previews the fill at p. Moves within the same pixel keep the
// running preview.
func (f *Fill) Move(p Point) error {
	return f.preview(p)
}

// End commits the fill seeded at p to the layer.
func (f *Fill) End(p Point) error {
	ctx := f.ctx
	f.ctx, f.snapshot = nil, nil
	if ctx == nil || ctx.Layer == nil {
		f.sched.CancelPreview()
		return nil
	}
	f.sched.Flush()

	x, y := seed(p)
	return f.sched.Commit(x, y, ctx.Layer.Snapshot(), ctx.Layer, fillColor(ctx.Color), f.OnCommit)
}

func (f *Fill) preview(p Point) error {
	if f.ctx == nil || f.ctx.Preview == nil || f.snapshot == nil {
		return nil
	}
	x, y := seed(p)
	return f.sched.Preview(x, y, f.snapshot, f.ctx.Preview, fillColor(f.ctx.Color))
}

// seed rounds a canvas position to the nearest pixel, halves rounding up.
func seed(p Point) (int, int) {
	return int(math.Floor(p.X + 0.5)), int(math.Floor(p.Y + 0.5))
}

func fillColor(c surface.Color) fill.FillColor {
	n := c.NRGBA()
	return fill.RGBA(n.R, n.G, n.B, min(max(c.A, 0), 1))
}
