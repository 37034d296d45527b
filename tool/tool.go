// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package tool implements the editor's painting tools.
//
// A stroke is a Start, any number of Moves and an End. The editor turns
// pointer events into [Point] values (canvas coordinates plus the stroke
// widths on each side of the path) and forwards them to the active [Tool].
package tool

import (
	"github.com/gogpu/paint/layer"
	"github.com/gogpu/paint/surface"
)

// Point is one sample of a stroke.
type Point struct {
	X, Y float64

	// Left and Right are the stroke half-widths on each side of the path.
	Left, Right float64

	// Length is the path length from the stroke start.
	Length float64
}

// Radius returns the stamp radius at p.
func (p Point) Radius() float64 {
	return (p.Left + p.Right) / 2
}

// Context is what a tool paints with for the duration of one stroke.
type Context struct {
	// Layer is the bitmap the stroke is committed to.
	Layer *layer.Bitmap

	// Preview is the transient layer shown while the stroke is in progress.
	// It may be nil.
	Preview *layer.Bitmap

	// Color is the paint colour; Background is the canvas colour.
	Color      surface.Color
	Background surface.Color
}

// Tool is a painting tool.
type Tool interface {
	// Name identifies the tool, e.g. "brush".
	Name() string

	// Size is the nominal stroke width in pixels.
	Size() float64

	// Flow is the alpha of a single stamp.
	Flow() float64

	// PreviewColor is the colour the rough preview is drawn with.
	PreviewColor(ctx *Context) surface.Color

	// RoughPreview reports whether the editor should draw the pointer path
	// into the preview layer. Tools that render their own preview return
	// false.
	RoughPreview() bool

	Start(ctx *Context, p Point) error
	Move(p Point) error
	End(p Point) error
}
