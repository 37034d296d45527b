// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paint

import (
	"errors"
	"log/slog"
	"math"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/paint/fill"
	"github.com/gogpu/paint/layer"
	"github.com/gogpu/paint/tool"
)

// strokeState is the editor's view of the stroke in progress.
type strokeState struct {
	down      bool
	pointerID int
	active    tool.Tool
	ctx       *tool.Context
	preview   layer.ID
	maxWidth  float64
	lastPoint [2]float64
	lastMouse [2]float64
	length    float64
}

// Attach subscribes the editor to a pointer event stream.
func (e *Editor) Attach(src gpucontext.PointerEventSource) {
	src.OnPointer(e.HandlePointer)
}

// HandlePointer processes one pointer event.
func (e *Editor) HandlePointer(ev gpucontext.PointerEvent) {
	switch ev.Type {
	case gpucontext.PointerDown:
		e.pointerDown(ev)
	case gpucontext.PointerMove:
		e.pointerMove(ev)
	case gpucontext.PointerUp, gpucontext.PointerCancel:
		e.pointerUp(ev)
	case gpucontext.PointerEnter:
		if e.platform != nil {
			e.platform.SetCursor(gpucontext.CursorCrosshair)
		}
	case gpucontext.PointerLeave:
		e.pointerUp(ev)
		e.cursor.Visible = false
		if e.platform != nil {
			e.platform.SetCursor(gpucontext.CursorDefault)
		}
		e.requestRedraw()
	}
}

// pressureForDelta estimates mouse pressure from the pointer speed.
func pressureForDelta(ax, ay, bx, by float64) float64 {
	d := math.Hypot(ax-bx, ay-by)
	return 1 - 1/(d/50+1.4)
}

// pressure returns the effective pressure of ev; mouse pressure comes from
// its movement since the last event.
func (e *Editor) pressure(ev gpucontext.PointerEvent) float64 {
	if !e.settings.Pen.PressureSensitive {
		return 1
	}
	if ev.PointerType == gpucontext.PointerTypeMouse {
		return pressureForDelta(ev.X, ev.Y, e.stroke.lastMouse[0], e.stroke.lastMouse[1])
	}
	return float64(ev.Pressure)
}

func (e *Editor) resolveTool(ev gpucontext.PointerEvent) tool.Tool {
	if e.kind == ToolBrush && (ev.Modifiers.HasAlt() ||
		ev.PointerType == gpucontext.PointerTypePen && ev.Button == gpucontext.ButtonEraser) {
		return e.eraser
	}
	return e.selected()
}

func (e *Editor) pointerDown(ev gpucontext.PointerEvent) {
	s := &e.stroke
	if s.down {
		return
	}
	s.down = true
	s.pointerID = ev.PointerID
	s.active = e.resolveTool(ev)
	s.ctx = &tool.Context{
		Layer:      e.CurrentLayer(),
		Color:      e.color,
		Background: e.background,
	}
	// A commit still running owns the layer until it is done.
	e.sched.Flush()
	e.createPreview()

	pressure := 0.0
	if ev.PointerType != gpucontext.PointerTypeMouse {
		pressure = float64(ev.Pressure)
	}
	if !e.settings.Pen.PressureSensitive {
		pressure = 1
	}
	if ev.PointerType == gpucontext.PointerTypeMouse {
		e.cursor.Size = s.maxWidth
	} else {
		e.cursor.Size = pressure * s.maxWidth
	}
	e.moveCursor(ev)

	half := pressure * s.maxWidth / 2
	x, y := ev.X, ev.Y
	if s.active.RoughPreview() && s.ctx.Preview != nil {
		s.ctx.Preview.AddRoughPoint(x, y, half, half, true)
	}
	s.lastPoint = [2]float64{x, y}
	s.length = 0

	e.logger.Debug("paint: stroke started",
		slog.String("tool", s.active.Name()),
		slog.Float64("x", x), slog.Float64("y", y))
	e.toolResult(s.active.Start(s.ctx, tool.Point{X: x, Y: y, Left: half, Right: half}))

	s.lastMouse = [2]float64{x, y}
	e.requestRedraw()
}

func (e *Editor) pointerMove(ev gpucontext.PointerEvent) {
	s := &e.stroke
	if s.down && ev.PointerID != s.pointerID {
		return
	}
	pressure := e.pressure(ev)
	e.moveCursor(ev)

	if !s.down {
		e.cursor.Size = pressure * e.selected().Size()
		s.lastMouse = [2]float64{ev.X, ev.Y}
		e.requestRedraw()
		return
	}

	x, y := ev.X, ev.Y
	left, right := e.sideWidths(ev, x, y, pressure)
	if s.active.RoughPreview() && s.ctx.Preview != nil {
		s.ctx.Preview.AddRoughPoint(x, y, left, right, false)
	}
	e.cursor.Size = left + right

	s.length += math.Hypot(x-s.lastPoint[0], y-s.lastPoint[1])
	s.lastPoint = [2]float64{x, y}

	e.toolResult(s.active.Move(tool.Point{X: x, Y: y, Left: left, Right: right, Length: s.length}))

	s.lastMouse = [2]float64{x, y}
	e.requestRedraw()
}

// sideWidths returns the stroke half-widths left and right of the path.
// Pen tilt widens the side it leans towards.
func (e *Editor) sideWidths(ev gpucontext.PointerEvent, x, y, pressure float64) (left, right float64) {
	s := &e.stroke
	dx, dy := x-s.lastPoint[0], y-s.lastPoint[1]

	// Angle measured from the +y axis: 0 points down the canvas.
	angle := math.Atan2(dx, dy)

	tiltX, tiltY := float64(ev.TiltX), float64(ev.TiltY)
	tiltAngle := math.Atan2(tiltX, -tiltY)
	tiltLength := math.Hypot(tiltX, tiltY) / 100
	tx, ty := math.Cos(tiltAngle), math.Sin(tiltAngle)

	lx, ly := math.Cos(angle+math.Pi/2), math.Sin(angle+math.Pi/2)
	rx, ry := math.Cos(angle-math.Pi/2), math.Sin(angle-math.Pi/2)

	base := pressure * s.maxWidth / 2
	amount := e.settings.Pen.TiltAmount * s.maxWidth * tiltLength
	left = base + amount*math.Abs(lx*tx+ly*ty)
	right = base + amount*math.Abs(rx*tx+ry*ty)
	return left, right
}

func (e *Editor) pointerUp(ev gpucontext.PointerEvent) {
	s := &e.stroke
	if !s.down || ev.PointerID != s.pointerID {
		return
	}
	s.down = false

	half := e.pressure(ev) * s.maxWidth / 2
	e.removePreview()
	e.moveCursor(ev)

	e.toolResult(s.active.End(tool.Point{X: ev.X, Y: ev.Y, Left: half, Right: half, Length: s.length}))
	e.logger.Debug("paint: stroke ended",
		slog.String("tool", s.active.Name()),
		slog.Float64("length", s.length))

	s.active = nil
	s.ctx = nil
	s.lastMouse = [2]float64{ev.X, ev.Y}
	e.requestRedraw()
}

func (e *Editor) moveCursor(ev gpucontext.PointerEvent) {
	e.cursor.X, e.cursor.Y = ev.X, ev.Y
	e.cursor.Visible = true
}

// createPreview adds the transient layer shown while the stroke runs.
// Its opacity is the preview colour's alpha; the rough stroke inside is
// drawn at the tool flow.
func (e *Editor) createPreview() {
	s := &e.stroke
	s.maxWidth = s.active.Size()

	id, err := e.tree.NewBitmap(e.tree.Width(), e.tree.Height())
	if err != nil {
		e.logger.Warn("paint: preview layer", slog.String("err", err.Error()))
		return
	}
	b, err := e.tree.Bitmap(id)
	if err == nil {
		err = e.tree.SetPreview(id, true)
	}
	if err != nil {
		_ = e.tree.Release(id)
		e.logger.Warn("paint: preview layer", slog.String("err", err.Error()))
		return
	}

	c := s.active.PreviewColor(s.ctx)
	b.SetOpacity(c.A)
	b.SetRoughColor(c.WithAlpha(s.active.Flow()).NRGBA())

	if err := e.tree.AppendChild(e.tree.Root(), id); err != nil {
		_ = e.tree.Release(id)
		e.logger.Warn("paint: preview layer", slog.String("err", err.Error()))
		return
	}
	s.preview = id
	s.ctx.Preview = b
}

func (e *Editor) removePreview() {
	s := &e.stroke
	if s.preview == layer.Detached {
		return
	}
	_ = e.tree.RemoveChild(e.tree.Parent(s.preview), s.preview)
	_ = e.tree.Release(s.preview)
	s.preview = layer.Detached
	if s.ctx != nil {
		s.ctx.Preview = nil
	}
}

func (e *Editor) toolResult(err error) {
	switch {
	case err == nil:
	case errors.Is(err, fill.ErrInvalidSeed):
		e.logger.Debug("paint: fill outside canvas", slog.String("err", err.Error()))
	default:
		e.logger.Warn("paint: tool failed", slog.String("err", err.Error()))
	}
}
