// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paint

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/paint/config"
	"github.com/gogpu/paint/fill"
	"github.com/gogpu/paint/layer"
	"github.com/gogpu/paint/surface"
)

var opaqueRed = color.NRGBA{R: 255, A: 255}

type fakeWindow struct {
	gpucontext.NullWindowProvider
	redraws int
}

func (w *fakeWindow) RequestRedraw() { w.redraws++ }

type fakePlatform struct {
	gpucontext.NullPlatformProvider
	cursors []gpucontext.CursorShape
}

func (p *fakePlatform) SetCursor(c gpucontext.CursorShape) { p.cursors = append(p.cursors, c) }

type fakeSource struct {
	fn func(gpucontext.PointerEvent)
}

func (s *fakeSource) OnPointer(fn func(gpucontext.PointerEvent)) { s.fn = fn }

func mouse(typ gpucontext.PointerEventType, x, y float64) gpucontext.PointerEvent {
	return gpucontext.PointerEvent{
		Type:        typ,
		PointerID:   1,
		X:           x,
		Y:           y,
		PointerType: gpucontext.PointerTypeMouse,
		IsPrimary:   true,
		Button:      gpucontext.ButtonLeft,
	}
}

func pen(typ gpucontext.PointerEventType, x, y float64, pressure float32) gpucontext.PointerEvent {
	ev := mouse(typ, x, y)
	ev.PointerType = gpucontext.PointerTypePen
	ev.Pressure = pressure
	return ev
}

func newEditor(t *testing.T, w, h int, opts ...Option) *Editor {
	t.Helper()
	ed, err := New(w, h, opts...)
	if err != nil {
		t.Fatalf("New(%d, %d) = %v", w, h, err)
	}
	return ed
}

// drain runs frames until no fill is active.
func drain(t *testing.T, ed *Editor) {
	t.Helper()
	for range 1000 {
		if !ed.Busy() {
			return
		}
		ed.Frame()
	}
	t.Fatal("fill did not finish within 1000 frames")
}

func TestNew(t *testing.T) {
	ed := newEditor(t, 16, 8)

	if got := ed.Tree().Len(); got != 2 {
		t.Errorf("Tree().Len() = %d, want root and one layer", got)
	}
	l := ed.CurrentLayer()
	if l == nil || l.Width() != 16 || l.Height() != 8 {
		t.Fatalf("CurrentLayer() = %v, want a 16x8 bitmap", l)
	}
	if ed.Tool() != ToolBrush {
		t.Errorf("Tool() = %v, want brush", ed.Tool())
	}
	if ed.Color() != surface.Black || ed.Background() != surface.White {
		t.Errorf("colours = %v on %v, want black on white", ed.Color(), ed.Background())
	}
	if ed.Brush().Size() != 10 || ed.Eraser().Size() != 30 {
		t.Errorf("tool sizes = %v, %v, want 10, 30", ed.Brush().Size(), ed.Eraser().Size())
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(0, 10); !errors.Is(err, layer.ErrInvalidSize) {
		t.Errorf("New(0, 10) error = %v, want ErrInvalidSize", err)
	}

	s := config.Default()
	s.Fill.Batch = 0
	if _, err := New(10, 10, WithSettings(s)); !errors.Is(err, config.ErrInvalidSettings) {
		t.Errorf("New with zero batch error = %v, want ErrInvalidSettings", err)
	}
}

func TestNewAppliesSettings(t *testing.T) {
	s := config.Default()
	s.Brush.Size = 4
	s.Brush.Flow = 0.5
	s.Eraser.Size = 12
	s.Color = "#ff0000"

	ed := newEditor(t, 10, 10, WithSettings(s))
	if ed.Brush().Size() != 4 || ed.Brush().Flow() != 0.5 {
		t.Errorf("brush = size %v flow %v, want 4 and 0.5", ed.Brush().Size(), ed.Brush().Flow())
	}
	if ed.Eraser().Size() != 12 {
		t.Errorf("eraser size = %v, want 12", ed.Eraser().Size())
	}
	if ed.Color() != surface.Red {
		t.Errorf("Color() = %v, want red", ed.Color())
	}
	if ed.Settings() != s {
		t.Error("Settings() does not return the settings passed to New")
	}
}

func TestEditorFill(t *testing.T) {
	s := config.Default()
	s.Fill.Batch = 3
	win := &fakeWindow{}
	ed := newEditor(t, 10, 10, WithSettings(s), WithWindow(win))
	ed.SetTool(ToolFill)
	ed.SetColor(surface.Red)

	ed.HandlePointer(mouse(gpucontext.PointerDown, 4, 4))

	root := ed.Tree().Root()
	children := ed.Tree().Children(root)
	if len(children) != 2 || !ed.Tree().IsPreview(children[1]) {
		t.Fatalf("root children = %v, want the layer and a preview", children)
	}
	preview, err := ed.Tree().Bitmap(children[1])
	if err != nil {
		t.Fatal(err)
	}
	ed.Frame()
	if got := preview.NRGBAAt(4, 4); got != opaqueRed {
		t.Errorf("preview seed pixel = %v, want %v", got, opaqueRed)
	}
	if got := ed.CurrentLayer().NRGBAAt(4, 4); got.A != 0 {
		t.Errorf("layer changed during preview: %v", got)
	}

	ed.HandlePointer(mouse(gpucontext.PointerUp, 4, 4))
	if got := ed.Tree().Len(); got != 2 {
		t.Errorf("Tree().Len() after release = %d, want the preview gone", got)
	}
	drain(t, ed)

	l := ed.CurrentLayer()
	for y := range 10 {
		for x := range 10 {
			if got := l.NRGBAAt(x, y); got != opaqueRed {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, opaqueRed)
			}
		}
	}
	if win.redraws == 0 {
		t.Error("fill never requested a redraw")
	}

	dst := surface.NewPixmap(10, 10)
	ed.Render(dst)
	if got := dst.NRGBAAt(9, 9); got != opaqueRed {
		t.Errorf("rendered pixel = %v, want %v", got, opaqueRed)
	}
	if ed.Dirty() {
		t.Error("document still dirty after Render")
	}
}

func TestEditorFillOutsideCanvas(t *testing.T) {
	ed := newEditor(t, 10, 10)
	ed.SetTool(ToolFill)

	ed.HandlePointer(mouse(gpucontext.PointerDown, -5, -5))
	ed.HandlePointer(mouse(gpucontext.PointerUp, -5, -5))
	ed.Frame()

	if ed.Busy() {
		t.Error("fill outside the canvas left the editor busy")
	}
	if got := ed.CurrentLayer().NRGBAAt(0, 0); got.A != 0 {
		t.Errorf("pixel (0, 0) = %v, want untouched", got)
	}
}

func TestEditorFillWithFrameDriver(t *testing.T) {
	var q fill.FrameQueue
	ed := newEditor(t, 20, 20, WithFrameDriver(&q))
	ed.SetTool(ToolFill)

	ed.HandlePointer(mouse(gpucontext.PointerDown, 1, 1))
	ed.HandlePointer(mouse(gpucontext.PointerUp, 1, 1))

	if n := ed.Frame(); n != 0 {
		t.Errorf("Frame() with an external driver ran %d callbacks", n)
	}
	q.Drain(0)
	if ed.Busy() {
		t.Error("draining the external driver did not finish the fill")
	}
	if got := ed.CurrentLayer().NRGBAAt(19, 19); got.A != 255 {
		t.Errorf("corner alpha = %d, want 255", got.A)
	}
}

func TestEditorBrushStroke(t *testing.T) {
	ed := newEditor(t, 20, 20)

	ed.HandlePointer(mouse(gpucontext.PointerDown, 5, 10))
	ed.HandlePointer(mouse(gpucontext.PointerMove, 15, 10))

	children := ed.Tree().Children(ed.Tree().Root())
	preview, err := ed.Tree().Bitmap(children[len(children)-1])
	if err != nil {
		t.Fatal(err)
	}
	if got := preview.NRGBAAt(10, 10).A; got != 255 {
		t.Errorf("rough preview alpha at (10, 10) = %d, want 255", got)
	}

	ed.HandlePointer(mouse(gpucontext.PointerUp, 15, 10))

	l := ed.CurrentLayer()
	inked := 0
	for y := range 20 {
		for x := range 20 {
			c := l.NRGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			inked++
			if c.R != 0 || c.G != 0 || c.B != 0 {
				t.Errorf("pixel (%d, %d) = %v, want black ink", x, y, c)
			}
			if y < 7 || y > 13 {
				t.Errorf("pixel (%d, %d) inked far from the stroke", x, y)
			}
		}
	}
	if inked == 0 {
		t.Error("brush stroke left the layer empty")
	}
	if got := ed.Tree().Len(); got != 2 {
		t.Errorf("Tree().Len() after the stroke = %d, want 2", got)
	}
}

func TestEditorStrokeAfterFillCommit(t *testing.T) {
	s := config.Default()
	s.Fill.Batch = 100
	ed := newEditor(t, 10, 400, WithSettings(s))
	ed.SetTool(ToolFill)
	ed.SetColor(surface.Red)
	ed.HandlePointer(mouse(gpucontext.PointerDown, 5, 5))
	ed.HandlePointer(mouse(gpucontext.PointerUp, 5, 5))
	if !ed.Busy() {
		t.Fatal("fill finished in one batch, want it still committing")
	}

	ed.SetTool(ToolBrush)
	ed.SetColor(surface.Blue)
	ed.HandlePointer(mouse(gpucontext.PointerDown, 5, 350))
	if ed.Busy() {
		t.Error("stroke started while the fill commit was still running")
	}
	ed.HandlePointer(mouse(gpucontext.PointerMove, 5, 370))
	ed.HandlePointer(mouse(gpucontext.PointerUp, 5, 370))
	drain(t, ed)

	l := ed.CurrentLayer()
	if got := l.NRGBAAt(5, 360); got.B <= got.R {
		t.Errorf("stroke pixel (5, 360) = %v, want the blue stroke on top", got)
	}
	if got := l.NRGBAAt(0, 399); got != opaqueRed {
		t.Errorf("pixel (0, 399) = %v, want the fill finished", got)
	}
}

func TestEditorStrokeWithoutPreview(t *testing.T) {
	ed := newEditor(t, 20, 20)

	ed.HandlePointer(mouse(gpucontext.PointerDown, 5, 10))
	ed.removePreview()
	ed.HandlePointer(mouse(gpucontext.PointerMove, 15, 10))
	ed.HandlePointer(mouse(gpucontext.PointerUp, 15, 10))

	if got := ed.CurrentLayer().NRGBAAt(10, 10).A; got == 0 {
		t.Error("stroke without a preview layer left the layer empty")
	}
	if got := ed.Tree().Len(); got != 2 {
		t.Errorf("Tree().Len() = %d, want 2", got)
	}
}

func TestEditorPenEraser(t *testing.T) {
	ed := newEditor(t, 40, 20)
	ed.CurrentLayer().Pixmap().Fill(surface.Red)

	down := pen(gpucontext.PointerDown, 5, 10, 1)
	down.Button = gpucontext.ButtonEraser
	ed.HandlePointer(down)
	ed.HandlePointer(pen(gpucontext.PointerMove, 10, 10, 1))
	ed.HandlePointer(pen(gpucontext.PointerUp, 10, 10, 1))

	l := ed.CurrentLayer()
	if got := l.NRGBAAt(7, 10).A; got != 0 {
		t.Errorf("erased pixel alpha = %d, want 0", got)
	}
	if got := l.NRGBAAt(39, 0); got != opaqueRed {
		t.Errorf("pixel outside the eraser = %v, want %v", got, opaqueRed)
	}
	if ed.Tool() != ToolBrush {
		t.Error("the pen eraser changed the selected tool")
	}
}

func TestEditorAltErases(t *testing.T) {
	ed := newEditor(t, 20, 20)
	ed.CurrentLayer().Pixmap().Fill(surface.Red)

	down := pen(gpucontext.PointerDown, 10, 10, 1)
	down.Modifiers = gpucontext.ModAlt
	ed.HandlePointer(down)
	ed.HandlePointer(pen(gpucontext.PointerUp, 10, 10, 1))

	if got := ed.CurrentLayer().NRGBAAt(10, 10).A; got != 0 {
		t.Errorf("alt stroke alpha = %d, want 0", got)
	}
}

func TestEditorCursor(t *testing.T) {
	plat := &fakePlatform{}
	ed := newEditor(t, 20, 20, WithPlatform(plat))

	ed.HandlePointer(mouse(gpucontext.PointerEnter, 3, 3))
	ed.HandlePointer(mouse(gpucontext.PointerMove, 4, 3))
	c := ed.Cursor()
	if !c.Visible || c.X != 4 || c.Y != 3 {
		t.Errorf("Cursor() = %+v, want visible at (4, 3)", c)
	}
	if c.Size <= 0 || c.Size > ed.Brush().Size() {
		t.Errorf("cursor size = %v, want within (0, %v]", c.Size, ed.Brush().Size())
	}

	ed.HandlePointer(mouse(gpucontext.PointerLeave, 30, 3))
	if ed.Cursor().Visible {
		t.Error("cursor visible after the pointer left")
	}
	want := []gpucontext.CursorShape{gpucontext.CursorCrosshair, gpucontext.CursorDefault}
	if len(plat.cursors) != len(want) || plat.cursors[0] != want[0] || plat.cursors[1] != want[1] {
		t.Errorf("cursor shapes = %v, want %v", plat.cursors, want)
	}
}

func TestEditorPressureInsensitive(t *testing.T) {
	s := config.Default()
	s.Pen.PressureSensitive = false
	ed := newEditor(t, 20, 20, WithSettings(s))

	ed.HandlePointer(pen(gpucontext.PointerMove, 5, 5, 0.1))
	if got := ed.Cursor().Size; got != ed.Brush().Size() {
		t.Errorf("cursor size = %v, want the full brush size %v", got, ed.Brush().Size())
	}
}

func TestEditorLeaveEndsStroke(t *testing.T) {
	ed := newEditor(t, 20, 20)

	ed.HandlePointer(pen(gpucontext.PointerDown, 5, 5, 1))
	ed.HandlePointer(pen(gpucontext.PointerMove, 8, 5, 1))
	ed.HandlePointer(pen(gpucontext.PointerLeave, 25, 5, 1))

	if got := ed.Tree().Len(); got != 2 {
		t.Errorf("Tree().Len() = %d, want the preview released", got)
	}
	if got := ed.CurrentLayer().NRGBAAt(6, 5).A; got == 0 {
		t.Error("leaving the window dropped the stroke")
	}
}

func TestEditorIgnoresOtherPointers(t *testing.T) {
	ed := newEditor(t, 20, 20)

	ed.HandlePointer(pen(gpucontext.PointerDown, 5, 5, 1))
	other := pen(gpucontext.PointerDown, 15, 15, 1)
	other.PointerID = 2
	ed.HandlePointer(other)
	other.Type = gpucontext.PointerUp
	ed.HandlePointer(other)

	if got := ed.Tree().Len(); got != 3 {
		t.Fatalf("Tree().Len() = %d, want the first stroke still running", got)
	}
	ed.HandlePointer(pen(gpucontext.PointerUp, 5, 5, 1))
	if got := ed.Tree().Len(); got != 2 {
		t.Errorf("Tree().Len() = %d after release, want 2", got)
	}
	if got := ed.CurrentLayer().NRGBAAt(15, 15).A; got != 0 {
		t.Error("second pointer painted")
	}
}

func TestEditorAttach(t *testing.T) {
	ed := newEditor(t, 10, 10)
	src := &fakeSource{}
	ed.Attach(src)
	if src.fn == nil {
		t.Fatal("Attach did not register a callback")
	}
	src.fn(pen(gpucontext.PointerDown, 5, 5, 1))
	src.fn(pen(gpucontext.PointerUp, 5, 5, 1))
	if got := ed.CurrentLayer().NRGBAAt(5, 5).A; got == 0 {
		t.Error("events from the source did not paint")
	}
}

func TestEditorLayers(t *testing.T) {
	ed := newEditor(t, 10, 10)
	first := ed.CurrentLayerID()

	id, err := ed.AddLayer()
	if err != nil {
		t.Fatalf("AddLayer() = %v", err)
	}
	if ed.CurrentLayerID() != id || id == first {
		t.Errorf("current layer = %v, want the new layer %v", ed.CurrentLayerID(), id)
	}

	if err := ed.SetCurrentLayer(ed.Tree().Root()); !errors.Is(err, layer.ErrNotBitmap) {
		t.Errorf("SetCurrentLayer(root) error = %v, want ErrNotBitmap", err)
	}
	if err := ed.SetCurrentLayer(first); err != nil {
		t.Fatalf("SetCurrentLayer(first) = %v", err)
	}

	ed.HandlePointer(pen(gpucontext.PointerDown, 5, 5, 1))
	ed.HandlePointer(pen(gpucontext.PointerUp, 5, 5, 1))
	top, _ := ed.Tree().Bitmap(id)
	if top.NRGBAAt(5, 5).A != 0 || ed.CurrentLayer().NRGBAAt(5, 5).A == 0 {
		t.Error("stroke did not land on the current layer")
	}
}

func TestToolKindString(t *testing.T) {
	tests := []struct {
		kind ToolKind
		want string
	}{
		{ToolBrush, "brush"},
		{ToolEraser, "eraser"},
		{ToolFill, "fill"},
		{ToolKind(9), "ToolKind(9)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ToolKind(%d).String() = %q, want %q", uint8(tt.kind), got, tt.want)
		}
	}
}
