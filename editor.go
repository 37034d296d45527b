// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package paint

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/paint/config"
	"github.com/gogpu/paint/fill"
	"github.com/gogpu/paint/layer"
	"github.com/gogpu/paint/surface"
	"github.com/gogpu/paint/tool"
)

// ToolKind selects the active tool.
type ToolKind uint8

const (
	// ToolBrush paints with the brush. Holding Alt or using the pen's
	// eraser end erases instead.
	ToolBrush ToolKind = iota
	// ToolEraser erases.
	ToolEraser
	// ToolFill flood-fills similar colours.
	ToolFill
)

// String returns the tool name.
func (k ToolKind) String() string {
	switch k {
	case ToolBrush:
		return "brush"
	case ToolEraser:
		return "eraser"
	case ToolFill:
		return "fill"
	default:
		return fmt.Sprintf("ToolKind(%d)", uint8(k))
	}
}

// Cursor describes the brush outline the host should draw.
type Cursor struct {
	X, Y    float64
	Size    float64
	Visible bool
}

// Editor is a paint editor over a layer document.
//
// Editor is not safe for concurrent use. Pointer events, Frame and Render
// are expected on the host's UI thread.
type Editor struct {
	tree    *layer.Tree
	current layer.ID

	settings   config.Settings
	color      surface.Color
	background surface.Color

	brush  *tool.Brush
	eraser *tool.Eraser
	bucket *tool.Fill
	kind   ToolKind

	frames   *fill.FrameQueue
	driver   fill.FrameDriver
	sched    *fill.Scheduler
	window   gpucontext.WindowProvider
	platform gpucontext.PlatformProvider
	logger   *slog.Logger

	stroke strokeState
	cursor Cursor
}

// New creates an editor with a width×height document holding one empty
// bitmap layer.
func New(width, height int, opts ...Option) (*Editor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.settings.Validate(); err != nil {
		return nil, err
	}

	tree, err := layer.NewTree(width, height)
	if err != nil {
		return nil, err
	}
	id, err := tree.NewBitmap(width, height)
	if err != nil {
		return nil, err
	}
	if err := tree.AppendChild(tree.Root(), id); err != nil {
		return nil, err
	}

	e := &Editor{
		tree:       tree,
		current:    id,
		settings:   o.settings,
		color:      o.settings.PaintColor(),
		background: o.settings.BackgroundColor(),
		window:     o.window,
		platform:   o.platform,
		logger:     o.logger,
		driver:     o.driver,
	}
	if e.driver == nil {
		e.frames = &fill.FrameQueue{}
		e.driver = e.frames
	}
	e.sched = fill.NewScheduler(frameRequester{e}, e.requestRedraw,
		fill.WithBatchSize(o.settings.Fill.Batch),
		fill.WithLogger(o.logger))

	e.brush = tool.NewBrush()
	e.brush.SetSize(o.settings.Brush.Size)
	e.brush.SetFlow(o.settings.Brush.Flow)
	e.brush.SetSpacing(o.settings.Brush.Spacing)
	e.eraser = tool.NewEraser()
	e.eraser.SetSize(o.settings.Eraser.Size)
	e.bucket = tool.NewFill(e.sched)
	e.bucket.OnCommit = func(st fill.Stats) {
		e.logger.Debug("paint: fill committed", slog.Int("pixels", st.Painted))
	}
	e.stroke.preview = layer.Detached

	return e, nil
}

// frameRequester asks the host for a redraw along with every frame
// request, so on-demand hosts keep running frames while a fill is active.
type frameRequester struct{ e *Editor }

func (r frameRequester) RequestFrame(fn func()) {
	r.e.driver.RequestFrame(fn)
	r.e.requestRedraw()
}

func (e *Editor) requestRedraw() {
	if e.window != nil {
		e.window.RequestRedraw()
	}
}

// Tree returns the layer document.
func (e *Editor) Tree() *layer.Tree { return e.tree }

// Settings returns the settings the editor was created with.
func (e *Editor) Settings() config.Settings { return e.settings }

// CurrentLayer returns the bitmap strokes are committed to.
func (e *Editor) CurrentLayer() *layer.Bitmap {
	b, err := e.tree.Bitmap(e.current)
	if err != nil {
		return nil
	}
	return b
}

// CurrentLayerID returns the ID of the current layer.
func (e *Editor) CurrentLayerID() layer.ID { return e.current }

// SetCurrentLayer makes id the current layer. It must be a bitmap.
func (e *Editor) SetCurrentLayer(id layer.ID) error {
	if _, err := e.tree.Bitmap(id); err != nil {
		return err
	}
	e.current = id
	return nil
}

// AddLayer appends a new transparent bitmap to the root and makes it
// current.
func (e *Editor) AddLayer() (layer.ID, error) {
	id, err := e.tree.NewBitmap(e.tree.Width(), e.tree.Height())
	if err != nil {
		return layer.Detached, err
	}
	if err := e.tree.AppendChild(e.tree.Root(), id); err != nil {
		return layer.Detached, err
	}
	e.current = id
	e.requestRedraw()
	return id, nil
}

// SetTool selects the tool used by the next stroke.
func (e *Editor) SetTool(k ToolKind) { e.kind = k }

// Tool returns the selected tool.
func (e *Editor) Tool() ToolKind { return e.kind }

// Brush returns the brush tool.
func (e *Editor) Brush() *tool.Brush { return e.brush }

// Eraser returns the eraser tool.
func (e *Editor) Eraser() *tool.Eraser { return e.eraser }

// Bucket returns the fill tool.
func (e *Editor) Bucket() *tool.Fill { return e.bucket }

func (e *Editor) selected() tool.Tool {
	switch e.kind {
	case ToolEraser:
		return e.eraser
	case ToolFill:
		return e.bucket
	default:
		return e.brush
	}
}

// SetColor sets the paint colour, alpha included.
func (e *Editor) SetColor(c surface.Color) { e.color = c }

// Color returns the paint colour.
func (e *Editor) Color() surface.Color { return e.color }

// SetBackground sets the canvas colour.
func (e *Editor) SetBackground(c surface.Color) { e.background = c }

// Background returns the canvas colour.
func (e *Editor) Background() surface.Color { return e.background }

// Cursor returns the brush outline to draw.
func (e *Editor) Cursor() Cursor { return e.cursor }

// Frame runs the frame callbacks queued since the last frame and returns
// how many ran. Hosts call it once per frame when no frame driver was
// supplied.
func (e *Editor) Frame() int {
	if e.frames == nil {
		return 0
	}
	return e.frames.RunFrame()
}

// Busy reports whether a fill is still running.
func (e *Editor) Busy() bool {
	return e.sched.Busy()
}

// Flush completes a running fill commit immediately.
func (e *Editor) Flush() {
	e.sched.Flush()
}

// Render composites the whole document into dst.
func (e *Editor) Render(dst *surface.Pixmap) {
	e.tree.Render(dst)
}

// Dirty reports whether the document changed since the last render.
func (e *Editor) Dirty() bool {
	return e.tree.Dirty()
}
