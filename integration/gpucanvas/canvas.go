// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucanvas

import (
	"errors"
	"image"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/paint"
	"github.com/gogpu/paint/surface"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("gpucanvas: canvas is closed")

	// ErrNilEditor is returned when New is given a nil editor.
	ErrNilEditor = errors.New("gpucanvas: nil editor")
)

// textureDestroyer matches gogpu.Texture.Destroy.
type textureDestroyer interface {
	Destroy()
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithBackdrop sets the colour shown beneath the layers. The default is
// opaque white.
func WithBackdrop(c gputypes.Color) Option {
	return func(cv *Canvas) {
		cv.backdrop = c
	}
}

// WithDeviceProvider reports the window surface format through Format.
func WithDeviceProvider(p gpucontext.DeviceProvider) Option {
	return func(cv *Canvas) {
		cv.provider = p
	}
}

// WithLogger sets the logger for upload diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(cv *Canvas) {
		if l != nil {
			cv.logger = l
		}
	}
}

// Canvas composites an editor's layers over a backdrop and keeps a GPU
// texture of the result up to date.
type Canvas struct {
	ed       *paint.Editor
	provider gpucontext.DeviceProvider
	backdrop gputypes.Color
	logger   *slog.Logger

	layers *surface.Pixmap // the document alone
	frame  *surface.Pixmap // layers over the backdrop

	texture    gpucontext.Texture
	oldTexture gpucontext.Texture // replaced texture awaiting destruction
	pending    []image.Rectangle  // frame areas not yet uploaded
	full       bool               // recompose the whole frame on next Update
	closed     bool
}

// New creates a canvas presenting ed.
func New(ed *paint.Editor, opts ...Option) (*Canvas, error) {
	if ed == nil {
		return nil, ErrNilEditor
	}
	c := &Canvas{
		ed:       ed,
		backdrop: gputypes.Color{R: 1, G: 1, B: 1, A: 1},
		logger:   paint.Logger(),
		full:     true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Width returns the document width in pixels.
func (c *Canvas) Width() int { return c.ed.Tree().Width() }

// Height returns the document height in pixels.
func (c *Canvas) Height() int { return c.ed.Tree().Height() }

// Size returns width and height as a convenience.
func (c *Canvas) Size() (width, height int) {
	return c.Width(), c.Height()
}

// Backdrop returns the colour beneath the layers.
func (c *Canvas) Backdrop() gputypes.Color { return c.backdrop }

// SetBackdrop changes the colour beneath the layers.
func (c *Canvas) SetBackdrop(col gputypes.Color) {
	if col == c.backdrop {
		return
	}
	c.backdrop = col
	c.full = true
}

// Format returns the surface format of the device provider, or
// RGBA8Unorm, the layout of the uploaded pixels, without one.
func (c *Canvas) Format() gputypes.TextureFormat {
	if c.provider != nil {
		if f := c.provider.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
			return f
		}
	}
	return gputypes.TextureFormatRGBA8Unorm
}

// Frame returns the composed frame. It is nil before the first Update.
func (c *Canvas) Frame() *surface.Pixmap { return c.frame }

// Texture returns the current GPU texture, or nil before the first RenderTo.
func (c *Canvas) Texture() gpucontext.Texture { return c.texture }

// IsDirty reports whether the next RenderTo uploads pixels.
func (c *Canvas) IsDirty() bool {
	return c.full || len(c.pending) > 0 || c.ed.Dirty() || c.sizeChanged()
}

func (c *Canvas) sizeChanged() bool {
	w, h := c.Size()
	return c.frame == nil || c.frame.Width() != w || c.frame.Height() != h
}

// Update recomposes the parts of the frame the editor changed and reports
// whether anything changed.
func (c *Canvas) Update() (bool, error) {
	if c.closed {
		return false, ErrCanvasClosed
	}
	tree := c.ed.Tree()

	if c.sizeChanged() {
		w, h := c.Size()
		c.layers = surface.NewPixmap(w, h)
		c.frame = surface.NewPixmap(w, h)
		if c.texture != nil {
			c.retire(c.texture)
			c.texture = nil
		}
		c.full = true
	}

	var rects []image.Rectangle
	if c.full {
		tree.Render(c.layers)
		rects = []image.Rectangle{c.frame.Bounds()}
		c.full = false
	} else {
		rects = tree.RenderDamaged(c.layers)
	}

	bg := surface.RGBA(c.backdrop.R, c.backdrop.G, c.backdrop.B, c.backdrop.A)
	for _, r := range rects {
		c.frame.FillRect(r, bg)
		c.frame.DrawPixmapRect(c.layers, r, 1, surface.BlendSourceOver)
	}
	c.pending = append(c.pending, rects...)
	return len(rects) > 0, nil
}

// retire schedules tex for destruction once a replacement has been
// created. GPU commands in flight may still sample it.
func (c *Canvas) retire(tex gpucontext.Texture) {
	c.destroy(c.oldTexture)
	c.oldTexture = tex
}

func (c *Canvas) destroy(tex gpucontext.Texture) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}

// Close releases the canvas textures. Close is idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.destroy(c.oldTexture)
	c.destroy(c.texture)
	c.oldTexture, c.texture = nil, nil
	c.layers, c.frame, c.pending = nil, nil, nil
	return nil
}
