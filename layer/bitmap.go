// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layer

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/paint/internal/damage"
	"github.com/gogpu/paint/surface"
)

// loadFailedLabel is drawn into a bitmap whose image data failed to decode.
const loadFailedLabel = "Failed to load image"

// Bitmap is a raster layer.
//
// Bitmap satisfies the fill package's Source, Target and ClearableTarget
// interfaces. Every write marks the layer dirty and damages the touched
// tiles.
type Bitmap struct {
	pix     *surface.Pixmap
	opacity float64
	mode    surface.BlendMode
	dirty   bool
	damage  *damage.Region

	// rough preview stroke state
	roughColor color.NRGBA
	lastRough  [2]float64
}

// NewBitmap creates a transparent width×height bitmap with opacity 1.
func NewBitmap(width, height int) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return NewBitmapFrom(surface.NewPixmap(width, height)), nil
}

// NewBitmapFrom wraps pm in a bitmap. The bitmap takes ownership of pm.
func NewBitmapFrom(pm *surface.Pixmap) *Bitmap {
	return &Bitmap{
		pix:        pm,
		opacity:    1,
		damage:     damage.New(pm.Width(), pm.Height()),
		roughColor: color.NRGBA{A: 255},
	}
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int { return b.pix.Width() }

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int { return b.pix.Height() }

// NRGBAAt returns the pixel at (x, y).
func (b *Bitmap) NRGBAAt(x, y int) color.NRGBA { return b.pix.NRGBAAt(x, y) }

// Pixmap returns the backing pixmap. Writes through it bypass damage
// tracking; call MarkDirty afterwards.
func (b *Bitmap) Pixmap() *surface.Pixmap { return b.pix }

// Snapshot returns a copy of the current pixels.
func (b *Bitmap) Snapshot() *surface.Pixmap { return b.pix.Clone() }

// Opacity returns the layer opacity in [0, 1].
func (b *Bitmap) Opacity() float64 { return b.opacity }

// SetOpacity sets the layer opacity, clamped to [0, 1].
func (b *Bitmap) SetOpacity(a float64) {
	b.opacity = min(max(a, 0), 1)
	b.MarkDirty()
}

// Mode returns the blend mode used to composite the layer.
func (b *Bitmap) Mode() surface.BlendMode { return b.mode }

// SetMode sets the blend mode used to composite the layer.
func (b *Bitmap) SetMode(m surface.BlendMode) {
	b.mode = m
	b.MarkDirty()
}

// Dirty reports whether the bitmap changed since it was last rendered.
func (b *Bitmap) Dirty() bool { return b.dirty }

// MarkDirty flags the whole bitmap as changed.
func (b *Bitmap) MarkDirty() {
	b.dirty = true
	b.damage.MarkAll()
}

func (b *Bitmap) touch(r image.Rectangle) {
	b.dirty = true
	b.damage.MarkRect(r)
}

// BlendNRGBA composites c over (x, y) with its alpha scaled by alpha.
func (b *Bitmap) BlendNRGBA(x, y int, c color.NRGBA, alpha float64) {
	b.BlendPixel(x, y, c, alpha, surface.BlendSourceOver)
}

// BlendPixel composites c onto (x, y) using mode.
func (b *Bitmap) BlendPixel(x, y int, c color.NRGBA, coverage float64, mode surface.BlendMode) {
	if !b.pix.InBounds(x, y) {
		return
	}
	b.pix.BlendPixel(x, y, c, coverage, mode)
	b.dirty = true
	b.damage.MarkPixel(x, y)
}

// Clear makes the bitmap transparent.
func (b *Bitmap) Clear() {
	b.pix.Clear()
	b.MarkDirty()
}

// Composite draws src over the bitmap at the origin.
func (b *Bitmap) Composite(src *surface.Pixmap, opacity float64, mode surface.BlendMode) {
	b.pix.DrawPixmap(src, 0, 0, opacity, mode)
	b.touch(src.Bounds())
}

// FillCapsule paints a round-capped segment of radius r into the bitmap.
func (b *Bitmap) FillCapsule(x0, y0, x1, y1, r float64, c color.NRGBA, coverage float64, mode surface.BlendMode) {
	b.pix.FillCapsule(x0, y0, x1, y1, r, c, coverage, mode)
	b.touch(capsuleBounds(x0, y0, x1, y1, r))
}

func capsuleBounds(x0, y0, x1, y1, r float64) image.Rectangle {
	return image.Rect(
		int(min(x0, x1)-r)-1, int(min(y0, y1)-r)-1,
		int(max(x0, x1)+r)+2, int(max(y0, y1)+r)+2,
	)
}

// SetRoughColor sets the colour of the rough preview stroke.
func (b *Bitmap) SetRoughColor(c color.NRGBA) { b.roughColor = c }

// AddRoughPoint extends the rough preview stroke to (x, y) with a width
// of left+right. A start point draws a dot; later points draw a
// round-capped line from the previous point.
func (b *Bitmap) AddRoughPoint(x, y, left, right float64, start bool) {
	r := (left + right) / 2
	if start {
		b.FillCapsule(x, y, x, y, r, b.roughColor, 1, surface.BlendSourceOver)
	} else {
		b.FillCapsule(b.lastRough[0], b.lastRough[1], x, y, r, b.roughColor, 1, surface.BlendSourceOver)
	}
	b.lastRough = [2]float64{x, y}
}

// Resize changes the bitmap size, keeping the content anchored at the
// top-left.
func (b *Bitmap) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if err := b.pix.Resize(width, height); err != nil {
		return err
	}
	b.damage = damage.New(width, height)
	b.MarkDirty()
	return nil
}

// Resample scales the content to width×height.
func (b *Bitmap) Resample(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	pm, err := b.pix.Resample(width, height)
	if err != nil {
		return err
	}
	b.pix = pm
	b.damage = damage.New(width, height)
	b.MarkDirty()
	return nil
}

// DrawLabel draws text with its top-left corner at (x, y).
func (b *Bitmap) DrawLabel(x, y int, text string, c surface.Color) {
	b.pix.DrawText(x, y, text, c)
	w, h := surface.MeasureText(text)
	b.touch(image.Rect(x, y, x+w, y+h))
}

// Load decodes an image from r and draws it at the origin. When the data
// cannot be decoded a red notice is drawn instead and the error returned.
func (b *Bitmap) Load(r io.Reader) error {
	img, err := surface.Decode(r)
	if err != nil {
		b.DrawLabel(0, 0, loadFailedLabel, surface.Red)
		return fmt.Errorf("layer: load image: %w", err)
	}
	b.Composite(img, 1, surface.BlendSourceOver)
	return nil
}

// Save encodes the bitmap to w.
func (b *Bitmap) Save(w io.Writer, format surface.Format) error {
	return b.pix.Encode(w, format)
}
