// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layer

import (
	"image"

	"github.com/gogpu/paint/internal/damage"
	"github.com/gogpu/paint/surface"
)

// Dirty reports whether the composite is out of date.
func (t *Tree) Dirty() bool {
	if t.structural {
		return true
	}
	dirty := false
	t.eachBitmap(func(b *Bitmap) {
		dirty = dirty || b.dirty
	})
	return dirty
}

func (t *Tree) eachBitmap(fn func(b *Bitmap)) {
	t.Walk(func(id ID, _ int) bool {
		if n := &t.nodes[id]; n.kind == KindBitmap {
			fn(n.bitmap)
		}
		return true
	})
}

// Render clears dst and composites every attached bitmap onto it.
// Bitmaps are marked clean.
func (t *Tree) Render(dst *surface.Pixmap) {
	dst.Clear()
	t.eachBitmap(func(b *Bitmap) {
		dst.DrawPixmap(b.pix, 0, 0, b.opacity, b.mode)
		b.dirty = false
		b.damage.Clear()
	})
	t.structural = false
}

// RenderDamaged brings dst up to date by re-compositing only the tiles
// damaged since the last render, and returns them. It falls back to a
// full Render after structural changes or when dst does not match the
// canvas size.
func (t *Tree) RenderDamaged(dst *surface.Pixmap) []image.Rectangle {
	if t.structural || dst.Width() != t.width || dst.Height() != t.height {
		t.Render(dst)
		return []image.Rectangle{dst.Bounds()}
	}

	acc := damage.New(t.width, t.height)
	t.eachBitmap(func(b *Bitmap) {
		acc.Merge(b.damage)
		b.damage.Clear()
		b.dirty = false
	})
	rects := acc.Take()
	for _, r := range rects {
		dst.ClearRect(r)
		t.eachBitmap(func(b *Bitmap) {
			dst.DrawPixmapRect(b.pix, r, b.opacity, b.mode)
		})
	}
	return rects
}
